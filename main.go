package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/taskboard/backend/internal/config"
	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/db/memory"
	"github.com/taskboard/backend/internal/handler"
	"github.com/taskboard/backend/internal/logger"
	"github.com/taskboard/backend/internal/seed"
	"github.com/taskboard/backend/internal/service"
)

type recordStore interface {
	service.UserStore
	service.SessionStore
	service.ProjectStore
	service.TodoStore
}

// @title Task Board API
// @version 1.0
// @description Session-backed authentication with per-account projects and todos.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	// 저장소 선택 (postgres | memory)
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	hasher, err := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := service.NewTokenCodec(cfg.Auth.JWTSecret, cfg.TokenTTL())
	if err != nil {
		return err
	}

	if cfg.Seed.Demo {
		if _, err := seed.EnsureDemo(ctx, store, hasher, log); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	services := handler.Services{
		Auth:     service.NewAuthService(store, store, hasher, tokens, log),
		Users:    service.NewUserService(store, store, hasher, log),
		Projects: service.NewProjectService(store),
		Todos:    service.NewTodoService(store, store),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(handler.RouterConfig{
		APIPrefix:   cfg.Server.APIPrefix,
		CORSOrigins: cfg.Server.CORSOrigins,
	}, services, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("received interruption signal, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info().Msg("shutdown complete")
	return nil
}

func openStore(ctx context.Context, cfg config.Config, log zerolog.Logger) (recordStore, func(), error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("using in-memory storage; data is lost on restart")
		return memory.New(), func() {}, nil
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	log.Info().Msg("postgres ready")
	return db.NewPostgres(pool), pool.Close, nil
}
