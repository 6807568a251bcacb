package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/taskboard/backend/internal/model"
)

const (
	minPasswordLength = 6
	// bcrypt ignores everything past 72 bytes
	maxPasswordLength = 72
)

type UserService struct {
	users    UserStore
	sessions SessionStore
	hasher   *PasswordHasher
	log      zerolog.Logger
	now      func() time.Time
}

func NewUserService(users UserStore, sessions SessionStore, hasher *PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		log:      log.With().Str("component", "users").Logger(),
		now:      time.Now,
	}
}

func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	if len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength {
		return nil, ErrInvalidInput
	}

	_, err := s.users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &model.User{
		ID:                   uuid.New(),
		Email:                req.Email,
		PasswordHash:         hash,
		Name:                 req.Name,
		Bio:                  req.Bio,
		Theme:                model.ThemeLight,
		DefaultSort:          model.SortPriority,
		ShowCompletedTodos:   true,
		NotificationsEnabled: true,
		AccountStatus:        model.AccountActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, model.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("account registered")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, userID uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Theme != nil {
		user.Theme = *req.Theme
	}
	if req.DefaultSort != nil {
		user.DefaultSort = *req.DefaultSort
	}
	if req.ShowCompletedTodos != nil {
		user.ShowCompletedTodos = *req.ShowCompletedTodos
	}
	if req.NotificationsEnabled != nil {
		user.NotificationsEnabled = *req.NotificationsEnabled
	}
	user.UpdatedAt = s.now()

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Remove soft-deletes the account and revokes every session it holds.
func (s *UserService) Remove(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.AccountStatus = model.AccountDeleted
	user.UpdatedAt = s.now()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.sessions.RevokeUserSessions(ctx, userID); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID.String()).Msg("account deleted")
	return user, nil
}
