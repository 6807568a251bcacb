package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/taskboard/backend/internal/service"
)

type Services struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Projects *service.ProjectService
	Todos    *service.TodoService
}

type RouterConfig struct {
	APIPrefix   string
	CORSOrigins []string
}

// NewRouter mounts every endpoint. Routes under the prefix are public only
// where listed before the auth group.
func NewRouter(cfg RouterConfig, svc Services, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(CORSMiddleware(cfg.CORSOrigins))

	router.GET("/ping", Ping)
	router.GET("/", Root)
	router.GET("/openapi.json", OpenAPIDoc)

	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users)
	projectHandler := NewProjectHandler(svc.Projects)
	todoHandler := NewTodoHandler(svc.Todos)

	api := router.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/users", userHandler.Register)

	protected := api.Group("")
	protected.Use(AuthMiddleware(svc.Auth))
	{
		protected.POST("/auth/logout", WithIdentity(authHandler.Logout))
		protected.GET("/auth/profile", WithIdentity(authHandler.Profile))

		protected.GET("/users/me", WithIdentity(userHandler.Me))
		protected.PATCH("/users/me", WithIdentity(userHandler.UpdateMe))
		protected.DELETE("/users/me", WithIdentity(userHandler.DeleteMe))

		protected.POST("/projects", WithIdentity(projectHandler.Create))
		protected.GET("/projects", WithIdentity(projectHandler.List))
		protected.GET("/projects/:id", WithIdentity(projectHandler.Get))
		protected.PATCH("/projects/:id", WithIdentity(projectHandler.Update))
		protected.DELETE("/projects/:id", WithIdentity(projectHandler.Delete))

		protected.POST("/todos", WithIdentity(todoHandler.Create))
		protected.GET("/todos", WithIdentity(todoHandler.List))
		protected.GET("/todos/:id", WithIdentity(todoHandler.Get))
		protected.PATCH("/todos/:id", WithIdentity(todoHandler.Update))
		protected.DELETE("/todos/:id", WithIdentity(todoHandler.Archive))
		protected.DELETE("/todos/:id/hard", WithIdentity(todoHandler.Delete))
	}

	return router
}
