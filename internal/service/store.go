package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/model"
)

// The stores are implemented by db.Postgres and memory.Store. Lookups that
// find nothing return model.ErrNotFound; unique violations model.ErrDuplicate.

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

type SessionStore interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID uuid.UUID) (*model.Session, error)
	RevokeSession(ctx context.Context, sessionID uuid.UUID) (*model.Session, error)
	RevokeUserSessions(ctx context.Context, userID uuid.UUID) error
}

type ProjectStore interface {
	CreateProject(ctx context.Context, project *model.Project) error
	ListProjects(ctx context.Context, userID uuid.UUID) ([]model.ProjectWithStats, error)
	GetProject(ctx context.Context, userID, projectID uuid.UUID) (*model.ProjectWithStats, error)
	FindProjectByName(ctx context.Context, userID uuid.UUID, name string) (*model.Project, error)
	UpdateProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error
}

type TodoStore interface {
	CreateTodo(ctx context.Context, todo *model.Todo) error
	ListTodos(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error)
	GetTodo(ctx context.Context, userID, todoID uuid.UUID) (*model.Todo, error)
	UpdateTodo(ctx context.Context, todo *model.Todo) error
	DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error
}
