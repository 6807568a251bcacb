// Package seed creates the demo account and sample projects at startup. It
// runs outside the authentication flow and only talks to the stores.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service"
)

const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "secret42"
	demoName     = "Demo User"
)

type Stores interface {
	service.UserStore
	service.ProjectStore
}

type sampleProject struct {
	name        string
	description string
	color       string
}

var sampleProjects = []sampleProject{
	{name: model.DefaultProjectName, description: "My personal task list", color: "#1976d2"},
	{name: "Work Projects", description: "Professional tasks and deadlines", color: "#388e3c"},
}

// EnsureDemo is idempotent: an existing demo account is left untouched and
// sample projects are only added when the account has none.
func EnsureDemo(ctx context.Context, stores Stores, hasher *service.PasswordHasher, log zerolog.Logger) (*model.User, error) {
	user, err := stores.GetUserByEmail(ctx, DemoEmail)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrNotFound):
		user, err = createDemoUser(ctx, stores, hasher)
		if err != nil {
			return nil, err
		}
		log.Info().Str("email", DemoEmail).Msg("demo account created")
	default:
		return nil, fmt.Errorf("failed to look up demo account: %w", err)
	}

	existing, err := stores.ListProjects(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list demo projects: %w", err)
	}
	if len(existing) > 0 {
		return user, nil
	}

	base := time.Now()
	for i, sp := range sampleProjects {
		// stagger timestamps so listing order is stable
		at := base.Add(time.Duration(i-len(sampleProjects)) * time.Millisecond)
		description, color := sp.description, sp.color
		project := &model.Project{
			ID:          uuid.New(),
			Name:        sp.name,
			Description: &description,
			Color:       &color,
			UserID:      user.ID,
			CreatedAt:   at,
			UpdatedAt:   at,
		}
		if err := stores.CreateProject(ctx, project); err != nil {
			return nil, fmt.Errorf("failed to create sample project %q: %w", sp.name, err)
		}
	}
	log.Info().Int("projects", len(sampleProjects)).Msg("demo projects created")
	return user, nil
}

func createDemoUser(ctx context.Context, users service.UserStore, hasher *service.PasswordHasher) (*model.User, error) {
	hash, err := hasher.Hash(DemoPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:                   uuid.New(),
		Email:                DemoEmail,
		PasswordHash:         hash,
		Name:                 demoName,
		IsEmailVerified:      true,
		Theme:                model.ThemeLight,
		DefaultSort:          model.SortPriority,
		ShowCompletedTodos:   true,
		NotificationsEnabled: true,
		AccountStatus:        model.AccountActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create demo account: %w", err)
	}
	return user, nil
}
