package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/model"
)

func seedUser(t *testing.T, s *Store, email string) model.User {
	t.Helper()
	u := model.User{
		ID:            uuid.New(),
		Email:         email,
		Name:          "n",
		AccountStatus: model.AccountActive,
	}
	require.NoError(t, s.CreateUser(context.Background(), &u))
	return u
}

func TestStore_EmailUniqueAmongLiveAccounts(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := seedUser(t, s, "a@example.com")

	dup := model.User{ID: uuid.New(), Email: "a@example.com", AccountStatus: model.AccountActive}
	require.ErrorIs(t, s.CreateUser(ctx, &dup), model.ErrDuplicate)

	u.AccountStatus = model.AccountDeleted
	require.NoError(t, s.UpdateUser(ctx, &u))

	_, err := s.GetUserByEmail(ctx, "a@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.CreateUser(ctx, &dup))
	got, err := s.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, dup.ID, got.ID)
}

func TestStore_Sessions(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := seedUser(t, s, "a@example.com")
	now := time.Now()

	first := model.Session{ID: uuid.New(), UserID: u.ID, ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	second := model.Session{ID: uuid.New(), UserID: u.ID, ExpiresAt: now.Add(time.Hour), CreatedAt: now.Add(time.Second)}
	require.NoError(t, s.CreateSession(ctx, &first))
	require.NoError(t, s.CreateSession(ctx, &second))
	require.ErrorIs(t, s.CreateSession(ctx, &first), model.ErrDuplicate)

	revoked, err := s.RevokeSession(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, revoked.IsRevoked)

	_, err = s.RevokeSession(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)

	sessions := s.SessionsFor(u.ID)
	require.Len(t, sessions, 2)
	assert.Equal(t, first.ID, sessions[0].ID)
	assert.True(t, sessions[0].IsRevoked)
	assert.False(t, sessions[1].IsRevoked)

	require.NoError(t, s.RevokeUserSessions(ctx, u.ID))
	got, err := s.GetSession(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRevoked)
}

func TestStore_ProjectScopingAndCascade(t *testing.T) {
	s := New()
	ctx := context.Background()
	alice := seedUser(t, s, "alice@example.com")
	bob := seedUser(t, s, "bob@example.com")
	now := time.Now()

	p := model.Project{ID: uuid.New(), Name: "Home", UserID: alice.ID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateProject(ctx, &p))

	_, err := s.GetProject(ctx, bob.ID, p.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
	require.ErrorIs(t, s.DeleteProject(ctx, bob.ID, p.ID), model.ErrNotFound)

	todo := model.Todo{ID: uuid.New(), Title: "t", Status: model.TodoStatusDone, UserID: alice.ID, ProjectID: p.ID, Tags: []string{"x"}}
	require.NoError(t, s.CreateTodo(ctx, &todo))

	stats, err := s.GetProject(ctx, alice.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalTodos)
	assert.Equal(t, 1, stats.CompletedTodos)

	require.NoError(t, s.DeleteProject(ctx, alice.ID, p.ID))
	_, err = s.GetTodo(ctx, alice.ID, todo.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestStore_TodoTagsAreCopied(t *testing.T) {
	s := New()
	ctx := context.Background()
	u := seedUser(t, s, "a@example.com")
	p := model.Project{ID: uuid.New(), Name: "p", UserID: u.ID}
	require.NoError(t, s.CreateProject(ctx, &p))

	todo := model.Todo{ID: uuid.New(), UserID: u.ID, ProjectID: p.ID, Tags: []string{"one"}}
	require.NoError(t, s.CreateTodo(ctx, &todo))
	todo.Tags[0] = "changed"

	got, err := s.GetTodo(ctx, u.ID, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, got.Tags)
}

func TestStore_CreateTodoRequiresProject(t *testing.T) {
	s := New()
	u := seedUser(t, s, "a@example.com")

	err := s.CreateTodo(context.Background(), &model.Todo{ID: uuid.New(), UserID: u.ID, ProjectID: uuid.New()})
	require.Error(t, err)
}
