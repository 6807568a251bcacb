package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/db/memory"
	"github.com/taskboard/backend/internal/model"
)

type resourceFixture struct {
	store    *memory.Store
	projects *ProjectService
	todos    *TodoService
	clock    *clock
	alice    uuid.UUID
	bob      uuid.UUID
}

func newResourceFixture(t *testing.T) *resourceFixture {
	t.Helper()
	store := memory.New()
	clk := &clock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}

	f := &resourceFixture{
		store:    store,
		projects: NewProjectService(store),
		todos:    NewTodoService(store, store),
		clock:    clk,
	}
	f.projects.now = clk.Now
	f.todos.now = clk.Now

	for _, id := range []*uuid.UUID{&f.alice, &f.bob} {
		*id = uuid.New()
		require.NoError(t, store.CreateUser(context.Background(), &model.User{
			ID:            *id,
			Email:         id.String() + "@example.com",
			AccountStatus: model.AccountActive,
		}))
	}
	return f
}

func ptr[T any](v T) *T { return &v }

func TestTodoService_CreateUsesDefaultProject(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	first, err := f.todos.Create(ctx, f.alice, model.CreateTodoRequest{Title: "one"})
	require.NoError(t, err)
	assert.Equal(t, model.TodoStatusTodo, first.Status)
	assert.Equal(t, model.PriorityMedium, first.Priority)
	assert.Equal(t, []string{}, first.Tags)
	assert.False(t, first.IsPinned)

	second, err := f.todos.Create(ctx, f.alice, model.CreateTodoRequest{Title: "two"})
	require.NoError(t, err)
	assert.Equal(t, first.ProjectID, second.ProjectID, "default project is reused")

	project, err := f.projects.Get(ctx, f.alice, first.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultProjectName, project.Name)
	assert.Equal(t, 2, project.TotalTodos)
}

func TestTodoService_CreateRejectsForeignProject(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	bobs, err := f.projects.Create(ctx, f.bob, model.CreateProjectRequest{Name: "Bob"})
	require.NoError(t, err)

	_, err = f.todos.Create(ctx, f.alice, model.CreateTodoRequest{Title: "sneaky", ProjectID: &bobs.ID})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.todos.Create(ctx, f.alice, model.CreateTodoRequest{Title: "ghost", ProjectID: ptr(uuid.New())})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTodoService_OwnershipIsNotFound(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	todo, err := f.todos.Create(ctx, f.alice, model.CreateTodoRequest{Title: "private"})
	require.NoError(t, err)

	_, err = f.todos.Get(ctx, f.bob, todo.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.todos.Update(ctx, f.bob, todo.ID, model.UpdateTodoRequest{Title: ptr("mine now")})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.todos.Archive(ctx, f.bob, todo.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.todos.Delete(ctx, f.bob, todo.ID)
	require.ErrorIs(t, err, ErrNotFound)

	got, err := f.todos.Get(ctx, f.alice, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Title)
	assert.False(t, got.IsArchived)
}

func TestTodoService_CompletedAtTransitions(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	todo, err := f.todos.Create(ctx, f.alice, model.CreateTodoRequest{Title: "task"})
	require.NoError(t, err)
	assert.Nil(t, todo.CompletedAt)

	f.clock.Advance(time.Hour)
	done, err := f.todos.Update(ctx, f.alice, todo.ID, model.UpdateTodoRequest{Status: ptr(model.TodoStatusDone)})
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, f.clock.t, *done.CompletedAt)

	f.clock.Advance(time.Hour)
	again, err := f.todos.Update(ctx, f.alice, todo.ID, model.UpdateTodoRequest{Status: ptr(model.TodoStatusDone)})
	require.NoError(t, err)
	assert.Equal(t, *done.CompletedAt, *again.CompletedAt, "completion time is kept while DONE")

	reopened, err := f.todos.Update(ctx, f.alice, todo.ID, model.UpdateTodoRequest{Status: ptr(model.TodoStatusInProgress)})
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)
	assert.Equal(t, model.TodoStatusInProgress, reopened.Status)
}

func TestTodoService_ListOrderingAndArchive(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	create := func(title string, priority model.TodoPriority, pinned bool) *model.Todo {
		f.clock.Advance(time.Minute)
		todo, err := f.todos.Create(ctx, f.alice, model.CreateTodoRequest{Title: title, Priority: &priority, IsPinned: &pinned})
		require.NoError(t, err)
		return todo
	}
	low := create("low", model.PriorityLow, false)
	create("urgent", model.PriorityUrgent, false)
	create("pinned-low", model.PriorityLow, true)
	create("high-old", model.PriorityHigh, false)
	create("high-new", model.PriorityHigh, false)

	list, err := f.todos.List(ctx, f.alice, nil)
	require.NoError(t, err)
	var titles []string
	for _, todo := range list {
		titles = append(titles, todo.Title)
	}
	assert.Equal(t, []string{"pinned-low", "urgent", "high-new", "high-old", "low"}, titles)

	_, err = f.todos.Archive(ctx, f.alice, low.ID)
	require.NoError(t, err)
	list, err = f.todos.List(ctx, f.alice, nil)
	require.NoError(t, err)
	assert.Len(t, list, 4)

	archived, err := f.todos.Get(ctx, f.alice, low.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)

	bobList, err := f.todos.List(ctx, f.bob, nil)
	require.NoError(t, err)
	assert.Empty(t, bobList)
}

func TestTodoService_ListByProjectAndMove(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	work, err := f.projects.Create(ctx, f.alice, model.CreateProjectRequest{Name: "Work"})
	require.NoError(t, err)
	bobs, err := f.projects.Create(ctx, f.bob, model.CreateProjectRequest{Name: "Bob"})
	require.NoError(t, err)

	todo, err := f.todos.Create(ctx, f.alice, model.CreateTodoRequest{Title: "inbox"})
	require.NoError(t, err)

	_, err = f.todos.Update(ctx, f.alice, todo.ID, model.UpdateTodoRequest{ProjectID: &bobs.ID})
	require.ErrorIs(t, err, ErrNotFound)

	moved, err := f.todos.Update(ctx, f.alice, todo.ID, model.UpdateTodoRequest{ProjectID: &work.ID, Tags: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, work.ID, moved.ProjectID)
	assert.Equal(t, []string{"a", "b"}, moved.Tags)

	inWork, err := f.todos.List(ctx, f.alice, &work.ID)
	require.NoError(t, err)
	require.Len(t, inWork, 1)
	assert.Equal(t, todo.ID, inWork[0].ID)
}

func TestTodoService_HardDelete(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	todo, err := f.todos.Create(ctx, f.alice, model.CreateTodoRequest{Title: "gone"})
	require.NoError(t, err)

	deleted, err := f.todos.Delete(ctx, f.alice, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, deleted.ID)

	_, err = f.todos.Get(ctx, f.alice, todo.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProjectService_CRUDAndOwnership(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	project, err := f.projects.Create(ctx, f.alice, model.CreateProjectRequest{Name: "Home", Color: ptr("#fff")})
	require.NoError(t, err)

	todo, err := f.todos.Create(ctx, f.alice, model.CreateTodoRequest{Title: "x", ProjectID: &project.ID, Status: ptr(model.TodoStatusDone)})
	require.NoError(t, err)
	require.NotNil(t, todo.CompletedAt)
	_, err = f.todos.Create(ctx, f.alice, model.CreateTodoRequest{Title: "y", ProjectID: &project.ID})
	require.NoError(t, err)

	got, err := f.projects.Get(ctx, f.alice, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalTodos)
	assert.Equal(t, 1, got.CompletedTodos)

	_, err = f.projects.Get(ctx, f.bob, project.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.projects.Update(ctx, f.bob, project.ID, model.UpdateProjectRequest{Name: ptr("stolen")})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.projects.Delete(ctx, f.bob, project.ID)
	require.ErrorIs(t, err, ErrNotFound)

	f.clock.Advance(time.Minute)
	updated, err := f.projects.Update(ctx, f.alice, project.ID, model.UpdateProjectRequest{Name: ptr("House"), IsArchived: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "House", updated.Name)
	assert.Equal(t, "#fff", *updated.Color)
	assert.True(t, updated.IsArchived)

	list, err := f.projects.List(ctx, f.alice)
	require.NoError(t, err)
	assert.Empty(t, list, "archived projects are not listed")

	deleted, err := f.projects.Delete(ctx, f.alice, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, deleted.ID)

	_, err = f.todos.Get(ctx, f.alice, todo.ID)
	require.ErrorIs(t, err, ErrNotFound, "todos go with their project")
}
