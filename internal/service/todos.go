package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/model"
)

type TodoService struct {
	todos    TodoStore
	projects ProjectStore
	now      func() time.Time
}

func NewTodoService(todos TodoStore, projects ProjectStore) *TodoService {
	return &TodoService{todos: todos, projects: projects, now: time.Now}
}

func (s *TodoService) Create(ctx context.Context, userID uuid.UUID, req model.CreateTodoRequest) (*model.Todo, error) {
	var projectID uuid.UUID
	if req.ProjectID != nil {
		if err := s.ensureOwnedProject(ctx, userID, *req.ProjectID); err != nil {
			return nil, err
		}
		projectID = *req.ProjectID
	} else {
		project, err := s.defaultProject(ctx, userID)
		if err != nil {
			return nil, err
		}
		projectID = project.ID
	}

	now := s.now()
	todo := &model.Todo{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TodoStatusTodo,
		Priority:    model.PriorityMedium,
		DueDate:     req.DueDate,
		Tags:        []string{},
		UserID:      userID,
		ProjectID:   projectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Status != nil {
		todo.Status = *req.Status
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}
	if req.IsPinned != nil {
		todo.IsPinned = *req.IsPinned
	}
	if req.Tags != nil {
		todo.Tags = req.Tags
	}
	if todo.Status == model.TodoStatusDone {
		todo.CompletedAt = &now
	}

	if err := s.todos.CreateTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID) ([]model.Todo, error) {
	return s.todos.ListTodos(ctx, model.TodoFilter{UserID: userID, ProjectID: projectID})
}

func (s *TodoService) Get(ctx context.Context, userID, todoID uuid.UUID) (*model.Todo, error) {
	todo, err := s.todos.GetTodo(ctx, userID, todoID)
	if err != nil {
		return nil, notFound(err)
	}
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, userID, todoID uuid.UUID, req model.UpdateTodoRequest) (*model.Todo, error) {
	todo, err := s.Get(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if req.ProjectID != nil {
		if err := s.ensureOwnedProject(ctx, userID, *req.ProjectID); err != nil {
			return nil, err
		}
		todo.ProjectID = *req.ProjectID
	}

	now := s.now()
	if req.Status != nil {
		switch {
		case *req.Status == model.TodoStatusDone && todo.Status != model.TodoStatusDone:
			todo.CompletedAt = &now
		case *req.Status != model.TodoStatusDone && todo.Status == model.TodoStatusDone:
			todo.CompletedAt = nil
		}
		todo.Status = *req.Status
	}
	if req.Title != nil {
		todo.Title = *req.Title
	}
	if req.Description != nil {
		todo.Description = req.Description
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}
	if req.DueDate != nil {
		todo.DueDate = req.DueDate
	}
	if req.IsPinned != nil {
		todo.IsPinned = *req.IsPinned
	}
	if req.IsArchived != nil {
		todo.IsArchived = *req.IsArchived
	}
	if req.Tags != nil {
		todo.Tags = req.Tags
	}
	if req.ReminderAt != nil {
		todo.ReminderAt = req.ReminderAt
	}
	if req.Repeat != nil {
		todo.Repeat = req.Repeat
	}
	todo.UpdatedAt = now

	if err := s.todos.UpdateTodo(ctx, todo); err != nil {
		return nil, notFound(err)
	}
	return todo, nil
}

// Archive is the soft delete: the todo disappears from listings but stays readable by id.
func (s *TodoService) Archive(ctx context.Context, userID, todoID uuid.UUID) (*model.Todo, error) {
	archived := true
	return s.Update(ctx, userID, todoID, model.UpdateTodoRequest{IsArchived: &archived})
}

func (s *TodoService) Delete(ctx context.Context, userID, todoID uuid.UUID) (*model.Todo, error) {
	todo, err := s.Get(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}
	if err := s.todos.DeleteTodo(ctx, userID, todoID); err != nil {
		return nil, notFound(err)
	}
	return todo, nil
}

func (s *TodoService) ensureOwnedProject(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := s.projects.GetProject(ctx, userID, projectID); err != nil {
		return notFound(err)
	}
	return nil
}

func (s *TodoService) defaultProject(ctx context.Context, userID uuid.UUID) (*model.Project, error) {
	project, err := s.projects.FindProjectByName(ctx, userID, model.DefaultProjectName)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("failed to find default project: %w", err)
	}

	now := s.now()
	description := "Default project for tasks"
	project = &model.Project{
		ID:          uuid.New(),
		Name:        model.DefaultProjectName,
		Description: &description,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create default project: %w", err)
	}
	return project, nil
}
