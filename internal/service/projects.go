package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/model"
)

type ProjectService struct {
	projects ProjectStore
	now      func() time.Time
}

func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects, now: time.Now}
}

func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, req model.CreateProjectRequest) (*model.Project, error) {
	now := s.now()
	project := &model.Project{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]model.ProjectWithStats, error) {
	return s.projects.ListProjects(ctx, userID)
}

func (s *ProjectService) Get(ctx context.Context, userID, projectID uuid.UUID) (*model.ProjectWithStats, error) {
	project, err := s.projects.GetProject(ctx, userID, projectID)
	if err != nil {
		return nil, notFound(err)
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, projectID uuid.UUID, req model.UpdateProjectRequest) (*model.Project, error) {
	current, err := s.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	project := current.Project
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.Color != nil {
		project.Color = req.Color
	}
	if req.IsArchived != nil {
		project.IsArchived = *req.IsArchived
	}
	project.UpdatedAt = s.now()

	if err := s.projects.UpdateProject(ctx, &project); err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

// Delete removes the project together with its todos.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID uuid.UUID) (*model.Project, error) {
	current, err := s.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.projects.DeleteProject(ctx, userID, projectID); err != nil {
		return nil, notFound(err)
	}
	return &current.Project, nil
}

// notFound maps the storage miss onto the service error and passes the rest through.
func notFound(err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
