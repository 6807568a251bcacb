package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultProjectName is the project todos fall into when none is given.
const DefaultProjectName = "Personal Tasks"

type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       *string   `json:"color"`
	IsArchived  bool      `json:"isArchived"`
	UserID      uuid.UUID `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectWithStats is a project plus its todo counters.
type ProjectWithStats struct {
	Project
	TotalTodos     int `json:"totalTodos"`
	CompletedTodos int `json:"completedTodos"`
}

type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	IsArchived  *bool   `json:"isArchived"`
}
