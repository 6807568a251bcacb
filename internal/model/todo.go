package model

import (
	"time"

	"github.com/google/uuid"
)

type TodoStatus string

const (
	TodoStatusTodo       TodoStatus = "TODO"
	TodoStatusInProgress TodoStatus = "IN_PROGRESS"
	TodoStatusDone       TodoStatus = "DONE"
	TodoStatusArchived   TodoStatus = "ARCHIVED"
)

type TodoPriority string

const (
	PriorityLow    TodoPriority = "LOW"
	PriorityMedium TodoPriority = "MEDIUM"
	PriorityHigh   TodoPriority = "HIGH"
	PriorityUrgent TodoPriority = "URGENT"
)

// Rank orders priorities from LOW (1) to URGENT (4).
func (p TodoPriority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	default:
		return 0
	}
}

type TodoRepeat string

const (
	RepeatNone    TodoRepeat = "NONE"
	RepeatDaily   TodoRepeat = "DAILY"
	RepeatWeekly  TodoRepeat = "WEEKLY"
	RepeatMonthly TodoRepeat = "MONTHLY"
	RepeatYearly  TodoRepeat = "YEARLY"
)

type Todo struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      TodoStatus   `json:"status"`
	Priority    TodoPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate"`
	CompletedAt *time.Time   `json:"completedAt"`
	IsPinned    bool         `json:"isPinned"`
	IsArchived  bool         `json:"isArchived"`
	Tags        []string     `json:"tags"`
	ReminderAt  *time.Time   `json:"reminderAt"`
	Repeat      *TodoRepeat  `json:"repeat"`
	UserID      uuid.UUID    `json:"userId"`
	ProjectID   uuid.UUID    `json:"projectId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TodoFilter selects the caller's non-archived todos, optionally within one project.
type TodoFilter struct {
	UserID    uuid.UUID
	ProjectID *uuid.UUID
}

type CreateTodoRequest struct {
	Title       string        `json:"title" binding:"required"`
	Description *string       `json:"description"`
	ProjectID   *uuid.UUID    `json:"projectId"`
	Status      *TodoStatus   `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE ARCHIVED"`
	Priority    *TodoPriority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate     *time.Time    `json:"dueDate"`
	IsPinned    *bool         `json:"isPinned"`
	Tags        []string      `json:"tags"`
}

type UpdateTodoRequest struct {
	Title       *string       `json:"title" binding:"omitempty,min=1"`
	Description *string       `json:"description"`
	Status      *TodoStatus   `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE ARCHIVED"`
	Priority    *TodoPriority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate     *time.Time    `json:"dueDate"`
	IsPinned    *bool         `json:"isPinned"`
	IsArchived  *bool         `json:"isArchived"`
	Tags        []string      `json:"tags"`
	ReminderAt  *time.Time    `json:"reminderAt"`
	Repeat      *TodoRepeat   `json:"repeat" binding:"omitempty,oneof=NONE DAILY WEEKLY MONTHLY YEARLY"`
	ProjectID   *uuid.UUID    `json:"projectId"`
}
