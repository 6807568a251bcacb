package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taskboard/backend/internal/model"
)

const todoColumns = `
	id, title, description, status, priority, due_date, completed_at, is_pinned,
	is_archived, tags, reminder_at, repeat, user_id, project_id, created_at, updated_at
`

func scanTodo(row pgx.Row) (*model.Todo, error) {
	var t model.Todo
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.CompletedAt,
		&t.IsPinned,
		&t.IsArchived,
		&t.Tags,
		&t.ReminderAt,
		&t.Repeat,
		&t.UserID,
		&t.ProjectID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return &t, nil
}

func (db *Postgres) CreateTodo(ctx context.Context, todo *model.Todo) error {
	query := `INSERT INTO todos (` + todoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := db.Pool.Exec(ctx, query,
		todo.ID,
		todo.Title,
		todo.Description,
		todo.Status,
		todo.Priority,
		todo.DueDate,
		todo.CompletedAt,
		todo.IsPinned,
		todo.IsArchived,
		todo.Tags,
		todo.ReminderAt,
		todo.Repeat,
		todo.UserID,
		todo.ProjectID,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", translate(err))
	}
	return nil
}

// ListTodos orders pinned first, then by priority (URGENT highest), then most recently updated.
func (db *Postgres) ListTodos(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error) {
	query := `SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = $1 AND is_archived = FALSE
			AND ($2::uuid IS NULL OR project_id = $2)
		ORDER BY is_pinned DESC,
			CASE priority
				WHEN 'URGENT' THEN 4
				WHEN 'HIGH' THEN 3
				WHEN 'MEDIUM' THEN 2
				WHEN 'LOW' THEN 1
				ELSE 0
			END DESC,
			updated_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, filter.UserID, filter.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	list := []model.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	return list, rows.Err()
}

func (db *Postgres) GetTodo(ctx context.Context, userID, todoID uuid.UUID) (*model.Todo, error) {
	query := `SELECT ` + todoColumns + `
		FROM todos
		WHERE id = $1 AND user_id = $2
	`
	return scanTodo(db.Pool.QueryRow(ctx, query, todoID, userID))
}

func (db *Postgres) UpdateTodo(ctx context.Context, todo *model.Todo) error {
	query := `
		UPDATE todos
		SET title = $3, description = $4, status = $5, priority = $6, due_date = $7,
			completed_at = $8, is_pinned = $9, is_archived = $10, tags = $11,
			reminder_at = $12, repeat = $13, project_id = $14, updated_at = $15
		WHERE id = $1 AND user_id = $2
	`
	tag, err := db.Pool.Exec(ctx, query,
		todo.ID,
		todo.UserID,
		todo.Title,
		todo.Description,
		todo.Status,
		todo.Priority,
		todo.DueDate,
		todo.CompletedAt,
		todo.IsPinned,
		todo.IsArchived,
		todo.Tags,
		todo.ReminderAt,
		todo.Repeat,
		todo.ProjectID,
		todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (db *Postgres) DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, todoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
