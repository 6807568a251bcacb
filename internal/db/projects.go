package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taskboard/backend/internal/model"
)

// Every lookup below filters on user_id as well as id: a project owned by
// someone else is reported exactly like a missing one.

const projectStatsSelect = `
	SELECT p.id, p.name, p.description, p.color, p.is_archived, p.user_id,
		p.created_at, p.updated_at,
		COUNT(t.id) AS total_todos,
		COUNT(t.id) FILTER (WHERE t.status = 'DONE') AS completed_todos
	FROM projects p
	LEFT JOIN todos t ON t.project_id = p.id
`

func scanProjectStats(row pgx.Row) (*model.ProjectWithStats, error) {
	var p model.ProjectWithStats
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Color,
		&p.IsArchived,
		&p.UserID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.TotalTodos,
		&p.CompletedTodos,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (db *Postgres) CreateProject(ctx context.Context, project *model.Project) error {
	query := `
		INSERT INTO projects (id, name, description, color, is_archived, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := db.Pool.Exec(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.Color,
		project.IsArchived,
		project.UserID,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", translate(err))
	}
	return nil
}

func (db *Postgres) ListProjects(ctx context.Context, userID uuid.UUID) ([]model.ProjectWithStats, error) {
	query := projectStatsSelect + `
		WHERE p.user_id = $1 AND p.is_archived = FALSE
		GROUP BY p.id
		ORDER BY p.updated_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	list := []model.ProjectWithStats{}
	for rows.Next() {
		p, err := scanProjectStats(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

func (db *Postgres) GetProject(ctx context.Context, userID, projectID uuid.UUID) (*model.ProjectWithStats, error) {
	query := projectStatsSelect + `
		WHERE p.id = $1 AND p.user_id = $2
		GROUP BY p.id
	`
	return scanProjectStats(db.Pool.QueryRow(ctx, query, projectID, userID))
}

func (db *Postgres) FindProjectByName(ctx context.Context, userID uuid.UUID, name string) (*model.Project, error) {
	query := `
		SELECT id, name, description, color, is_archived, user_id, created_at, updated_at
		FROM projects
		WHERE user_id = $1 AND name = $2
		ORDER BY created_at
		LIMIT 1
	`
	var p model.Project
	err := db.Pool.QueryRow(ctx, query, userID, name).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Color,
		&p.IsArchived,
		&p.UserID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (db *Postgres) UpdateProject(ctx context.Context, project *model.Project) error {
	query := `
		UPDATE projects
		SET name = $3, description = $4, color = $5, is_archived = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2
	`
	tag, err := db.Pool.Exec(ctx, query,
		project.ID,
		project.UserID,
		project.Name,
		project.Description,
		project.Color,
		project.IsArchived,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (db *Postgres) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
