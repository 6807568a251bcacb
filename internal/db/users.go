package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taskboard/backend/internal/model"
)

const userColumns = `
	id, email, password_hash, name, bio, is_email_verified, theme, default_sort,
	show_completed_todos, notifications_enabled, last_login_at, account_status,
	created_at, updated_at
`

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Bio,
		&user.IsEmailVerified,
		&user.Theme,
		&user.DefaultSort,
		&user.ShowCompletedTodos,
		&user.NotificationsEnabled,
		&user.LastLoginAt,
		&user.AccountStatus,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, name, bio, is_email_verified, theme, default_sort,
			show_completed_todos, notifications_enabled, last_login_at, account_status,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := db.Pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Bio,
		user.IsEmailVerified,
		user.Theme,
		user.DefaultSort,
		user.ShowCompletedTodos,
		user.NotificationsEnabled,
		user.LastLoginAt,
		user.AccountStatus,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}

// GetUserByEmail matches the email exactly among accounts that are not deleted.
func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND account_status <> 'DELETED'
	`
	return scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}

func (db *Postgres) UpdateUser(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET name = $2,
			bio = $3,
			theme = $4,
			default_sort = $5,
			show_completed_todos = $6,
			notifications_enabled = $7,
			account_status = $8,
			updated_at = $9
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Bio,
		user.Theme,
		user.DefaultSort,
		user.ShowCompletedTodos,
		user.NotificationsEnabled,
		user.AccountStatus,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (db *Postgres) TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	query := `
		UPDATE users
		SET last_login_at = $2
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query, userID, at)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
