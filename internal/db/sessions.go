package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taskboard/backend/internal/model"
)

func scanSession(row pgx.Row) (*model.Session, error) {
	var session model.Session
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.IsRevoked,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (db *Postgres) CreateSession(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, expires_at, is_revoked, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := db.Pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.ExpiresAt,
		session.IsRevoked,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", translate(err))
	}
	return nil
}

func (db *Postgres) GetSession(ctx context.Context, sessionID uuid.UUID) (*model.Session, error) {
	query := `
		SELECT id, user_id, expires_at, is_revoked, created_at
		FROM sessions
		WHERE id = $1
	`
	return scanSession(db.Pool.QueryRow(ctx, query, sessionID))
}

// RevokeSession sets is_revoked unconditionally, so repeating it is harmless.
func (db *Postgres) RevokeSession(ctx context.Context, sessionID uuid.UUID) (*model.Session, error) {
	query := `
		UPDATE sessions
		SET is_revoked = TRUE
		WHERE id = $1
		RETURNING id, user_id, expires_at, is_revoked, created_at
	`
	return scanSession(db.Pool.QueryRow(ctx, query, sessionID))
}

func (db *Postgres) RevokeUserSessions(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE sessions
		SET is_revoked = TRUE
		WHERE user_id = $1 AND is_revoked = FALSE
	`
	if _, err := db.Pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke user sessions: %w", err)
	}
	return nil
}
