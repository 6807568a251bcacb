package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionTTL is fixed and independent of the bearer token lifetime.
const SessionTTL = 7 * 24 * time.Hour

type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `json:"isRevoked"`
	CreatedAt time.Time `json:"createdAt"`
}

// Valid reports whether the session still grants access at now.
func (s *Session) Valid(now time.Time) bool {
	return !s.IsRevoked && !now.After(s.ExpiresAt)
}
