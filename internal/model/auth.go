package model

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	User        PublicUser `json:"user"`
}

// LoginResult is what a successful login hands back to the HTTP layer.
type LoginResult struct {
	AccessToken string
	User        PublicUser
	SessionID   uuid.UUID
}

// TokenPayload is the decoded bearer token. Once the guard accepts a request
// it is the caller's identity for the rest of that request.
type TokenPayload struct {
	Sub       uuid.UUID `json:"sub"`
	Email     string    `json:"email"`
	SessionID uuid.UUID `json:"sessionId"`
	IssuedAt  int64     `json:"iat"`
	ExpiresAt int64     `json:"exp"`
}
