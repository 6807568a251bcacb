package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/taskboard/backend/internal/model"
)

const bearerPrefix = "bearer "

// AuthService owns the credential → session → token lifecycle.
type AuthService struct {
	users    UserStore
	sessions SessionStore
	hasher   *PasswordHasher
	tokens   *TokenCodec
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(users UserStore, sessions SessionStore, hasher *PasswordHasher, tokens *TokenCodec, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		log:      log.With().Str("component", "auth").Logger(),
		now:      time.Now,
	}
}

// ValidateCredentials returns the account when email and password match and
// nil otherwise. An unknown email and a wrong password are indistinguishable.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// Login creates a fresh session on every call; earlier sessions stay valid.
// The three effects are not atomic, and a failure part way leaves nothing
// that blocks the next attempt.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.LoginResult, error) {
	user, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Info().Msg("login rejected")
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login time: %w", err)
	}

	session := &model.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		ExpiresAt: now.Add(model.SessionTTL),
		IsRevoked: false,
		CreatedAt: now,
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokens.Sign(user.ID, user.Email, session.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", user.ID.String()).
		Str("session_id", session.ID.String()).
		Msg("login succeeded")

	return &model.LoginResult{
		AccessToken: token,
		User:        user.Public(),
		SessionID:   session.ID,
	}, nil
}

// Logout flips the session's revoked flag. It trusts the caller to have
// proven the user/session binding through ValidateToken and succeeds again
// for an already revoked session.
func (s *AuthService) Logout(ctx context.Context, userID, sessionID uuid.UUID) (*model.Session, error) {
	session, err := s.sessions.RevokeSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("session_id", sessionID.String()).
		Msg("session revoked")
	return session, nil
}

// ValidateToken returns the payload only when the signature and expiry hold
// and the referenced session is live. Rejections return (nil, nil); only
// store failures surface as errors.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*model.TokenPayload, error) {
	payload, err := s.tokens.Verify(token)
	if err != nil {
		return nil, nil
	}

	session, err := s.sessions.GetSession(ctx, payload.SessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if !session.Valid(s.now()) {
		return nil, nil
	}
	return payload, nil
}

// Authorize runs the bearer policy against a raw Authorization header value.
func (s *AuthService) Authorize(ctx context.Context, header string) (*model.TokenPayload, error) {
	token, ok := BearerToken(header)
	if !ok {
		return nil, ErrUnauthorized
	}

	payload, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, ErrUnauthorized
	}
	return payload, nil
}

// BearerToken extracts the credential from "Bearer <token>".
func BearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
