package repository

import (
	"context"
	"errors"

	"cardinal-portal/internal/domain"
)

// ErrSessionNotFound is returned when no session matches the id.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines storage operations for server-side sessions.
// Delete is idempotent: removing an absent session is not an error.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
