package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cardinal-portal/internal/domain"
	"cardinal-portal/internal/repository"
)

// SessionService manages server-side session lifecycle.
type SessionService interface {
	Create(ctx context.Context, username string) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Destroy(ctx context.Context, id string) error
}

type sessionService struct {
	sessions repository.SessionRepository
}

func NewSessionService(sessions repository.SessionRepository) SessionService {
	return &sessionService{sessions: sessions}
}

func (s *sessionService) Create(ctx context.Context, username string) (*domain.Session, error) {
	session := &domain.Session{
		ID:            uuid.NewString(),
		Username:      username,
		EstablishedAt: time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// Destroy tears down the session. Destroying an absent or already-destroyed
// session is not an error.
func (s *sessionService) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
