package repository

import (
	"context"
	"errors"

	"cardinal-portal/internal/domain"
)

var (
	// ErrAccountExists is returned when creating an account whose username is taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountNotFound is returned when no account matches the username.
	ErrAccountNotFound = errors.New("account not found")
)

// AccountRepository defines storage operations for Account entities.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
}
