package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"cardinal-portal/internal/domain"
	"cardinal-portal/internal/repository"
)

var (
	// ErrMissingCredentials indicates an empty username or password.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrInvalidCredentials indicates a failed login. It deliberately covers
	// both unknown-user and wrong-password so callers cannot tell which.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateAccount is returned when registering an existing username.
	ErrDuplicateAccount = errors.New("username already exists")
)

// AccountService describes account lifecycle operations.
type AccountService interface {
	Bootstrap(ctx context.Context) error
	Register(ctx context.Context, username, password string) (*domain.Account, error)
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)
}

type accountService struct {
	accounts        repository.AccountRepository
	defaultUser     string
	defaultPassword string
	logger          *logrus.Logger
}

func NewAccountService(accounts repository.AccountRepository, defaultUser, defaultPassword string, logger *logrus.Logger) AccountService {
	return &accountService{
		accounts:        accounts,
		defaultUser:     strings.TrimSpace(defaultUser),
		defaultPassword: defaultPassword,
		logger:          logger,
	}
}

// Bootstrap seeds the configured default account. It is idempotent: when the
// account already exists the call is a no-op, so the creation log line is
// emitted at most once per process lifetime.
func (s *accountService) Bootstrap(ctx context.Context) error {
	if s.defaultUser == "" || s.defaultPassword == "" {
		return errors.New("default credentials are not configured")
	}

	if _, err := s.accounts.GetByUsername(ctx, s.defaultUser); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return fmt.Errorf("lookup default account: %w", err)
	}

	account, err := s.createAccount(ctx, s.defaultUser, s.defaultPassword)
	if err != nil {
		if errors.Is(err, ErrDuplicateAccount) {
			return nil
		}
		return fmt.Errorf("create default account: %w", err)
	}

	if s.logger != nil {
		s.logger.Infof("default account created: %s", account.Username)
	}
	return nil
}

func (s *accountService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	account, err := s.createAccount(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return sanitizeAccount(account), nil
}

func (s *accountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeAccount(account), nil
}

func (s *accountService) createAccount(ctx context.Context, username, password string) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}
	return account, nil
}

// sanitizeAccount strips the password hash before an account leaves the service.
func sanitizeAccount(account *domain.Account) *domain.Account {
	if account == nil {
		return nil
	}
	return &domain.Account{
		Username:  account.Username,
		CreatedAt: account.CreatedAt,
	}
}
