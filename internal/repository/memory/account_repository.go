package memory

import (
	"context"
	"sync"

	"cardinal-portal/internal/domain"
	"cardinal-portal/internal/repository"
)

// AccountRepository is a process-memory account store. Accounts do not
// survive a restart; the default account is re-seeded at startup.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]domain.Account)}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Username]; ok {
		return repository.ErrAccountExists
	}
	r.accounts[account.Username] = *account
	return nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[username]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return &account, nil
}
