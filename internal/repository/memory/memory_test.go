package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardinal-portal/internal/domain"
	"cardinal-portal/internal/repository"
)

func TestAccountRepository(t *testing.T) {
	t.Parallel()
	repo := NewAccountRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Account{Username: "admin", PasswordHash: "hash"}))

	err := repo.Create(ctx, &domain.Account{Username: "admin"})
	assert.ErrorIs(t, err, repository.ErrAccountExists)

	account, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash", account.PasswordHash)

	_, err = repo.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

// stores must tolerate concurrent readers and writers
func TestStoresConcurrentAccess(t *testing.T) {
	t.Parallel()
	accounts := NewAccountRepository()
	sessions := NewSessionRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("user-%d", i)
			_ = accounts.Create(ctx, &domain.Account{Username: name})
			_, _ = accounts.GetByUsername(ctx, name)

			id := fmt.Sprintf("session-%d", i)
			_ = sessions.Create(ctx, &domain.Session{ID: id, Username: name})
			_, _ = sessions.Get(ctx, id)
			_ = sessions.Delete(ctx, id)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		_, err := accounts.GetByUsername(ctx, fmt.Sprintf("user-%d", i))
		require.NoError(t, err)

		_, err = sessions.Get(ctx, fmt.Sprintf("session-%d", i))
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	}
}
