// Package state persists the client's auth state between runs: the raw
// bearer token and the serialized user. The two entries are written and
// cleared together so a user identity is never observable without the token
// that backs it.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	keyToken = "authToken"
	keyUser  = "user"
)

const createStateTable = `
CREATE TABLE IF NOT EXISTS auth_state (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store is a sqlite-backed key-value holder for client auth state.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the state database at the given path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createStateTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create auth_state table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the stored token and serialized user. When either entry is
// absent the pair is treated as absent: both return values are empty.
func (s *Store) Load(ctx context.Context) (token, user string, err error) {
	token, err = s.get(ctx, keyToken)
	if err != nil {
		return "", "", err
	}
	user, err = s.get(ctx, keyUser)
	if err != nil {
		return "", "", err
	}
	if token == "" || user == "" {
		return "", "", nil
	}
	return token, user, nil
}

// Save stores token and user in a single transaction.
func (s *Store) Save(ctx context.Context, token, user string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for key, value := range map[string]string{keyToken: token, keyUser: user} {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO auth_state (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
				key, value,
			); err != nil {
				return fmt.Errorf("save %s: %w", key, err)
			}
		}
		return nil
	})
}

// Clear removes both entries in a single transaction.
func (s *Store) Clear(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM auth_state WHERE key IN (?, ?)`, keyToken, keyUser); err != nil {
			return fmt.Errorf("clear auth state: %w", err)
		}
		return nil
	})
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM auth_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
