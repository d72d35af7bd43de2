package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", time.Hour)

	tok, err := m.Issue("admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	username, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", time.Hour)

	// sign an already-expired token with the manager's own secret
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("super-secret"))
	require.NoError(t, err)

	_, err = m.Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewManager("right-secret", time.Hour).Issue("admin")
	require.NoError(t, err)

	_, err = NewManager("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestDefaultTTL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultTTL, NewManager("secret", 0).TTL())
	assert.Equal(t, time.Minute, NewManager("secret", time.Minute).TTL())
}
