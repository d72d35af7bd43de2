// Package token issues and verifies the signed bearer tokens that back
// portal authentication.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: malformed input, a
// signature that does not match, and expiry. Callers cannot distinguish an
// expired token from a forged one.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTTL is the validity window applied when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// Manager issues and verifies HS256-signed tokens bound to a username.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// TTL reports the configured validity window.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue mints a signed token whose subject is the given username. The token
// carries issuance and expiry times and is immutable once signed.
func (m *Manager) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature integrity and expiry and returns the subject
// username. Any failure is reported as ErrInvalidToken.
func (m *Manager) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
