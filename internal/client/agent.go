package client

import (
	"context"
	"encoding/json"
	"errors"

	"cardinal-portal/internal/client/state"
	"cardinal-portal/internal/domain"
)

// ErrNotAuthenticated is returned by authenticated operations when no token
// is stored. The caller must log in first.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthStatus is the outcome of a bootstrap check.
type AuthStatus struct {
	Authenticated bool
	User          User
}

// Agent holds the client auth state and wraps authenticated calls. Token and
// user are persisted and cleared together; on any verification failure the
// whole state is dropped so a stale identity never renders against a dead
// credential.
type Agent struct {
	api   *Client
	state *state.Store
}

func NewAgent(api *Client, store *state.Store) *Agent {
	return &Agent{api: api, state: store}
}

// BootstrapCheck reports whether the stored token still authenticates. A
// missing token reports unauthenticated. A present token is verified against
// the server; any failure (invalid, expired, or a network error) clears
// the stored state entirely before reporting unauthenticated.
func (a *Agent) BootstrapCheck(ctx context.Context) (AuthStatus, error) {
	tok, rawUser, err := a.state.Load(ctx)
	if err != nil {
		return AuthStatus{}, err
	}
	if tok == "" {
		return AuthStatus{}, nil
	}

	var user User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		if err := a.state.Clear(ctx); err != nil {
			return AuthStatus{}, err
		}
		return AuthStatus{}, nil
	}

	if _, err := a.api.Verify(ctx, tok); err != nil {
		if err := a.state.Clear(ctx); err != nil {
			return AuthStatus{}, err
		}
		return AuthStatus{}, nil
	}

	return AuthStatus{Authenticated: true, User: user}, nil
}

// Login authenticates and persists token+user atomically. On failure the
// server-supplied message is returned and stored state is left untouched.
func (a *Agent) Login(ctx context.Context, username, password string) (User, error) {
	tok, user, err := a.api.Login(ctx, username, password)
	if err != nil {
		return User{}, err
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return User{}, err
	}
	if err := a.state.Save(ctx, tok, string(rawUser)); err != nil {
		return User{}, err
	}
	return user, nil
}

// Logout calls the server best-effort and then clears local state
// unconditionally, so the client can never stay "logged in" against a dead
// session just because the network call failed.
func (a *Agent) Logout(ctx context.Context) error {
	tok, _, err := a.state.Load(ctx)
	if err == nil && tok != "" {
		_ = a.api.Logout(ctx, tok) // best effort
	}
	return a.state.Clear(ctx)
}

// Register creates a new account. It does not log in or touch stored state.
func (a *Agent) Register(ctx context.Context, username, password string) error {
	return a.api.Register(ctx, username, password)
}

// FetchPortal performs the authenticated data fetch with the stored token.
// A 401 is returned as-is; the caller re-runs BootstrapCheck rather than
// retrying here.
func (a *Agent) FetchPortal(ctx context.Context) (*domain.PortalDocument, error) {
	tok, _, err := a.state.Load(ctx)
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, ErrNotAuthenticated
	}
	return a.api.FetchPortal(ctx, tok)
}
