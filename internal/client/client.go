// Package client implements the portal's consumer side: an HTTP API client,
// a durable auth agent, the card renderer, and the reachability prober.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cardinal-portal/internal/domain"
)

// ErrNetwork marks any transport-level failure: timeout, refused connection,
// DNS error. Server-reported failures are returned as *APIError instead.
var ErrNetwork = errors.New("network failure")

// APIError carries a failure reported by the server itself.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// User identifies the authenticated account as the server reports it.
type User struct {
	Username string `json:"username"`
}

// envelope is the common response shape of every portal API endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *User           `json:"user"`
	Data    json.RawMessage `json:"data"`
}

// Client is a thin HTTP wrapper over the portal API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Login exchanges credentials for a token and user identity.
func (c *Client) Login(ctx context.Context, username, password string) (string, User, error) {
	body := map[string]string{"username": username, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body)
	if err != nil {
		return "", User{}, err
	}
	if env.Token == "" || env.User == nil {
		return "", User{}, &APIError{Message: "login response missing token"}
	}
	return env.Token, *env.User, nil
}

// Logout tears down the server-side session. The bearer token is optional
// on this endpoint but sent when available.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil)
	return err
}

// Verify checks the token against the server and returns its user.
func (c *Client) Verify(ctx context.Context, token string) (User, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/auth/verify", token, nil)
	if err != nil {
		return User{}, err
	}
	if env.User == nil {
		return User{}, &APIError{Message: "verify response missing user"}
	}
	return *env.User, nil
}

// Register creates a new account. Registration does not log the account in.
func (c *Client) Register(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	_, err := c.do(ctx, http.MethodPost, "/api/auth/register", "", body)
	return err
}

// FetchPortal retrieves the portal configuration document.
func (c *Client) FetchPortal(ctx context.Context, token string) (*domain.PortalDocument, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/data/portal", token, nil)
	if err != nil {
		return nil, err
	}

	var doc domain.PortalDocument
	if err := json.Unmarshal(env.Data, &doc); err != nil {
		return nil, &APIError{Message: "malformed portal data"}
	}
	return &doc, nil
}

// Health checks server liveness. The health endpoint has its own response
// shape, so it bypasses the envelope decoding.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: "server unhealthy"}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "malformed server response"}
	}

	if resp.StatusCode >= 400 || !env.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}
