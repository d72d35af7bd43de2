package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardinal-portal/internal/repository/memory"
	"cardinal-portal/internal/service"
	"cardinal-portal/internal/token"
)

const testDocument = `{
  "portal": {"title": "Test Portal", "subtitle": "Dev", "version": "0.1.0"},
  "links": [
    {"title": "A", "url": "http://a.local", "displayUrl": "a.local", "enabled": true},
    {"title": "B", "url": "http://b.local", "displayUrl": "b.local", "enabled": false},
    {"title": "C", "url": "http://c.local", "displayUrl": "c.local", "enabled": true}
  ]
}`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	dataPath := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(testDocument), 0o644))

	accounts := service.NewAccountService(memory.NewAccountRepository(), "admin", "changeme123", logger)
	require.NoError(t, accounts.Bootstrap(context.Background()))

	handler := NewHandler(
		accounts,
		service.NewSessionService(memory.NewSessionRepository()),
		service.NewPortalService(dataPath),
		token.NewManager("test-secret", time.Hour),
		nil, // auditing disabled
	)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, bearer string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func login(t *testing.T, router *gin.Engine, username, password string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	return doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec, body := login(t, router, "admin", "changeme123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "admin", body["user"].(map[string]any)["username"])

	// a session cookie is established alongside the token
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "portal_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLoginInvalidCredentialsNoLeak(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	recWrong, bodyWrong := login(t, router, "admin", "wrong")
	recUnknown, bodyUnknown := login(t, router, "ghost", "whatever")

	assert.Equal(t, http.StatusUnauthorized, recWrong.Code)
	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, bodyWrong["message"], bodyUnknown["message"])
}

func TestLoginMissingFields(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec, body := login(t, router, "admin", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestVerify(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	_, loginBody := login(t, router, "admin", "changeme123")
	tok := loginBody["token"].(string)

	rec, body := doJSON(t, router, http.MethodGet, "/api/auth/verify", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", body["user"].(map[string]any)["username"])

	rec, body = doJSON(t, router, http.MethodGet, "/api/auth/verify", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", body["message"])

	rec, body = doJSON(t, router, http.MethodGet, "/api/auth/verify", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", body["message"])
}

func TestVerifyExpiredToken(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	// token signed with the right secret but already expired
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	rec, body := doJSON(t, router, http.MethodGet, "/api/auth/verify", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", body["message"])
}

func TestRegisterThenDuplicate(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	creds := map[string]string{"username": "newuser", "password": "pw123"}

	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "", creds)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["token"], "registration does not auto-login")

	rec, body = doJSON(t, router, http.MethodPost, "/api/auth/register", "", creds)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username already exists", body["message"])
}

func TestPortalData(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/data/portal", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", body["message"])

	_, loginBody := login(t, router, "admin", "changeme123")
	tok := loginBody["token"].(string)

	rec, body = doJSON(t, router, http.MethodGet, "/api/data/portal", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]any)
	links := data["links"].([]any)
	// the document is pass-through: all links, enabled filtering is client-side
	assert.Len(t, links, 3)
	assert.Equal(t, "Test Portal", data["portal"].(map[string]any)["title"])
}

func TestLogoutIdempotent(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec, _ := login(t, router, "admin", "changeme123")
	cookie := rec.Result().Cookies()[0]

	logoutWithCookie := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	first := logoutWithCookie()
	assert.Equal(t, http.StatusOK, first.Code)

	// destroying the same session again is not an error
	second := logoutWithCookie()
	assert.Equal(t, http.StatusOK, second.Code)

	// logout without any cookie also succeeds
	rec2, body := doJSON(t, router, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, true, body["success"])
}

func TestHealth(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestIndexServed(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Cardinal Portal")
}
