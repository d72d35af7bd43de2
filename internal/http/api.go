package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cardinal-portal/internal/domain"
	"cardinal-portal/internal/service"
	"cardinal-portal/internal/token"
	"cardinal-portal/web"
)

// sessionCookie carries the opaque server-side session id. The client never
// inspects its contents.
const sessionCookie = "portal_session"

const usernameContextKey = "username"

// Handler wires HTTP routes to domain services.
type Handler struct {
	accounts service.AccountService
	sessions service.SessionService
	portal   service.PortalService
	tokens   *token.Manager
	audit    *service.AuditRecorder
}

func NewHandler(accounts service.AccountService, sessions service.SessionService, portal service.PortalService, tokens *token.Manager, audit *service.AuditRecorder) *Handler {
	return &Handler{
		accounts: accounts,
		sessions: sessions,
		portal:   portal,
		tokens:   tokens,
		audit:    audit,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index)
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.login)
			auth.POST("/logout", h.logout)
			auth.GET("/verify", h.requireToken(), h.verify)
			auth.POST("/register", h.register)
		}

		data := api.Group("/data", h.requireToken())
		{
			data.GET("/portal", h.portalData)
		}

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "ok",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireToken guards routes behind a bearer token. The verified subject
// username is stored in the request context.
func (h *Handler) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.Request)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token provided"})
			return
		}

		username, err := h.tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		c.Set(usernameContextKey, username)
		c.Next()
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required"})
		return
	}

	account, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required"})
		case errors.Is(err, service.ErrInvalidCredentials):
			h.audit.Record(c.Request.Context(), domain.AuditLoginFailure, req.Username, "invalid credentials")
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
		}
		return
	}

	tok, err := h.tokens.Issue(account.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
		return
	}

	session, err := h.sessions.Create(c.Request.Context(), account.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
		return
	}

	c.SetCookie(sessionCookie, session.ID, int(h.tokens.TTL().Seconds()), "/", "", false, true)
	h.audit.Record(c.Request.Context(), domain.AuditLoginSuccess, account.Username, "")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   tok,
		"user":    gin.H{"username": account.Username},
	})
}

// logout destroys the caller's session. It succeeds even when no session
// cookie is present, so repeated logouts are not an error.
func (h *Handler) logout(c *gin.Context) {
	id, _ := c.Cookie(sessionCookie)

	var username string
	if id != "" {
		if session, err := h.sessions.Get(c.Request.Context(), id); err == nil {
			username = session.Username
		}
	}

	if err := h.sessions.Destroy(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Logout failed"})
		return
	}

	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	h.audit.Record(c.Request.Context(), domain.AuditLogout, username, "")

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}

func (h *Handler) verify(c *gin.Context) {
	username := c.GetString(usernameContextKey)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    gin.H{"username": username},
	})
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required"})
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required"})
		case errors.Is(err, service.ErrDuplicateAccount):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Username already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
		}
		return
	}

	h.audit.Record(c.Request.Context(), domain.AuditRegister, account.Username, "")

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User registered successfully"})
}

func (h *Handler) portalData(c *gin.Context) {
	doc, err := h.portal.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load portal data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
}
