package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"sitecms/internal/api/middleware"
	"sitecms/internal/config"
	"sitecms/internal/models"
	"sitecms/internal/rbac"
	"sitecms/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService  *services.AuthService
	auditService *services.AuditService
	cfg          *config.Config
}

func NewAuthHandler(authService *services.AuthService, auditService *services.AuditService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		auditService: auditService,
		cfg:          cfg,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *AuthHandler) loginEntry(c *gin.Context, level, action string, userID *uint, username, message, details string) {
	entry := &models.AuditLog{
		Level:     level,
		Category:  models.CategoryAuthentication,
		Action:    action,
		UserID:    userID,
		Username:  username,
		Method:    c.Request.Method,
		Endpoint:  c.Request.URL.Path,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		Message:   message,
		Details:   details,
	}
	h.auditService.Record(entry)
}

// Login handles user login. The failure message is identical for unknown
// usernames and wrong passwords; the audit entry keeps the real reason.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	sess, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			details, _ := json.Marshal(gin.H{"reason": err.Error()})
			h.loginEntry(c, models.LevelSecurity, "login_failed", nil, req.Username, "login failed", string(details))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.loginEntry(c, models.LevelError, "login_error", nil, req.Username, "login storage fault", "")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	signed, err := middleware.SignSessionID(h.cfg, sess.ID, time.Now().Add(h.cfg.SessionTimeout()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	middleware.SetSessionCookie(c, h.cfg, signed)

	details, _ := json.Marshal(gin.H{"login_at": user.LastLoginAt})
	h.loginEntry(c, models.LevelSecurity, "login_success", &user.ID, user.Username, "login success", string(details))

	c.JSON(http.StatusOK, LoginResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}

// Logout destroys the session and clears the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	v, exists := c.Get(middleware.ContextSession)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	sess := v.(*models.Session)
	if err := h.authService.Logout(sess.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}
	middleware.ClearSessionCookie(c, h.cfg)

	if user, ok := middleware.CurrentUser(c); ok {
		h.loginEntry(c, models.LevelSecurity, "logout", &user.ID, user.Username, "logout", "")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetMe returns the current user plus the full grant set for their role, so
// the client can build its route guard without re-deriving hierarchy logic.
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"role":        user.Role,
		"permissions": rbac.RolePermissions(rbac.Role(user.Role)),
	})
}
