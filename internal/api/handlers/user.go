package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"sitecms/internal/api/middleware"
	"sitecms/internal/models"
	"sitecms/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService  *services.UserService
	authService  *services.AuthService
	auditService *services.AuditService
}

func NewUserHandler(userService *services.UserService, authService *services.AuthService, auditService *services.AuditService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		authService:  authService,
		auditService: auditService,
	}
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) record(c *gin.Context, level, action, message, details string) {
	entry := &models.AuditLog{
		Level:     level,
		Category:  models.CategoryUserManagement,
		Action:    action,
		Method:    c.Request.Method,
		Endpoint:  c.Request.URL.Path,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		Message:   message,
		Details:   details,
	}
	if user, ok := middleware.CurrentUser(c); ok {
		entry.UserID = &user.ID
		entry.Username = user.Username
	}
	h.auditService.Record(entry)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return uint(id), true
}

// GetUsers returns all users
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser returns a specific user
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser creates a new user (admin only)
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, password and role are required"})
		return
	}

	user, err := h.userService.CreateUser(req.Username, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		case errors.Is(err, services.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		}
		return
	}

	details, _ := json.Marshal(gin.H{"created_user": user.Username, "role": user.Role})
	h.record(c, models.LevelInfo, "user_created", "user created", string(details))

	c.JSON(http.StatusCreated, user)
}

// ChangeRole assigns a new role to the target user. Changing your own role
// is rejected before any write happens.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role is required"})
		return
	}

	actor, _ := middleware.CurrentUser(c)
	user, err := h.userService.ChangeRole(actor.ID, id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfRoleChange):
			h.record(c, models.LevelWarn, "self_role_change_rejected", "attempted to change own role", "")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change your own role"})
		case errors.Is(err, services.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change role"})
		}
		return
	}

	details, _ := json.Marshal(gin.H{"target_user": user.Username, "new_role": user.Role})
	h.record(c, models.LevelSecurity, "role_changed", "role changed", string(details))

	c.JSON(http.StatusOK, user)
}

// UpdatePassword updates a user's password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	if err := h.userService.UpdatePassword(id, req.Password); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// DeleteUser deletes a user. Deleting your own account is rejected.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	actor, _ := middleware.CurrentUser(c)
	if err := h.userService.DeleteUser(actor.ID, id); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfDelete):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		case errors.Is(err, services.ErrLastAdmin):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete the last admin user"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		}
		return
	}

	h.record(c, models.LevelInfo, "user_deleted", "user deleted", "")
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// ForceLogout clears the target user's stored session token, invalidating
// every session issued to them.
func (h *UserHandler) ForceLogout(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.authService.ForceLogout(id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to force logout"})
		return
	}

	details, _ := json.Marshal(gin.H{"target_user_id": id})
	h.record(c, models.LevelSecurity, "force_logout", "force logout", string(details))

	c.JSON(http.StatusOK, gin.H{"message": "User sessions invalidated"})
}
