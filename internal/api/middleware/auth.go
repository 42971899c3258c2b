package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sitecms/internal/config"
	"sitecms/internal/models"
	"sitecms/internal/rbac"
	"sitecms/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by RequireAuth
const (
	ContextUser    = "user"
	ContextUserID  = "user_id"
	ContextSession = "session"
	ContextRole    = "role"
)

// SignSessionID wraps the opaque session id in a signed compact token for
// the cookie. The cookie never carries role or user data; everything else
// lives server-side.
func SignSessionID(cfg *config.Config, sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Session.Secret))
}

// ParseSessionCookie verifies the cookie signature and extracts the session id
func ParseSessionCookie(cfg *config.Config, value string) (string, error) {
	token, err := jwt.Parse(value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", jwt.ErrSignatureInvalid
		}
		return []byte(cfg.Session.Secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session cookie: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid session cookie claims")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("session cookie missing sid")
	}
	return sid, nil
}

// SetSessionCookie places the signed session id in an httpOnly SameSite=Lax
// cookie whose max-age matches the sliding session timeout.
func SetSessionCookie(c *gin.Context, cfg *config.Config, signed string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Session.CookieName, signed, int(cfg.SessionTimeout().Seconds()), "/", "", false, true)
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Session.CookieName, "", -1, "/", "", false, true)
}

// requestEntry pre-fills an audit entry with request metadata
func requestEntry(c *gin.Context, level, category, action string) *models.AuditLog {
	return &models.AuditLog{
		Level:      level,
		Category:   category,
		Action:     action,
		Method:     c.Request.Method,
		Endpoint:   c.Request.URL.Path,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		StatusCode: 0,
	}
}

// RequireAuth resolves the session cookie to a user and role. The user row
// is re-read per request, so role downgrades and force-logouts take effect
// immediately. Rolling expiry: every authenticated request extends the
// session and re-issues the cookie.
func RequireAuth(cfg *config.Config, authService *services.AuthService, auditService *services.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reject := func(message string) {
			entry := requestEntry(c, models.LevelSecurity, models.CategoryAuthentication, "unauthorized_access")
			entry.StatusCode = http.StatusUnauthorized
			entry.Message = message
			auditService.Record(entry)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
		}

		value, err := c.Cookie(cfg.Session.CookieName)
		if err != nil || value == "" {
			reject("no session")
			return
		}

		sid, err := ParseSessionCookie(cfg, value)
		if err != nil {
			reject("invalid session cookie")
			return
		}

		sess, user, err := authService.Resolve(sid)
		if err != nil {
			if errors.Is(err, services.ErrTokenMismatch) {
				reject("invalid session token")
				return
			}
			if errors.Is(err, services.ErrSessionInvalid) {
				reject("session expired or unknown")
				return
			}
			// Storage fault: deny, but log as an operational error rather
			// than a security event.
			entry := requestEntry(c, models.LevelError, models.CategoryAuthentication, "auth_check_failed")
			entry.StatusCode = http.StatusInternalServerError
			entry.Message = "authentication check failed"
			entry.Details = fmt.Sprintf(`{"error":%q}`, err.Error())
			auditService.Record(entry)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication check failed"})
			c.Abort()
			return
		}

		// Rolling renewal on activity
		if err := authService.Touch(sess.ID); err == nil {
			if signed, err := SignSessionID(cfg, sess.ID, time.Now().Add(cfg.SessionTimeout())); err == nil {
				SetSessionCookie(c, cfg, signed)
			}
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextSession, sess)
		c.Set(ContextRole, rbac.Role(user.Role))

		c.Next()
	}
}

// CurrentUser returns the authenticated user from the context
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// currentRole returns the resolved role, or "" when unauthenticated
func currentRole(c *gin.Context) rbac.Role {
	v, ok := c.Get(ContextRole)
	if !ok {
		return ""
	}
	role, _ := v.(rbac.Role)
	return role
}

func recordDenial(c *gin.Context, auditService *services.AuditService, required string) {
	entry := requestEntry(c, models.LevelSecurity, models.CategoryAuthorization, "access_denied")
	entry.StatusCode = http.StatusForbidden
	entry.Message = "insufficient permissions"
	if user, ok := CurrentUser(c); ok {
		entry.UserID = &user.ID
		entry.Username = user.Username
	}
	details, _ := json.Marshal(gin.H{
		"required": required,
		"role":     string(currentRole(c)),
	})
	entry.Details = string(details)
	auditService.Record(entry)
}

// RequirePermission allows the request only when the caller's role holds the
// (resource, action) grant. Denials are 403 and SECURITY-logged with the
// missing grant; the check runs strictly before the handler, so a denied
// request never reaches the mutation.
func RequirePermission(resource rbac.Resource, action rbac.Action, auditService *services.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if !rbac.HasPermission(currentRole(c), resource, action) {
			recordDenial(c, auditService, string(resource)+":"+string(action))
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions", "required": string(resource) + ":" + string(action)})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRole allows the request only when the caller's role is one of the
// listed roles (exact membership).
func RequireRole(auditService *services.AuditService, roles ...rbac.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		role := currentRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		recordDenial(c, auditService, "role:"+rolesList(roles))
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}

// RequireRoleOrHigher allows any role at least as senior as min.
func RequireRoleOrHigher(min rbac.Role, auditService *services.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if !rbac.HasRoleOrHigher(currentRole(c), min) {
			recordDenial(c, auditService, "role:"+string(min)+"+")
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func rolesList(roles []rbac.Role) string {
	out := ""
	for i, r := range roles {
		if i > 0 {
			out += ","
		}
		out += string(r)
	}
	return out
}
