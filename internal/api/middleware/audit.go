package middleware

import (
	"net/http"
	"strings"
	"time"

	"sitecms/internal/models"
	"sitecms/internal/services"

	"github.com/gin-gonic/gin"
)

// categoryFor maps a request path to an audit category
func categoryFor(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/auth"):
		return models.CategoryAuthentication
	case strings.HasPrefix(path, "/api/users"):
		return models.CategoryUserManagement
	case strings.HasPrefix(path, "/api/files"):
		return models.CategoryFiles
	case strings.HasPrefix(path, "/api/logs"):
		return models.CategorySystem
	default:
		return models.CategoryContent
	}
}

// AuditTrail records one INFO entry for every successful mutating request.
// It runs after authentication, wraps the authorization check and the
// handler, and only writes once the response status is known; denials and
// failures are logged by the gates themselves. Security-relevant operations
// (login, logout, role changes, force-logout) additionally write their own
// SECURITY entry from the handler: the trail entry is the generic request
// record, the handler entry is the security event.
func AuditTrail(auditService *services.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			return
		}

		entry := requestEntry(c, models.LevelInfo, categoryFor(c.Request.URL.Path), "request_completed")
		entry.StatusCode = status
		entry.Message = c.Request.Method + " " + c.Request.URL.Path
		entry.ExecutionMs = time.Since(start).Milliseconds()
		if user, ok := CurrentUser(c); ok {
			entry.UserID = &user.ID
			entry.Username = user.Username
		}
		auditService.Record(entry)
	}
}
