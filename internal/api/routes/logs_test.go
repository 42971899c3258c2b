package routes

import (
	"net/http"
	"testing"
	"time"

	"sitecms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogEndpoint(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := newAuthService(cfg)
	createTestUser(t, authService, "admin", "password123", "admin")
	createTestUser(t, authService, "pleb", "password123", "editor")

	router := setupTestRouter(cfg)
	adminCookie := login(t, router, cfg, "admin", "password123")

	t.Run("admin reads the log with filters", func(t *testing.T) {
		w := doJSON(router, adminCookie, "GET", "/api/logs?category=AUTHENTICATION&level=SECURITY", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "login_success")
	})

	t.Run("rejects a bad timestamp filter", func(t *testing.T) {
		w := doJSON(router, adminCookie, "GET", "/api/logs?from=yesterday", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("editors cannot read the log", func(t *testing.T) {
		cookie := login(t, router, cfg, "pleb", "password123")
		w := doJSON(router, cookie, "GET", "/api/logs", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAuditCleanup(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := newAuthService(cfg)
	createTestUser(t, authService, "admin", "password123", "admin")

	router := setupTestRouter(cfg)
	cookie := login(t, router, cfg, "admin", "password123")

	// Backdate two entries past the retention window.
	old := models.AuditLog{
		Level:    models.LevelInfo,
		Category: models.CategorySystem,
		Action:   "startup",
		Message:  "old entry",
	}
	require.NoError(t, models.DB.Create(&old).Error)
	require.NoError(t, models.DB.Model(&models.AuditLog{}).
		Where("id = ?", old.ID).
		Update("created_at", time.Now().Add(-100*24*time.Hour)).Error)

	w := doJSON(router, cookie, "DELETE", "/api/logs?older_than_days=90", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":1`)

	// Recent entries (the login above) survive.
	var remaining int64
	require.NoError(t, models.DB.Model(&models.AuditLog{}).Count(&remaining).Error)
	assert.NotZero(t, remaining)

	t.Run("rejects a non-positive window", func(t *testing.T) {
		w := doJSON(router, cookie, "DELETE", "/api/logs?older_than_days=0", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
