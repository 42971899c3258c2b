package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"sitecms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarouselSeniorityGates(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := newAuthService(cfg)
	createTestUser(t, authService, "vera", "password123", "viewer")
	createTestUser(t, authService, "chris", "password123", "contributor")
	createTestUser(t, authService, "emma", "password123", "editor")

	router := setupTestRouter(cfg)
	veraCookie := login(t, router, cfg, "vera", "password123")
	chrisCookie := login(t, router, cfg, "chris", "password123")
	emmaCookie := login(t, router, cfg, "emma", "password123")

	var slide models.CarouselSlide

	t.Run("contributor creates and updates a slide", func(t *testing.T) {
		w := doJSON(router, chrisCookie, "POST", "/api/carousel", map[string]interface{}{
			"title":      "Spring rates",
			"image_path": "/uploads/carousel/spring.jpg",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slide))

		w = doJSON(router, chrisCookie, "PUT", fmt.Sprintf("/api/carousel/%d", slide.ID), map[string]interface{}{
			"title":      "Summer rates",
			"image_path": "/uploads/carousel/summer.jpg",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("viewer can list but not create", func(t *testing.T) {
		w := doJSON(router, veraCookie, "GET", "/api/carousel", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, veraCookie, "POST", "/api/carousel", map[string]interface{}{
			"image_path": "/uploads/carousel/x.jpg",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("delete requires editor or higher", func(t *testing.T) {
		w := doJSON(router, chrisCookie, "DELETE", fmt.Sprintf("/api/carousel/%d", slide.ID), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		// The denied delete left the slide in place and was SECURITY-logged
		// with the missing seniority.
		var count int64
		require.NoError(t, models.DB.Model(&models.CarouselSlide{}).Where("id = ?", slide.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)

		var entry models.AuditLog
		require.NoError(t, models.DB.Where("action = ?", "access_denied").
			Order("id DESC").First(&entry).Error)
		assert.Equal(t, "chris", entry.Username)
		assert.Contains(t, entry.Details, "editor+")

		w = doJSON(router, emmaCookie, "DELETE", fmt.Sprintf("/api/carousel/%d", slide.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
