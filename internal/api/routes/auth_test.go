package routes

import (
	"encoding/json"
	"net/http"
	"testing"

	"sitecms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := newAuthService(cfg)
	createTestUser(t, authService, "alice", "password123", "editor")

	router := setupTestRouter(cfg)

	t.Run("successful login sets a session cookie", func(t *testing.T) {
		w := doJSON(router, nil, "POST", "/api/auth/login", map[string]string{
			"username": "alice",
			"password": "password123",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp["username"])
		assert.Equal(t, "editor", resp["role"])
		assert.NotContains(t, resp, "password_hash")

		found := false
		for _, c := range w.Result().Cookies() {
			if c.Name == cfg.Session.CookieName {
				found = true
				assert.True(t, c.HttpOnly)
				assert.NotEmpty(t, c.Value)
			}
		}
		assert.True(t, found, "session cookie not set")
	})

	t.Run("wrong password and unknown user get the same response", func(t *testing.T) {
		wrongPass := doJSON(router, nil, "POST", "/api/auth/login", map[string]string{
			"username": "alice",
			"password": "not-the-password",
		})
		unknown := doJSON(router, nil, "POST", "/api/auth/login", map[string]string{
			"username": "nobody",
			"password": "password123",
		})

		assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.JSONEq(t, wrongPass.Body.String(), unknown.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(router, nil, "POST", "/api/auth/login", map[string]string{
			"username": "alice",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginAuditTrail(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := newAuthService(cfg)
	createTestUser(t, authService, "carol", "password123", "viewer")

	router := setupTestRouter(cfg)

	// One success, one wrong password, one unknown username.
	doJSON(router, nil, "POST", "/api/auth/login", map[string]string{"username": "carol", "password": "password123"})
	doJSON(router, nil, "POST", "/api/auth/login", map[string]string{"username": "carol", "password": "wrong"})
	doJSON(router, nil, "POST", "/api/auth/login", map[string]string{"username": "ghost", "password": "whatever"})

	var entries []models.AuditLog
	err := models.DB.Where("category = ?", models.CategoryAuthentication).
		Order("id ASC").Find(&entries).Error
	require.NoError(t, err)
	require.Len(t, entries, 3, "every login attempt must be recorded")

	assert.Equal(t, "login_success", entries[0].Action)
	assert.Equal(t, models.LevelSecurity, entries[0].Level)
	require.NotNil(t, entries[0].UserID)

	assert.Equal(t, "login_failed", entries[1].Action)
	assert.Equal(t, "carol", entries[1].Username)
	assert.Contains(t, entries[1].Details, "password")

	assert.Equal(t, "login_failed", entries[2].Action)
	assert.Equal(t, "ghost", entries[2].Username)
	assert.Contains(t, entries[2].Details, "username")
}

func TestGetMe(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := newAuthService(cfg)
	createTestUser(t, authService, "bob", "password123", "contributor")

	router := setupTestRouter(cfg)

	t.Run("returns role and permission set", func(t *testing.T) {
		cookie := login(t, router, cfg, "bob", "password123")

		w := doJSON(router, cookie, "GET", "/api/auth/me", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Username    string              `json:"username"`
			Role        string              `json:"role"`
			Permissions map[string][]string `json:"permissions"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "bob", resp.Username)
		assert.Equal(t, "contributor", resp.Role)
		assert.Contains(t, resp.Permissions["branches"], "create")
		assert.NotContains(t, resp.Permissions["branches"], "delete")
	})

	t.Run("rejects request without cookie", func(t *testing.T) {
		w := doJSON(router, nil, "GET", "/api/auth/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects garbage cookie", func(t *testing.T) {
		bad := &http.Cookie{Name: cfg.Session.CookieName, Value: "not-a-token"}
		w := doJSON(router, bad, "GET", "/api/auth/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLogout(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := newAuthService(cfg)
	createTestUser(t, authService, "dave", "password123", "viewer")

	router := setupTestRouter(cfg)
	cookie := login(t, router, cfg, "dave", "password123")

	w := doJSON(router, cookie, "POST", "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The session is gone server-side; the old cookie no longer works.
	w = doJSON(router, cookie, "GET", "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSingleActiveSession(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := newAuthService(cfg)
	createTestUser(t, authService, "erin", "password123", "editor")

	router := setupTestRouter(cfg)

	first := login(t, router, cfg, "erin", "password123")

	// The first session still works before the second login.
	w := doJSON(router, first, "GET", "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	second := login(t, router, cfg, "erin", "password123")

	// The second login rotated the account token; only the newest session survives.
	w = doJSON(router, first, "GET", "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, second, "GET", "/api/auth/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthStorageFault(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := newAuthService(cfg)
	createTestUser(t, authService, "frank", "password123", "admin")

	router := setupTestRouter(cfg)
	cookie := login(t, router, cfg, "frank", "password123")

	// Kill the database connection out from under the auth middleware.
	sqlDB, err := models.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// A storage fault must fail closed with a server error, not grant access.
	w := doJSON(router, cookie, "GET", "/api/auth/me", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
