package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"sitecms/internal/config"
	"sitecms/internal/models"
	"sitecms/internal/services"
	"sitecms/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// setupTestDB initializes a test database
func setupTestDB(t *testing.T) *config.Config {
	tmpDir := os.TempDir()
	testDBPath := fmt.Sprintf("%s/sitecms_test_%d.db", tmpDir, time.Now().UnixNano())

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: testDBPath,
			},
		},
		Session: config.SessionConfig{
			CookieName: "sitecms_session",
			Secret:     "test-secret-key-for-testing-only",
			Timeout:    "2h",
		},
		Security: config.SecurityConfig{
			BcryptCost: 10,
		},
		Storage: config.StorageConfig{
			UploadsDir: t.TempDir(),
		},
	}

	err := models.InitDB(cfg)
	require.NoError(t, err)

	return cfg
}

// cleanupTestDB cleans up the test database
func cleanupTestDB(t *testing.T, cfg *config.Config) {
	if models.DB != nil {
		sqlDB, err := models.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
		if cfg != nil && cfg.Database.Type == "sqlite" {
			os.Remove(cfg.Database.SQLite.Path)
		}
	}
	models.DB = nil
}

// newAuthService builds an auth service over the shared test database
func newAuthService(cfg *config.Config) *services.AuthService {
	return services.NewAuthService(cfg, session.NewGormStore(models.DB))
}

// createTestUser creates a test user and returns it
func createTestUser(t *testing.T, authService *services.AuthService, username, password, role string) *models.User {
	user, err := authService.CreateUser(username, password, role)
	require.NoError(t, err)
	return user
}

// setupTestRouter creates a test router with routes
func setupTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, cfg)
	return r
}

// login performs a real login through the router and returns the session cookie
func login(t *testing.T, router *gin.Engine, cfg *config.Config, username, password string) *http.Cookie {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "login as %s failed: %s", username, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == cfg.Session.CookieName {
			return c
		}
	}
	t.Fatalf("no session cookie in login response for %s", username)
	return nil
}

// doJSON performs a request with an optional session cookie and JSON body
func doJSON(router *gin.Engine, cookie *http.Cookie, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
