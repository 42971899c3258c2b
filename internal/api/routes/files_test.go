package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"sitecms/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFile(router *gin.Engine, cookie *http.Cookie, dir, filename, content string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(content))
	writer.Close()

	req, _ := http.NewRequest("POST", "/api/files/"+dir, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFileUpload(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := newAuthService(cfg)
	createTestUser(t, authService, "uploader", "password123", "contributor")
	createTestUser(t, authService, "reader", "password123", "viewer")

	router := setupTestRouter(cfg)
	cookie := login(t, router, cfg, "uploader", "password123")

	t.Run("stores the file and its metadata", func(t *testing.T) {
		w := uploadFile(router, cookie, "brochures", "catalog.pdf", "pdf-bytes")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var doc models.Document
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "brochures", doc.Directory)
		assert.Equal(t, "catalog.pdf", doc.Filename)
		assert.EqualValues(t, len("pdf-bytes"), doc.SizeBytes)

		onDisk := filepath.Join(cfg.Storage.UploadsDir, "brochures", "catalog.pdf")
		data, err := os.ReadFile(onDisk)
		require.NoError(t, err)
		assert.Equal(t, "pdf-bytes", string(data))
	})

	t.Run("rejects a traversal directory", func(t *testing.T) {
		w := uploadFile(router, cookie, "..", "evil.sh", "pwned")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("viewers cannot upload", func(t *testing.T) {
		readerCookie := login(t, router, cfg, "reader", "password123")
		w := uploadFile(router, readerCookie, "brochures", "nope.txt", "x")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("lists by directory", func(t *testing.T) {
		w := doJSON(router, cookie, "GET", "/api/files?directory=brochures", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "catalog.pdf")
	})
}

func TestFileDelete(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := newAuthService(cfg)
	createTestUser(t, authService, "boss", "password123", "editor")

	router := setupTestRouter(cfg)
	cookie := login(t, router, cfg, "boss", "password123")

	w := uploadFile(router, cookie, "docs", "todo.txt", "list")
	require.Equal(t, http.StatusCreated, w.Code)
	var doc models.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))

	w = doJSON(router, cookie, "DELETE", fmt.Sprintf("/api/files/%d", doc.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Both the row and the file on disk are gone.
	var count int64
	require.NoError(t, models.DB.Model(&models.Document{}).Where("id = ?", doc.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err := os.Stat(filepath.Join(cfg.Storage.UploadsDir, "docs", "todo.txt"))
	assert.True(t, os.IsNotExist(err))

	w = doJSON(router, cookie, "DELETE", fmt.Sprintf("/api/files/%d", doc.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
