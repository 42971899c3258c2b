package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"sitecms/internal/api/middleware"
	"sitecms/internal/services"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	storageService *services.StorageService
}

func NewFileHandler(storageService *services.StorageService) *FileHandler {
	return &FileHandler{storageService: storageService}
}

// Upload stores a multipart file under the given directory key. Filenames
// containing path separators are rejected before anything touches disk.
func (h *FileHandler) Upload(c *gin.Context) {
	directory := c.Param("dir")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A 'file' form field is required"})
		return
	}

	filename := filepath.Base(file.Filename)
	target, err := h.storageService.TargetPath(directory, filename)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFilename) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid directory or filename"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload"})
		return
	}

	if err := c.SaveUploadedFile(file, target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	var uploadedBy uint
	if user, ok := middleware.CurrentUser(c); ok {
		uploadedBy = user.ID
	}
	doc, err := h.storageService.RecordDocument(directory, filename, file.Size, uploadedBy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record upload"})
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// GetFiles lists stored file metadata, optionally filtered by ?directory=
func (h *FileHandler) GetFiles(c *gin.Context) {
	docs, err := h.storageService.GetDocuments(c.Query("directory"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list files"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": docs})
}

// DeleteFile removes a stored file and its metadata
func (h *FileHandler) DeleteFile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
		return
	}

	if err := h.storageService.DeleteDocument(uint(id)); err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}
