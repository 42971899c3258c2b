package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sitecms/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrDocumentNotFound = errors.New("document not found")
)

// StorageService stores uploaded files as (directory key, filename, bytes)
// under a base path and keeps their metadata in the documents table.
type StorageService struct {
	baseDir string
}

func NewStorageService(baseDir string) *StorageService {
	return &StorageService{baseDir: baseDir}
}

// sanitizeName rejects anything that could escape the target directory.
func sanitizeName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidFilename
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: path separators are not allowed", ErrInvalidFilename)
	}
	return nil
}

// TargetPath validates directory and filename and returns the absolute path
// the file should be stored at, creating the directory if needed.
func (s *StorageService) TargetPath(directory, filename string) (string, error) {
	if err := sanitizeName(directory); err != nil {
		return "", err
	}
	if err := sanitizeName(filename); err != nil {
		return "", err
	}

	dir := filepath.Join(s.baseDir, directory)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	return filepath.Join(dir, filename), nil
}

// RecordDocument stores metadata for a stored file
func (s *StorageService) RecordDocument(directory, filename string, size int64, uploadedBy uint) (*models.Document, error) {
	doc := &models.Document{
		Directory:  directory,
		Filename:   filename,
		SizeBytes:  size,
		UploadedBy: uploadedBy,
	}
	if err := models.DB.Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocuments returns stored file metadata, optionally filtered by directory
func (s *StorageService) GetDocuments(directory string) ([]models.Document, error) {
	q := models.DB.Order("created_at DESC")
	if directory != "" {
		q = q.Where("directory = ?", directory)
	}

	var docs []models.Document
	if err := q.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteDocument removes the file from disk and its metadata row
func (s *StorageService) DeleteDocument(id uint) error {
	var doc models.Document
	if err := models.DB.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	path := filepath.Join(s.baseDir, doc.Directory, doc.Filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return models.DB.Delete(&doc).Error
}
