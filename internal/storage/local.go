package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Upload subdirectories, one per kind of photo the portal stores
const (
	DirBarang = "barang"
	DirBukti  = "bukti"
	DirProfil = "profil"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// LocalStorage handles file storage on the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// UploadImage saves an uploaded photo and returns its relative path. Files are
// grouped under subDir by year and month.
func (s *LocalStorage) UploadImage(file multipart.File, header *multipart.FileHeader, subDir string) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return "", fmt.Errorf("tipe file tidak didukung: %s", contentType)
	}

	dir := filepath.Join(s.basePath, subDir, time.Now().Format("2006/01"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	ext := filepath.Ext(header.Filename)
	filename := uuid.NewString() + ext
	filePath := filepath.Join(dir, filename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	relPath, _ := filepath.Rel(s.basePath, filePath)
	return relPath, nil
}

// Delete removes a file
func (s *LocalStorage) Delete(relativePath string) error {
	return os.Remove(filepath.Join(s.basePath, relativePath))
}

// Exists checks if a file exists
func (s *LocalStorage) Exists(relativePath string) bool {
	_, err := os.Stat(filepath.Join(s.basePath, relativePath))
	return err == nil
}

// GetFullPath returns the absolute path for serving files
func (s *LocalStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.basePath, relativePath)
}
