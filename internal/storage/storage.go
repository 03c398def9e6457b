// Package storage implements the local disk backend for uploaded course
// media. Files are laid out as <base>/<mediaType>/<filename>.
package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// localStorage implements media storage on the local filesystem
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// generatePath builds the full file path for a media type and filename
func (s *localStorage) generatePath(filename, mediaType string) string {
	return filepath.Join(s.basePath, mediaType, filename)
}

// Create creates a new file and returns a WriteCloser
func (s *localStorage) Create(filename, mediaType string) (io.WriteCloser, error) {
	path := s.generatePath(filename, mediaType)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return os.Create(path)
}

// Open opens a file for reading and returns a ReadCloser
func (s *localStorage) Open(filename, mediaType string) (io.ReadCloser, error) {
	return os.Open(s.generatePath(filename, mediaType))
}

// OpenFile opens a file and returns *os.File for range serving
func (s *localStorage) OpenFile(filename, mediaType string) (*os.File, error) {
	return os.Open(s.generatePath(filename, mediaType))
}

// Delete removes a file
func (s *localStorage) Delete(filename, mediaType string) error {
	return os.Remove(s.generatePath(filename, mediaType))
}

// GenerateFileName generates a UUID-based filename with the given extension
func GenerateFileName(extension string) string {
	newUUID := uuid.New().String()
	if extension != "" && extension[0] != '.' {
		return newUUID + "." + extension
	}
	return newUUID + extension
}
