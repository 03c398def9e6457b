package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"

	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"github.com/dev13-Vishnu/deep-learn-server/internal/storage"
	"go.uber.org/zap"
)

// MediaStorage is the interface that wraps methods for media file storage
type MediaStorage interface {
	// Create creates a new file and returns a writer for its content.
	//
	// "filename" is the name of the file.
	// "mediaType" is the media type directory.
	//
	// Returns a writer and an error if any.
	Create(filename, mediaType string) (io.WriteCloser, error)
	// Open opens a file for reading.
	//
	// "filename" is the name of the file.
	// "mediaType" is the media type directory.
	//
	// Returns a reader and an error if any.
	Open(filename, mediaType string) (io.ReadCloser, error)
	// OpenFile opens a file as *os.File for range serving.
	//
	// "filename" is the name of the file.
	// "mediaType" is the media type directory.
	//
	// Returns the file and an error if any.
	OpenFile(filename, mediaType string) (*os.File, error)
	// Delete removes a file.
	//
	// "filename" is the name of the file.
	// "mediaType" is the media type directory.
	//
	// Returns an error if any.
	Delete(filename, mediaType string) error
}

// mediaService implements upload and retrieval of course media files
type mediaService struct {
	storage MediaStorage
	logger  *zap.Logger
}

// NewMediaService creates a new media service
func NewMediaService(mediaStorage MediaStorage, logger *zap.Logger) *mediaService {
	return &mediaService{
		storage: mediaStorage,
		logger:  logger,
	}
}

// UploadFile stores a file and returns its generated key and size. The key
// is what a tutor later attaches to a chapter or sets as a thumbnail.
func (s *mediaService) UploadFile(ctx context.Context, reader io.Reader, mediaType models.MediaType, extension string) (*models.UploadResult, error) {
	if !models.IsValidMediaType(mediaType) {
		return nil, fmt.Errorf("invalid media type")
	}

	filename := storage.GenerateFileName(extension)
	writer, err := s.storage.Create(filename, string(mediaType))
	if err != nil {
		s.logger.Error("failed to create media file", zap.Error(err))
		return nil, fmt.Errorf("failed to create media file: %w", err)
	}

	size, err := io.Copy(writer, reader)
	if err != nil {
		writer.Close()
		s.storage.Delete(filename, string(mediaType))
		return nil, fmt.Errorf("failed to write media file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close media file: %w", err)
	}

	s.logger.Info("media file uploaded",
		zap.String("filename", filename), zap.String("mediaType", string(mediaType)), zap.Int64("size", size))

	return &models.UploadResult{
		Key:       string(mediaType) + "/" + filename,
		Filename:  filename,
		MediaType: mediaType,
		Size:      size,
	}, nil
}

// GetFile opens a stored file for range serving
func (s *mediaService) GetFile(filename string, mediaType models.MediaType) (*os.File, error) {
	return s.storage.OpenFile(filename, string(mediaType))
}

// GetFileReader opens a stored file for plain streaming
func (s *mediaService) GetFileReader(filename string, mediaType models.MediaType) (io.ReadCloser, error) {
	return s.storage.Open(filename, string(mediaType))
}

// DeleteFile removes a stored file
func (s *mediaService) DeleteFile(ctx context.Context, filename string, mediaType models.MediaType) error {
	if !models.IsValidMediaType(mediaType) {
		return fmt.Errorf("invalid media type")
	}
	return s.storage.Delete(filename, string(mediaType))
}

// InferExtensionFromContentType infers a file extension from a content type
func (s *mediaService) InferExtensionFromContentType(contentType string) string {
	extensions, err := mime.ExtensionsByType(contentType)
	if err != nil || len(extensions) == 0 {
		return ""
	}
	return extensions[0]
}
