package handlers

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MediaService is the interface that wraps methods for media file operations
type MediaService interface {
	// UploadFile stores a file and returns its key and size.
	//
	// "ctx" is the context for the request.
	// "reader" is the file content.
	// "mediaType" is the kind of file being uploaded.
	// "extension" is the file extension.
	//
	// Returns the upload result and an error if any.
	UploadFile(ctx context.Context, reader io.Reader, mediaType models.MediaType, extension string) (*models.UploadResult, error)
	// GetFile opens a stored file for range serving.
	GetFile(filename string, mediaType models.MediaType) (*os.File, error)
	// GetFileReader opens a stored file for plain streaming.
	GetFileReader(filename string, mediaType models.MediaType) (io.ReadCloser, error)
	// DeleteFile removes a stored file.
	DeleteFile(ctx context.Context, filename string, mediaType models.MediaType) error
	// InferExtensionFromContentType infers a file extension from a content type.
	InferExtensionFromContentType(contentType string) string
}

// MediaHandler handles media upload and download HTTP requests
type MediaHandler struct {
	BaseHandler
	mediaService MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService MediaService, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		mediaService: mediaService,
	}
}

// RegisterRoutes registers the public download route
func (h *MediaHandler) RegisterRoutes(r chi.Router) {
	r.Get("/media/{mediaType}/{filename}", h.DownloadFile)
}

// RegisterTutorRoutes registers the upload and delete routes.
// The caller is expected to guard the router with the tutor role middleware.
func (h *MediaHandler) RegisterTutorRoutes(r chi.Router) {
	r.Post("/media/{mediaType}", h.UploadFile)
	r.Delete("/media/{mediaType}/{filename}", h.DeleteFile)
}

// UploadFile handles POST /media/{mediaType}
// @Summary Upload a media file
// @Description Upload a video or thumbnail. Returns the storage key to attach to a chapter or set as a course thumbnail.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param mediaType path string true "Media type (videos, thumbnails)"
// @Param file formData file true "File to upload"
// @Success 201 {object} models.UploadResult "Upload result"
// @Failure 400 {object} map[string]string "Invalid media type or file missing"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /media/{mediaType} [post]
func (h *MediaHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	mediaType := models.MediaType(chi.URLParam(r, "mediaType"))
	if !models.IsValidMediaType(mediaType) {
		h.RespondError(w, http.StatusBadRequest, "invalid media type")
		return
	}

	if err := r.ParseMultipartForm(200 << 20); err != nil { // 200MB for video
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = h.mediaService.InferExtensionFromContentType(fileHeader.Header.Get("Content-Type"))
	}

	result, err := h.mediaService.UploadFile(r.Context(), file, mediaType, ext)
	if err != nil {
		h.Logger.Error("failed to upload file", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to upload file")
		return
	}

	h.RespondJSON(w, http.StatusCreated, result)
}

// DownloadFile handles GET /media/{mediaType}/{filename}
// @Summary Download a media file
// @Description Download a stored file. Videos support range requests.
// @Tags media
// @Produce application/octet-stream
// @Param mediaType path string true "Media type (videos, thumbnails)"
// @Param filename path string true "File name"
// @Param Range header string false "Range"
// @Success 200 "File content"
// @Success 206 "Partial file content (for range requests)"
// @Failure 404 {object} map[string]string "File not found"
// @Router /media/{mediaType}/{filename} [get]
func (h *MediaHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	mediaType := models.MediaType(chi.URLParam(r, "mediaType"))
	filename := chi.URLParam(r, "filename")

	if !models.IsValidMediaType(mediaType) {
		h.RespondError(w, http.StatusBadRequest, "invalid media type")
		return
	}

	// Videos are served with range support so players can seek
	if mediaType == models.MediaTypeVideo {
		file, err := h.mediaService.GetFile(filename, mediaType)
		if err != nil {
			if os.IsNotExist(err) {
				h.RespondError(w, http.StatusNotFound, "file not found")
				return
			}
			h.Logger.Error("failed to open file", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "failed to open file")
			return
		}
		defer file.Close()

		fileInfo, err := file.Stat()
		if err != nil {
			h.Logger.Error("failed to get file info", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "failed to get file info")
			return
		}

		http.ServeContent(w, r, filename, fileInfo.ModTime(), file)
		return
	}

	reader, err := h.mediaService.GetFileReader(filename, mediaType)
	if err != nil {
		if os.IsNotExist(err) {
			h.RespondError(w, http.StatusNotFound, "file not found")
			return
		}
		h.Logger.Error("failed to open file", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to open file")
		return
	}
	defer reader.Close()

	if _, err := io.Copy(w, reader); err != nil {
		h.Logger.Error("failed to copy file to response", zap.Error(err))
	}
}

// DeleteFile handles DELETE /media/{mediaType}/{filename}
// @Summary Delete a media file
// @Description Delete a stored file
// @Tags media
// @Produce json
// @Security ApiKeyAuth
// @Param mediaType path string true "Media type (videos, thumbnails)"
// @Param filename path string true "File name"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "File not found"
// @Router /media/{mediaType}/{filename} [delete]
func (h *MediaHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	mediaType := models.MediaType(chi.URLParam(r, "mediaType"))
	filename := chi.URLParam(r, "filename")

	if err := h.mediaService.DeleteFile(r.Context(), filename, mediaType); err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") {
			h.RespondError(w, http.StatusNotFound, "file not found")
			return
		}
		h.Logger.Error("failed to delete file", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to delete file")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
