package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	authMiddleware "github.com/dev13-Vishnu/deep-learn-server/internal/auth/middleware"
	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// InstructorService is the interface that wraps methods for the instructor
// application flow
type InstructorService interface {
	// Apply submits an instructor application for a student.
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the applying user.
	// "req" is the application payload.
	//
	// Returns the created application and an error if any.
	Apply(ctx context.Context, userID int, req *models.ApplyForInstructorRequest) (*models.InstructorApplication, error)
	// GetStatus retrieves a user's latest application.
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns the application and an error if any.
	GetStatus(ctx context.Context, userID int) (*models.InstructorApplication, error)
	// List retrieves a page of applications for admin review.
	//
	// "ctx" is the context for the request.
	// "status" is an optional status filter.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns the application list and an error if any.
	List(ctx context.Context, status *models.ApplicationStatus, page, count int) (*models.InstructorApplicationListResponse, error)
	// Approve approves a pending application and promotes the user to tutor.
	//
	// "ctx" is the context for the request.
	// "applicationID" is the ID of the application.
	//
	// Returns an error if any.
	Approve(ctx context.Context, applicationID int) error
	// Reject rejects a pending application with a reason.
	//
	// "ctx" is the context for the request.
	// "applicationID" is the ID of the application.
	// "reason" is the rejection reason.
	//
	// Returns an error if any.
	Reject(ctx context.Context, applicationID int, reason string) error
}

// InstructorHandler handles HTTP requests for instructor applications
type InstructorHandler struct {
	BaseHandler
	service InstructorService
}

// NewInstructorHandler creates a new instructor handler
func NewInstructorHandler(svc InstructorService, logger *zap.Logger) *InstructorHandler {
	return &InstructorHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers the student-facing instructor routes.
// The caller is expected to guard the router with the auth middleware.
func (h *InstructorHandler) RegisterRoutes(r chi.Router) {
	r.Route("/instructor", func(r chi.Router) {
		r.Post("/apply", h.Apply)
		r.Get("/status", h.GetStatus)
	})
}

// RegisterAdminRoutes registers the admin review routes.
// The caller is expected to guard the router with the admin role middleware.
func (h *InstructorHandler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/admin/instructor-applications", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/{id}/approve", h.Approve)
		r.Post("/{id}/reject", h.Reject)
	})
}

// Apply handles POST /instructor/apply
// @Summary Apply to become an instructor
// @Description Submit an instructor application for the authenticated student
// @Tags instructor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.ApplyForInstructorRequest true "Application request"
// @Success 201 {object} models.InstructorApplication "Submitted application"
// @Failure 400 {object} map[string]string "Invalid request or application already pending"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /instructor/apply [post]
func (h *InstructorHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.ApplyForInstructorRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	application, err := h.service.Apply(r.Context(), userID, &req)
	if err != nil {
		h.Logger.Error("failed to submit instructor application", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, application)
}

// GetStatus handles GET /instructor/status
// @Summary Get application status
// @Description Get the authenticated user's latest instructor application
// @Tags instructor
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.InstructorApplication "Latest application"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No application found"
// @Router /instructor/status [get]
func (h *InstructorHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	application, err := h.service.GetStatus(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get application status", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			errStatus = http.StatusNotFound
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, application)
}

// List handles GET /admin/instructor-applications
// @Summary List instructor applications
// @Description Get a paginated list of instructor applications with an optional status filter
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Application status (pending, approved, rejected)"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {object} models.InstructorApplicationListResponse "List of applications"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/instructor-applications [get]
func (h *InstructorHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *models.ApplicationStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := models.ApplicationStatus(statusStr)
		status = &s
	}

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	count := 10
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		if c, err := strconv.Atoi(countStr); err == nil && c > 0 {
			count = c
		}
	}

	applications, err := h.service.List(r.Context(), status, page, count)
	if err != nil {
		h.Logger.Error("failed to list instructor applications", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, applications)
}

// Approve handles POST /admin/instructor-applications/{id}/approve
// @Summary Approve an application
// @Description Approve a pending instructor application and promote the user to tutor
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Application ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Application is not pending"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Application not found"
// @Router /admin/instructor-applications/{id}/approve [post]
func (h *InstructorHandler) Approve(w http.ResponseWriter, r *http.Request) {
	applicationID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid application ID")
		return
	}

	if err := h.service.Approve(r.Context(), applicationID); err != nil {
		h.Logger.Error("failed to approve application", zap.Error(err))
		errStatus := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			errStatus = http.StatusNotFound
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reject handles POST /admin/instructor-applications/{id}/reject
// @Summary Reject an application
// @Description Reject a pending instructor application with a reason
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Application ID"
// @Param request body models.RejectApplicationRequest true "Rejection reason"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Application is not pending or reason missing"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Application not found"
// @Router /admin/instructor-applications/{id}/reject [post]
func (h *InstructorHandler) Reject(w http.ResponseWriter, r *http.Request) {
	applicationID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid application ID")
		return
	}

	var req models.RejectApplicationRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.Reject(r.Context(), applicationID, req.Reason); err != nil {
		h.Logger.Error("failed to reject application", zap.Error(err))
		errStatus := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			errStatus = http.StatusNotFound
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
