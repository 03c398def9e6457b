package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	authMiddleware "github.com/dev13-Vishnu/deep-learn-server/internal/auth/middleware"
	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CourseService is the interface that wraps methods for course authoring operations
type CourseService interface {
	// CreateCourse creates a new draft course for a tutor.
	//
	// "ctx" is the context for the request.
	// "tutorID" is the ID of the tutor.
	// "req" is the request to create a course.
	//
	// Returns the created course summary and an error if any.
	CreateCourse(ctx context.Context, tutorID int, req *models.CreateCourseRequest) (*models.CourseBasicResponse, error)
	// GetCourse retrieves the full authoring view of a course.
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "tutorID" is the ID of the tutor.
	//
	// Returns the course detail and an error if any.
	GetCourse(ctx context.Context, courseID string, tutorID int) (*models.CourseTutorDetailResponse, error)
	// ListCourses retrieves a page of the tutor's courses.
	//
	// "ctx" is the context for the request.
	// "tutorID" is the ID of the tutor.
	// "status" is an optional status filter.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns the course list and an error if any.
	ListCourses(ctx context.Context, tutorID int, status *models.CourseStatus, page, count int) (*models.TutorCourseListResponse, error)
	// UpdateCourse applies a partial basic-info update.
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "tutorID" is the ID of the tutor.
	// "req" carries the fields to change.
	//
	// Returns the updated course summary and an error if any.
	UpdateCourse(ctx context.Context, courseID string, tutorID int, req *models.UpdateCourseRequest) (*models.CourseBasicResponse, error)
	// SetThumbnail sets the course thumbnail URL.
	SetThumbnail(ctx context.Context, courseID string, tutorID int, thumbnailURL string) error
	// DeleteCourse deletes a draft course.
	DeleteCourse(ctx context.Context, courseID string, tutorID int) error
	// PublishCourse publishes a course when it passes the readiness checks.
	PublishCourse(ctx context.Context, courseID string, tutorID int) error
	// UnpublishCourse returns a published course to draft.
	UnpublishCourse(ctx context.Context, courseID string, tutorID int) error
	// ArchiveCourse archives a published course.
	ArchiveCourse(ctx context.Context, courseID string, tutorID int) error
	// ReactivateCourse returns an archived course to draft.
	ReactivateCourse(ctx context.Context, courseID string, tutorID int) error

	// AddModule appends a module to the course.
	AddModule(ctx context.Context, courseID string, tutorID int, req *models.AddModuleRequest) (*models.Module, error)
	// UpdateModule applies a partial module update.
	UpdateModule(ctx context.Context, courseID string, tutorID int, moduleID string, req *models.UpdateModuleRequest) error
	// RemoveModule removes a module and renumbers its siblings.
	RemoveModule(ctx context.Context, courseID string, tutorID int, moduleID string) error
	// ReorderModules applies a new module order.
	ReorderModules(ctx context.Context, courseID string, tutorID int, orderedIDs []string) error

	// AddLesson appends a lesson to a module.
	AddLesson(ctx context.Context, courseID string, tutorID int, moduleID string, req *models.AddLessonRequest) (*models.Lesson, error)
	// UpdateLesson applies a partial lesson update.
	UpdateLesson(ctx context.Context, courseID string, tutorID int, moduleID, lessonID string, req *models.UpdateLessonRequest) error
	// RemoveLesson removes a lesson and renumbers its siblings.
	RemoveLesson(ctx context.Context, courseID string, tutorID int, moduleID, lessonID string) error
	// ReorderLessons applies a new lesson order within a module.
	ReorderLessons(ctx context.Context, courseID string, tutorID int, moduleID string, orderedIDs []string) error

	// AddChapter appends a chapter to a lesson.
	AddChapter(ctx context.Context, courseID string, tutorID int, moduleID, lessonID string, req *models.AddChapterRequest) (*models.Chapter, error)
	// UpdateChapter applies a partial chapter update.
	UpdateChapter(ctx context.Context, courseID string, tutorID int, moduleID, lessonID, chapterID string, req *models.UpdateChapterRequest) error
	// RemoveChapter removes a chapter and renumbers its siblings.
	RemoveChapter(ctx context.Context, courseID string, tutorID int, moduleID, lessonID, chapterID string) error
	// ReorderChapters applies a new chapter order within a lesson.
	ReorderChapters(ctx context.Context, courseID string, tutorID int, moduleID, lessonID string, orderedIDs []string) error

	// AttachVideo attaches uploaded video metadata to a video chapter.
	AttachVideo(ctx context.Context, courseID string, tutorID int, moduleID, lessonID, chapterID string, req *models.AttachVideoRequest) error
	// ConfirmVideo marks an attached video ready and records its duration.
	ConfirmVideo(ctx context.Context, courseID string, tutorID int, moduleID, lessonID, chapterID string, duration int) error
}

// CourseHandler handles HTTP requests for tutor course authoring
type CourseHandler struct {
	BaseHandler
	service CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all course handler routes.
// The caller is expected to guard the router with the tutor role middleware.
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tutor/courses", func(r chi.Router) {
		r.Get("/", h.ListCourses)
		r.Post("/", h.CreateCourse)

		r.Route("/{courseId}", func(r chi.Router) {
			r.Get("/", h.GetCourse)
			r.Patch("/", h.UpdateCourse)
			r.Delete("/", h.DeleteCourse)
			r.Put("/thumbnail", h.SetThumbnail)
			r.Post("/publish", h.PublishCourse)
			r.Post("/unpublish", h.UnpublishCourse)
			r.Post("/archive", h.ArchiveCourse)
			r.Post("/reactivate", h.ReactivateCourse)

			r.Route("/modules", func(r chi.Router) {
				r.Post("/", h.AddModule)
				r.Put("/reorder", h.ReorderModules)

				r.Route("/{moduleId}", func(r chi.Router) {
					r.Patch("/", h.UpdateModule)
					r.Delete("/", h.RemoveModule)

					r.Route("/lessons", func(r chi.Router) {
						r.Post("/", h.AddLesson)
						r.Put("/reorder", h.ReorderLessons)

						r.Route("/{lessonId}", func(r chi.Router) {
							r.Patch("/", h.UpdateLesson)
							r.Delete("/", h.RemoveLesson)

							r.Route("/chapters", func(r chi.Router) {
								r.Post("/", h.AddChapter)
								r.Put("/reorder", h.ReorderChapters)

								r.Route("/{chapterId}", func(r chi.Router) {
									r.Patch("/", h.UpdateChapter)
									r.Delete("/", h.RemoveChapter)
									r.Put("/video", h.AttachVideo)
									r.Post("/video/confirm", h.ConfirmVideo)
								})
							})
						})
					})
				})
			})
		})
	})
}

// getTutorID extracts the tutor ID from context
func (h *CourseHandler) getTutorID(r *http.Request) (int, error) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		return 0, fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// courseErrorStatus maps service errors to HTTP status codes. Rule
// violations come back as domain errors and map to 400, missing entities
// to 404.
func courseErrorStatus(err error) int {
	if models.IsDomainError(err) {
		return http.StatusBadRequest
	}
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// ListCourses handles GET /tutor/courses
// @Summary List courses
// @Description Get a paginated list of the authenticated tutor's courses with an optional status filter
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Course status (draft, published, archived)"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {object} models.TutorCourseListResponse "List of courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tutor/courses [get]
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var status *models.CourseStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := models.CourseStatus(statusStr)
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

	courses, err := h.service.ListCourses(r.Context(), tutorID, status, page, count)
	if err != nil {
		h.Logger.Error("failed to list courses", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// CreateCourse handles POST /tutor/courses
// @Summary Create a course
// @Description Create a new draft course for the authenticated tutor
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateCourseRequest true "Course creation request"
// @Success 201 {object} models.CourseBasicResponse "Created course"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /tutor/courses [post]
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.CreateCourseRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	course, err := h.service.CreateCourse(r.Context(), tutorID, &req)
	if err != nil {
		h.Logger.Error("failed to create course", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, course)
}

// GetCourse handles GET /tutor/courses/{courseId}
// @Summary Get a course
// @Description Get the full authoring view of a course owned by the authenticated tutor
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} models.CourseTutorDetailResponse "Course detail"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /tutor/courses/{courseId} [get]
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	course, err := h.service.GetCourse(r.Context(), chi.URLParam(r, "courseId"), tutorID)
	if err != nil {
		h.Logger.Error("failed to get course", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// UpdateCourse handles PATCH /tutor/courses/{courseId}
// @Summary Update a course
// @Description Apply a partial basic-info update to a course owned by the authenticated tutor
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param request body models.UpdateCourseRequest true "Course update request"
// @Success 200 {object} models.CourseBasicResponse "Updated course"
// @Failure 400 {object} map[string]string "Invalid request body or rule violation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /tutor/courses/{courseId} [patch]
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.UpdateCourseRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	course, err := h.service.UpdateCourse(r.Context(), chi.URLParam(r, "courseId"), tutorID, &req)
	if err != nil {
		h.Logger.Error("failed to update course", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// DeleteCourse handles DELETE /tutor/courses/{courseId}
// @Summary Delete a course
// @Description Delete a draft course owned by the authenticated tutor
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Course is not a draft"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /tutor/courses/{courseId} [delete]
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.service.DeleteCourse(r.Context(), chi.URLParam(r, "courseId"), tutorID); err != nil {
		h.Logger.Error("failed to delete course", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetThumbnail handles PUT /tutor/courses/{courseId}/thumbnail
// @Summary Set course thumbnail
// @Description Set the thumbnail URL of a course owned by the authenticated tutor
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param request body models.SetThumbnailRequest true "Thumbnail request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /tutor/courses/{courseId}/thumbnail [put]
func (h *CourseHandler) SetThumbnail(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.SetThumbnailRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.SetThumbnail(r.Context(), chi.URLParam(r, "courseId"), tutorID, req.Thumbnail); err != nil {
		h.Logger.Error("failed to set thumbnail", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PublishCourse handles POST /tutor/courses/{courseId}/publish
// @Summary Publish a course
// @Description Publish a draft course. Fails with the full list of problems when the course is not ready.
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Course is not ready to publish"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /tutor/courses/{courseId}/publish [post]
func (h *CourseHandler) PublishCourse(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "publish", h.service.PublishCourse)
}

// UnpublishCourse handles POST /tutor/courses/{courseId}/unpublish
// @Summary Unpublish a course
// @Description Return a published course to draft
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Course is not published"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /tutor/courses/{courseId}/unpublish [post]
func (h *CourseHandler) UnpublishCourse(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "unpublish", h.service.UnpublishCourse)
}

// ArchiveCourse handles POST /tutor/courses/{courseId}/archive
// @Summary Archive a course
// @Description Archive a published course
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Course is not published"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /tutor/courses/{courseId}/archive [post]
func (h *CourseHandler) ArchiveCourse(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "archive", h.service.ArchiveCourse)
}

// ReactivateCourse handles POST /tutor/courses/{courseId}/reactivate
// @Summary Reactivate a course
// @Description Return an archived course to draft
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Course is not archived"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /tutor/courses/{courseId}/reactivate [post]
func (h *CourseHandler) ReactivateCourse(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "reactivate", h.service.ReactivateCourse)
}

// transition runs one of the lifecycle operations
func (h *CourseHandler) transition(w http.ResponseWriter, r *http.Request, name string,
	fn func(ctx context.Context, courseID string, tutorID int) error) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	if err := fn(r.Context(), chi.URLParam(r, "courseId"), tutorID); err != nil {
		h.Logger.Error("failed to "+name+" course", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddModule handles POST /tutor/courses/{courseId}/modules
// @Summary Add a module
// @Description Append a module to the end of the course
// @Tags modules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param request body models.AddModuleRequest true "Module creation request"
// @Success 201 {object} models.Module "Created module"
// @Failure 400 {object} map[string]string "Invalid request body or rule violation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /tutor/courses/{courseId}/modules [post]
func (h *CourseHandler) AddModule(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.AddModuleRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	module, err := h.service.AddModule(r.Context(), chi.URLParam(r, "courseId"), tutorID, &req)
	if err != nil {
		h.Logger.Error("failed to add module", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, module)
}

// UpdateModule handles PATCH /tutor/courses/{courseId}/modules/{moduleId}
// @Summary Update a module
// @Description Apply a partial update to a module
// @Tags modules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param request body models.UpdateModuleRequest true "Module update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body or rule violation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course or module not found"
// @Router /tutor/courses/{courseId}/modules/{moduleId} [patch]
func (h *CourseHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.UpdateModuleRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	err = h.service.UpdateModule(r.Context(), chi.URLParam(r, "courseId"), tutorID, chi.URLParam(r, "moduleId"), &req)
	if err != nil {
		h.Logger.Error("failed to update module", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveModule handles DELETE /tutor/courses/{courseId}/modules/{moduleId}
// @Summary Remove a module
// @Description Remove a module; remaining modules are renumbered
// @Tags modules
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course or module not found"
// @Router /tutor/courses/{courseId}/modules/{moduleId} [delete]
func (h *CourseHandler) RemoveModule(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	err = h.service.RemoveModule(r.Context(), chi.URLParam(r, "courseId"), tutorID, chi.URLParam(r, "moduleId"))
	if err != nil {
		h.Logger.Error("failed to remove module", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderModules handles PUT /tutor/courses/{courseId}/modules/reorder
// @Summary Reorder modules
// @Description Apply a new module order. The list must be a permutation of the current module IDs.
// @Tags modules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param request body models.ReorderRequest true "Ordered module IDs"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid permutation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /tutor/courses/{courseId}/modules/reorder [put]
func (h *CourseHandler) ReorderModules(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.ReorderRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	err = h.service.ReorderModules(r.Context(), chi.URLParam(r, "courseId"), tutorID, req.OrderedIDs)
	if err != nil {
		h.Logger.Error("failed to reorder modules", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddLesson handles POST /tutor/courses/{courseId}/modules/{moduleId}/lessons
// @Summary Add a lesson
// @Description Append a lesson to the end of a module
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param request body models.AddLessonRequest true "Lesson creation request"
// @Success 201 {object} models.Lesson "Created lesson"
// @Failure 400 {object} map[string]string "Invalid request body or rule violation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course or module not found"
// @Router /tutor/courses/{courseId}/modules/{moduleId}/lessons [post]
func (h *CourseHandler) AddLesson(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.AddLessonRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	lesson, err := h.service.AddLesson(r.Context(), chi.URLParam(r, "courseId"), tutorID, chi.URLParam(r, "moduleId"), &req)
	if err != nil {
		h.Logger.Error("failed to add lesson", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, lesson)
}

// UpdateLesson handles PATCH /tutor/courses/{courseId}/modules/{moduleId}/lessons/{lessonId}
// @Summary Update a lesson
// @Description Apply a partial update to a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Param request body models.UpdateLessonRequest true "Lesson update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body or rule violation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course, module or lesson not found"
// @Router /tutor/courses/{courseId}/modules/{moduleId}/lessons/{lessonId} [patch]
func (h *CourseHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.UpdateLessonRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	err = h.service.UpdateLesson(r.Context(), chi.URLParam(r, "courseId"), tutorID,
		chi.URLParam(r, "moduleId"), chi.URLParam(r, "lessonId"), &req)
	if err != nil {
		h.Logger.Error("failed to update lesson", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveLesson handles DELETE /tutor/courses/{courseId}/modules/{moduleId}/lessons/{lessonId}
// @Summary Remove a lesson
// @Description Remove a lesson; remaining lessons are renumbered
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course, module or lesson not found"
// @Router /tutor/courses/{courseId}/modules/{moduleId}/lessons/{lessonId} [delete]
func (h *CourseHandler) RemoveLesson(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	err = h.service.RemoveLesson(r.Context(), chi.URLParam(r, "courseId"), tutorID,
		chi.URLParam(r, "moduleId"), chi.URLParam(r, "lessonId"))
	if err != nil {
		h.Logger.Error("failed to remove lesson", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderLessons handles PUT /tutor/courses/{courseId}/modules/{moduleId}/lessons/reorder
// @Summary Reorder lessons
// @Description Apply a new lesson order within a module
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param request body models.ReorderRequest true "Ordered lesson IDs"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid permutation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course or module not found"
// @Router /tutor/courses/{courseId}/modules/{moduleId}/lessons/reorder [put]
func (h *CourseHandler) ReorderLessons(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.ReorderRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	err = h.service.ReorderLessons(r.Context(), chi.URLParam(r, "courseId"), tutorID,
		chi.URLParam(r, "moduleId"), req.OrderedIDs)
	if err != nil {
		h.Logger.Error("failed to reorder lessons", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddChapter handles POST .../lessons/{lessonId}/chapters
// @Summary Add a chapter
// @Description Append a chapter to the end of a lesson
// @Tags chapters
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Param request body models.AddChapterRequest true "Chapter creation request"
// @Success 201 {object} models.Chapter "Created chapter"
// @Failure 400 {object} map[string]string "Invalid request body or rule violation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course, module or lesson not found"
// @Router /tutor/courses/{courseId}/modules/{moduleId}/lessons/{lessonId}/chapters [post]
func (h *CourseHandler) AddChapter(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.AddChapterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	chapter, err := h.service.AddChapter(r.Context(), chi.URLParam(r, "courseId"), tutorID,
		chi.URLParam(r, "moduleId"), chi.URLParam(r, "lessonId"), &req)
	if err != nil {
		h.Logger.Error("failed to add chapter", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, chapter)
}

// UpdateChapter handles PATCH .../chapters/{chapterId}
// @Summary Update a chapter
// @Description Apply a partial update to a chapter. Content applies to text chapters, duration to video chapters.
// @Tags chapters
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Param chapterId path string true "Chapter ID"
// @Param request body models.UpdateChapterRequest true "Chapter update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body or rule violation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Router /tutor/courses/{courseId}/modules/{moduleId}/lessons/{lessonId}/chapters/{chapterId} [patch]
func (h *CourseHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.UpdateChapterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	err = h.service.UpdateChapter(r.Context(), chi.URLParam(r, "courseId"), tutorID,
		chi.URLParam(r, "moduleId"), chi.URLParam(r, "lessonId"), chi.URLParam(r, "chapterId"), &req)
	if err != nil {
		h.Logger.Error("failed to update chapter", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveChapter handles DELETE .../chapters/{chapterId}
// @Summary Remove a chapter
// @Description Remove a chapter; remaining chapters are renumbered
// @Tags chapters
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Param chapterId path string true "Chapter ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Router /tutor/courses/{courseId}/modules/{moduleId}/lessons/{lessonId}/chapters/{chapterId} [delete]
func (h *CourseHandler) RemoveChapter(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	err = h.service.RemoveChapter(r.Context(), chi.URLParam(r, "courseId"), tutorID,
		chi.URLParam(r, "moduleId"), chi.URLParam(r, "lessonId"), chi.URLParam(r, "chapterId"))
	if err != nil {
		h.Logger.Error("failed to remove chapter", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderChapters handles PUT .../chapters/reorder
// @Summary Reorder chapters
// @Description Apply a new chapter order within a lesson
// @Tags chapters
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Param request body models.ReorderRequest true "Ordered chapter IDs"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid permutation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course, module or lesson not found"
// @Router /tutor/courses/{courseId}/modules/{moduleId}/lessons/{lessonId}/chapters/reorder [put]
func (h *CourseHandler) ReorderChapters(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.ReorderRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	err = h.service.ReorderChapters(r.Context(), chi.URLParam(r, "courseId"), tutorID,
		chi.URLParam(r, "moduleId"), chi.URLParam(r, "lessonId"), req.OrderedIDs)
	if err != nil {
		h.Logger.Error("failed to reorder chapters", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AttachVideo handles PUT .../chapters/{chapterId}/video
// @Summary Attach a video
// @Description Attach uploaded video metadata to a video chapter. The chapter stays in uploading state until the video is confirmed.
// @Tags chapters
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Param chapterId path string true "Chapter ID"
// @Param request body models.AttachVideoRequest true "Video metadata"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Chapter is not a video chapter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Router /tutor/courses/{courseId}/modules/{moduleId}/lessons/{lessonId}/chapters/{chapterId}/video [put]
func (h *CourseHandler) AttachVideo(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.AttachVideoRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	err = h.service.AttachVideo(r.Context(), chi.URLParam(r, "courseId"), tutorID,
		chi.URLParam(r, "moduleId"), chi.URLParam(r, "lessonId"), chi.URLParam(r, "chapterId"), &req)
	if err != nil {
		h.Logger.Error("failed to attach video", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ConfirmVideo handles POST .../chapters/{chapterId}/video/confirm
// @Summary Confirm a video
// @Description Mark an attached video ready and record its final duration
// @Tags chapters
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Param chapterId path string true "Chapter ID"
// @Param request body models.ConfirmVideoRequest true "Video duration"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "No video attached"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Router /tutor/courses/{courseId}/modules/{moduleId}/lessons/{lessonId}/chapters/{chapterId}/video/confirm [post]
func (h *CourseHandler) ConfirmVideo(w http.ResponseWriter, r *http.Request) {
	tutorID, err := h.getTutorID(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.ConfirmVideoRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	err = h.service.ConfirmVideo(r.Context(), chi.URLParam(r, "courseId"), tutorID,
		chi.URLParam(r, "moduleId"), chi.URLParam(r, "lessonId"), chi.URLParam(r, "chapterId"), req.Duration)
	if err != nil {
		h.Logger.Error("failed to confirm video", zap.Error(err))
		h.RespondError(w, courseErrorStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
