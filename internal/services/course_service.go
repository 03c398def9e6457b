package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CourseRepository defines methods for course document data access
type CourseRepository interface {
	// Create inserts a new course document
	//
	// "ctx" is the context for the request.
	// "course" is the course to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, course *models.Course) error
	// GetByID retrieves a course by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns the course and an error if any.
	GetByID(ctx context.Context, id string) (*models.Course, error)
	// GetByIDAndTutor retrieves a course by ID only if it belongs to the tutor
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	// "tutorID" is the ID of the owning tutor.
	//
	// Returns the course and an error if any.
	GetByIDAndTutor(ctx context.Context, id string, tutorID int) (*models.Course, error)
	// Update replaces the stored document of a course
	//
	// "ctx" is the context for the request.
	// "course" is the course to update.
	//
	// Returns an error if any.
	Update(ctx context.Context, course *models.Course) error
	// Delete removes a course document
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns an error if any.
	Delete(ctx context.Context, id string) error
	// GetByTutor retrieves a page of a tutor's courses
	//
	// "ctx" is the context for the request.
	// "tutorID" is the ID of the tutor.
	// "status" is an optional status filter.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns a list of courses and an error if any.
	GetByTutor(ctx context.Context, tutorID int, status *models.CourseStatus, page, count int) ([]*models.Course, error)
	// CountByTutor counts a tutor's courses
	//
	// "ctx" is the context for the request.
	// "tutorID" is the ID of the tutor.
	// "status" is an optional status filter.
	//
	// Returns the total and an error if any.
	CountByTutor(ctx context.Context, tutorID int, status *models.CourseStatus) (int, error)
}

// courseService implements tutor course authoring use cases. Every mutation
// follows the same load-mutate-save cycle: fetch the owned course, apply the
// aggregate method, persist the new document.
type courseService struct {
	courseRepo CourseRepository
	logger     *zap.Logger
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo CourseRepository, logger *zap.Logger) *courseService {
	return &courseService{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// CreateCourse creates a new draft course for a tutor
func (s *courseService) CreateCourse(ctx context.Context, tutorID int, req *models.CreateCourseRequest) (*models.CourseBasicResponse, error) {
	course, err := models.CreateCourse(models.CreateCourseData{
		ID:          uuid.NewString(),
		TutorID:     tutorID,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
		Language:    req.Language,
		Price:       req.Price,
		Currency:    req.Currency,
		Tags:        req.Tags,
	})
	if err != nil {
		return nil, err
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course created", zap.String("courseId", course.ID()), zap.Int("tutorId", tutorID))

	response := models.ToCourseBasicResponse(course)
	return &response, nil
}

// GetCourse retrieves the full course tree for its owner
func (s *courseService) GetCourse(ctx context.Context, courseID string, tutorID int) (*models.CourseTutorDetailResponse, error) {
	course, err := s.courseRepo.GetByIDAndTutor(ctx, courseID, tutorID)
	if err != nil {
		return nil, err
	}

	response := models.ToCourseTutorDetailResponse(course)
	return &response, nil
}

// ListCourses retrieves a page of the tutor's courses with the total count
func (s *courseService) ListCourses(ctx context.Context, tutorID int, status *models.CourseStatus, page, count int) (*models.TutorCourseListResponse, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 || count > 100 {
		count = 10
	}

	courses, err := s.courseRepo.GetByTutor(ctx, tutorID, status, page, count)
	if err != nil {
		return nil, err
	}

	total, err := s.courseRepo.CountByTutor(ctx, tutorID, status)
	if err != nil {
		return nil, err
	}

	items := make([]models.TutorCourseListItem, 0, len(courses))
	for _, course := range courses {
		items = append(items, models.ToTutorCourseListItem(course))
	}

	return &models.TutorCourseListResponse{
		Courses: items,
		Total:   total,
		Page:    page,
		Count:   count,
	}, nil
}

// UpdateCourse applies a partial basic-info update
func (s *courseService) UpdateCourse(ctx context.Context, courseID string, tutorID int, req *models.UpdateCourseRequest) (*models.CourseBasicResponse, error) {
	var response *models.CourseBasicResponse
	err := s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		if err := course.UpdateBasicInfo(models.UpdateCourseData{
			Title:       req.Title,
			Subtitle:    req.Subtitle,
			Description: req.Description,
			Category:    req.Category,
			Level:       req.Level,
			Language:    req.Language,
			Price:       req.Price,
			Currency:    req.Currency,
			Tags:        req.Tags,
		}); err != nil {
			return err
		}
		r := models.ToCourseBasicResponse(course)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// SetThumbnail sets the course thumbnail URL
func (s *courseService) SetThumbnail(ctx context.Context, courseID string, tutorID int, thumbnailURL string) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.SetThumbnail(thumbnailURL)
	})
}

// DeleteCourse removes a course. Only draft courses can be deleted.
func (s *courseService) DeleteCourse(ctx context.Context, courseID string, tutorID int) error {
	course, err := s.courseRepo.GetByIDAndTutor(ctx, courseID, tutorID)
	if err != nil {
		return err
	}

	if course.Status() != models.CourseStatusDraft {
		return models.NewDomainError("Only draft courses can be deleted")
	}

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return err
	}

	s.logger.Info("course deleted", zap.String("courseId", courseID), zap.Int("tutorId", tutorID))
	return nil
}

// PublishCourse publishes a course after it passes the readiness check
func (s *courseService) PublishCourse(ctx context.Context, courseID string, tutorID int) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		if err := course.Publish(); err != nil {
			return err
		}
		s.logger.Info("course published", zap.String("courseId", courseID), zap.Int("tutorId", tutorID))
		return nil
	})
}

// UnpublishCourse moves a published course back to draft
func (s *courseService) UnpublishCourse(ctx context.Context, courseID string, tutorID int) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.Unpublish()
	})
}

// ArchiveCourse archives a published course
func (s *courseService) ArchiveCourse(ctx context.Context, courseID string, tutorID int) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.Archive()
	})
}

// ReactivateCourse moves an archived course back to draft
func (s *courseService) ReactivateCourse(ctx context.Context, courseID string, tutorID int) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.Reactivate()
	})
}

// AddModule appends a module to the course
func (s *courseService) AddModule(ctx context.Context, courseID string, tutorID int, req *models.AddModuleRequest) (*models.Module, error) {
	var module models.Module
	err := s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		var err error
		module, err = course.AddModule(models.AddModuleData{
			ID:          uuid.NewString(),
			Title:       req.Title,
			Description: req.Description,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// UpdateModule applies a partial module update
func (s *courseService) UpdateModule(ctx context.Context, courseID string, tutorID int, moduleID string, req *models.UpdateModuleRequest) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.UpdateModule(moduleID, models.UpdateModuleData{
			Title:       req.Title,
			Description: req.Description,
		})
	})
}

// RemoveModule removes a module and closes the order gap
func (s *courseService) RemoveModule(ctx context.Context, courseID string, tutorID int, moduleID string) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.RemoveModule(moduleID)
	})
}

// ReorderModules rearranges the module list by the given ID permutation
func (s *courseService) ReorderModules(ctx context.Context, courseID string, tutorID int, orderedIDs []string) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.ReorderModules(orderedIDs)
	})
}

// AddLesson appends a lesson to a module
func (s *courseService) AddLesson(ctx context.Context, courseID string, tutorID int, moduleID string, req *models.AddLessonRequest) (*models.Lesson, error) {
	var lesson models.Lesson
	err := s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		var err error
		lesson, err = course.AddLesson(moduleID, models.AddLessonData{
			ID:          uuid.NewString(),
			Title:       req.Title,
			Description: req.Description,
			IsPreview:   req.IsPreview,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// UpdateLesson applies a partial lesson update
func (s *courseService) UpdateLesson(ctx context.Context, courseID string, tutorID int, moduleID, lessonID string, req *models.UpdateLessonRequest) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.UpdateLesson(moduleID, lessonID, models.UpdateLessonData{
			Title:       req.Title,
			Description: req.Description,
			IsPreview:   req.IsPreview,
		})
	})
}

// RemoveLesson removes a lesson and closes the order gap
func (s *courseService) RemoveLesson(ctx context.Context, courseID string, tutorID int, moduleID, lessonID string) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.RemoveLesson(moduleID, lessonID)
	})
}

// ReorderLessons rearranges a module's lessons by the given ID permutation
func (s *courseService) ReorderLessons(ctx context.Context, courseID string, tutorID int, moduleID string, orderedIDs []string) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.ReorderLessons(moduleID, orderedIDs)
	})
}

// AddChapter appends a chapter to a lesson
func (s *courseService) AddChapter(ctx context.Context, courseID string, tutorID int, moduleID, lessonID string, req *models.AddChapterRequest) (*models.Chapter, error) {
	var chapter models.Chapter
	err := s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		var err error
		chapter, err = course.AddChapter(moduleID, lessonID, models.AddChapterData{
			ID:       uuid.NewString(),
			Title:    req.Title,
			Type:     req.Type,
			IsFree:   req.IsFree,
			Content:  req.Content,
			Duration: req.Duration,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// UpdateChapter applies a partial chapter update
func (s *courseService) UpdateChapter(ctx context.Context, courseID string, tutorID int, moduleID, lessonID, chapterID string, req *models.UpdateChapterRequest) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.UpdateChapter(moduleID, lessonID, chapterID, models.UpdateChapterData{
			Title:    req.Title,
			IsFree:   req.IsFree,
			Content:  req.Content,
			Duration: req.Duration,
		})
	})
}

// RemoveChapter removes a chapter and closes the order gap
func (s *courseService) RemoveChapter(ctx context.Context, courseID string, tutorID int, moduleID, lessonID, chapterID string) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.RemoveChapter(moduleID, lessonID, chapterID)
	})
}

// ReorderChapters rearranges a lesson's chapters by the given ID permutation
func (s *courseService) ReorderChapters(ctx context.Context, courseID string, tutorID int, moduleID, lessonID string, orderedIDs []string) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.ReorderChapters(moduleID, lessonID, orderedIDs)
	})
}

// AttachVideo attaches uploaded video metadata to a video chapter
func (s *courseService) AttachVideo(ctx context.Context, courseID string, tutorID int, moduleID, lessonID, chapterID string, req *models.AttachVideoRequest) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.AttachVideo(moduleID, lessonID, chapterID, models.VideoMetadata{
			S3Key:      req.S3Key,
			URL:        req.URL,
			Size:       req.Size,
			MimeType:   req.MimeType,
			Status:     models.VideoStatusUploading,
			UploadedAt: time.Now(),
		})
	})
}

// ConfirmVideo marks an attached video as processed with its final duration
func (s *courseService) ConfirmVideo(ctx context.Context, courseID string, tutorID int, moduleID, lessonID, chapterID string, duration int) error {
	return s.mutate(ctx, courseID, tutorID, func(course *models.Course) error {
		return course.ConfirmVideo(moduleID, lessonID, chapterID, duration)
	})
}

// mutate runs the load-mutate-save cycle shared by every course mutation.
// The callback runs against the owned course; the document is persisted only
// when it succeeds.
func (s *courseService) mutate(ctx context.Context, courseID string, tutorID int, fn func(*models.Course) error) error {
	course, err := s.courseRepo.GetByIDAndTutor(ctx, courseID, tutorID)
	if err != nil {
		return err
	}

	if err := fn(course); err != nil {
		return err
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return fmt.Errorf("failed to persist course changes: %w", err)
	}

	return nil
}
