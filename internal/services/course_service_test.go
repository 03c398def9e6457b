package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockCourseRepository is a mock implementation of CourseRepository
type mockCourseRepository struct {
	course    *models.Course
	courses   []*models.Course
	total     int
	getErr    error
	createErr error
	updateErr error
	deleteErr error
	countErr  error

	created *models.Course
	updated *models.Course
	deleted string
}

func (m *mockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = course
	return nil
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.course, nil
}

func (m *mockCourseRepository) GetByIDAndTutor(ctx context.Context, id string, tutorID int) (*models.Course, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.course, nil
}

func (m *mockCourseRepository) Update(ctx context.Context, course *models.Course) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = course
	return nil
}

func (m *mockCourseRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = id
	return nil
}

func (m *mockCourseRepository) GetByTutor(ctx context.Context, tutorID int, status *models.CourseStatus, page, count int) ([]*models.Course, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.courses, nil
}

func (m *mockCourseRepository) CountByTutor(ctx context.Context, tutorID int, status *models.CourseStatus) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.total, nil
}

func newServiceDraftCourse(t *testing.T) *models.Course {
	t.Helper()
	course, err := models.CreateCourse(models.CreateCourseData{
		ID:          "course-1",
		TutorID:     7,
		Title:       "Practical Go",
		Description: "A long description that certainly clears the minimum length.",
		Category:    models.CourseCategoryDevelopment,
		Level:       models.CourseLevelBeginner,
		Language:    "en",
		Price:       49.99,
	})
	require.NoError(t, err)
	return course
}

func TestCourseService_CreateCourse(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.CreateCourseRequest
		repo          *mockCourseRepository
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			req: &models.CreateCourseRequest{
				Title:       "Practical Go",
				Description: "A long description that certainly clears the minimum length.",
				Category:    models.CourseCategoryDevelopment,
				Level:       models.CourseLevelBeginner,
				Language:    "en",
				Price:       49.99,
			},
			repo:          &mockCourseRepository{},
			expectedError: false,
		},
		{
			name: "title too short",
			req: &models.CreateCourseRequest{
				Title:       "Go",
				Description: "A long description that certainly clears the minimum length.",
				Category:    models.CourseCategoryDevelopment,
				Level:       models.CourseLevelBeginner,
				Language:    "en",
			},
			repo:          &mockCourseRepository{},
			expectedError: true,
			errorContains: "Title must be at least 3 characters",
		},
		{
			name: "repository error",
			req: &models.CreateCourseRequest{
				Title:       "Practical Go",
				Description: "A long description that certainly clears the minimum length.",
				Category:    models.CourseCategoryDevelopment,
				Level:       models.CourseLevelBeginner,
				Language:    "en",
			},
			repo:          &mockCourseRepository{createErr: errors.New("database error")},
			expectedError: true,
			errorContains: "database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewCourseService(tt.repo, zap.NewNop())

			result, err := service.CreateCourse(context.Background(), 7, tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.NotEmpty(t, result.ID)
				assert.Equal(t, 7, result.TutorID)
				assert.Equal(t, models.CourseStatusDraft, result.Status)
				assert.NotNil(t, tt.repo.created)
			}
		})
	}
}

func TestCourseService_GetCourse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockCourseRepository{course: newServiceDraftCourse(t)}
		service := NewCourseService(repo, zap.NewNop())

		result, err := service.GetCourse(context.Background(), "course-1", 7)

		assert.NoError(t, err)
		assert.Equal(t, "course-1", result.ID)
		assert.NotNil(t, result.Modules)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockCourseRepository{getErr: fmt.Errorf("course not found")}
		service := NewCourseService(repo, zap.NewNop())

		result, err := service.GetCourse(context.Background(), "missing", 7)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "course not found")
	})
}

func TestCourseService_ListCourses(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockCourseRepository{
			courses: []*models.Course{newServiceDraftCourse(t), newServiceDraftCourse(t)},
			total:   5,
		}
		service := NewCourseService(repo, zap.NewNop())

		result, err := service.ListCourses(context.Background(), 7, nil, 1, 2)

		assert.NoError(t, err)
		assert.Len(t, result.Courses, 2)
		assert.Equal(t, 5, result.Total)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 2, result.Count)
	})

	t.Run("normalizes pagination", func(t *testing.T) {
		repo := &mockCourseRepository{}
		service := NewCourseService(repo, zap.NewNop())

		result, err := service.ListCourses(context.Background(), 7, nil, 0, 500)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 10, result.Count)
	})

	t.Run("count error", func(t *testing.T) {
		repo := &mockCourseRepository{countErr: errors.New("database error")}
		service := NewCourseService(repo, zap.NewNop())

		result, err := service.ListCourses(context.Background(), 7, nil, 1, 10)

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestCourseService_UpdateCourse(t *testing.T) {
	t.Run("success persists changes", func(t *testing.T) {
		repo := &mockCourseRepository{course: newServiceDraftCourse(t)}
		service := NewCourseService(repo, zap.NewNop())

		title := "Practical Go, Second Edition"
		result, err := service.UpdateCourse(context.Background(), "course-1", 7, &models.UpdateCourseRequest{Title: &title})

		assert.NoError(t, err)
		assert.Equal(t, title, result.Title)
		assert.NotNil(t, repo.updated)
	})

	t.Run("domain error is not persisted", func(t *testing.T) {
		repo := &mockCourseRepository{course: newServiceDraftCourse(t)}
		service := NewCourseService(repo, zap.NewNop())

		title := "Go"
		result, err := service.UpdateCourse(context.Background(), "course-1", 7, &models.UpdateCourseRequest{Title: &title})

		assert.Error(t, err)
		assert.True(t, models.IsDomainError(err))
		assert.Nil(t, result)
		assert.Nil(t, repo.updated)
	})
}

func TestCourseService_DeleteCourse(t *testing.T) {
	t.Run("deletes a draft", func(t *testing.T) {
		repo := &mockCourseRepository{course: newServiceDraftCourse(t)}
		service := NewCourseService(repo, zap.NewNop())

		err := service.DeleteCourse(context.Background(), "course-1", 7)

		assert.NoError(t, err)
		assert.Equal(t, "course-1", repo.deleted)
	})

	t.Run("refuses non-draft", func(t *testing.T) {
		course := newServiceDraftCourse(t)
		snap := course.Snapshot()
		snap.Status = models.CourseStatusPublished
		repo := &mockCourseRepository{course: models.ReconstructCourse(snap)}
		service := NewCourseService(repo, zap.NewNop())

		err := service.DeleteCourse(context.Background(), "course-1", 7)

		assert.Error(t, err)
		assert.True(t, models.IsDomainError(err))
		assert.Contains(t, err.Error(), "Only draft courses can be deleted")
		assert.Empty(t, repo.deleted)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockCourseRepository{getErr: fmt.Errorf("course not found")}
		service := NewCourseService(repo, zap.NewNop())

		err := service.DeleteCourse(context.Background(), "missing", 7)

		assert.Error(t, err)
	})
}

func TestCourseService_PublishCourse(t *testing.T) {
	t.Run("empty draft cannot be published", func(t *testing.T) {
		repo := &mockCourseRepository{course: newServiceDraftCourse(t)}
		service := NewCourseService(repo, zap.NewNop())

		err := service.PublishCourse(context.Background(), "course-1", 7)

		assert.Error(t, err)
		assert.True(t, models.IsDomainError(err))
		assert.Contains(t, err.Error(), "Course cannot be published")
		assert.Nil(t, repo.updated)
	})

	t.Run("ready course is published and persisted", func(t *testing.T) {
		course := newServiceDraftCourse(t)
		module, err := course.AddModule(models.AddModuleData{ID: "mod-1", Title: "Basics"})
		require.NoError(t, err)
		lesson, err := course.AddLesson(module.ID, models.AddLessonData{ID: "les-1", Title: "Getting Started"})
		require.NoError(t, err)
		_, err = course.AddChapter(module.ID, lesson.ID, models.AddChapterData{
			ID:      "cha-1",
			Title:   "Welcome Notes",
			Type:    models.ChapterTypeText,
			Content: "Read this before the first lesson.",
		})
		require.NoError(t, err)
		require.NoError(t, course.SetThumbnail("https://cdn.example.com/thumb.jpg"))

		repo := &mockCourseRepository{course: course}
		service := NewCourseService(repo, zap.NewNop())

		err = service.PublishCourse(context.Background(), "course-1", 7)

		assert.NoError(t, err)
		assert.NotNil(t, repo.updated)
		assert.Equal(t, models.CourseStatusPublished, repo.updated.Status())
	})
}

func TestCourseService_ModuleOperations(t *testing.T) {
	t.Run("add module", func(t *testing.T) {
		repo := &mockCourseRepository{course: newServiceDraftCourse(t)}
		service := NewCourseService(repo, zap.NewNop())

		module, err := service.AddModule(context.Background(), "course-1", 7, &models.AddModuleRequest{Title: "Basics"})

		assert.NoError(t, err)
		assert.NotEmpty(t, module.ID)
		assert.Equal(t, 0, module.Order)
		assert.NotNil(t, repo.updated)
	})

	t.Run("reorder with unknown id", func(t *testing.T) {
		course := newServiceDraftCourse(t)
		_, err := course.AddModule(models.AddModuleData{ID: "mod-1", Title: "Basics"})
		require.NoError(t, err)

		repo := &mockCourseRepository{course: course}
		service := NewCourseService(repo, zap.NewNop())

		err = service.ReorderModules(context.Background(), "course-1", 7, []string{"mod-x"})

		assert.Error(t, err)
		assert.True(t, models.IsDomainError(err))
		assert.Nil(t, repo.updated)
	})

	t.Run("persist failure surfaces", func(t *testing.T) {
		repo := &mockCourseRepository{
			course:    newServiceDraftCourse(t),
			updateErr: errors.New("database error"),
		}
		service := NewCourseService(repo, zap.NewNop())

		_, err := service.AddModule(context.Background(), "course-1", 7, &models.AddModuleRequest{Title: "Basics"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to persist course changes")
	})
}

func TestCourseService_VideoWorkflow(t *testing.T) {
	course := newServiceDraftCourse(t)
	module, err := course.AddModule(models.AddModuleData{ID: "mod-1", Title: "Basics"})
	require.NoError(t, err)
	lesson, err := course.AddLesson(module.ID, models.AddLessonData{ID: "les-1", Title: "Getting Started"})
	require.NoError(t, err)
	chapter, err := course.AddChapter(module.ID, lesson.ID, models.AddChapterData{
		ID:    "cha-1",
		Title: "Intro Video",
		Type:  models.ChapterTypeVideo,
	})
	require.NoError(t, err)

	repo := &mockCourseRepository{course: course}
	service := NewCourseService(repo, zap.NewNop())

	err = service.AttachVideo(context.Background(), "course-1", 7, module.ID, lesson.ID, chapter.ID, &models.AttachVideoRequest{
		S3Key:    "videos/course-1/intro.mp4",
		URL:      "https://cdn.example.com/videos/course-1/intro.mp4",
		Size:     1024,
		MimeType: "video/mp4",
	})
	require.NoError(t, err)

	err = service.ConfirmVideo(context.Background(), "course-1", 7, module.ID, lesson.ID, chapter.ID, 120)
	require.NoError(t, err)

	modules := repo.updated.Modules()
	video := modules[0].Lessons[0].Chapters[0].Video
	require.NotNil(t, video)
	assert.Equal(t, models.VideoStatusReady, video.Status)
	assert.Equal(t, 120, video.Duration)
	assert.Equal(t, 120, repo.updated.TotalDuration())
}

func TestCourseService_ConfirmVideoWithoutAttachment(t *testing.T) {
	course := newServiceDraftCourse(t)
	module, err := course.AddModule(models.AddModuleData{ID: "mod-1", Title: "Basics"})
	require.NoError(t, err)
	lesson, err := course.AddLesson(module.ID, models.AddLessonData{ID: "les-1", Title: "Getting Started"})
	require.NoError(t, err)
	chapter, err := course.AddChapter(module.ID, lesson.ID, models.AddChapterData{
		ID:    "cha-1",
		Title: "Intro Video",
		Type:  models.ChapterTypeVideo,
	})
	require.NoError(t, err)

	repo := &mockCourseRepository{course: course}
	service := NewCourseService(repo, zap.NewNop())

	err = service.ConfirmVideo(context.Background(), "course-1", 7, module.ID, lesson.ID, chapter.ID, 120)

	assert.Error(t, err)
	assert.True(t, models.IsDomainError(err))
	assert.Contains(t, err.Error(), "No video is attached to this chapter")
}
