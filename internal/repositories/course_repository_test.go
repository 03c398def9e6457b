package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupCourseTestRepository creates a course repository with a mock database
func setupCourseTestRepository(t *testing.T) (*courseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCourseRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func testCourse(t *testing.T) *models.Course {
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
		Currency:    "USD",
	})
	require.NoError(t, err)
	return course
}

func testCourseDocument(t *testing.T, course *models.Course) []byte {
	t.Helper()
	document, err := json.Marshal(course.Snapshot())
	require.NoError(t, err)
	return document
}

func TestNewCourseRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewCourseRepository(db, zap.NewNop())

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestCourseRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses \(id, tutor_id, status, document, created_at, updated_at\)`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to create course",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), testCourse(t))

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_GetByID(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		setupMock     func(*testing.T, sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			id:   "course-1",
			setupMock: func(t *testing.T, mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"document"}).
					AddRow(testCourseDocument(t, testCourse(t)))
				mock.ExpectQuery(`SELECT document FROM courses WHERE id = \?`).
					WithArgs("course-1").
					WillReturnRows(rows)
			},
			expectedError: false,
		},
		{
			name: "course not found",
			id:   "missing",
			setupMock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT document FROM courses WHERE id = \?`).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			errorContains: "course not found",
		},
		{
			name: "database error",
			id:   "course-1",
			setupMock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT document FROM courses WHERE id = \?`).
					WithArgs("course-1").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to get course",
		},
		{
			name: "corrupt document",
			id:   "course-1",
			setupMock: func(t *testing.T, mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"document"}).
					AddRow([]byte("{not json"))
				mock.ExpectQuery(`SELECT document FROM courses WHERE id = \?`).
					WithArgs("course-1").
					WillReturnRows(rows)
			},
			expectedError: true,
			errorContains: "failed to unmarshal course document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(t, mock)

			result, err := repo.GetByID(context.Background(), tt.id)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, "course-1", result.ID())
				assert.Equal(t, "Practical Go", result.Title())
				assert.Equal(t, models.CourseStatusDraft, result.Status())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_GetByIDAndTutor(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		tutorID       int
		setupMock     func(*testing.T, sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name:    "success",
			id:      "course-1",
			tutorID: 7,
			setupMock: func(t *testing.T, mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"document"}).
					AddRow(testCourseDocument(t, testCourse(t)))
				mock.ExpectQuery(`SELECT document FROM courses WHERE id = \? AND tutor_id = \?`).
					WithArgs("course-1", 7).
					WillReturnRows(rows)
			},
			expectedError: false,
		},
		{
			name:    "not owned by tutor",
			id:      "course-1",
			tutorID: 99,
			setupMock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT document FROM courses WHERE id = \? AND tutor_id = \?`).
					WithArgs("course-1", 99).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			errorContains: "course not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(t, mock)

			result, err := repo.GetByIDAndTutor(context.Background(), tt.id, tt.tutorID)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, 7, result.TutorID())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_Update(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses SET tutor_id = \?, status = \?, document = \?, updated_at = \? WHERE id = \?`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "course not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses SET`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			errorContains: "course not found",
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses SET`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to update course",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Update(context.Background(), testCourse(t))

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			id:   "course-1",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
					WithArgs("course-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "course not found",
			id:   "missing",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
					WithArgs("missing").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			errorContains: "course not found",
		},
		{
			name: "database error",
			id:   "course-1",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
					WithArgs("course-1").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to delete course",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), tt.id)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_GetByTutor(t *testing.T) {
	draft := models.CourseStatusDraft

	tests := []struct {
		name          string
		tutorID       int
		status        *models.CourseStatus
		page          int
		count         int
		setupMock     func(*testing.T, sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name:    "success with defaults",
			tutorID: 7,
			page:    1,
			count:   10,
			setupMock: func(t *testing.T, mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"document"}).
					AddRow(testCourseDocument(t, testCourse(t))).
					AddRow(testCourseDocument(t, testCourse(t)))
				mock.ExpectQuery(`SELECT document FROM courses WHERE tutor_id = \?.*ORDER BY updated_at DESC LIMIT \? OFFSET \?`).
					WithArgs(7, 10, 0).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 2,
		},
		{
			name:    "success with status filter",
			tutorID: 7,
			status:  &draft,
			page:    1,
			count:   10,
			setupMock: func(t *testing.T, mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"document"}).
					AddRow(testCourseDocument(t, testCourse(t)))
				mock.ExpectQuery(`SELECT document FROM courses WHERE tutor_id = \? AND status = \?.*LIMIT \? OFFSET \?`).
					WithArgs(7, "draft", 10, 0).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 1,
		},
		{
			name:    "success with pagination",
			tutorID: 7,
			page:    3,
			count:   5,
			setupMock: func(t *testing.T, mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"document"}).
					AddRow(testCourseDocument(t, testCourse(t)))
				mock.ExpectQuery(`SELECT document FROM courses WHERE tutor_id = \?.*LIMIT \? OFFSET \?`).
					WithArgs(7, 5, 10).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 1,
		},
		{
			name:    "empty results",
			tutorID: 7,
			page:    1,
			count:   10,
			setupMock: func(t *testing.T, mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"document"})
				mock.ExpectQuery(`SELECT document FROM courses WHERE tutor_id = \?`).
					WithArgs(7, 10, 0).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 0,
		},
		{
			name:    "database query error",
			tutorID: 7,
			page:    1,
			count:   10,
			setupMock: func(t *testing.T, mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT document FROM courses WHERE tutor_id = \?`).
					WithArgs(7, 10, 0).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name:    "corrupt document",
			tutorID: 7,
			page:    1,
			count:   10,
			setupMock: func(t *testing.T, mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"document"}).
					AddRow([]byte("{not json"))
				mock.ExpectQuery(`SELECT document FROM courses WHERE tutor_id = \?`).
					WithArgs(7, 10, 0).
					WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(t, mock)

			result, err := repo.GetByTutor(context.Background(), tt.tutorID, tt.status, tt.page, tt.count)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_CountByTutor(t *testing.T) {
	published := models.CourseStatusPublished

	tests := []struct {
		name          string
		tutorID       int
		status        *models.CourseStatus
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedTotal int
	}{
		{
			name:    "success",
			tutorID: 7,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(3)
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM courses WHERE tutor_id = \?`).
					WithArgs(7).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedTotal: 3,
		},
		{
			name:    "success with status filter",
			tutorID: 7,
			status:  &published,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1)
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM courses WHERE tutor_id = \? AND status = \?`).
					WithArgs(7, "published").
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedTotal: 1,
		},
		{
			name:    "database error",
			tutorID: 7,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM courses WHERE tutor_id = \?`).
					WithArgs(7).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			total, err := repo.CountByTutor(context.Background(), tt.tutorID, tt.status)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Zero(t, total)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedTotal, total)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_RoundTrip(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	course := testCourse(t)
	_, err := course.AddModule(models.AddModuleData{ID: "mod-1", Title: "Basics"})
	require.NoError(t, err)

	document := testCourseDocument(t, course)
	rows := sqlmock.NewRows([]string{"document"}).AddRow(document)
	mock.ExpectQuery(`SELECT document FROM courses WHERE id = \?`).
		WithArgs("course-1").
		WillReturnRows(rows)

	loaded, err := repo.GetByID(context.Background(), "course-1")
	require.NoError(t, err)

	snap := loaded.Snapshot()
	original := course.Snapshot()
	assert.Equal(t, original.ID, snap.ID)
	assert.Equal(t, original.TutorID, snap.TutorID)
	assert.Len(t, snap.Modules, 1)
	assert.Equal(t, "Basics", snap.Modules[0].Title)
	assert.WithinDuration(t, original.CreatedAt, snap.CreatedAt, time.Second)

	assert.NoError(t, mock.ExpectationsWereMet())
}
