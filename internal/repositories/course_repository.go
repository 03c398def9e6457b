package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"go.uber.org/zap"
)

// courseRepository persists each course as a single JSON document embedding
// the whole module/lesson/chapter tree. The tutor id and status are kept in
// dedicated indexed columns for list queries; everything else round-trips
// through the snapshot.
type courseRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB, logger *zap.Logger) *courseRepository {
	return &courseRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new course document
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	snapshot := course.Snapshot()
	document, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal course document: %w", err)
	}

	query := `
		INSERT INTO courses (id, tutor_id, status, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		snapshot.ID, snapshot.TutorID, snapshot.Status, document, snapshot.CreatedAt, snapshot.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to create course", zap.Error(err), zap.String("courseId", snapshot.ID))
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `
		SELECT document
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	return r.scanCourse(r.db.QueryRowContext(ctx, query, id))
}

// GetByIDAndTutor retrieves a course by ID only if it belongs to the tutor
func (r *courseRepository) GetByIDAndTutor(ctx context.Context, id string, tutorID int) (*models.Course, error) {
	query := `
		SELECT document
		FROM courses
		WHERE id = ? AND tutor_id = ?
		LIMIT 1
	`

	return r.scanCourse(r.db.QueryRowContext(ctx, query, id, tutorID))
}

// Update replaces the stored document of a course
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	snapshot := course.Snapshot()
	document, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal course document: %w", err)
	}

	query := `
		UPDATE courses
		SET tutor_id = ?, status = ?, document = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		snapshot.TutorID, snapshot.Status, document, snapshot.UpdatedAt, snapshot.ID)
	if err != nil {
		r.logger.Error("failed to update course", zap.Error(err), zap.String("courseId", snapshot.ID))
		return fmt.Errorf("failed to update course: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("course not found")
	}

	return nil
}

// Delete removes a course document
func (r *courseRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM courses WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to delete course", zap.Error(err), zap.String("courseId", id))
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("course not found")
	}

	return nil
}

// GetByTutor retrieves a page of a tutor's courses, optionally filtered by
// status, most recently updated first
func (r *courseRepository) GetByTutor(ctx context.Context, tutorID int, status *models.CourseStatus, page, count int) ([]*models.Course, error) {
	whereClauses := []string{"tutor_id = ?"}
	args := []any{tutorID}

	if status != nil {
		whereClauses = append(whereClauses, "status = ?")
		args = append(args, *status)
	}

	offset := (page - 1) * count
	args = append(args, count, offset)

	query := fmt.Sprintf(`
		SELECT document
		FROM courses
		WHERE %s
		ORDER BY updated_at DESC
		LIMIT ? OFFSET ?
	`, strings.Join(whereClauses, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to get courses by tutor", zap.Error(err), zap.Int("tutorId", tutorID))
		return nil, fmt.Errorf("failed to get courses by tutor: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("failed to scan course document: %w", err)
		}

		course, err := unmarshalCourse(document)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	return courses, nil
}

// CountByTutor counts a tutor's courses, optionally filtered by status
func (r *courseRepository) CountByTutor(ctx context.Context, tutorID int, status *models.CourseStatus) (int, error) {
	query := `SELECT COUNT(*) FROM courses WHERE tutor_id = ?`
	args := []any{tutorID}

	if status != nil {
		query += ` AND status = ?`
		args = append(args, *status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		r.logger.Error("failed to count courses by tutor", zap.Error(err), zap.Int("tutorId", tutorID))
		return 0, fmt.Errorf("failed to count courses by tutor: %w", err)
	}

	return total, nil
}

// scanCourse reads a single document row and rehydrates the aggregate
func (r *courseRepository) scanCourse(row *sql.Row) (*models.Course, error) {
	var document []byte
	err := row.Scan(&document)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found")
	}
	if err != nil {
		r.logger.Error("failed to get course", zap.Error(err))
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return unmarshalCourse(document)
}

func unmarshalCourse(document []byte) (*models.Course, error) {
	var snapshot models.CourseSnapshot
	if err := json.Unmarshal(document, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal course document: %w", err)
	}
	return models.ReconstructCourse(snapshot), nil
}
