package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"go.uber.org/zap"
)

// instructorApplicationRepository implements instructor application data access
type instructorApplicationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInstructorApplicationRepository creates a new instructor application repository
func NewInstructorApplicationRepository(db *sql.DB, logger *zap.Logger) *instructorApplicationRepository {
	return &instructorApplicationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new instructor application
func (r *instructorApplicationRepository) Create(ctx context.Context, application *models.InstructorApplication) error {
	query := `
		INSERT INTO instructor_applications
			(user_id, bio, experience_years, teaching_experience, course_intent, level, language, status, rejection_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		application.UserID, application.Bio, application.ExperienceYears,
		application.TeachingExperience, application.CourseIntent, application.Level,
		application.Language, application.Status, application.RejectionReason, now, now)
	if err != nil {
		r.logger.Error("failed to create instructor application", zap.Error(err), zap.Int("userId", application.UserID))
		return fmt.Errorf("failed to create instructor application: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	application.ID = int(id)
	application.CreatedAt = now
	application.UpdatedAt = now
	return nil
}

// GetByID retrieves an instructor application by ID
func (r *instructorApplicationRepository) GetByID(ctx context.Context, id int) (*models.InstructorApplication, error) {
	query := selectApplicationQuery + ` WHERE id = ? LIMIT 1`
	return r.scanApplication(r.db.QueryRowContext(ctx, query, id))
}

// GetByUserID retrieves the most recent application of a user
func (r *instructorApplicationRepository) GetByUserID(ctx context.Context, userID int) (*models.InstructorApplication, error) {
	query := selectApplicationQuery + ` WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`
	return r.scanApplication(r.db.QueryRowContext(ctx, query, userID))
}

// UpdateStatus updates the review status and rejection reason of an application
func (r *instructorApplicationRepository) UpdateStatus(ctx context.Context, id int, status models.ApplicationStatus, rejectionReason string) error {
	query := `
		UPDATE instructor_applications
		SET status = ?, rejection_reason = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, rejectionReason, time.Now(), id)
	if err != nil {
		r.logger.Error("failed to update instructor application", zap.Error(err), zap.Int("applicationId", id))
		return fmt.Errorf("failed to update instructor application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("application not found")
	}

	return nil
}

// GetAll retrieves a page of applications, optionally filtered by status,
// newest first
func (r *instructorApplicationRepository) GetAll(ctx context.Context, status *models.ApplicationStatus, page, count int) ([]models.InstructorApplication, error) {
	var whereClauses []string
	var args []any

	if status != nil {
		whereClauses = append(whereClauses, "status = ?")
		args = append(args, *status)
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	offset := (page - 1) * count
	args = append(args, count, offset)

	query := fmt.Sprintf(`%s %s ORDER BY created_at DESC LIMIT ? OFFSET ?`, selectApplicationQuery, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to get instructor applications", zap.Error(err))
		return nil, fmt.Errorf("failed to get instructor applications: %w", err)
	}
	defer rows.Close()

	var applications []models.InstructorApplication
	for rows.Next() {
		var application models.InstructorApplication
		if err := rows.Scan(
			&application.ID,
			&application.UserID,
			&application.Bio,
			&application.ExperienceYears,
			&application.TeachingExperience,
			&application.CourseIntent,
			&application.Level,
			&application.Language,
			&application.Status,
			&application.RejectionReason,
			&application.CreatedAt,
			&application.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan instructor application: %w", err)
		}
		applications = append(applications, application)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate instructor applications: %w", err)
	}

	return applications, nil
}

// Count counts applications, optionally filtered by status
func (r *instructorApplicationRepository) Count(ctx context.Context, status *models.ApplicationStatus) (int, error) {
	query := `SELECT COUNT(*) FROM instructor_applications`
	var args []any

	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, *status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		r.logger.Error("failed to count instructor applications", zap.Error(err))
		return 0, fmt.Errorf("failed to count instructor applications: %w", err)
	}

	return total, nil
}

const selectApplicationQuery = `
	SELECT id, user_id, bio, experience_years, teaching_experience, course_intent, level, language, status, rejection_reason, created_at, updated_at
	FROM instructor_applications
`

func (r *instructorApplicationRepository) scanApplication(row *sql.Row) (*models.InstructorApplication, error) {
	application := &models.InstructorApplication{}
	err := row.Scan(
		&application.ID,
		&application.UserID,
		&application.Bio,
		&application.ExperienceYears,
		&application.TeachingExperience,
		&application.CourseIntent,
		&application.Level,
		&application.Language,
		&application.Status,
		&application.RejectionReason,
		&application.CreatedAt,
		&application.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("application not found")
	}
	if err != nil {
		r.logger.Error("failed to get instructor application", zap.Error(err))
		return nil, fmt.Errorf("failed to get instructor application: %w", err)
	}

	return application, nil
}
