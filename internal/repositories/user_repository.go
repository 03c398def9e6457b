package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"go.uber.org/zap"
)

// userRepository implements user data access
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, role, first_name, last_name, bio, avatar, is_active, email_verified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Email, user.PasswordHash, user.Role, user.FirstName, user.LastName,
		user.Bio, user.Avatar, user.IsActive, user.EmailVerified)
	if err != nil {
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role, first_name, last_name, bio, avatar, is_active, email_verified
		FROM users
		WHERE email = ?
		LIMIT 1
	`

	return r.scanUser(r.db.QueryRowContext(ctx, query, email), "email")
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role, first_name, last_name, bio, avatar, is_active, email_verified
		FROM users
		WHERE id = ?
		LIMIT 1
	`

	return r.scanUser(r.db.QueryRowContext(ctx, query, userID), "id")
}

// ExistsByEmail checks if a user exists with the given email
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE email = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check email existence", zap.Error(err), zap.String("email", email))
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// UpdatePassword updates a user's password hash
func (r *userRepository) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	query := `UPDATE users SET password_hash = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		r.logger.Error("failed to update password", zap.Error(err), zap.Int("userId", userID))
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// UpdateRole updates a user's role
func (r *userRepository) UpdateRole(ctx context.Context, userID int, role models.Role) error {
	query := `UPDATE users SET role = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, role, userID)
	if err != nil {
		r.logger.Error("failed to update role", zap.Error(err), zap.Int("userId", userID))
		return fmt.Errorf("failed to update role: %w", err)
	}

	return nil
}

// UpdateProfile updates a user's profile fields
func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = ?, last_name = ?, bio = ?, avatar = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.Bio, user.Avatar, user.ID)
	if err != nil {
		r.logger.Error("failed to update profile", zap.Error(err), zap.Int("userId", user.ID))
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

func (r *userRepository) scanUser(row *sql.Row, by string) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Avatar,
		&user.IsActive,
		&user.EmailVerified,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		r.logger.Error("failed to get user", zap.Error(err), zap.String("by", by))
		return nil, fmt.Errorf("failed to get user by %s: %w", by, err)
	}

	return user, nil
}
