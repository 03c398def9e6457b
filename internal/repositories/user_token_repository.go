package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"go.uber.org/zap"
)

// userTokenRepository implements refresh token data access. Tokens are
// stored hashed; lookups always receive the hash, never the raw token.
type userTokenRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserTokenRepository creates a new user token repository
func NewUserTokenRepository(db *sql.DB, logger *zap.Logger) *userTokenRepository {
	return &userTokenRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new refresh token hash
func (r *userTokenRepository) Create(ctx context.Context, userToken *models.UserToken) error {
	query := `
		INSERT INTO user_tokens (user_id, token, created_at)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, userToken.UserID, userToken.Token, time.Now())
	if err != nil {
		r.logger.Error("failed to create user token", zap.Error(err))
		return fmt.Errorf("failed to create user token: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	userToken.ID = int(id)
	return nil
}

// GetByToken retrieves a stored token by its hash
func (r *userTokenRepository) GetByToken(ctx context.Context, token string) (*models.UserToken, error) {
	query := `
		SELECT id, user_id, token
		FROM user_tokens
		WHERE token = ?
		LIMIT 1
	`

	userToken := &models.UserToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&userToken.ID,
		&userToken.UserID,
		&userToken.Token,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("token not found")
	}
	if err != nil {
		r.logger.Error("failed to get user token", zap.Error(err))
		return nil, fmt.Errorf("failed to get user token: %w", err)
	}

	return userToken, nil
}

// UpdateToken replaces an old token hash with a new one for the same user
func (r *userTokenRepository) UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error {
	query := `
		UPDATE user_tokens
		SET token = ?, created_at = ?
		WHERE token = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, newToken, time.Now(), oldToken, userID)
	if err != nil {
		r.logger.Error("failed to update user token", zap.Error(err), zap.Int("userId", userID))
		return fmt.Errorf("failed to update user token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("token not found")
	}

	return nil
}

// DeleteByToken removes a stored token by its hash
func (r *userTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM user_tokens WHERE token = ?`

	_, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		r.logger.Error("failed to delete user token", zap.Error(err))
		return fmt.Errorf("failed to delete user token: %w", err)
	}

	return nil
}

// DeleteOlderThan removes tokens created before the cutoff and returns the
// number of tokens removed
func (r *userTokenRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	query := `DELETE FROM user_tokens WHERE created_at < ?`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		r.logger.Error("failed to delete expired user tokens", zap.Error(err))
		return 0, fmt.Errorf("failed to delete expired user tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(rows), nil
}
