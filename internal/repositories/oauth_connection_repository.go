package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"go.uber.org/zap"
)

// oauthConnectionRepository implements OAuth connection data access
type oauthConnectionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOAuthConnectionRepository creates a new OAuth connection repository
func NewOAuthConnectionRepository(db *sql.DB, logger *zap.Logger) *oauthConnectionRepository {
	return &oauthConnectionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new OAuth connection
func (r *oauthConnectionRepository) Create(ctx context.Context, connection *models.OAuthConnection) error {
	query := `
		INSERT INTO oauth_connections (user_id, provider, provider_id, email, name, avatar_url)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		connection.UserID, connection.Provider, connection.ProviderID,
		connection.Email, connection.Name, connection.AvatarURL)
	if err != nil {
		r.logger.Error("failed to create oauth connection", zap.Error(err),
			zap.Int("userId", connection.UserID), zap.String("provider", connection.Provider))
		return fmt.Errorf("failed to create oauth connection: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	connection.ID = int(id)
	return nil
}

// GetByProviderAndProviderID retrieves a connection by provider identity
func (r *oauthConnectionRepository) GetByProviderAndProviderID(ctx context.Context, provider, providerID string) (*models.OAuthConnection, error) {
	query := `
		SELECT id, user_id, provider, provider_id, email, name, avatar_url
		FROM oauth_connections
		WHERE provider = ? AND provider_id = ?
		LIMIT 1
	`

	connection := &models.OAuthConnection{}
	err := r.db.QueryRowContext(ctx, query, provider, providerID).Scan(
		&connection.ID,
		&connection.UserID,
		&connection.Provider,
		&connection.ProviderID,
		&connection.Email,
		&connection.Name,
		&connection.AvatarURL,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("oauth connection not found")
	}
	if err != nil {
		r.logger.Error("failed to get oauth connection", zap.Error(err), zap.String("provider", provider))
		return nil, fmt.Errorf("failed to get oauth connection: %w", err)
	}

	return connection, nil
}

// GetByUserID retrieves all connections linked to a user
func (r *oauthConnectionRepository) GetByUserID(ctx context.Context, userID int) ([]models.OAuthConnection, error) {
	query := `
		SELECT id, user_id, provider, provider_id, email, name, avatar_url
		FROM oauth_connections
		WHERE user_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to get oauth connections", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to get oauth connections: %w", err)
	}
	defer rows.Close()

	var connections []models.OAuthConnection
	for rows.Next() {
		var connection models.OAuthConnection
		if err := rows.Scan(
			&connection.ID,
			&connection.UserID,
			&connection.Provider,
			&connection.ProviderID,
			&connection.Email,
			&connection.Name,
			&connection.AvatarURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan oauth connection: %w", err)
		}
		connections = append(connections, connection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate oauth connections: %w", err)
	}

	return connections, nil
}
