package services

import (
	"context"
	"testing"

	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"github.com/dev13-Vishnu/deep-learn-server/internal/oauth"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// mockConnectionRepository is a mock implementation of OAuthConnectionRepository
type mockConnectionRepository struct {
	connection *models.OAuthConnection
	getErr     error
	createErr  error
	created    *models.OAuthConnection
}

func (m *mockConnectionRepository) Create(ctx context.Context, connection *models.OAuthConnection) error {
	if m.createErr != nil {
		return m.createErr
	}
	connection.ID = 5
	m.created = connection
	return nil
}

func (m *mockConnectionRepository) GetByProviderAndProviderID(ctx context.Context, provider, providerID string) (*models.OAuthConnection, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.connection, nil
}

func googleProfile() *oauth.Profile {
	return &oauth.Profile{
		ProviderID: "google-123",
		Email:      "Student@Example.com",
		Name:       "Aiko Tanaka",
		AvatarURL:  "https://example.com/avatar.png",
	}
}

func TestOAuthService_ResolveUser(t *testing.T) {
	t.Run("returns the user behind an existing connection", func(t *testing.T) {
		connectionRepo := &mockConnectionRepository{
			connection: &models.OAuthConnection{ID: 5, UserID: 7, Provider: "google", ProviderID: "google-123"},
		}
		userRepo := &mockUserRepository{user: &models.User{ID: 7, Role: models.RoleStudent, IsActive: true}}
		oauthService := NewOAuthService(nil, connectionRepo, userRepo, &mockUserTokenRepository{}, nil, testTokenGenerator(), zap.NewNop())

		user, err := oauthService.resolveUser(context.Background(), "google", googleProfile())

		assert.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.Nil(t, connectionRepo.created)
	})

	t.Run("links a new connection to an existing account", func(t *testing.T) {
		connectionRepo := &mockConnectionRepository{getErr: assert.AnError}
		userRepo := &mockUserRepository{user: &models.User{ID: 7, Email: "student@example.com", Role: models.RoleStudent, IsActive: true}}
		oauthService := NewOAuthService(nil, connectionRepo, userRepo, &mockUserTokenRepository{}, nil, testTokenGenerator(), zap.NewNop())

		user, err := oauthService.resolveUser(context.Background(), "google", googleProfile())

		assert.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.Nil(t, userRepo.created)
		assert.NotNil(t, connectionRepo.created)
		assert.Equal(t, "google", connectionRepo.created.Provider)
		assert.Equal(t, "google-123", connectionRepo.created.ProviderID)
		assert.Equal(t, "student@example.com", connectionRepo.created.Email)
	})

	t.Run("provisions a student account for a first-time login", func(t *testing.T) {
		connectionRepo := &mockConnectionRepository{getErr: assert.AnError}
		userRepo := &mockUserRepository{err: assert.AnError}
		oauthService := NewOAuthService(nil, connectionRepo, userRepo, &mockUserTokenRepository{}, nil, testTokenGenerator(), zap.NewNop())

		user, err := oauthService.resolveUser(context.Background(), "google", googleProfile())

		assert.NoError(t, err)
		assert.NotNil(t, userRepo.created)
		assert.Equal(t, 42, user.ID)
		assert.Equal(t, "student@example.com", user.Email)
		assert.Equal(t, models.RoleStudent, user.Role)
		assert.Equal(t, "Aiko", user.FirstName)
		assert.Equal(t, "Tanaka", user.LastName)
		assert.True(t, user.EmailVerified)
		assert.True(t, user.IsActive)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotNil(t, connectionRepo.created)
		assert.Equal(t, 42, connectionRepo.created.UserID)
	})

	t.Run("surfaces connection create failures", func(t *testing.T) {
		connectionRepo := &mockConnectionRepository{getErr: assert.AnError, createErr: assert.AnError}
		userRepo := &mockUserRepository{user: &models.User{ID: 7, IsActive: true}}
		oauthService := NewOAuthService(nil, connectionRepo, userRepo, &mockUserTokenRepository{}, nil, testTokenGenerator(), zap.NewNop())

		_, err := oauthService.resolveUser(context.Background(), "google", googleProfile())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to link oauth connection")
	})
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		full      string
		firstName string
		lastName  string
	}{
		{name: "two parts", full: "Aiko Tanaka", firstName: "Aiko", lastName: "Tanaka"},
		{name: "single part", full: "Aiko", firstName: "Aiko", lastName: ""},
		{name: "three parts", full: "Mary Jane Watson", firstName: "Mary", lastName: "Jane Watson"},
		{name: "empty", full: "", firstName: "", lastName: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			firstName, lastName := splitName(tt.full)
			assert.Equal(t, tt.firstName, firstName)
			assert.Equal(t, tt.lastName, lastName)
		})
	}
}
