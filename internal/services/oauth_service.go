package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dev13-Vishnu/deep-learn-server/internal/auth/service"
	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"github.com/dev13-Vishnu/deep-learn-server/internal/oauth"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const oauthStateTTL = otpVerifiedTTL

// OAuthConnectionRepository is the interface that wraps methods for OAuth
// connection data access
type OAuthConnectionRepository interface {
	// Create inserts a new OAuth connection.
	//
	// "ctx" is the context for the request.
	// "connection" is the connection to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, connection *models.OAuthConnection) error
	// GetByProviderAndProviderID retrieves a connection by provider identity.
	//
	// "ctx" is the context for the request.
	// "provider" is the provider name.
	// "providerID" is the provider-side user ID.
	//
	// Returns the connection and an error if any.
	GetByProviderAndProviderID(ctx context.Context, provider, providerID string) (*models.OAuthConnection, error)
}

// oauthService implements social login. A callback either matches an
// existing connection, links a new connection to a user with the same email,
// or provisions a fresh student account.
type oauthService struct {
	providers      map[string]oauth.Provider
	connectionRepo OAuthConnectionRepository
	userRepo       UserRepository
	userTokenRepo  UserTokenRepository
	redis          *redis.Client
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
}

// NewOAuthService creates a new OAuth service
func NewOAuthService(
	providers []oauth.Provider,
	connectionRepo OAuthConnectionRepository,
	userRepo UserRepository,
	userTokenRepo UserTokenRepository,
	redisClient *redis.Client,
	tokenGenerator *service.TokenGenerator,
	logger *zap.Logger,
) *oauthService {
	providerMap := make(map[string]oauth.Provider, len(providers))
	for _, p := range providers {
		providerMap[p.Name()] = p
	}

	return &oauthService{
		providers:      providerMap,
		connectionRepo: connectionRepo,
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		redis:          redisClient,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// BeginLogin starts the authorization flow and returns the redirect URL
func (s *oauthService) BeginLogin(ctx context.Context, providerName string) (string, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return "", fmt.Errorf("unknown oauth provider")
	}

	state := uuid.NewString()
	if err := s.redis.Set(ctx, oauthStateKey(state), providerName, oauthStateTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}

	return provider.AuthURL(state), nil
}

// HandleCallback completes the authorization flow and issues a token pair
func (s *oauthService) HandleCallback(ctx context.Context, providerName, state, code string) (string, string, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return "", "", fmt.Errorf("unknown oauth provider")
	}

	// The state is single use; GetDel rejects replayed callbacks
	storedProvider, err := s.redis.GetDel(ctx, oauthStateKey(state)).Result()
	if err != nil && err != redis.Nil {
		return "", "", fmt.Errorf("failed to check oauth state: %w", err)
	}
	if err == redis.Nil || storedProvider != providerName {
		return "", "", fmt.Errorf("invalid or expired oauth state")
	}

	accessToken, err := provider.Exchange(ctx, code)
	if err != nil {
		return "", "", err
	}

	profile, err := provider.FetchProfile(ctx, accessToken)
	if err != nil {
		return "", "", err
	}
	if profile.Email == "" {
		return "", "", fmt.Errorf("oauth provider did not supply an email")
	}

	user, err := s.resolveUser(ctx, providerName, profile)
	if err != nil {
		return "", "", err
	}

	if !user.IsActive {
		return "", "", fmt.Errorf("account is deactivated")
	}

	return generateAndSaveTokens(ctx, s.tokenGenerator, s.userTokenRepo, user.ID, user.Role)
}

// resolveUser finds the account behind an external profile, linking or
// provisioning as needed
func (s *oauthService) resolveUser(ctx context.Context, providerName string, profile *oauth.Profile) (*models.User, error) {
	connection, err := s.connectionRepo.GetByProviderAndProviderID(ctx, providerName, profile.ProviderID)
	if err == nil {
		return s.userRepo.GetByID(ctx, connection.UserID)
	}

	email := strings.TrimSpace(strings.ToLower(profile.Email))

	// Link to an existing account with the same email, or provision one
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		user, err = s.provisionUser(ctx, email, profile)
		if err != nil {
			return nil, err
		}
	}

	newConnection := &models.OAuthConnection{
		UserID:     user.ID,
		Provider:   providerName,
		ProviderID: profile.ProviderID,
		Email:      email,
		Name:       profile.Name,
		AvatarURL:  profile.AvatarURL,
	}
	if err := s.connectionRepo.Create(ctx, newConnection); err != nil {
		return nil, fmt.Errorf("failed to link oauth connection: %w", err)
	}

	s.logger.Info("oauth connection linked",
		zap.String("provider", providerName), zap.Int("userId", user.ID))
	return user, nil
}

// provisionUser creates a student account for a first-time social login.
// The random password can never be used; a password login requires a reset.
func (s *oauthService) provisionUser(ctx context.Context, email string, profile *oauth.Profile) (*models.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	firstName, lastName := splitName(profile.Name)
	user := &models.User{
		Email:         email,
		PasswordHash:  string(passwordHash),
		Role:          models.RoleStudent,
		FirstName:     firstName,
		LastName:      lastName,
		Avatar:        profile.AvatarURL,
		IsActive:      true,
		EmailVerified: true, // the provider vouches for the email
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user provisioned via oauth", zap.Int("userId", user.ID))
	return user, nil
}

func oauthStateKey(state string) string {
	return "oauth:state:" + state
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
