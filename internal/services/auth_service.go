package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/dev13-Vishnu/deep-learn-server/internal/auth/service"
	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Create inserts a new user into the database.
	//
	// "ctx" is the context for the request.
	// "user" is the user to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, user *models.User) error
	// GetByEmail retrieves a user by email.
	//
	// "ctx" is the context for the request.
	// "email" is the email of the user.
	//
	// Returns the user and an error if any.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID retrieves a user by ID.
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns the user and an error if any.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// ExistsByEmail checks if a user with such email exists.
	//
	// "ctx" is the context for the request.
	// "email" is the email to check.
	//
	// Returns a boolean and an error if any.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// UpdatePassword updates a user's password hash.
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "passwordHash" is the new password hash.
	//
	// Returns an error if any.
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error
	// UpdateProfile updates a user's profile fields.
	//
	// "ctx" is the context for the request.
	// "user" is the user carrying the new profile fields.
	//
	// Returns an error if any.
	UpdateProfile(ctx context.Context, user *models.User) error
}

// UserTokenRepository is the interface that wraps methods for UserToken table data access
type UserTokenRepository interface {
	// Create inserts a new refresh token hash.
	//
	// "ctx" is the context for the request.
	// "userToken" is the token record to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, userToken *models.UserToken) error
	// GetByToken retrieves a stored token by its hash.
	//
	// "ctx" is the context for the request.
	// "token" is the token hash to look up.
	//
	// Returns the token record and an error if any.
	GetByToken(ctx context.Context, token string) (*models.UserToken, error)
	// UpdateToken replaces an old token hash with a new one.
	//
	// "ctx" is the context for the request.
	// "oldToken" is the stored hash being rotated out.
	// "newToken" is the replacement hash.
	// "userID" is the ID of the owning user.
	//
	// Returns an error if any.
	UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error
	// DeleteByToken removes a stored token by its hash.
	//
	// "ctx" is the context for the request.
	// "token" is the token hash to remove.
	//
	// Returns an error if any.
	DeleteByToken(ctx context.Context, token string) error
}

// OtpVerifier is the interface that wraps OTP verification for signup and
// password reset flows
type OtpVerifier interface {
	// VerifyOtp checks a submitted code and consumes it on success.
	//
	// "ctx" is the context for the request.
	// "email" is the email the code was sent to.
	// "purpose" is the OTP purpose.
	// "code" is the submitted code.
	//
	// Returns an error if any.
	VerifyOtp(ctx context.Context, email, purpose, code string) error
	// ConsumeVerification checks and removes a prior verification marker.
	//
	// "ctx" is the context for the request.
	// "email" is the verified email.
	// "purpose" is the OTP purpose.
	//
	// Returns an error if any.
	ConsumeVerification(ctx context.Context, email, purpose string) error
}

// authService implements account and session use cases
type authService struct {
	userRepo       UserRepository
	userTokenRepo  UserTokenRepository
	otp            OtpVerifier
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	userTokenRepo UserTokenRepository,
	otp OtpVerifier,
	tokenGenerator *service.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		otp:            otp,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// passwordRegex validates password: at least 8 chars, uppercase, lowercase, number
var passwordRegex = []*regexp.Regexp{
	regexp.MustCompile(`.{8,}`),
	regexp.MustCompile(`[a-z]`),
	regexp.MustCompile(`[A-Z]`),
	regexp.MustCompile(`[0-9]`),
}

// Register creates a new student account after the signup OTP is verified
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (string, string, error) {
	normalizedEmail, err := s.checkRegisterCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return "", "", err
	}

	// The email must have passed OTP verification, either earlier through
	// the verify endpoint or with the code carried in this request
	if err := s.otp.ConsumeVerification(ctx, normalizedEmail, OtpPurposeSignup); err != nil {
		if err := s.otp.VerifyOtp(ctx, normalizedEmail, OtpPurposeSignup, req.Otp); err != nil {
			return "", "", err
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	user := &models.User{
		Email:         normalizedEmail,
		PasswordHash:  string(passwordHash),
		Role:          models.RoleStudent, // Default role
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		IsActive:      true,
		EmailVerified: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", "", err
	}

	s.logger.Info("user registered", zap.Int("userId", user.ID))

	return generateAndSaveTokens(ctx, s.tokenGenerator, s.userTokenRepo, user.ID, user.Role)
}

// Login authenticates a user by email and password
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, string, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return "", "", fmt.Errorf("email cannot be empty")
	}
	if req.Password == "" {
		return "", "", fmt.Errorf("password cannot be empty")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", fmt.Errorf("invalid credentials")
	}

	if !user.IsActive {
		return "", "", fmt.Errorf("account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", "", fmt.Errorf("invalid credentials")
	}

	return generateAndSaveTokens(ctx, s.tokenGenerator, s.userTokenRepo, user.ID, user.Role)
}

// Refresh rotates a refresh token and issues a new token pair
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	tokenHash := hashToken(refreshToken)

	if err := s.tokenGenerator.ValidateRefreshToken(refreshToken); err != nil {
		// Drop the stored hash if it exists, the token is dead either way
		s.userTokenRepo.DeleteByToken(ctx, tokenHash)
		return "", "", fmt.Errorf("invalid or expired refresh token")
	}

	userToken, err := s.userTokenRepo.GetByToken(ctx, tokenHash)
	if err != nil {
		return "", "", fmt.Errorf("failed to get user token by refresh token: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userToken.UserID)
	if err != nil {
		return "", "", err
	}

	accessToken, newRefreshToken, err := s.tokenGenerator.GenerateTokens(userToken.UserID, int(user.Role))
	if err != nil {
		return "", "", err
	}

	// Replace the stored hash so the old refresh token cannot be replayed
	if err := s.userTokenRepo.UpdateToken(ctx, tokenHash, hashToken(newRefreshToken), userToken.UserID); err != nil {
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}

// Logout invalidates a refresh token
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.userTokenRepo.DeleteByToken(ctx, hashToken(strings.TrimSpace(refreshToken)))
}

// GetCurrentUser retrieves the authenticated user's profile
func (s *authService) GetCurrentUser(ctx context.Context, userID int) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := models.ToUserResponse(user)
	return &response, nil
}

// UpdateProfile applies a partial profile update and returns the new profile
func (s *authService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Bio != nil {
		user.Bio = strings.TrimSpace(*req.Bio)
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	response := models.ToUserResponse(user)
	return &response, nil
}

// ResetPassword sets a new password after the forgot-password OTP is verified
func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	if err := s.otp.ConsumeVerification(ctx, email, OtpPurposeForgotPassword); err != nil {
		if err := s.otp.VerifyOtp(ctx, email, OtpPurposeForgotPassword, req.Otp); err != nil {
			return err
		}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(passwordHash)); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.Int("userId", user.ID))
	return nil
}

// checkRegisterCredentials validates and normalizes the signup credentials
func (s *authService) checkRegisterCredentials(ctx context.Context, email, password string) (string, error) {
	normalizedEmail := strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(normalizedEmail) {
		return "", fmt.Errorf("invalid email format")
	}

	if err := validatePassword(password); err != nil {
		return "", err
	}

	emailExists, err := s.userRepo.ExistsByEmail(ctx, normalizedEmail)
	if err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if emailExists {
		return "", fmt.Errorf("email already exists")
	}

	return normalizedEmail, nil
}

func validatePassword(password string) error {
	for _, regex := range passwordRegex {
		if !regex.MatchString(password) {
			return fmt.Errorf("password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter and one number")
		}
	}
	return nil
}

// generateAndSaveTokens generates a token pair and stores the refresh token
// hash. Shared between password and OAuth logins.
func generateAndSaveTokens(ctx context.Context, tokenGenerator *service.TokenGenerator,
	userTokenRepo UserTokenRepository, userID int, role models.Role) (string, string, error) {
	accessToken, refreshToken, err := tokenGenerator.GenerateTokens(userID, int(role))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	userToken := &models.UserToken{
		UserID: userID,
		Token:  hashToken(refreshToken),
	}
	if err := userTokenRepo.Create(ctx, userToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// hashToken returns the hex sha256 digest stored in place of raw tokens
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
