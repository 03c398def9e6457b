package models

type Role int

// UserRole constants
const (
	RoleStudent Role = 1
	RoleTutor   Role = 2
	RoleAdmin   Role = 3
)

// User represents a user account
type User struct {
	ID            int    `json:"id"`
	Email         string `json:"email"`
	PasswordHash  string `json:"-"` // Never serialize password hash
	Role          Role   `json:"role"` // 1=Student, 2=Tutor, 3=Admin
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Bio           string `json:"bio,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	IsActive      bool   `json:"isActive"`
	EmailVerified bool   `json:"emailVerified"`
}

// UserToken represents a stored refresh token for a user. Token holds the
// sha256 hash of the issued token, never the token itself.
type UserToken struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Token  string `json:"token"`
}

// OAuthConnection links a user account to an external identity provider
type OAuthConnection struct {
	ID         int    `json:"id"`
	UserID     int    `json:"userId"`
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
}

// RequestOtpRequest represents a request to send a signup or password
// reset OTP
type RequestOtpRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required"`
}

// VerifyOtpRequest represents a request to verify an OTP code
type VerifyOtpRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required"`
	Otp     string `json:"otp" validate:"required,len=6,numeric"`
}

// RegisterRequest represents a signup request (OTP must be verified first)
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Otp       string `json:"otp" validate:"required,len=6,numeric"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ResetPasswordRequest represents a password reset after OTP verification
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Otp         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// TokenPairResponse carries a freshly issued access/refresh token pair
type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is the public representation of a user
type UserResponse struct {
	ID            int    `json:"id"`
	Email         string `json:"email"`
	Role          Role   `json:"role"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Bio           string `json:"bio,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

// ToUserResponse maps a user to its public representation
func ToUserResponse(user *User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Role:          user.Role,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Bio:           user.Bio,
		Avatar:        user.Avatar,
		EmailVerified: user.EmailVerified,
	}
}
