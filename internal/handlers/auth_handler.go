package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	authMiddleware "github.com/dev13-Vishnu/deep-learn-server/internal/auth/middleware"
	"github.com/dev13-Vishnu/deep-learn-server/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic
type AuthService interface {
	// Register creates a new student account and returns access and refresh tokens.
	//
	// "ctx" is the context for the request.
	// "req" contains the signup credentials and the OTP code.
	//
	// Returns access and refresh tokens and an error if any.
	Register(ctx context.Context, req *models.RegisterRequest) (string, string, error)
	// Login authenticates a user and returns access and refresh tokens.
	//
	// "ctx" is the context for the request.
	// "req" contains email and password.
	//
	// Returns access and refresh tokens and an error if any.
	Login(ctx context.Context, req *models.LoginRequest) (string, string, error)
	// Refresh rotates a refresh token and returns a new token pair.
	//
	// "ctx" is the context for the request.
	// "refreshToken" identifies the session being refreshed.
	//
	// Returns new access and refresh tokens and an error if any.
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	// Logout invalidates a refresh token.
	//
	// "ctx" is the context for the request.
	// "refreshToken" is the token to invalidate.
	//
	// Returns an error if any.
	Logout(ctx context.Context, refreshToken string) error
	// GetCurrentUser retrieves the authenticated user's profile.
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the authenticated user.
	//
	// Returns the profile and an error if any.
	GetCurrentUser(ctx context.Context, userID int) (*models.UserResponse, error)
	// UpdateProfile applies a partial profile update.
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the authenticated user.
	// "req" carries the fields to change.
	//
	// Returns the updated profile and an error if any.
	UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.UserResponse, error)
	// ResetPassword sets a new password after OTP verification.
	//
	// "ctx" is the context for the request.
	// "req" contains the email, OTP code and new password.
	//
	// Returns an error if any.
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
}

// OtpService is the interface that wraps methods for one-time code flows
type OtpService interface {
	// RequestOtp generates a code and queues its email delivery.
	//
	// "ctx" is the context for the request.
	// "email" is the destination email.
	// "purpose" is the OTP purpose.
	//
	// Returns an error if any.
	RequestOtp(ctx context.Context, email, purpose string) error
	// VerifyOtp checks a submitted code and leaves a verification marker.
	//
	// "ctx" is the context for the request.
	// "email" is the email the code was sent to.
	// "purpose" is the OTP purpose.
	// "code" is the submitted code.
	//
	// Returns an error if any.
	VerifyOtp(ctx context.Context, email, purpose, code string) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
	otpService  OtpService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, otpService OtpService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
		otpService:  otpService,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *AuthHandler) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)
		r.Post("/otp/request", h.RequestOtp)
		r.Post("/otp/verify", h.VerifyOtp)
		r.Post("/password/reset", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", h.GetCurrentUser)
			r.Patch("/profile", h.UpdateProfile)
		})
	})
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Register a new student account. The email must have been verified with a signup OTP. Returns tokens as HTTP-only cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} map[string]string "User registered successfully"
// @Failure 400 {object} map[string]string "Invalid request body or user already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	accessToken, refreshToken, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to register user", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "already exists") || strings.Contains(err.Error(), "invalid") ||
			strings.Contains(err.Error(), "password must") || strings.Contains(err.Error(), "verified") ||
			strings.Contains(err.Error(), "OTP") || strings.Contains(err.Error(), "code") {
			errStatus = http.StatusBadRequest
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.setTokenCookies(w, accessToken, refreshToken)
	h.RespondJSON(w, http.StatusCreated, models.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Login handles POST /auth/login
// @Summary Login user
// @Description Authenticate user with email and password. Returns tokens as HTTP-only cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.TokenPairResponse "Login successful"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	accessToken, refreshToken, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to login user", zap.Error(err))
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	h.setTokenCookies(w, accessToken, refreshToken)
	h.RespondJSON(w, http.StatusOK, models.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Refresh handles POST /auth/refresh
// @Summary Refresh access token
// @Description Refresh access and refresh tokens using a valid refresh token. Token can be provided in request body or as a cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest false "Refresh token request (optional if using cookie)"
// @Success 200 {object} models.TokenPairResponse "Tokens refreshed successfully"
// @Failure 400 {object} map[string]string "Refresh token required"
// @Failure 401 {object} map[string]string "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := h.refreshTokenFromRequest(w, r)
	if !ok {
		return
	}

	accessToken, newRefreshToken, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		h.Logger.Error("failed to refresh tokens", zap.Error(err))
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	h.setTokenCookies(w, accessToken, newRefreshToken)
	h.RespondJSON(w, http.StatusOK, models.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	})
}

// Logout handles POST /auth/logout
// @Summary Logout user
// @Description Invalidate the refresh token and clear token cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest false "Refresh token request (optional if using cookie)"
// @Success 200 {object} map[string]string "Logged out"
// @Failure 400 {object} map[string]string "Refresh token required"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := h.refreshTokenFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.authService.Logout(r.Context(), refreshToken); err != nil {
		h.Logger.Error("failed to logout user", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.clearTokenCookies(w)
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// RequestOtp handles POST /auth/otp/request
// @Summary Request a one-time code
// @Description Generate a one-time code for signup or password reset and send it by email.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RequestOtpRequest true "OTP request"
// @Success 200 {object} map[string]string "Code sent"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/otp/request [post]
func (h *AuthHandler) RequestOtp(w http.ResponseWriter, r *http.Request) {
	var req models.RequestOtpRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.otpService.RequestOtp(r.Context(), req.Email, req.Purpose); err != nil {
		h.Logger.Error("failed to request OTP", zap.Error(err))
		errStatus := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid") {
			errStatus = http.StatusBadRequest
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "code sent"})
}

// VerifyOtp handles POST /auth/otp/verify
// @Summary Verify a one-time code
// @Description Verify a one-time code. A successful verification is remembered for a short time so the follow-up request can complete without the code.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.VerifyOtpRequest true "OTP verification request"
// @Success 200 {object} map[string]string "Code verified"
// @Failure 400 {object} map[string]string "Invalid or expired code"
// @Router /auth/otp/verify [post]
func (h *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOtpRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.otpService.VerifyOtp(r.Context(), req.Email, req.Purpose, req.Otp); err != nil {
		h.Logger.Error("failed to verify OTP", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "code verified"})
}

// ResetPassword handles POST /auth/password/reset
// @Summary Reset password
// @Description Set a new password after the forgot-password OTP was verified.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "Password reset request"
// @Success 200 {object} map[string]string "Password reset"
// @Failure 400 {object} map[string]string "Invalid request or code"
// @Router /auth/password/reset [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.authService.ResetPassword(r.Context(), &req); err != nil {
		h.Logger.Error("failed to reset password", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "password reset"})
}

// GetCurrentUser handles GET /auth/me
// @Summary Get current user
// @Description Get the authenticated user's profile.
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.UserResponse "Current user"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	user, err := h.authService.GetCurrentUser(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get current user", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PATCH /auth/profile
// @Summary Update profile
// @Description Apply a partial update to the authenticated user's profile.
// @Tags auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.UpdateProfileRequest true "Profile update request"
// @Success 200 {object} models.UserResponse "Updated profile"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/profile [patch]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.UpdateProfileRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		h.Logger.Error("failed to update profile", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// refreshTokenFromRequest reads the refresh token from the body or cookie
func (h *AuthHandler) refreshTokenFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken, true
	}

	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "refresh token required")
		return "", false
	}
	return cookie.Value, true
}

// setTokenCookies sets access and refresh tokens as HTTP-only cookies
func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   3600, // 1 hour
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   604800, // 7 days
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearTokenCookies expires both token cookies
func (h *AuthHandler) clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{"access_token", "refresh_token"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
