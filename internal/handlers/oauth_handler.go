package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OAuthService is the interface that wraps methods for social login
type OAuthService interface {
	// BeginLogin starts the authorization flow for a provider.
	//
	// "ctx" is the context for the request.
	// "providerName" is the provider identifier.
	//
	// Returns the authorization redirect URL and an error if any.
	BeginLogin(ctx context.Context, providerName string) (string, error)
	// HandleCallback completes the authorization flow.
	//
	// "ctx" is the context for the request.
	// "providerName" is the provider identifier.
	// "state" is the state echoed by the provider.
	// "code" is the authorization code.
	//
	// Returns access and refresh tokens and an error if any.
	HandleCallback(ctx context.Context, providerName, state, code string) (string, string, error)
}

// OAuthHandler handles social login HTTP requests
type OAuthHandler struct {
	BaseHandler
	service     OAuthService
	frontendURL string
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(svc OAuthService, frontendURL string, logger *zap.Logger) *OAuthHandler {
	return &OAuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
		frontendURL: frontendURL,
	}
}

// RegisterRoutes registers all OAuth handler routes
func (h *OAuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth/oauth/{provider}", func(r chi.Router) {
		r.Get("/", h.Begin)
		r.Get("/callback", h.Callback)
	})
}

// Begin handles GET /auth/oauth/{provider}
// @Summary Start social login
// @Description Redirect the browser to the provider's authorization page
// @Tags oauth
// @Produce json
// @Param provider path string true "Provider (google, facebook, microsoft)"
// @Success 307 "Redirect to the provider"
// @Failure 400 {object} map[string]string "Unknown provider"
// @Router /auth/oauth/{provider} [get]
func (h *OAuthHandler) Begin(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	redirectURL, err := h.service.BeginLogin(r.Context(), provider)
	if err != nil {
		h.Logger.Error("failed to begin oauth login", zap.Error(err), zap.String("provider", provider))
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// Callback handles GET /auth/oauth/{provider}/callback
// @Summary Complete social login
// @Description Exchange the authorization code, issue token cookies and redirect back to the frontend
// @Tags oauth
// @Produce json
// @Param provider path string true "Provider (google, facebook, microsoft)"
// @Param state query string true "State issued at login start"
// @Param code query string true "Authorization code"
// @Success 307 "Redirect to the frontend"
// @Failure 400 {object} map[string]string "Missing code or invalid state"
// @Router /auth/oauth/{provider}/callback [get]
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")

	if code == "" || state == "" {
		h.RespondError(w, http.StatusBadRequest, "code and state query parameters are required")
		return
	}

	accessToken, refreshToken, err := h.service.HandleCallback(r.Context(), provider, state, code)
	if err != nil {
		h.Logger.Error("failed to complete oauth login", zap.Error(err), zap.String("provider", provider))
		// Send the browser back to the frontend login page with the error
		http.Redirect(w, r, h.frontendURL+"/login?error="+url.QueryEscape(err.Error()), http.StatusTemporaryRedirect)
		return
	}

	h.setOAuthTokenCookies(w, accessToken, refreshToken)
	http.Redirect(w, r, h.frontendURL, http.StatusTemporaryRedirect)
}

// setOAuthTokenCookies mirrors the cookie policy of the password login
func (h *OAuthHandler) setOAuthTokenCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   604800,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
