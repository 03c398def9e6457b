package oauth

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	googleAuthEndpoint     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenEndpoint    = "https://oauth2.googleapis.com/token"
	googleUserInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// googleProvider implements Provider for Google sign-in
type googleProvider struct {
	clientID     string
	clientSecret string
	redirectURL  string
	client       *resty.Client
}

// NewGoogleProvider creates a Google OAuth provider
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *googleProvider {
	return &googleProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		client:       newClient(),
	}
}

func (p *googleProvider) Name() string {
	return "google"
}

func (p *googleProvider) AuthURL(state string) string {
	return buildAuthURL(googleAuthEndpoint, p.clientID, p.redirectURL, "openid email profile", state)
}

func (p *googleProvider) Exchange(ctx context.Context, code string) (string, error) {
	var token tokenResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     p.clientID,
			"client_secret": p.clientSecret,
			"code":          code,
			"grant_type":    "authorization_code",
			"redirect_uri":  p.redirectURL,
		}).
		SetResult(&token).
		Post(googleTokenEndpoint)
	if err != nil {
		return "", fmt.Errorf("failed to exchange google code: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("google token endpoint returned status %d", resp.StatusCode())
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("google token response is missing access_token")
	}

	return token.AccessToken, nil
}

func (p *googleProvider) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	var userInfo struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&userInfo).
		Get(googleUserInfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google profile: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("google userinfo endpoint returned status %d", resp.StatusCode())
	}

	return &Profile{
		ProviderID: userInfo.ID,
		Email:      userInfo.Email,
		Name:       userInfo.Name,
		AvatarURL:  userInfo.Picture,
	}, nil
}
