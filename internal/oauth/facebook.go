package oauth

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	facebookAuthEndpoint  = "https://www.facebook.com/v18.0/dialog/oauth"
	facebookTokenEndpoint = "https://graph.facebook.com/v18.0/oauth/access_token"
	facebookMeEndpoint    = "https://graph.facebook.com/v18.0/me"
)

// facebookProvider implements Provider for Facebook login
type facebookProvider struct {
	clientID     string
	clientSecret string
	redirectURL  string
	client       *resty.Client
}

// NewFacebookProvider creates a Facebook OAuth provider
func NewFacebookProvider(clientID, clientSecret, redirectURL string) *facebookProvider {
	return &facebookProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		client:       newClient(),
	}
}

func (p *facebookProvider) Name() string {
	return "facebook"
}

func (p *facebookProvider) AuthURL(state string) string {
	return buildAuthURL(facebookAuthEndpoint, p.clientID, p.redirectURL, "email public_profile", state)
}

func (p *facebookProvider) Exchange(ctx context.Context, code string) (string, error) {
	var token tokenResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client_id":     p.clientID,
			"client_secret": p.clientSecret,
			"code":          code,
			"redirect_uri":  p.redirectURL,
		}).
		SetResult(&token).
		Get(facebookTokenEndpoint)
	if err != nil {
		return "", fmt.Errorf("failed to exchange facebook code: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("facebook token endpoint returned status %d", resp.StatusCode())
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("facebook token response is missing access_token")
	}

	return token.AccessToken, nil
}

func (p *facebookProvider) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	var userInfo struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("fields", "id,name,email,picture").
		SetResult(&userInfo).
		Get(facebookMeEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch facebook profile: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("facebook me endpoint returned status %d", resp.StatusCode())
	}

	return &Profile{
		ProviderID: userInfo.ID,
		Email:      userInfo.Email,
		Name:       userInfo.Name,
		AvatarURL:  userInfo.Picture.Data.URL,
	}, nil
}
