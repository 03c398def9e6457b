package oauth

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	microsoftAuthEndpoint  = "https://login.microsoftonline.com/common/oauth2/v2.0/authorize"
	microsoftTokenEndpoint = "https://login.microsoftonline.com/common/oauth2/v2.0/token"
	microsoftMeEndpoint    = "https://graph.microsoft.com/v1.0/me"
)

// microsoftProvider implements Provider for Microsoft account login
type microsoftProvider struct {
	clientID     string
	clientSecret string
	redirectURL  string
	client       *resty.Client
}

// NewMicrosoftProvider creates a Microsoft OAuth provider
func NewMicrosoftProvider(clientID, clientSecret, redirectURL string) *microsoftProvider {
	return &microsoftProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		client:       newClient(),
	}
}

func (p *microsoftProvider) Name() string {
	return "microsoft"
}

func (p *microsoftProvider) AuthURL(state string) string {
	return buildAuthURL(microsoftAuthEndpoint, p.clientID, p.redirectURL, "openid email profile User.Read", state)
}

func (p *microsoftProvider) Exchange(ctx context.Context, code string) (string, error) {
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
		Post(microsoftTokenEndpoint)
	if err != nil {
		return "", fmt.Errorf("failed to exchange microsoft code: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("microsoft token endpoint returned status %d", resp.StatusCode())
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("microsoft token response is missing access_token")
	}

	return token.AccessToken, nil
}

func (p *microsoftProvider) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	var userInfo struct {
		ID                string `json:"id"`
		DisplayName       string `json:"displayName"`
		Mail              string `json:"mail"`
		UserPrincipalName string `json:"userPrincipalName"`
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&userInfo).
		Get(microsoftMeEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch microsoft profile: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("microsoft me endpoint returned status %d", resp.StatusCode())
	}

	// Personal accounts report the address in userPrincipalName only
	email := userInfo.Mail
	if email == "" {
		email = userInfo.UserPrincipalName
	}

	return &Profile{
		ProviderID: userInfo.ID,
		Email:      email,
		Name:       userInfo.DisplayName,
	}, nil
}
