// Package oauth implements the external identity provider adapters used for
// social login
package oauth

import (
	"context"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// Profile is the normalized identity returned by every provider
type Profile struct {
	ProviderID string
	Email      string
	Name       string
	AvatarURL  string
}

// Provider abstracts a single OAuth2 authorization-code provider
type Provider interface {
	// Name returns the provider identifier used in routes and storage
	Name() string
	// AuthURL builds the authorization redirect URL carrying the state
	AuthURL(state string) string
	// Exchange trades an authorization code for an access token
	Exchange(ctx context.Context, code string) (string, error)
	// FetchProfile retrieves the normalized user profile
	FetchProfile(ctx context.Context, accessToken string) (*Profile, error)
}

// tokenResponse is the common shape of provider token endpoints
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// newClient builds the resty client shared by the provider adapters
func newClient() *resty.Client {
	return resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
}

// buildAuthURL assembles an authorization endpoint URL
func buildAuthURL(endpoint, clientID, redirectURL, scope, state string) string {
	query := url.Values{}
	query.Set("client_id", clientID)
	query.Set("redirect_uri", redirectURL)
	query.Set("response_type", "code")
	query.Set("scope", scope)
	query.Set("state", state)
	return endpoint + "?" + query.Encode()
}
