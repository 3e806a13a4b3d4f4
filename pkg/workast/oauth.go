package workast

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// OAuth endpoint paths, relative to the auth base URL.
const (
	OAuthAuthorizePath = "/oauth/authorize"
	OAuthTokenPath     = "/oauth/token"
)

// OAuth2Config returns an authorization-code flow configuration for a
// Workast app hosted at authBaseURL (DefaultAuthBaseURL when empty).
func OAuth2Config(authBaseURL, clientID, clientSecret, redirectURL string, scopes ...string) *oauth2.Config {
	if authBaseURL == "" {
		authBaseURL = DefaultAuthBaseURL
	}
	authBaseURL = trimBaseURL(authBaseURL)
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authBaseURL + OAuthAuthorizePath,
			TokenURL:  authBaseURL + OAuthTokenPath,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// OAuth2Config returns the OAuth configuration bound to the client's auth
// base URL.
func (c *Client) OAuth2Config(clientID, clientSecret, redirectURL string, scopes ...string) *oauth2.Config {
	return OAuth2Config(c.cfg.AuthBaseURL, clientID, clientSecret, redirectURL, scopes...)
}

// ExchangeCode trades an authorization code for an access token. A nil hc
// uses http.DefaultClient.
func ExchangeCode(ctx context.Context, cfg *oauth2.Config, hc *http.Client, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, invalidParam("Authorization code must be a non-empty string.")
	}
	if hc != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, hc)
	}
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}
