package adapthttp

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// GoogleIssuer is the OIDC issuer used for login and advertised in the
// generated documentation's security scheme.
const GoogleIssuer = "https://accounts.google.com"

// OAuthConfig carries the provider wiring for the login flow. A zero
// value disables the auth gate entirely.
type OAuthConfig struct {
	Enabled  bool
	Provider *oidc.Provider
	OAuth2   *oauth2.Config
}

// NewGoogleOAuth discovers the Google OIDC provider and prepares the
// authorization-code flow requesting profile and email scopes.
func NewGoogleOAuth(ctx context.Context, clientID, clientSecret, baseURL string) (*OAuthConfig, error) {
	provider, err := oidc.NewProvider(ctx, GoogleIssuer)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider: %w", err)
	}
	return &OAuthConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}
