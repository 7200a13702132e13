package oauth

import "golang.org/x/oauth2"

// ClientConfig holds the provider-agnostic OAuth2 client configuration.
// Provider strategies fill the endpoint fields with their fixed defaults.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	Scopes       []string
	// AuthStyle controls how client credentials reach the token endpoint.
	// Zero value auto-detects, as golang.org/x/oauth2 does.
	AuthStyle oauth2.AuthStyle
}
