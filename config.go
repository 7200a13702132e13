package fanburst

import "slices"

const (
	// ProviderName is the identifier of the Fanburst strategy.
	ProviderName = "fanburst"

	// DefaultAuthorizationURL is Fanburst's OAuth 2.0 authorization endpoint.
	DefaultAuthorizationURL = "https://fanburst.com/oauth/authorize"
	// DefaultTokenURL is Fanburst's OAuth 2.0 token endpoint.
	DefaultTokenURL = "https://fanburst.com/oauth/token"
	// DefaultProfileURL is the Fanburst API endpoint describing the current user.
	DefaultProfileURL = "https://api.fanburst.com/me"
)

// Config holds Fanburst OAuth configuration.
// Empty endpoint fields fall back to the Default* constants.
type Config struct {
	ClientID         string   `env:"FANBURST_OAUTH_CLIENT_ID,required"`
	ClientSecret     string   `env:"FANBURST_OAUTH_CLIENT_SECRET,required"`
	CallbackURL      string   `env:"FANBURST_OAUTH_CALLBACK_URL"`
	AuthorizationURL string   `env:"FANBURST_OAUTH_AUTHORIZATION_URL"`
	TokenURL         string   `env:"FANBURST_OAUTH_TOKEN_URL"`
	ProfileURL       string   `env:"FANBURST_OAUTH_PROFILE_URL"`
	Scopes           []string `env:"FANBURST_OAUTH_SCOPES" envSeparator:","`
}

// WithDefaults returns a copy of c with empty endpoints replaced by the
// fixed Fanburst endpoints.
func (c Config) WithDefaults() Config {
	if c.AuthorizationURL == "" {
		c.AuthorizationURL = DefaultAuthorizationURL
	}
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if c.ProfileURL == "" {
		c.ProfileURL = DefaultProfileURL
	}
	c.Scopes = slices.Clone(c.Scopes)
	return c
}
