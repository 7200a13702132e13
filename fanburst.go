package fanburst

import (
	"context"

	"github.com/dmitrymomot/fanburst/pkg/oauth"
)

// Strategy authenticates users against Fanburst using OAuth 2.0.
// Name, AuthCodeURL and Authenticate are provided by the embedded generic
// strategy; Fanburst only contributes FetchProfile.
type Strategy[U any] struct {
	*oauth.Strategy[*Profile, U]
	client *oauth.Client
	cfg    Config
}

// New creates a Fanburst strategy.
// Missing endpoints default to the fixed Fanburst endpoints; credentials are
// validated by the generic OAuth client, not here.
func New[U any](cfg Config, verify oauth.VerifyFunc[*Profile, U], opts ...oauth.Option) (*Strategy[U], error) {
	cfg = cfg.WithDefaults()

	client, err := oauth.NewClient(oauth.ClientConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.CallbackURL,
		AuthURL:      cfg.AuthorizationURL,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}, opts...)
	if err != nil {
		return nil, err
	}

	s := &Strategy[U]{client: client, cfg: cfg}

	base, err := oauth.NewStrategy(ProviderName, client, s, verify)
	if err != nil {
		return nil, err
	}
	s.Strategy = base

	return s, nil
}

// Config returns the effective configuration, endpoint defaults included.
func (s *Strategy[U]) Config() Config {
	return s.cfg.WithDefaults()
}

// FetchProfile retrieves the current user from Fanburst and normalizes it.
// Transport and non-2xx failures are wrapped in *oauth.InternalError;
// a malformed body returns the JSON decoding error as is.
func (s *Strategy[U]) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	body, _, err := s.client.Get(ctx, s.cfg.ProfileURL, accessToken)
	if err != nil {
		return nil, oauth.NewInternalError("failed to fetch user profile", err)
	}
	return ParseProfile(body)
}
