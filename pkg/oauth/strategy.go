package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

// ProfileFetcher retrieves a provider-specific profile with an access token.
// It is the single piece of logic a provider strategy adds on top of Client.
type ProfileFetcher[P any] interface {
	FetchProfile(ctx context.Context, accessToken string) (P, error)
}

// VerifyFunc is supplied by the application. It receives the tokens and the
// normalized profile and decides which user, if any, they belong to.
// Return ErrUnauthorized (optionally wrapped) to reject the user.
type VerifyFunc[P, U any] func(ctx context.Context, accessToken, refreshToken string, profile P) (U, error)

// Authenticator is the method set a host needs to run a login flow.
type Authenticator[U any] interface {
	// Name returns the strategy identifier (e.g., "fanburst").
	Name() string

	// AuthCodeURL generates the authorization URL for the OAuth flow.
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string

	// Authenticate exchanges the code, fetches the profile and runs the verify callback.
	Authenticate(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (U, error)
}

// Strategy composes a Client with a profile fetcher and a verify callback.
// Provider packages embed it and contribute only the fetcher.
type Strategy[P, U any] struct {
	client  *Client
	fetcher ProfileFetcher[P]
	verify  VerifyFunc[P, U]
	name    string
}

// NewStrategy creates a strategy. All arguments are required.
func NewStrategy[P, U any](name string, client *Client, fetcher ProfileFetcher[P], verify VerifyFunc[P, U]) (*Strategy[P, U], error) {
	switch {
	case name == "":
		return nil, ErrMissingName
	case client == nil:
		return nil, ErrNilClient
	case fetcher == nil:
		return nil, ErrNilFetcher
	case verify == nil:
		return nil, ErrNilVerify
	}

	return &Strategy[P, U]{
		name:    name,
		client:  client,
		fetcher: fetcher,
		verify:  verify,
	}, nil
}

// Name returns the strategy identifier.
func (s *Strategy[P, U]) Name() string {
	return s.name
}

// Client returns the wrapped OAuth2 client.
func (s *Strategy[P, U]) Client() *Client {
	return s.client
}

// AuthCodeURL generates the authorization URL.
func (s *Strategy[P, U]) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return s.client.AuthCodeURL(state, opts...)
}

// Authenticate completes the authorization-code flow.
// Exchange and profile errors are returned untouched; the verify callback
// has the final word on the user.
func (s *Strategy[P, U]) Authenticate(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (U, error) {
	var zero U
	if code == "" {
		return zero, ErrMissingCode
	}

	token, err := s.client.Exchange(ctx, code, opts...)
	if err != nil {
		return zero, err
	}

	profile, err := s.fetcher.FetchProfile(ctx, token.AccessToken)
	if err != nil {
		return zero, err
	}

	return s.verify(ctx, token.AccessToken, token.RefreshToken, profile)
}
