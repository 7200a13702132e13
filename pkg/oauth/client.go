package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// Client is the generic OAuth2 authorization-code client that provider
// strategies wrap. It owns redirect construction, code exchange and
// authenticated API calls; it knows nothing about provider profiles.
type Client struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewClient creates a new OAuth2 client.
// Returns an error if the credentials or endpoints are missing.
func NewClient(cfg ClientConfig, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}
	if cfg.AuthURL == "" {
		return nil, ErrMissingAuthURL
	}
	if cfg.TokenURL == "" {
		return nil, ErrMissingTokenURL
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: cfg.AuthStyle,
			},
		},
		httpClient: o.httpClient,
	}, nil
}

// Endpoint returns the configured authorization and token endpoints.
func (c *Client) Endpoint() oauth2.Endpoint {
	return c.config.Endpoint
}

// AuthCodeURL generates the authorization URL.
func (c *Client) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return c.config.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens.
func (c *Client) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	token, err := c.config.Exchange(c.contextWithHTTPClient(ctx), code, opts...)
	if err != nil {
		return nil, errors.Join(ErrExchangeFailed, err)
	}
	return token, nil
}

// Get performs an authenticated GET request using the access token as a
// bearer credential. It returns the response body and the response itself.
// Transport failures are joined with ErrFetchFailed, non-2xx responses with
// ErrRequestFailed and an *HTTPError; the body is still returned in that case.
func (c *Client) Get(ctx context.Context, url, accessToken string) ([]byte, *http.Response, error) {
	ctx = c.contextWithHTTPClient(ctx)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, errors.Join(ErrFetchFailed, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, errors.Join(ErrFetchFailed, fmt.Errorf("get %s: %w", url, err))
	}
	if resp == nil {
		return nil, nil, errors.Join(ErrNilResponse, fmt.Errorf("unexpected nil response from %s", url))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, errors.Join(ErrFetchFailed, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return body, resp, errors.Join(ErrRequestFailed, &HTTPError{StatusCode: resp.StatusCode, Body: body})
	}

	return body, resp, nil
}

func (c *Client) contextWithHTTPClient(ctx context.Context) context.Context {
	if c.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}
	return ctx
}
