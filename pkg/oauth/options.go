package oauth

import "net/http"

// Option configures an OAuth client.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient sets a custom HTTP client for token exchange and API calls.
// This is useful for testing with httptest servers or injecting
// custom transports (e.g., logging, timeouts).
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}
