package oauth

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrMissingAuthURL is returned when the authorization endpoint is not provided.
	ErrMissingAuthURL = errors.New("oauth: missing authorization URL")

	// ErrMissingTokenURL is returned when the token endpoint is not provided.
	ErrMissingTokenURL = errors.New("oauth: missing token URL")

	// ErrMissingName is returned when a strategy is created without a name.
	ErrMissingName = errors.New("oauth: missing strategy name")

	// ErrNilClient is returned when a strategy is created without a client.
	ErrNilClient = errors.New("oauth: nil client")

	// ErrNilFetcher is returned when a strategy is created without a profile fetcher.
	ErrNilFetcher = errors.New("oauth: nil profile fetcher")

	// ErrNilVerify is returned when a strategy is created without a verify callback.
	ErrNilVerify = errors.New("oauth: nil verify callback")

	// ErrMissingCode is returned when Authenticate is called without an authorization code.
	ErrMissingCode = errors.New("oauth: missing authorization code")

	// ErrExchangeFailed is returned when trading the authorization code for tokens fails.
	ErrExchangeFailed = errors.New("oauth: failed to exchange authorization code")

	// ErrNilResponse is returned when the OAuth provider returns a nil response.
	ErrNilResponse = errors.New("oauth: nil response from provider")

	// ErrFetchFailed is returned when fetching data from the OAuth provider fails.
	ErrFetchFailed = errors.New("oauth: failed to fetch from provider")

	// ErrRequestFailed is returned when the OAuth provider returns a non-2xx status.
	ErrRequestFailed = errors.New("oauth: request returned non-OK status")

	// ErrUnauthorized is returned by verify callbacks to reject a user
	// whose profile was fetched successfully.
	ErrUnauthorized = errors.New("oauth: user rejected")

	// ErrUnknownProvider is returned by Registry.Get for unregistered names.
	ErrUnknownProvider = errors.New("oauth: unknown provider")
)

// InternalError wraps a failure that happened while talking to the provider
// on behalf of a strategy, e.g. while fetching the user profile.
// The cause stays reachable through errors.Is and errors.As.
type InternalError struct {
	Err     error
	Message string
}

// NewInternalError creates an InternalError with the given message and cause.
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{Message: message, Err: err}
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return "oauth: " + e.Message
	}
	return fmt.Sprintf("oauth: %s: %v", e.Message, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPError describes a non-2xx response from a provider API.
type HTTPError struct {
	Body       []byte
	StatusCode int
}

func (e *HTTPError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("oauth: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("oauth: unexpected status %d: %s", e.StatusCode, e.Body)
}
