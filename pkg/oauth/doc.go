// Package oauth provides the generic OAuth2 authorization-code client that
// provider strategies are built on.
//
// The package owns everything that is not provider specific: building the
// authorization URL, exchanging the code for tokens, making authenticated API
// calls, and the Strategy base that glues a profile fetcher and an
// application verify callback together. A provider package (see the
// fanburst package at the module root) configures the endpoints and supplies
// a ProfileFetcher.
//
// # Features
//
//   - Client over golang.org/x/oauth2 with an authenticated GET primitive
//   - Strategy base composing a Client, a ProfileFetcher and a VerifyFunc
//   - Registry for looking strategies up by name
//   - Functional options for custom HTTP clients (testing, custom transports)
//   - Sentinel errors with "oauth:" prefix for consistent error handling
//
// # Usage
//
//	client, err := oauth.NewClient(oauth.ClientConfig{
//		ClientID:     os.Getenv("CLIENT_ID"),
//		ClientSecret: os.Getenv("CLIENT_SECRET"),
//		RedirectURL:  "https://example.com/auth/acme/callback",
//		AuthURL:      "https://acme.example/oauth/authorize",
//		TokenURL:     "https://acme.example/oauth/token",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	body, resp, err := client.Get(ctx, "https://api.acme.example/me", token.AccessToken)
//
// Wrap it into a strategy by supplying a fetcher and a verify callback:
//
//	strategy, err := oauth.NewStrategy("acme", client, fetcher,
//		func(ctx context.Context, accessToken, refreshToken string, p *AcmeProfile) (*User, error) {
//			return users.FindOrCreate(ctx, p)
//		},
//	)
//
//	// In the callback handler
//	user, err := strategy.Authenticate(ctx, r.URL.Query().Get("code"))
//
// # Error Handling
//
//   - ErrMissingClientID, ErrMissingClientSecret, ErrMissingAuthURL, ErrMissingTokenURL: bad client config
//   - ErrExchangeFailed: code exchange failed (joined with *oauth2.RetrieveError when available)
//   - ErrFetchFailed: HTTP request to provider failed
//   - ErrRequestFailed: provider returned non-2xx status (joined with *HTTPError)
//   - ErrUnauthorized: verify callback rejected the user
//   - InternalError: wrapper used by strategies around provider API failures
//
// Use errors.Is and errors.As for checking:
//
//	var internal *oauth.InternalError
//	if errors.As(err, &internal) {
//		// provider API failed while fetching the profile
//	}
//
// # Security
//
// The package does not generate or validate the state parameter and does not
// store tokens. Hosts must bind state (and a PKCE verifier, when used) to the
// browser, e.g. with signed cookies, and validate it on callback.
package oauth
