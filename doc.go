// Package fanburst provides an OAuth 2.0 login strategy for Fanburst.
//
// The strategy configures the Fanburst authorization and token endpoints on
// the generic client from pkg/oauth and adds one provider-specific step:
// fetching the current user from https://api.fanburst.com/me and normalizing
// it into a Profile. Redirects, code exchange and token handling belong to
// the generic client; state validation, sessions and cookies belong to the
// host application.
//
// # Usage
//
//	strategy, err := fanburst.New(fanburst.Config{
//		ClientID:     os.Getenv("FANBURST_OAUTH_CLIENT_ID"),
//		ClientSecret: os.Getenv("FANBURST_OAUTH_CLIENT_SECRET"),
//		CallbackURL:  "https://www.example.net/auth/fanburst/callback",
//	}, func(ctx context.Context, accessToken, refreshToken string, p *fanburst.Profile) (*User, error) {
//		return users.FindOrCreate(ctx, p)
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Redirect the browser
//	http.Redirect(w, r, strategy.AuthCodeURL(state), http.StatusFound)
//
//	// In the callback handler, after validating state
//	user, err := strategy.Authenticate(ctx, r.URL.Query().Get("code"))
//
// # Profile
//
// Profile.Provider is always "fanburst" and DisplayName mirrors ID, since
// Fanburst exposes no separate display name. Missing avatar and location
// become "", missing counters become 0. Raw and JSON keep the response for
// fields the normalized shape does not carry.
//
// # Errors
//
// FetchProfile distinguishes two failures:
//
//	var internal *oauth.InternalError
//	var syntax *json.SyntaxError
//	switch {
//	case errors.As(err, &internal):
//		// request failed or returned non-2xx; cause in internal.Err
//	case errors.As(err, &syntax):
//		// Fanburst answered with something that is not JSON
//	}
//
// Errors from the code exchange are produced by pkg/oauth and are not
// translated here.
package fanburst
