package httpauth_test

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/fanburst"
	"github.com/dmitrymomot/fanburst/internal/httpauth"
	"github.com/dmitrymomot/fanburst/internal/users"
	"github.com/dmitrymomot/fanburst/pkg/cookie"
	"github.com/dmitrymomot/fanburst/pkg/oauth"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

func newCookies(t *testing.T) *cookie.Manager {
	t.Helper()
	m, err := cookie.New(testSecret)
	require.NoError(t, err)
	return m
}

func newRouter[U any](h *httpauth.Handler[U]) http.Handler {
	r := chi.NewRouter()
	r.Mount("/auth", h.Routes())
	return r
}

// begin runs the login redirect and returns the authorize URL and the flow cookies.
func begin(t *testing.T, router http.Handler, provider string) (*url.URL, []*http.Cookie) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/"+provider, nil))
	require.Equal(t, http.StatusFound, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	return loc, w.Result().Cookies()
}

func callback(router http.Handler, provider string, query url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/auth/"+provider+"/callback?"+query.Encode(), nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

// fanburstProvider fakes the Fanburst token and profile endpoints and
// checks the PKCE verifier against the challenge sent on redirect.
type fanburstProvider struct {
	challenge string
}

func (p *fanburstProvider) RoundTrip(req *http.Request) (*http.Response, error) {
	w := httptest.NewRecorder()
	switch req.URL.Path {
	case "/oauth/token":
		_ = req.ParseForm()
		sum := sha256.Sum256([]byte(req.PostForm.Get("code_verifier")))
		if req.PostForm.Get("code") != "good-code" ||
			base64.RawURLEncoding.EncodeToString(sum[:]) != p.challenge {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			break
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"fb-access","refresh_token":"fb-refresh","token_type":"Bearer"}`))
	case "/me":
		if req.Header.Get("Authorization") != "Bearer fb-access" {
			w.WriteHeader(http.StatusUnauthorized)
			break
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"42","name":"alice","track_count":5}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
	return w.Result(), nil
}

func TestHandler_FanburstFlow(t *testing.T) {
	t.Parallel()

	provider := &fanburstProvider{}
	store := users.NewMemoryStore()
	strategy, err := fanburst.New(fanburst.Config{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		CallbackURL:  "http://localhost:8080/auth/fanburst/callback",
	}, func(ctx context.Context, _, _ string, p *fanburst.Profile) (*users.User, error) {
		return store.FindOrCreate(ctx, p)
	}, oauth.WithHTTPClient(&http.Client{Transport: provider}))
	require.NoError(t, err)

	h := httpauth.New(oauth.NewRegistry[*users.User](strategy), newCookies(t), nil)
	router := newRouter(h)

	loc, cookies := begin(t, router, "fanburst")
	require.Equal(t, "fanburst.com", loc.Host)
	require.Equal(t, "/oauth/authorize", loc.Path)
	require.Equal(t, "test-id", loc.Query().Get("client_id"))
	require.Equal(t, "S256", loc.Query().Get("code_challenge_method"))
	require.NotEmpty(t, loc.Query().Get("state"))
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		require.True(t, c.HttpOnly)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	}
	provider.challenge = loc.Query().Get("code_challenge")

	w := callback(router, "fanburst", url.Values{
		"code":  {"good-code"},
		"state": {loc.Query().Get("state")},
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		User     users.User `json:"user"`
		Provider string     `json:"provider"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "fanburst", body.Provider)
	require.Equal(t, "42", body.User.ProviderUserID)
	require.Equal(t, "alice", body.User.Username)
	require.Equal(t, 1, store.Len())

	for _, c := range w.Result().Cookies() {
		require.Negative(t, c.MaxAge, "flow cookie %s must be cleared", c.Name)
	}

	t.Run("code is rejected without the verifier cookie", func(t *testing.T) {
		loc, cookies := begin(t, router, "fanburst")
		var stateOnly []*http.Cookie
		for _, c := range cookies {
			if c.Name == "oauth_state" {
				stateOnly = append(stateOnly, c)
			}
		}

		w := callback(router, "fanburst", url.Values{
			"code":  {"good-code"},
			"state": {loc.Query().Get("state")},
		}, stateOnly)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "invalid_state", decodeError(t, w))
	})
}

// fakeAuthenticator returns a fixed result from Authenticate.
type fakeAuthenticator struct {
	err  error
	user string
}

func (fakeAuthenticator) Name() string { return "fake" }

func (fakeAuthenticator) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	cfg := oauth2.Config{ClientID: "c", Endpoint: oauth2.Endpoint{AuthURL: "https://provider.test/authorize"}}
	return cfg.AuthCodeURL(state, opts...)
}

func (f fakeAuthenticator) Authenticate(_ context.Context, code string, _ ...oauth2.AuthCodeOption) (string, error) {
	if code == "" {
		return "", oauth.ErrMissingCode
	}
	return f.user, f.err
}

func TestHandler_Callback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		query      func(state string) url.Values
		wantCode   string
		wantStatus int
	}{
		{
			name:       "success",
			query:      func(s string) url.Values { return url.Values{"code": {"c"}, "state": {s}} },
			wantStatus: http.StatusOK,
		},
		{
			name:       "state mismatch",
			query:      func(string) url.Values { return url.Values{"code": {"c"}, "state": {"forged"}} },
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_state",
		},
		{
			name:       "missing state",
			query:      func(string) url.Values { return url.Values{"code": {"c"}} },
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_state",
		},
		{
			name: "provider denied",
			query: func(s string) url.Values {
				return url.Values{"error": {"access_denied"}, "error_description": {"user said no"}, "state": {s}}
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "access_denied",
		},
		{
			name:       "missing code",
			query:      func(s string) url.Values { return url.Values{"state": {s}} },
			wantStatus: http.StatusBadRequest,
			wantCode:   "missing_code",
		},
		{
			name:       "verify rejected",
			err:        errors.Join(errors.New("banned"), oauth.ErrUnauthorized),
			query:      func(s string) url.Values { return url.Values{"code": {"c"}, "state": {s}} },
			wantStatus: http.StatusUnauthorized,
			wantCode:   "access_denied",
		},
		{
			name:       "exchange failed",
			err:        errors.Join(oauth.ErrExchangeFailed, &oauth2.RetrieveError{ErrorCode: "invalid_grant"}),
			query:      func(s string) url.Values { return url.Values{"code": {"c"}, "state": {s}} },
			wantStatus: http.StatusUnauthorized,
			wantCode:   "invalid_grant",
		},
		{
			name:       "profile fetch failed",
			err:        oauth.NewInternalError("failed to fetch user profile", oauth.ErrFetchFailed),
			query:      func(s string) url.Values { return url.Values{"code": {"c"}, "state": {s}} },
			wantStatus: http.StatusBadGateway,
			wantCode:   "profile_unavailable",
		},
		{
			name:       "malformed profile",
			err:        &json.SyntaxError{},
			query:      func(s string) url.Values { return url.Values{"code": {"c"}, "state": {s}} },
			wantStatus: http.StatusBadGateway,
			wantCode:   "profile_unavailable",
		},
		{
			name:       "store failure",
			err:        users.ErrStoreFailed,
			query:      func(s string) url.Values { return url.Values{"code": {"c"}, "state": {s}} },
			wantStatus: http.StatusInternalServerError,
			wantCode:   "server_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			auth := fakeAuthenticator{user: "u-1", err: tt.err}
			var gotUser string
			h := httpauth.New(oauth.NewRegistry[string](auth), newCookies(t),
				func(w http.ResponseWriter, _ *http.Request, provider string, user string) {
					gotUser = provider + "/" + user
					w.WriteHeader(http.StatusOK)
				},
				httpauth.WithPKCE(false),
			)
			router := newRouter(h)

			loc, cookies := begin(t, router, "fake")
			require.Empty(t, loc.Query().Get("code_challenge"))
			require.Len(t, cookies, 1)

			w := callback(router, "fake", tt.query(loc.Query().Get("state")), cookies)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantCode == "" {
				require.Equal(t, "fake/u-1", gotUser)
				return
			}
			require.Empty(t, gotUser)
			require.Equal(t, tt.wantCode, decodeError(t, w))
		})
	}
}

func TestHandler_ReplayedState(t *testing.T) {
	t.Parallel()

	h := httpauth.New(oauth.NewRegistry[string](fakeAuthenticator{user: "u"}), newCookies(t), nil, httpauth.WithPKCE(false))
	router := newRouter(h)

	loc, cookies := begin(t, router, "fake")
	q := url.Values{"code": {"c"}, "state": {loc.Query().Get("state")}}

	first := callback(router, "fake", q, cookies)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, "application/json", first.Header().Get("Content-Type"))

	// A browser honoring the expiry sends no state cookie the second time.
	second := callback(router, "fake", q, nil)
	require.Equal(t, http.StatusBadRequest, second.Code)
}

func TestHandler_UnknownProvider(t *testing.T) {
	t.Parallel()

	router := newRouter(httpauth.New(oauth.NewRegistry[string](), newCookies(t), nil))

	for _, path := range []string{"/auth/github", "/auth/github/callback"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, w.Code, path)
		require.True(t, strings.Contains(w.Body.String(), "unknown_provider"), path)
	}
}
