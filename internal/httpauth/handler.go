// Package httpauth exposes registered OAuth strategies over HTTP.
//
//	GET /auth/{provider}           redirects to the provider
//	GET /auth/{provider}/callback  completes the login
package httpauth

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/fanburst/pkg/cookie"
	"github.com/dmitrymomot/fanburst/pkg/logger"
	"github.com/dmitrymomot/fanburst/pkg/oauth"
)

const (
	stateCookie    = "oauth_state"
	verifierCookie = "oauth_verifier"
)

// SuccessFunc writes the response after a successful login.
type SuccessFunc[U any] func(w http.ResponseWriter, r *http.Request, provider string, user U)

// Option configures a Handler.
type Option func(*config)

type config struct {
	log     *slog.Logger
	flowTTL time.Duration
	pkce    bool
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithPKCE toggles the S256 code challenge. Default: enabled.
func WithPKCE(enabled bool) Option {
	return func(c *config) {
		c.pkce = enabled
	}
}

// WithFlowTTL bounds the time between redirect and callback. Default: 10m.
func WithFlowTTL(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.flowTTL = d
		}
	}
}

// Handler runs the authorization-code flow for every strategy in a registry.
type Handler[U any] struct {
	registry  *oauth.Registry[U]
	cookies   *cookie.Manager
	onSuccess SuccessFunc[U]
	config
}

// New creates a Handler. A nil onSuccess responds with the user as JSON.
func New[U any](registry *oauth.Registry[U], cookies *cookie.Manager, onSuccess SuccessFunc[U], opts ...Option) *Handler[U] {
	cfg := config{
		log:     logger.NewNope(),
		flowTTL: 10 * time.Minute,
		pkce:    true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if onSuccess == nil {
		onSuccess = respondWithUser[U]
	}
	return &Handler[U]{
		registry:  registry,
		cookies:   cookies,
		onSuccess: onSuccess,
		config:    cfg,
	}
}

// Routes returns a router to be mounted under /auth.
func (h *Handler[U]) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{provider}", h.Login)
	r.Get("/{provider}/callback", h.Callback)
	return r
}

// Login stores a fresh state (and PKCE verifier) in cookies and redirects
// to the provider's authorization endpoint.
func (h *Handler[U]) Login(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "provider")
	strategy, err := h.registry.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_provider", "")
		return
	}

	maxAge := int(h.flowTTL.Seconds())
	state := rand.Text()
	h.cookies.SetSigned(w, stateCookie, state, maxAge)

	var opts []oauth2.AuthCodeOption
	if h.pkce {
		verifier := oauth2.GenerateVerifier()
		h.cookies.SetEncrypted(w, verifierCookie, verifier, maxAge)
		opts = append(opts, oauth2.S256ChallengeOption(verifier))
	}

	h.log.DebugContext(r.Context(), "redirecting to provider", logger.Provider(name))
	http.Redirect(w, r, strategy.AuthCodeURL(state, opts...), http.StatusFound)
}

// Callback validates the state, then exchanges the code and runs the
// strategy's verify callback.
func (h *Handler[U]) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "provider")
	strategy, err := h.registry.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_provider", "")
		return
	}

	q := r.URL.Query()
	state, stateErr := h.cookies.PopSigned(w, r, stateCookie)
	verifier, verifierErr := h.cookies.PopEncrypted(w, r, verifierCookie)

	if stateErr != nil || !sameState(state, q.Get("state")) {
		h.log.WarnContext(ctx, "oauth state mismatch", logger.Provider(name), logger.Error(stateErr))
		writeError(w, http.StatusBadRequest, "invalid_state", "")
		return
	}

	if code := q.Get("error"); code != "" {
		h.log.WarnContext(ctx, "provider returned error",
			logger.Provider(name),
			slog.String("error_code", code),
			slog.String("error_description", q.Get("error_description")),
		)
		writeError(w, http.StatusUnauthorized, code, q.Get("error_description"))
		return
	}

	var opts []oauth2.AuthCodeOption
	if h.pkce {
		if verifierErr != nil {
			h.log.WarnContext(ctx, "missing pkce verifier", logger.Provider(name), logger.Error(verifierErr))
			writeError(w, http.StatusBadRequest, "invalid_state", "")
			return
		}
		opts = append(opts, oauth2.VerifierOption(verifier))
	}

	user, err := strategy.Authenticate(ctx, q.Get("code"), opts...)
	if err != nil {
		status, code := classify(err)
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		h.log.Log(ctx, level, "login failed", logger.Provider(name), logger.Error(err))
		writeError(w, status, code, "")
		return
	}

	h.log.InfoContext(ctx, "login succeeded", logger.Provider(name))
	h.onSuccess(w, r, name, user)
}

func sameState(stored, got string) bool {
	return got != "" && subtle.ConstantTimeCompare([]byte(stored), []byte(got)) == 1
}

// classify maps an Authenticate error to a status and a public error code.
func classify(err error) (int, string) {
	var internal *oauth.InternalError
	switch {
	case errors.Is(err, oauth.ErrMissingCode):
		return http.StatusBadRequest, "missing_code"
	case errors.Is(err, oauth.ErrUnauthorized):
		return http.StatusUnauthorized, "access_denied"
	case errors.Is(err, oauth.ErrExchangeFailed):
		return http.StatusUnauthorized, "invalid_grant"
	case errors.As(err, &internal), isDecodeError(err):
		return http.StatusBadGateway, "profile_unavailable"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}
