// Command fanburst-login is a minimal host for the Fanburst strategy:
// it signs users in with Fanburst and links them to local accounts.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/fanburst"
	"github.com/dmitrymomot/fanburst/internal/httpauth"
	"github.com/dmitrymomot/fanburst/internal/server"
	"github.com/dmitrymomot/fanburst/internal/users"
	"github.com/dmitrymomot/fanburst/pkg/cookie"
	"github.com/dmitrymomot/fanburst/pkg/health"
	"github.com/dmitrymomot/fanburst/pkg/logger"
	"github.com/dmitrymomot/fanburst/pkg/oauth"
	"github.com/dmitrymomot/fanburst/pkg/redis"
)

func main() {
	os.Exit(realMain())
}

// realMain returns the process exit code so deferred cleanup runs before exit.
func realMain() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("fanburst-login failed", logger.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(os.Stdout, cfg.Log, logger.RequestIDExtractor())
	defer logger.Flush(2 * time.Second)

	store, checks, hooks, err := openStore(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}

	cookies, err := cookie.New(cfg.Cookie.Secret,
		cookie.WithDomain(cfg.Cookie.Domain),
		cookie.WithSecure(cfg.Cookie.Secure),
	)
	if err != nil {
		return err
	}

	strategy, err := fanburst.New(cfg.Fanburst, verifyWith(store))
	if err != nil {
		return err
	}
	registry := oauth.NewRegistry[*users.User](strategy)

	auth := httpauth.New(registry, cookies, nil,
		httpauth.WithLogger(log.With(logger.Component("httpauth"))),
		httpauth.WithPKCE(cfg.Login.PKCE),
	)
	probes := health.New(checks, health.WithLogger(log.With(logger.Component("health"))))

	return server.Run(ctx, cfg.Server, newRouter(auth, probes), log, hooks...)
}

// openStore picks Redis when configured and falls back to memory.
func openStore(ctx context.Context, cfg redis.Config, log *slog.Logger) (users.Store, health.Checks, []server.Hook, error) {
	if !cfg.Enabled() {
		log.Warn("REDIS_URL not set, users are kept in memory")
		return users.NewMemoryStore(), nil, nil, nil
	}

	client, err := redis.Open(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	checks := health.Checks{"redis": redis.Healthcheck(client)}
	hooks := []server.Hook{func(context.Context) error { return client.Close() }}
	return users.NewRedisStore(client), checks, hooks, nil
}

// verifyWith links every Fanburst profile to a local user.
func verifyWith(store users.Store) oauth.VerifyFunc[*fanburst.Profile, *users.User] {
	return func(ctx context.Context, _, _ string, profile *fanburst.Profile) (*users.User, error) {
		u, err := store.FindOrCreate(ctx, profile)
		if errors.Is(err, users.ErrMissingProfileID) {
			return nil, errors.Join(oauth.ErrUnauthorized, err)
		}
		return u, err
	}
}

func newRouter(auth *httpauth.Handler[*users.User], probes *health.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/live", probes.Live)
	r.Get("/ready", probes.Ready)
	r.Mount("/auth", auth.Routes())
	return r
}
