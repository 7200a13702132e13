// Package server runs the login host's HTTP server until its context ends.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/fanburst/pkg/logger"
)

// Config holds HTTP server settings.
type Config struct {
	Addr            string        `env:"APP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"APP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"APP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"APP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Hook runs after the server stopped accepting requests, e.g. to close Redis.
type Hook func(ctx context.Context) error

// Run listens on cfg.Addr and serves handler until ctx is done, then shuts
// down gracefully and runs hooks in order.
func Run(ctx context.Context, cfg Config, handler http.Handler, log *slog.Logger, hooks ...Hook) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, cfg, handler, log, hooks...)
}

// Serve is Run on an existing listener.
func Serve(ctx context.Context, ln net.Listener, cfg Config, handler http.Handler, log *slog.Logger, hooks ...Hook) error {
	if log == nil {
		log = logger.NewNope()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()

		errs := []error{srv.Shutdown(shutdownCtx)}
		for _, hook := range hooks {
			if err := hook(shutdownCtx); err != nil {
				log.Error("shutdown hook failed", logger.Error(err))
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with errors", logger.Error(err))
		return err
	}
	log.Info("shutdown completed")
	return nil
}
