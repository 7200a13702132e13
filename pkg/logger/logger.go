package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// New creates a logger writing to w, decorated with the given context extractors.
// When cfg.SentryDSN is set, warnings and errors are also forwarded to Sentry.
// A failed Sentry init is reported on w and logging continues without it.
func New(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	local := newWriterHandler(w, cfg)
	if cfg.SentryDSN == "" {
		return slog.New(NewContextHandler(local, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize sentry", Error(err))
		return slog.New(NewContextHandler(local, extractors...))
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.SentryMinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}
	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(newMultiHandler(local, remote), extractors...))
}

// Flush waits for buffered Sentry events to be sent.
// It is a no-op when Sentry was never initialized.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

func newWriterHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == FormatText {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
