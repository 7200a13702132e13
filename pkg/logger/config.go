package logger

import "log/slog"

// Format selects the stdout encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config holds logger configuration.
// Sentry forwarding is enabled only when SentryDSN is set.
type Config struct {
	Level             slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Format            Format     `env:"LOG_FORMAT" envDefault:"json"`
	SentryDSN         string     `env:"SENTRY_DSN"`
	SentryEnvironment string     `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// SentryMinLevel is the lowest level stored as a Sentry log entry.
	// Errors always create Sentry issues.
	SentryMinLevel slog.Level `env:"SENTRY_LOG_LEVEL" envDefault:"warn"`
}
