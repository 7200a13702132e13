// Package logger builds the slog loggers used by the login host.
//
// Output goes to any io.Writer as JSON or text. Context extractors append
// request-scoped attributes on every call, and when a Sentry DSN is configured
// warnings and errors are forwarded to Sentry as well:
//
//	log := logger.New(os.Stdout, cfg, logger.RequestIDExtractor())
//	defer logger.Flush(2 * time.Second)
//
//	log.ErrorContext(ctx, "login failed",
//		logger.Provider("fanburst"),
//		logger.Error(err),
//	)
//
// Config is loaded with caarlos0/env:
//
//	LOG_LEVEL           debug, info, warn or error (default info)
//	LOG_FORMAT          json or text (default json)
//	SENTRY_DSN          enables Sentry forwarding when set
//	SENTRY_ENVIRONMENT  Sentry environment (default production)
//	SENTRY_LOG_LEVEL    lowest level stored as a Sentry log (default warn)
//
// A failed Sentry init is logged once and the logger keeps writing locally.
// Library packages such as fanburst and pkg/oauth never log; only the host does.
package logger
