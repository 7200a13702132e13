package logger

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
)

// Error returns an "error" attribute. A nil error yields an empty attribute,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// Provider returns a "provider" attribute.
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// UserID returns a "user_id" attribute.
func UserID(id string) slog.Attr {
	return slog.String("user_id", id)
}

// Component returns a "component" attribute.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// RequestIDExtractor adds the chi request ID, when present, as "request_id".
func RequestIDExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := middleware.GetReqID(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return slog.String("request_id", id), true
	}
}
