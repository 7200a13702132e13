package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fanburst/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(&buf, logger.Config{Format: logger.FormatJSON})
		log.Info("login succeeded",
			logger.Provider("fanburst"),
			logger.UserID("42"),
			logger.Component("httpauth"),
		)

		entry := decodeLine(t, &buf)
		require.Equal(t, "INFO", entry["level"])
		require.Equal(t, "login succeeded", entry["msg"])
		require.Equal(t, "fanburst", entry["provider"])
		require.Equal(t, "42", entry["user_id"])
		require.Equal(t, "httpauth", entry["component"])
	})

	t.Run("text output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(&buf, logger.Config{Format: logger.FormatText})
		log.Warn("state mismatch", logger.Provider("fanburst"))

		out := buf.String()
		require.Contains(t, out, "level=WARN")
		require.Contains(t, out, `msg="state mismatch"`)
		require.Contains(t, out, "provider=fanburst")
	})

	t.Run("level filter", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(&buf, logger.Config{Level: slog.LevelWarn})
		log.Info("hidden")
		require.Zero(t, buf.Len())

		log.Error("shown")
		require.Contains(t, buf.String(), "shown")
	})

	t.Run("request id extractor", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(&buf, logger.Config{}, logger.RequestIDExtractor(), nil)

		ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
		log.InfoContext(ctx, "callback")
		require.Equal(t, "req-1", decodeLine(t, &buf)["request_id"])

		buf.Reset()
		log.InfoContext(context.Background(), "callback")
		_, ok := decodeLine(t, &buf)["request_id"]
		require.False(t, ok)
	})

	t.Run("extractors survive With", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(&buf, logger.Config{}, logger.RequestIDExtractor()).
			With(logger.Component("users")).
			WithGroup("auth")

		ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-2")
		log.InfoContext(ctx, "stored")

		entry := decodeLine(t, &buf)
		require.Equal(t, "users", entry["component"])
		group, ok := entry["auth"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "req-2", group["request_id"])
	})
}

func TestError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(&buf, logger.Config{})

	log.Error("exchange failed", logger.Error(errors.New("invalid_grant")))
	require.Equal(t, "invalid_grant", decodeLine(t, &buf)["error"])

	buf.Reset()
	log.Error("no cause", logger.Error(nil))
	require.False(t, strings.Contains(buf.String(), `"error"`))
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
	log.Error("discarded")
}
