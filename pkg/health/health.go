package health

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/fanburst/pkg/logger"
)

const (
	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

// ErrCheckTimeout is reported for a check still running when the deadline hits.
var ErrCheckTimeout = errors.New("health: check timeout")

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(ctx context.Context) error

// Checks maps a dependency name to its check.
type Checks map[string]CheckFunc

// Response is the JSON body of both endpoints.
type Response struct {
	Checks map[string]string `json:"checks,omitempty"`
	Status string            `json:"status"`
}

// Option configures a Handler.
type Option func(*Handler)

// WithTimeout bounds the total time of a readiness probe. Default: 3s.
func WithTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithLogger logs failing checks.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// Handler serves liveness and readiness probes.
type Handler struct {
	checks  Checks
	log     *slog.Logger
	timeout time.Duration
}

// New creates a Handler running checks on every readiness probe.
func New(checks Checks, opts ...Option) *Handler {
	h := &Handler{
		checks:  checks,
		log:     logger.NewNope(),
		timeout: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Live always reports healthy while the process serves requests.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &Response{Status: StatusHealthy})
}

// Ready runs all checks in parallel and answers 503 if any fails.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	resp := h.run(r.Context())
	status := http.StatusOK
	if resp.Status != StatusHealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (h *Handler) run(ctx context.Context) *Response {
	if len(h.checks) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		results  = make(map[string]string, len(h.checks))
		status   = StatusHealthy
		finished bool
	)
	for name, check := range h.checks {
		wg.Go(func() {
			err := check(ctx)
			if err == nil && ctx.Err() != nil {
				err = ErrCheckTimeout
			}

			mu.Lock()
			defer mu.Unlock()
			if finished {
				return
			}
			if err != nil {
				h.log.WarnContext(ctx, "health check failed", slog.String("check", name), logger.Error(err))
				results[name] = StatusUnhealthy
				status = StatusUnhealthy
				return
			}
			results[name] = StatusHealthy
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}

	// Checks still running at the deadline are reported as timed out.
	mu.Lock()
	defer mu.Unlock()
	finished = true
	for name := range h.checks {
		if _, ok := results[name]; !ok {
			h.log.WarnContext(ctx, "health check failed", slog.String("check", name), logger.Error(ErrCheckTimeout))
			results[name] = StatusUnhealthy
			status = StatusUnhealthy
		}
	}

	return &Response{Status: status, Checks: results}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
