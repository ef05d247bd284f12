package account

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authkit/handler"
	"github.com/dmitrymomot/authkit/pkg/async"
	"github.com/dmitrymomot/authkit/pkg/logger"
)

// Check reports whether a dependency is reachable.
// pg.Healthcheck and redis.Healthcheck return one.
type Check func(ctx context.Context) error

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHandler runs every check concurrently on GET and answers 200 when all
// pass, 503 otherwise.
type HealthHandler struct {
	checks  map[string]Check
	timeout time.Duration
	logger  *slog.Logger
}

type HealthOption func(*HealthHandler)

// WithCheckTimeout bounds each health check. Default 3s.
func WithCheckTimeout(d time.Duration) HealthOption {
	return func(h *HealthHandler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

func WithHealthLogger(l *slog.Logger) HealthOption {
	return func(h *HealthHandler) {
		if l != nil {
			h.logger = l
		}
	}
}

func NewHealthHandler(checks map[string]Check, opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{
		checks:  maps.Clone(checks),
		timeout: 3 * time.Second,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HealthHandler) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/", handler.Wrap[struct{}](h.health))
	return r
}

type checkResult struct {
	name string
	err  error
}

func (h *HealthHandler) health(ctx handler.Context, _ struct{}) handler.Response {
	futures := make([]*async.Future[checkResult], 0, len(h.checks))
	for name, check := range h.checks {
		futures = append(futures, async.Async(ctx, name, func(ctx context.Context, name string) (checkResult, error) {
			cctx, cancel := context.WithTimeout(ctx, h.timeout)
			defer cancel()
			return checkResult{name: name, err: check(cctx)}, nil
		}))
	}
	// Check failures travel inside checkResult; WaitAll only fails when the
	// request itself is gone.
	done, err := async.WaitAll(futures...)
	if err != nil {
		return handler.JSONError(err)
	}

	resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(done))}
	code := http.StatusOK
	for _, res := range done {
		if res.err == nil {
			resp.Checks[res.name] = "ok"
			continue
		}
		resp.Checks[res.name] = "unavailable"
		resp.Status = "unavailable"
		code = http.StatusServiceUnavailable
		h.logger.WarnContext(ctx, "health check failed",
			slog.String("check", res.name),
			logger.Error(res.err),
			logger.Component("health"),
		)
	}

	return handler.JSON(resp, handler.WithJSONStatus(code))
}
