package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"scamshield/pkg/logger"
)

const readyProbeTimeout = 2 * time.Second

// HealthHandler serves liveness, readiness and backend reachability
type HealthHandler struct {
	backend BackendProber
	checks  map[string]Pinger
	version string
	logger  *logger.Logger
	started time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(b BackendProber, checks map[string]Pinger, version string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		backend: b,
		checks:  checks,
		version: version,
		logger:  log.WithComponent("health"),
		started: time.Now(),
	}
}

// HealthResponse is the body of /health and /ready
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) response(status string, checks map[string]string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, _ *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, h.response("healthy", nil))
}

// Ready handles GET /ready. Local stores decide readiness; the backend is
// only reported because scans fall back to local analysis.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	var (
		mu     sync.Mutex
		checks = make(map[string]string, len(h.checks)+1)
		failed bool
	)
	record := func(name, state string, bad bool) {
		mu.Lock()
		defer mu.Unlock()
		checks[name] = state
		failed = failed || bad
	}

	g, ctx := errgroup.WithContext(r.Context())
	for name, p := range h.checks {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
			defer cancel()
			if err := p.Ping(pctx); err != nil {
				record(name, "unhealthy: "+err.Error(), true)
				return nil
			}
			record(name, "healthy", false)
			return nil
		})
	}
	if h.backend != nil {
		g.Go(func() error {
			record("backend", h.backend.Health(ctx).Status, false)
			return nil
		})
	}
	_ = g.Wait()

	if failed {
		logger.FromContext(r.Context()).Warn().Interface("checks", checks).Msg("gateway not ready")
		respondJSON(h.logger, w, http.StatusServiceUnavailable, h.response("not ready", checks))
		return
	}
	respondJSON(h.logger, w, http.StatusOK, h.response("ready", checks))
}

// Backend handles GET /api/v1/backend/health
func (h *HealthHandler) Backend(w http.ResponseWriter, r *http.Request) {
	health := h.backend.Health(r.Context())
	status := http.StatusOK
	if !health.Reachable {
		status = http.StatusServiceUnavailable
	}
	respondJSON(h.logger, w, status, health)
}
