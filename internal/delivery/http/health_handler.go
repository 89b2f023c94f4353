package http

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// HealthCheck checks one dependency.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

// Method Get /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			deps[name] = err.Error()
			healthy = false
			continue
		}
		deps[name] = "ok"
	}

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Data:    map[string]any{"status": "degraded", "dependencies": deps},
			Error:   "dependency unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]any{"status": "ok", "dependencies": deps},
	})
}
