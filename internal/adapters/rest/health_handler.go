package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/philly/member-admin/internal/platform/result"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health status values
const (
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
	CheckUp         = "up"
	CheckDown       = "down"
)

type HealthHandler struct {
	*BaseHandler
	version string
	store   Pinger
}

func NewHealthHandler(base *BaseHandler, version string, store Pinger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		version:     version,
		store:       store,
	}
}

// GetLiveness implements the liveness probe endpoint
// This is a lightweight check with no external dependencies
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	writeResult(h.BaseHandler, w, r, result.OK(healthResponse{
		Status:    HealthHealthy,
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}, "alive"))
}

// GetReadiness implements the readiness probe endpoint
// This checks the store
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	health := healthResponse{
		Status:    HealthHealthy,
		Timestamp: time.Now().UTC(),
		Version:   h.version,
		Checks:    map[string]string{"store": CheckUp},
	}

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn(ctx, "readiness check failed", "error", err)
		health.Status = HealthUnhealthy
		health.Checks["store"] = CheckDown
		writeResult(h.BaseHandler, w, r, result.Result[healthResponse]{
			Status:  result.StatusError,
			Data:    &health,
			Code:    http.StatusServiceUnavailable,
			Message: "store unavailable",
			Err:     err,
		})
		return
	}

	writeResult(h.BaseHandler, w, r, result.OK(health, "ready"))
}
