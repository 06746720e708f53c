package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/ContestBot_Go/internal/logger"
)

// ReadinessTimeout bounds all checks in one /readyz call
const ReadinessTimeout = 2 * time.Second

const (
	HealthStatusOK          = "ok"
	HealthStatusDegraded    = "degraded"
	HealthStatusUnavailable = "unavailable"

	ComponentStorage = "storage"
)

// HealthResponse represents the response for health endpoints. Components is
// only filled by /readyz.
type HealthResponse struct {
	Status     string            `json:"status"`
	Message    string            `json:"message,omitempty"`
	Components map[string]string `json:"components,omitempty"`
}

// Pinger is the storage connectivity check used for readiness
type Pinger interface {
	Ping(ctx context.Context) error
}

// Probe is an optional dependency such as a notification transport. A failing
// probe marks the service degraded but still ready, since contest writes only
// need storage.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
	}
}

// HandleReadyz reports whether storage is reachable, plus the state of each probe
// @Summary Readiness check
// @Description Returns 200 when storage is reachable ("degraded" if an optional probe fails), 503 otherwise
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(storage Pinger, probes ...Probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()
		log := logger.FromContext(r.Context())

		resp := HealthResponse{Status: HealthStatusOK, Components: map[string]string{ComponentStorage: HealthStatusOK}}
		if err := storage.Ping(ctx); err != nil {
			log.Error(LogMsgReadinessFailed, "component", ComponentStorage, "error", err)
			resp.Status = HealthStatusUnavailable
			resp.Message = "storage unreachable"
			resp.Components[ComponentStorage] = HealthStatusUnavailable
		}

		for _, p := range probes {
			if err := p.Check(ctx); err != nil {
				log.Warn(LogMsgProbeFailed, "component", p.Name, "error", err)
				resp.Components[p.Name] = HealthStatusUnavailable
				if resp.Status == HealthStatusOK {
					resp.Status = HealthStatusDegraded
				}
				continue
			}
			resp.Components[p.Name] = HealthStatusOK
		}

		status := http.StatusOK
		if resp.Status == HealthStatusUnavailable {
			status = http.StatusServiceUnavailable
		}
		respondJSON(w, status, resp)
	}
}
