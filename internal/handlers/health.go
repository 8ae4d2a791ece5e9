package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sre-sandbox/shopping-api/internal/chaos"
)

// HealthHandler provides the health snapshot endpoint
type HealthHandler struct {
	latency *chaos.LatencySimulator
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(latency *chaos.LatencySimulator, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		latency: latency,
		logger:  logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	ChaosMode bool      `json:"chaos_mode"`
}

// ServeHTTP handles GET / and GET /health. Health is ungated but still pays
// the base latency tier.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	realized := h.latency.Apply(chaos.TierBase)
	SetResponseTime(w, realized)

	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "shopping-api",
		Version:   "1.0.0",
		Timestamp: time.Now().UTC(),
		ChaosMode: h.latency.ChaosMode(),
	}, h.logger)
}
