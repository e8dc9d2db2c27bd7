package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/llm-router/utils"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(logger *zap.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// HandleHealth handles GET /health.
// Liveness only: backends are never contacted.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := utils.WriteOK(w, HealthResponse{Status: "healthy"}); err != nil {
		h.logger.Error("failed to write health response", zap.Error(err))
	}
}
