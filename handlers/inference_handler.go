package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/llm-router/middleware"
	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/services/inference"
	"github.com/upb/llm-router/utils"
)

// InferenceService defines the routing and chat operations behind the HTTP surface
type InferenceService interface {
	// Route classifies a query and returns the selected backend without contacting it
	Route(ctx context.Context, req models.RouteRequest) (models.RouteDecision, error)

	// Chat routes a query and forwards it to the selected backend
	Chat(ctx context.Context, req models.ChatRequest) (*inference.ChatResponse, error)
}

// InferenceHandler handles /route and /chat
type InferenceHandler struct {
	service InferenceService
	logger  *zap.Logger
}

// NewInferenceHandler creates a new InferenceHandler
func NewInferenceHandler(service InferenceService, logger *zap.Logger) *InferenceHandler {
	return &InferenceHandler{
		service: service,
		logger:  logger,
	}
}

// HandleRoute handles POST /route
func (h *InferenceHandler) HandleRoute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.LoggerFromContext(ctx, h.logger)

	var req models.RouteRequest
	if !h.decode(w, r, &req, logger) {
		return
	}

	decision, err := h.service.Route(ctx, req)
	if err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	if err := utils.WriteOK(w, decision); err != nil {
		logger.Error("failed to write route response", zap.Error(err))
	}
}

// HandleChat handles POST /chat
func (h *InferenceHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.LoggerFromContext(ctx, h.logger)

	var req models.ChatRequest
	if !h.decode(w, r, &req, logger) {
		return
	}

	result, err := h.service.Chat(ctx, req)
	if err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	if err := utils.WriteOK(w, result); err != nil {
		logger.Error("failed to write chat response", zap.Error(err))
	}
}

// queryPresence detects a missing "query" key, which the decoded string
// cannot tell apart from an empty one
type queryPresence struct {
	Query *string `json:"query" validate:"required"`
}

// decode parses and validates the request body, writing a 400 on failure
func (h *InferenceHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}, logger *zap.Logger) bool {
	var raw json.RawMessage
	if err := utils.DecodeJSON(w, r, &raw); err != nil {
		logger.Warn("failed to parse request body", zap.Error(err))
		HandleValidationError(w, err, logger)
		return false
	}

	if err := json.Unmarshal(raw, v); err != nil {
		err = fmt.Errorf("invalid JSON body: %w", err)
		logger.Warn("failed to parse request body", zap.Error(err))
		HandleValidationError(w, err, logger)
		return false
	}
	// Cannot fail once v decoded: the body is a JSON object or null
	var presence queryPresence
	_ = json.Unmarshal(raw, &presence)

	if err := utils.ValidateStruct(&presence); err != nil {
		logger.Warn("request validation failed", zap.Error(err))
		HandleValidationError(w, err, logger)
		return false
	}

	if err := utils.ValidateStruct(v); err != nil {
		logger.Warn("request validation failed", zap.Error(err))
		HandleValidationError(w, err, logger)
		return false
	}
	return true
}
