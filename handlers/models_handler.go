package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/utils"
)

// RoutingInfo describes the active routing setup
type RoutingInfo interface {
	Strategy() string
	RulesetName() string
	Providers() []models.ProviderID
}

// ModelsResponse is the GET /models body
type ModelsResponse struct {
	Models          interface{}         `json:"models"`
	RoutingStrategy string              `json:"routing_strategy"`
	Providers       []models.ProviderID `json:"providers"`
	Ruleset         string              `json:"ruleset"`
}

// ModelsHandler serves the static model catalog
type ModelsHandler struct {
	catalog interface{}
	routing RoutingInfo
	logger  *zap.Logger
}

// NewModelsHandler creates a new ModelsHandler. The catalog value is served
// as given; nil is served as {}.
func NewModelsHandler(catalog interface{}, routing RoutingInfo, logger *zap.Logger) *ModelsHandler {
	if catalog == nil {
		catalog = map[string]interface{}{}
	}
	return &ModelsHandler{
		catalog: catalog,
		routing: routing,
		logger:  logger,
	}
}

// HandleModels handles GET /models
func (h *ModelsHandler) HandleModels(w http.ResponseWriter, r *http.Request) {
	response := ModelsResponse{
		Models:          h.catalog,
		RoutingStrategy: h.routing.Strategy(),
		Providers:       h.routing.Providers(),
		Ruleset:         h.routing.RulesetName(),
	}

	if err := utils.WriteOK(w, response); err != nil {
		h.logger.Error("failed to write models response", zap.Error(err))
	}
}
