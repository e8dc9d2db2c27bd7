package inference

import (
	"context"

	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/services"
	"github.com/upb/llm-router/services/dispatch"
	"github.com/upb/llm-router/services/providers"
	"go.uber.org/zap"
)

// Router selects a backend for a request
type Router interface {
	Route(ctx context.Context, req models.RouteRequest) models.RouteDecision
}

// Dispatcher executes a decision against its backend
type Dispatcher interface {
	Dispatch(ctx context.Context, decision models.RouteDecision, req providers.Request) dispatch.Envelope
}

// InferenceService orchestrates routing and, for chat, dispatch
type InferenceService struct {
	router     Router
	dispatcher Dispatcher
	logger     *zap.Logger
}

// NewInferenceService creates a new inference service with all dependencies
func NewInferenceService(router Router, dispatcher Dispatcher, logger *zap.Logger) *InferenceService {
	return &InferenceService{
		router:     router,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Route classifies req and returns the selected backend without contacting it
func (s *InferenceService) Route(ctx context.Context, req models.RouteRequest) (models.RouteDecision, error) {
	if err := validate(req); err != nil {
		return models.RouteDecision{}, err
	}
	return s.router.Route(ctx, req), nil
}

// Chat routes req and executes it against the selected backend.
// A failed dispatch is returned as a domain error; the provider is never swapped.
func (s *InferenceService) Chat(ctx context.Context, req models.ChatRequest) (*ChatResponse, error) {
	if err := validate(req.RouteRequest); err != nil {
		return nil, err
	}

	// Step 1: select the backend
	decision := s.router.Route(ctx, req.RouteRequest)

	s.logger.Info("dispatching chat request",
		zap.String("provider", decision.ProviderID.String()),
		zap.String("model", decision.ModelID),
		zap.Bool("stream", req.Stream))

	// Step 2: one call to that backend
	env := s.dispatcher.Dispatch(ctx, decision, providers.Request{
		Query:     req.Query,
		MaxTokens: req.TokenLimit(),
		Stream:    req.Stream,
	})
	if !env.Succeeded() {
		s.logger.Error("chat request failed",
			zap.String("dispatch_id", env.ID),
			zap.String("provider", decision.ProviderID.String()),
			zap.Error(env.Err))
		if env.Err == nil {
			return nil, services.WrapInternal("dispatch ended without a result", nil)
		}
		return nil, env.Err
	}

	s.logger.Info("chat request completed",
		zap.String("dispatch_id", env.ID),
		zap.String("provider", decision.ProviderID.String()),
		zap.Duration("latency", env.Latency))

	return &ChatResponse{
		Route:      env.Decision,
		Response:   env.Raw,
		Text:       env.Text,
		DispatchID: env.ID,
		Latency:    env.Latency,
	}, nil
}

// validate guards the service for callers that bypass the HTTP layer.
// An empty query is valid and routes as low complexity, general task.
func validate(req models.RouteRequest) error {
	if req.MaxTokens != nil && *req.MaxTokens <= 0 {
		return services.NewValidationError("max_tokens must be greater than 0", nil)
	}
	if req.TaskType != nil && !req.TaskType.Valid() {
		return services.NewValidationError("task_type must be one of coding, multimodal, reasoning, general", nil)
	}
	return nil
}
