package routing

import (
	"context"

	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/services/classifier"
	"github.com/upb/llm-router/services/policy"
	"go.uber.org/zap"
)

// Strategy is the label /models reports for how requests are routed
const Strategy = "complexity-based with task detection"

// DecisionRecorder receives every decision the service makes
type DecisionRecorder interface {
	RecordDecision(d models.RouteDecision)
}

// RoutingService classifies requests and selects a backend for them.
// It keeps no state between calls.
type RoutingService struct {
	classifier classifier.Classifier
	selector   *policy.Selector
	metrics    DecisionRecorder
	logger     *zap.Logger
}

// NewRoutingService creates a new RoutingService
func NewRoutingService(c classifier.Classifier, selector *policy.Selector, metrics DecisionRecorder, logger *zap.Logger) *RoutingService {
	return &RoutingService{
		classifier: c,
		selector:   selector,
		metrics:    metrics,
		logger:     logger,
	}
}

// Route produces a decision for req. It never fails: the request is assumed
// validated, and an explicit task type replaces detection while complexity
// is still computed from the text.
func (s *RoutingService) Route(ctx context.Context, req models.RouteRequest) models.RouteDecision {
	complexity, taskType := s.classifier.Classify(req.Query)
	if req.TaskType != nil && req.TaskType.Valid() {
		taskType = *req.TaskType
	}

	decision := s.selector.Select(complexity, taskType, req.WantsLocal())

	if s.metrics != nil {
		s.metrics.RecordDecision(decision)
	}
	s.logger.Debug("route selected",
		zap.String("provider", decision.ProviderID.String()),
		zap.String("model", decision.ModelID),
		zap.String("complexity", string(complexity)),
		zap.String("task_type", string(taskType)),
		zap.Bool("prefer_local", req.WantsLocal()),
		zap.Bool("task_type_override", req.TaskType != nil),
	)

	return decision
}

// Strategy returns the routing strategy label
func (s *RoutingService) Strategy() string {
	return Strategy
}

// RulesetName returns the name of the active classifier ruleset
func (s *RoutingService) RulesetName() string {
	return s.classifier.Name()
}

// Providers lists every provider the selector can emit
func (s *RoutingService) Providers() []models.ProviderID {
	return s.selector.Table().Providers()
}
