package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/upb/llm-router/models"
)

const metricsNamespace = "llmrouter"

// Dispatch outcomes used as the "outcome" label.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the router's Prometheus collectors.
//
// Metrics:
//   - llmrouter_route_decisions_total: decisions by provider, model, complexity and task type
//   - llmrouter_dispatch_total: outbound calls by provider and outcome
//   - llmrouter_dispatch_duration_seconds: outbound call latency by provider
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	decisions *prometheus.CounterVec
	dispatch  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics creates and registers collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "route_decisions_total",
				Help:      "Total number of routing decisions",
			},
			[]string{"provider", "model", "complexity", "task_type"},
		),

		dispatch: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "dispatch_total",
				Help:      "Total number of backend calls by outcome",
			},
			[]string{"provider", "outcome"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "dispatch_duration_seconds",
				Help:      "Backend call latency in seconds",
				// LLM latencies: 100ms to 2m
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"provider"},
		),
	}

	m.registry.MustRegister(
		m.decisions,
		m.dispatch,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordDecision counts a routing decision
func (m *Metrics) RecordDecision(d models.RouteDecision) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(
		d.ProviderID.String(),
		d.ModelID,
		string(d.Complexity),
		string(d.TaskType),
	).Inc()
}

// RecordDispatch counts a backend call and observes its latency
func (m *Metrics) RecordDispatch(provider models.ProviderID, outcome string, latency time.Duration) {
	if m == nil {
		return
	}
	m.dispatch.WithLabelValues(provider.String(), outcome).Inc()
	m.duration.WithLabelValues(provider.String()).Observe(latency.Seconds())
}

// Registry exposes the private registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for the Prometheus metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
