// Package dispatch executes a routing decision against its backend.
//
// A dispatch is exactly one outbound HTTP call, bounded by the configured
// timeout and the caller's context. Failures are reported, never retried and
// never rerouted to another provider.
package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/upb/llm-router/internal/observability"
	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/services"
	"github.com/upb/llm-router/services/providers"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a backend call when none is configured
	DefaultTimeout = 120 * time.Second

	// maxResponseBytes caps how much of a backend body is read
	maxResponseBytes = 10 << 20
)

// AdapterLookup resolves a provider id to its adapter
type AdapterLookup interface {
	Get(id models.ProviderID) (providers.Adapter, error)
}

// Recorder receives one observation per finished dispatch
type Recorder interface {
	RecordDispatch(provider models.ProviderID, outcome string, latency time.Duration)
}

// Dispatcher performs backend calls for routing decisions
type Dispatcher struct {
	adapters AdapterLookup
	client   *http.Client
	timeout  time.Duration
	metrics  Recorder
	tracer   trace.Tracer
	logger   *zap.Logger
}

// NewDispatcher creates a new Dispatcher. A nil client gets a shared client
// with the dispatch timeout; a non-positive timeout means DefaultTimeout.
func NewDispatcher(adapters AdapterLookup, client *http.Client, timeout time.Duration, metrics Recorder, logger *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Dispatcher{
		adapters: adapters,
		client:   client,
		timeout:  timeout,
		metrics:  metrics,
		tracer:   observability.Tracer(),
		logger:   logger,
	}
}

// Dispatch sends req to the backend named by decision and normalizes the answer.
// The returned envelope is always terminal; Err is set when State is StateFailed.
func (d *Dispatcher) Dispatch(ctx context.Context, decision models.RouteDecision, req providers.Request) Envelope {
	env := Envelope{
		ID:       uuid.NewString(),
		Decision: decision,
		State:    StatePending,
	}
	start := time.Now()
	provider := decision.ProviderID

	ctx, span := d.tracer.Start(ctx, "dispatch "+provider.String(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.provider", provider.String()),
			attribute.String("llm.model", decision.ModelID),
			attribute.String("llm.dispatch_id", env.ID),
		),
	)
	defer span.End()

	d.send(ctx, &env, req)
	if !env.State.Terminal() {
		fail(&env, services.WrapInternal(fmt.Sprintf("dispatch stopped in state %s", env.State), nil))
	}

	env.Latency = time.Since(start)
	outcome := observability.OutcomeSuccess
	if env.State == StateFailed {
		outcome = observability.OutcomeFailure
		span.RecordError(env.Err)
		span.SetStatus(codes.Error, string(services.GetErrorType(env.Err)))
	}
	if env.StatusCode != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", env.StatusCode))
	}
	if d.metrics != nil {
		d.metrics.RecordDispatch(provider, outcome, env.Latency)
	}

	fields := []zap.Field{
		zap.String("dispatch_id", env.ID),
		zap.String("provider", provider.String()),
		zap.String("model", decision.ModelID),
		zap.Int("status", env.StatusCode),
		zap.Duration("latency", env.Latency),
	}
	if env.State == StateFailed {
		d.logger.Warn("dispatch failed", append(fields, zap.Error(env.Err))...)
	} else {
		d.logger.Debug("dispatch succeeded", fields...)
	}

	return env
}

// send walks the envelope from Pending to a terminal state
func (d *Dispatcher) send(ctx context.Context, env *Envelope, req providers.Request) {
	provider := env.Decision.ProviderID

	adapter, err := d.adapters.Get(provider)
	if err != nil {
		fail(env, err)
		return
	}

	payload, err := adapter.BuildPayload(env.Decision.ModelID, req)
	if err != nil {
		fail(env, services.WrapInternal("failed to build payload", err))
		return
	}

	endpoint := env.Decision.EndpointURL
	if endpoint == "" {
		endpoint = adapter.Endpoint()
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		fail(env, services.WrapInternal("failed to create request", err))
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	if err := adapter.Authenticate(httpReq.Header); err != nil {
		fail(env, err)
		return
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	env.State = StateSent
	resp, err := d.client.Do(httpReq)
	if err != nil {
		fail(env, transportError(provider, err))
		return
	}
	defer resp.Body.Close()

	env.StatusCode = resp.StatusCode
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		fail(env, transportError(provider, err))
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > 0 {
			env.Raw = providers.RawJSON(body)
		}
		fail(env, statusError(provider, resp.StatusCode, body))
		return
	}

	result, err := adapter.Normalize(body)
	if err != nil {
		env.Raw = providers.RawJSON(body)
		fail(env, services.NewUpstreamError(provider.String(), resp.StatusCode, body, err))
		return
	}

	env.Text = result.Text
	env.Raw = result.Raw
	env.State = StateSucceeded
}

func fail(env *Envelope, err error) {
	env.Err = err
	env.State = StateFailed
}

// statusError maps a non-2xx answer; rejected credentials are auth errors
func statusError(provider models.ProviderID, status int, body []byte) error {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		upstream := services.NewUpstreamError(provider.String(), status, body, nil)
		authErr := services.NewAuthError(provider.String(), fmt.Sprintf("backend rejected credentials with status %d", status))
		for k, v := range upstream.Details {
			if k != services.DetailKind {
				authErr.WithDetail(k, v)
			}
		}
		return authErr
	}
	return services.NewUpstreamError(provider.String(), status, body, nil)
}

// transportError separates deadline expiry from other transport failures
func transportError(provider models.ProviderID, err error) error {
	if isTimeout(err) {
		return services.NewTimeoutError(provider.String(), err)
	}
	return services.NewUpstreamError(provider.String(), 0, nil, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
