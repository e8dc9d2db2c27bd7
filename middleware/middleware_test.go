package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	t.Run("generates id when absent", func(t *testing.T) {
		var seen string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestIDFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("keeps caller id", func(t *testing.T) {
		var seen string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestIDFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "req-abc")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "req-abc", seen)
		assert.Equal(t, "req-abc", w.Header().Get(RequestIDHeader))
	})
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestIDFromContext(ctx))
	assert.NotNil(t, LoggerFromContext(ctx, nil))

	fallback := zap.NewNop()
	assert.Same(t, fallback, LoggerFromContext(ctx, fallback))

	scoped := zap.NewExample()
	ctx = WithLogger(WithRequestID(ctx, "id-1"), scoped)
	assert.Equal(t, "id-1", GetRequestIDFromContext(ctx))
	assert.Same(t, scoped, LoggerFromContext(ctx, fallback))
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel zapcore.Level
	}{
		{"success", http.StatusOK, zapcore.InfoLevel},
		{"client error", http.StatusBadRequest, zapcore.WarnLevel},
		{"upstream failure", http.StatusBadGateway, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			logger := zap.New(core)

			handler := RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				LoggerFromContext(r.Context(), nil).Debug("inside handler")
				w.WriteHeader(tt.status)
			})))

			req := httptest.NewRequest(http.MethodPost, "/route", nil)
			req.Header.Set(RequestIDHeader, "req-42")
			handler.ServeHTTP(httptest.NewRecorder(), req)

			require.Equal(t, 2, logs.Len())

			inner := logs.All()[0]
			assert.Equal(t, "inside handler", inner.Message)
			assert.Equal(t, "req-42", inner.ContextMap()["request_id"])

			entry := logs.All()[1]
			assert.Equal(t, "request completed", entry.Message)
			assert.Equal(t, tt.wantLevel, entry.Level)

			fields := entry.ContextMap()
			assert.Equal(t, "POST", fields["method"])
			assert.Equal(t, "/route", fields["path"])
			assert.Equal(t, int64(tt.status), fields["status"])
			assert.Equal(t, "req-42", fields["request_id"])
		})
	}

	t.Run("implicit 200", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		handler := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, int64(http.StatusOK), logs.All()[0].ContextMap()["status"])
		assert.Equal(t, int64(2), logs.All()[0].ContextMap()["bytes"])
	})
}

func TestTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
		_ = tp.Shutdown(context.Background())
	})

	t.Run("server span with status", func(t *testing.T) {
		var inner trace.SpanContext
		handler := RequestID(Tracing(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inner = trace.SpanContextFromContext(r.Context())
			w.WriteHeader(http.StatusGatewayTimeout)
		})))

		req := httptest.NewRequest(http.MethodPost, "/chat", nil)
		req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		spans := recorder.Ended()
		require.NotEmpty(t, spans)
		span := spans[len(spans)-1]

		assert.Equal(t, "POST /chat", span.Name())
		assert.Equal(t, trace.SpanKindServer, span.SpanKind())
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", span.SpanContext().TraceID().String())
		assert.Equal(t, span.SpanContext().SpanID(), inner.SpanID())
		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Contains(t, span.Attributes(), attribute.Int("http.response.status_code", http.StatusGatewayTimeout))
	})

	t.Run("success leaves status unset", func(t *testing.T) {
		handler := Tracing(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"healthy"}`))
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

		spans := recorder.Ended()
		span := spans[len(spans)-1]
		assert.Equal(t, "GET /health", span.Name())
		assert.Equal(t, codes.Unset, span.Status().Code)
		assert.Contains(t, span.Attributes(), attribute.Int("http.response.status_code", http.StatusOK))
	})
}
