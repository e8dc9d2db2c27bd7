package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upb/llm-router/services"
	"github.com/upb/llm-router/utils"
)

func TestHandleServiceError(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name             string
		err              error
		expectedStatus   int
		expectedError    string
		expectedProvider string
	}{
		{
			name:           "validation error",
			err:            services.NewValidationError("query is required", nil),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "validation",
		},
		{
			name:             "upstream error",
			err:              services.NewUpstreamError("ollama", 503, []byte("model loading"), nil),
			expectedStatus:   http.StatusBadGateway,
			expectedError:    "upstream",
			expectedProvider: "ollama",
		},
		{
			name:             "auth error",
			err:              services.NewAuthError("openai", "OPENAI_API_KEY is not configured"),
			expectedStatus:   http.StatusBadGateway,
			expectedError:    "auth",
			expectedProvider: "openai",
		},
		{
			name:             "timeout error",
			err:              services.NewTimeoutError("anthropic", errors.New("deadline exceeded")),
			expectedStatus:   http.StatusGatewayTimeout,
			expectedError:    "timeout",
			expectedProvider: "anthropic",
		},
		{
			name:             "unknown provider",
			err:              services.NewUnknownProviderError("gemini"),
			expectedStatus:   http.StatusInternalServerError,
			expectedError:    "unknown_provider",
			expectedProvider: "gemini",
		},
		{
			name:           "config error",
			err:            services.NewConfigError("registry incomplete", nil),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "config",
		},
		{
			name:           "internal error",
			err:            services.WrapInternal("dispatch produced no result", nil),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal",
		},
		{
			name:           "unknown error",
			err:            errors.New("some random error"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			HandleServiceError(w, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var response utils.ErrorResponse
			err := json.NewDecoder(w.Body).Decode(&response)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedError, response.Error)
			assert.NotEmpty(t, response.Message)
			assert.Equal(t, tt.expectedError, response.Details["kind"])
			if tt.expectedProvider != "" {
				assert.Equal(t, tt.expectedProvider, response.Details["provider"])
			}
		})
	}
}

func TestHandleServiceError_UpstreamDetails(t *testing.T) {
	w := httptest.NewRecorder()
	cause := errors.New("dial tcp: connection refused")

	HandleServiceError(w, services.NewUpstreamError("ollama", 500, []byte(`{"error":"oom"}`), cause), zap.NewNop())

	var response utils.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	assert.Equal(t, float64(500), response.Details["status"])
	assert.Equal(t, `{"error":"oom"}`, response.Details["body"])
	assert.NotContains(t, response.Message, "connection refused")
}

func TestHandleServiceError_NilError(t *testing.T) {
	w := httptest.NewRecorder()

	HandleServiceError(w, nil, zap.NewNop())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleValidationError(t *testing.T) {
	logger := zap.NewNop()

	t.Run("validation error with fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := &utils.ValidationError{
			Message: "Validation failed",
			Fields: map[string]string{
				"query":      "query is required",
				"max_tokens": "max_tokens must be greater than 0",
			},
		}

		HandleValidationError(w, err, logger)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

		assert.Equal(t, "validation", response.Error)
		assert.Equal(t, "Validation failed", response.Message)
		assert.Equal(t, "validation", response.Details["kind"])
		assert.Equal(t, "query is required", response.Details["query"])
		assert.Equal(t, "max_tokens must be greater than 0", response.Details["max_tokens"])
	})

	t.Run("generic error", func(t *testing.T) {
		w := httptest.NewRecorder()

		HandleValidationError(w, errors.New("invalid JSON body: unexpected EOF"), logger)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

		assert.Equal(t, "validation", response.Error)
		assert.Equal(t, "invalid JSON body: unexpected EOF", response.Message)
	})
}
