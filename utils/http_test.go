package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Run("successful write", func(t *testing.T) {
		w := httptest.NewRecorder()
		data := map[string]string{"status": "healthy"}

		err := WriteJSON(w, http.StatusOK, data)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response map[string]string
		err = json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, "healthy", response["status"])
	})

	t.Run("nil data", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := WriteJSON(w, http.StatusNoContent, nil)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestWriteOK(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteOK(w, map[string]string{"model": "gpt-4o"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"model":"gpt-4o"}`, w.Body.String())
}

func TestWriteBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	details := map[string]interface{}{"query": "query is required"}

	err := WriteBadRequest(w, "Validation failed", details)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "validation", response.Error)
	assert.Equal(t, "Validation failed", response.Message)
	assert.Equal(t, "query is required", response.Details["query"])
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		kind          string
		expectedError string
	}{
		{"explicit kind", http.StatusBadGateway, "auth", "auth"},
		{"bad request", http.StatusBadRequest, "", "validation"},
		{"not found", http.StatusNotFound, "", "not_found"},
		{"method not allowed", http.StatusMethodNotAllowed, "", "method_not_allowed"},
		{"bad gateway", http.StatusBadGateway, "", "upstream"},
		{"gateway timeout", http.StatusGatewayTimeout, "", "timeout"},
		{"unknown status", http.StatusTeapot, "", "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			details := map[string]interface{}{"provider": "openai"}

			err := WriteError(w, tt.status, tt.kind, "test message", details)
			require.NoError(t, err)

			assert.Equal(t, tt.status, w.Code)

			var response ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.expectedError, response.Error)
			assert.Equal(t, "test message", response.Message)
			assert.Equal(t, "openai", response.Details["provider"])
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Query string `json:"query"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr string
	}{
		{"valid body", `{"query":"hello"}`, "hello", ""},
		{"empty body", ``, "", "request body is empty"},
		{"malformed", `{"query":`, "", "invalid JSON body"},
		{"wrong type", `{"query":42}`, "", "invalid JSON body"},
		{"trailing data", `{"query":"a"} {"query":"b"}`, "", "unexpected data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/route", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var got payload
			err := DecodeJSON(w, r, &got)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Query)
		})
	}

	t.Run("oversized body", func(t *testing.T) {
		big := `{"query":"` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(big))
		w := httptest.NewRecorder()

		var got payload
		assert.Error(t, DecodeJSON(w, r, &got))
	})
}
