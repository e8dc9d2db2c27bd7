package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// MaxRequestBodyBytes bounds inbound JSON bodies
const MaxRequestBodyBytes = 1 << 20

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteOK writes a 200 OK response with data as the body
func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteBadRequest writes a 400 Bad Request response with error details
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]interface{}) error {
	return WriteError(w, http.StatusBadRequest, "validation", message, details)
}

// WriteError writes an error response whose "error" field is the error kind
func WriteError(w http.ResponseWriter, status int, kind, message string, details map[string]interface{}) error {
	if kind == "" {
		kind = kindForStatus(status)
	}
	return WriteJSON(w, status, ErrorResponse{
		Error:   kind,
		Message: message,
		Details: details,
	})
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusBadGateway:
		return "upstream"
	case http.StatusGatewayTimeout:
		return "timeout"
	default:
		return "internal"
	}
}

// DecodeJSON decodes a bounded JSON request body into v.
// An empty body, trailing data, or a body over MaxRequestBodyBytes is an error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	dec := json.NewDecoder(body)

	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("invalid JSON body: unexpected data after top-level value")
	}
	return nil
}
