package inference

import (
	"encoding/json"
	"time"

	"github.com/upb/llm-router/models"
)

// ChatResponse is the result of a routed and executed chat request
type ChatResponse struct {
	// Route is the decision the request was executed with
	Route models.RouteDecision `json:"route"`

	// Response is the backend body, untouched
	Response json.RawMessage `json:"response"`

	// Text is the normalized answer text
	Text string `json:"text"`

	// DispatchID identifies the outbound call in logs and traces
	DispatchID string `json:"-"`

	// Latency of the backend call
	Latency time.Duration `json:"-"`
}
