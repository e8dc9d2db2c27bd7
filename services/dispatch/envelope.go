package dispatch

import (
	"encoding/json"
	"time"

	"github.com/upb/llm-router/models"
)

// State is the lifecycle position of a single dispatch
type State string

const (
	StatePending   State = "pending"
	StateSent      State = "sent"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Terminal reports whether no further transition is possible
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Envelope is the outcome of one dispatch. It is owned by the caller and never persisted.
type Envelope struct {
	ID       string
	Decision models.RouteDecision
	State    State

	// Text is the normalized response text
	Text string

	// Raw is the backend body as JSON; set on success and on non-2xx answers with a body
	Raw json.RawMessage

	// StatusCode is the backend HTTP status, 0 when no answer was received
	StatusCode int

	Err     error
	Latency time.Duration
}

// Succeeded reports whether the backend answered 2xx and the body was normalized
func (e Envelope) Succeeded() bool {
	return e.State == StateSucceeded
}
