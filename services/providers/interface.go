package providers

import (
	"encoding/json"
	"net/http"

	"github.com/upb/llm-router/models"
)

// Family is the wire shape a backend expects
type Family string

const (
	// FamilyGenerate takes a single prompt field (local engines)
	FamilyGenerate Family = "generate"

	// FamilyChatCompletions takes a messages array with bearer auth
	FamilyChatCompletions Family = "chat_completions"

	// FamilyMessages takes a messages array with a vendor auth header
	FamilyMessages Family = "messages"
)

// Adapter encapsulates the wire differences of one backend.
// Adapters are immutable after construction and safe for concurrent use.
type Adapter interface {
	// ID returns the provider this adapter serves
	ID() models.ProviderID

	// Family returns the wire shape of the backend
	Family() Family

	// Endpoint returns the full URL requests are posted to
	Endpoint() string

	// BuildPayload encodes the request body for model
	BuildPayload(model string, req Request) ([]byte, error)

	// Authenticate sets credential headers, failing when a required credential is missing
	Authenticate(h http.Header) error

	// Normalize extracts the response text from a 2xx body
	Normalize(body []byte) (*Result, error)
}

// Request is the backend-neutral input to BuildPayload
type Request struct {
	// Query is sent as the prompt or the single user message
	Query string

	// MaxTokens bounds the response length; 0 means backend default
	MaxTokens int

	// Stream is forwarded to the backend unchanged
	Stream bool
}

// Result is a normalized backend answer
type Result struct {
	// Text is the extracted response text, empty when the shape is unknown
	Text string

	// Raw is the backend body as JSON
	Raw json.RawMessage
}

// Config holds common configuration for adapters
type Config struct {
	// BaseURL of the backend, without the API path
	BaseURL string

	// APIKey for remote backends
	APIKey string

	// Version is sent by backends that pin an API version
	Version string

	// Headers are added to every outbound request
	Headers map[string]string
}

// Message is a single chat message shared by the chat-style families
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserMessages wraps a query as a one-message conversation
func UserMessages(query string) []Message {
	return []Message{{Role: "user", Content: query}}
}

// RawJSON returns body unchanged when it is valid JSON, otherwise body encoded as a JSON string
func RawJSON(body []byte) json.RawMessage {
	if len(body) > 0 && json.Valid(body) {
		return json.RawMessage(body)
	}
	encoded, err := json.Marshal(string(body))
	if err != nil {
		return json.RawMessage(`""`)
	}
	return json.RawMessage(encoded)
}

// SetHeaders copies static headers onto h
func SetHeaders(h http.Header, headers map[string]string) {
	for k, v := range headers {
		h.Set(k, v)
	}
}
