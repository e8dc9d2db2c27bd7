// Package anthropic adapts the vendor-messages backend, reached through the
// agent platform's Anthropic-compatible proxy.
package anthropic

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/services"
	"github.com/upb/llm-router/services/providers"
)

const (
	// DefaultBaseURL is the proxy address
	DefaultBaseURL = "http://localhost:8283"

	// DefaultVersion is the API version header value
	DefaultVersion = "2023-06-01"

	// DefaultMaxTokens is sent when the caller gives no limit; the messages API requires one
	DefaultMaxTokens = 4096

	messagesPath = "/v1/anthropic/messages"
)

// Adapter implements providers.Adapter for the messages API
type Adapter struct {
	apiKey   string
	version  string
	endpoint string
	headers  map[string]string
}

// New creates a new messages adapter
func New(config providers.Config) (*Adapter, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Version == "" {
		config.Version = DefaultVersion
	}

	endpoint, err := providers.JoinEndpoint(config.BaseURL, messagesPath)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	return &Adapter{
		apiKey:   config.APIKey,
		version:  config.Version,
		endpoint: endpoint,
		headers:  config.Headers,
	}, nil
}

// Builder adapts New to providers.AdapterBuilder
func Builder(config providers.Config) (providers.Adapter, error) {
	a, err := New(config)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Adapter) ID() models.ProviderID    { return models.ProviderAnthropic }
func (a *Adapter) Family() providers.Family { return providers.FamilyMessages }
func (a *Adapter) Endpoint() string         { return a.endpoint }

// BuildPayload encodes a messages request
func (a *Adapter) BuildPayload(model string, req providers.Request) ([]byte, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return json.Marshal(MessagesRequest{
		Model:     model,
		Messages:  providers.UserMessages(req.Query),
		MaxTokens: maxTokens,
		Stream:    req.Stream,
	})
}

// Authenticate sets the vendor key and version headers. A blank key fails
// before any request is sent; a proxy that needs no key must be given a
// placeholder value.
func (a *Adapter) Authenticate(h http.Header) error {
	if strings.TrimSpace(a.apiKey) == "" {
		return services.NewAuthError(string(a.ID()), "ANTHROPIC_API_KEY is not configured")
	}

	providers.SetHeaders(h, a.headers)
	h.Set("x-api-key", a.apiKey)
	h.Set("anthropic-version", a.version)
	return nil
}

// Normalize joins the text content blocks
func (a *Adapter) Normalize(body []byte) (*providers.Result, error) {
	result := &providers.Result{Raw: providers.RawJSON(body)}
	if !json.Valid(body) {
		return result, nil
	}

	var resp MessagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("anthropic: unexpected response shape: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	result.Text = sb.String()
	return result, nil
}

// MessagesRequest is the messages endpoint body
type MessagesRequest struct {
	Model     string              `json:"model"`
	Messages  []providers.Message `json:"messages"`
	MaxTokens int                 `json:"max_tokens"`
	Stream    bool                `json:"stream,omitempty"`
}

// MessagesResponse is the messages endpoint answer
type MessagesResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Model      string         `json:"model"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

// ContentBlock is one element of a messages answer
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}
