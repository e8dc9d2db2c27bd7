package openai

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
	// DefaultBaseURL is the OpenAI-compatible gateway address
	DefaultBaseURL = "http://localhost:4000"

	chatCompletionsPath = "/v1/chat/completions"
)

// OpenAIAdapter implements the Adapter interface for chat-completions backends
type OpenAIAdapter struct {
	config   providers.Config
	endpoint string
}

// NewOpenAIAdapter creates a new OpenAI adapter
func NewOpenAIAdapter(config providers.Config) (*OpenAIAdapter, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	endpoint, err := providers.JoinEndpoint(config.BaseURL, chatCompletionsPath)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	return &OpenAIAdapter{
		config:   config,
		endpoint: endpoint,
	}, nil
}

// Builder adapts NewOpenAIAdapter to providers.AdapterBuilder
func Builder(config providers.Config) (providers.Adapter, error) {
	a, err := NewOpenAIAdapter(config)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ID returns the provider id
func (a *OpenAIAdapter) ID() models.ProviderID {
	return models.ProviderOpenAI
}

// Family returns the wire family
func (a *OpenAIAdapter) Family() providers.Family {
	return providers.FamilyChatCompletions
}

// Endpoint returns the chat completions URL
func (a *OpenAIAdapter) Endpoint() string {
	return a.endpoint
}

// BuildPayload converts the request to OpenAI format
func (a *OpenAIAdapter) BuildPayload(model string, req providers.Request) ([]byte, error) {
	openaiReq := &OpenAIChatRequest{
		Model:    model,
		Messages: providers.UserMessages(req.Query),
		Stream:   req.Stream,
	}

	// Set optional parameters
	if req.MaxTokens > 0 {
		maxTokens := req.MaxTokens
		openaiReq.MaxTokens = &maxTokens
	}

	return json.Marshal(openaiReq)
}

// Authenticate sets the bearer token. A blank key fails before any request
// is sent; a gateway that needs no key must be given a placeholder value.
func (a *OpenAIAdapter) Authenticate(h http.Header) error {
	if strings.TrimSpace(a.config.APIKey) == "" {
		return services.NewAuthError(string(a.ID()), "OPENAI_API_KEY is not configured")
	}

	providers.SetHeaders(h, a.config.Headers)
	h.Set("Authorization", "Bearer "+a.config.APIKey)
	return nil
}

// Normalize extracts the first choice's message content
func (a *OpenAIAdapter) Normalize(body []byte) (*providers.Result, error) {
	result := &providers.Result{Raw: providers.RawJSON(body)}
	if !json.Valid(body) {
		return result, nil
	}

	var openaiResp OpenAIChatResponse
	if err := json.Unmarshal(body, &openaiResp); err != nil {
		return nil, fmt.Errorf("openai: unexpected response shape: %w", err)
	}

	if len(openaiResp.Choices) > 0 {
		result.Text = openaiResp.Choices[0].Message.Content
	}
	return result, nil
}

// OpenAI-specific request/response types

type OpenAIChatRequest struct {
	Model     string              `json:"model"`
	Messages  []providers.Message `json:"messages"`
	MaxTokens *int                `json:"max_tokens,omitempty"`
	Stream    bool                `json:"stream,omitempty"`
}

type OpenAIChatResponse struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []OpenAIChoice `json:"choices"`
	Usage   OpenAIUsage    `json:"usage"`
}

type OpenAIChoice struct {
	Index        int               `json:"index"`
	Message      providers.Message `json:"message"`
	FinishReason string            `json:"finish_reason"`
}

type OpenAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
