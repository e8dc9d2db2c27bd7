// Package ollama adapts the local generate-style inference engine.
package ollama

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/services/providers"
)

const (
	// DefaultBaseURL is where a local engine listens by default
	DefaultBaseURL = "http://localhost:11434"

	generatePath = "/api/generate"
)

// Adapter implements providers.Adapter for the local engine
type Adapter struct {
	endpoint string
	headers  map[string]string
}

// New creates a new local engine adapter
func New(config providers.Config) (*Adapter, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	endpoint, err := providers.JoinEndpoint(config.BaseURL, generatePath)
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}

	return &Adapter{
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

// ID returns the provider id
func (a *Adapter) ID() models.ProviderID {
	return models.ProviderOllama
}

// Family returns the wire family
func (a *Adapter) Family() providers.Family {
	return providers.FamilyGenerate
}

// Endpoint returns the generate URL
func (a *Adapter) Endpoint() string {
	return a.endpoint
}

// BuildPayload encodes a generate request
func (a *Adapter) BuildPayload(model string, req providers.Request) ([]byte, error) {
	body := GenerateRequest{
		Model:  model,
		Prompt: req.Query,
		Stream: req.Stream,
	}
	if req.MaxTokens > 0 {
		body.Options = &Options{NumPredict: req.MaxTokens}
	}
	return json.Marshal(body)
}

// Authenticate adds static headers only; the local engine takes no credential
func (a *Adapter) Authenticate(h http.Header) error {
	providers.SetHeaders(h, a.headers)
	return nil
}

// Normalize extracts the response field
func (a *Adapter) Normalize(body []byte) (*providers.Result, error) {
	result := &providers.Result{Raw: providers.RawJSON(body)}
	if !json.Valid(body) {
		return result, nil
	}

	var resp GenerateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ollama: unexpected response shape: %w", err)
	}
	result.Text = resp.Response
	return result, nil
}

// GenerateRequest is the generate endpoint body
type GenerateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Options *Options `json:"options,omitempty"`
}

// Options holds generation parameters
type Options struct {
	NumPredict int `json:"num_predict,omitempty"`
}

// GenerateResponse is the non-streaming generate answer
type GenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}
