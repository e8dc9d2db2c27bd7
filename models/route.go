package models

import "slices"

// Complexity is a coarse estimate of how demanding a request is
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Valid reports whether c is one of the known complexity levels
func (c Complexity) Valid() bool {
	return slices.Contains(AllComplexities(), c)
}

// TaskType is the coarse category of the requested work
type TaskType string

const (
	TaskTypeCoding     TaskType = "coding"
	TaskTypeMultimodal TaskType = "multimodal"
	TaskTypeReasoning  TaskType = "reasoning"
	TaskTypeGeneral    TaskType = "general"
)

// Valid reports whether t is one of the known task types
func (t TaskType) Valid() bool {
	return slices.Contains(AllTaskTypes(), t)
}

// AllComplexities lists every complexity level in ascending order
func AllComplexities() []Complexity {
	return []Complexity{ComplexityLow, ComplexityMedium, ComplexityHigh}
}

// AllTaskTypes lists every task type
func AllTaskTypes() []TaskType {
	return []TaskType{TaskTypeCoding, TaskTypeMultimodal, TaskTypeReasoning, TaskTypeGeneral}
}

// ProviderID identifies an inference backend family
type ProviderID string

const (
	// ProviderOllama is the local inference engine
	ProviderOllama ProviderID = "ollama"

	// ProviderOpenAI is the chat-completions vendor, reached through an OpenAI-compatible gateway
	ProviderOpenAI ProviderID = "openai"

	// ProviderAnthropic is the vendor-messages backend
	ProviderAnthropic ProviderID = "anthropic"
)

// String implements fmt.Stringer
func (p ProviderID) String() string {
	return string(p)
}

// IsLocal reports whether the provider runs on local hardware
func (p ProviderID) IsLocal() bool {
	return p == ProviderOllama
}

// RouteRequest is the normalized routing input
type RouteRequest struct {
	// Query is the free-text task description. The key must be present in a
	// request body, but the empty string is a valid query.
	Query string `json:"query"`

	// PreferLocal defaults to true when omitted
	PreferLocal *bool `json:"prefer_local,omitempty"`

	// MaxTokens optionally bounds the backend response length
	MaxTokens *int `json:"max_tokens,omitempty" validate:"omitempty,gt=0"`

	// TaskType optionally overrides task detection
	TaskType *TaskType `json:"task_type,omitempty" validate:"omitempty,oneof=coding multimodal reasoning general"`
}

// WantsLocal resolves the prefer_local flag with its default
func (r RouteRequest) WantsLocal() bool {
	if r.PreferLocal == nil {
		return true
	}
	return *r.PreferLocal
}

// TokenLimit returns the requested token limit or 0 when unset
func (r RouteRequest) TokenLimit() int {
	if r.MaxTokens == nil {
		return 0
	}
	return *r.MaxTokens
}

// ChatRequest is a routing request that is also executed against the chosen backend
type ChatRequest struct {
	RouteRequest

	// Stream is forwarded to the backend unchanged
	Stream bool `json:"stream,omitempty"`
}

// RouteDecision names the chosen provider, model and endpoint.
// A decision is a value: it is never mutated after the selector returns it.
type RouteDecision struct {
	ModelID          string     `json:"model"`
	ProviderID       ProviderID `json:"provider"`
	EndpointURL      string     `json:"endpoint"`
	Rationale        string     `json:"reason"`
	EstimatedQuality float64    `json:"estimated_quality"`
	EstimatedCost    string     `json:"estimated_cost"`
	Complexity       Complexity `json:"complexity"`
	TaskType         TaskType   `json:"task_type"`
}

// IsLocal reports whether the decision keeps the request on local hardware
func (d RouteDecision) IsLocal() bool {
	return d.ProviderID.IsLocal()
}
