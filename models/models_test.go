package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteRequest_WantsLocal(t *testing.T) {
	yes, no := true, false

	assert.True(t, RouteRequest{Query: "hi"}.WantsLocal(), "absent flag defaults to local")
	assert.True(t, RouteRequest{Query: "hi", PreferLocal: &yes}.WantsLocal())
	assert.False(t, RouteRequest{Query: "hi", PreferLocal: &no}.WantsLocal())
}

func TestRouteRequest_JSONDefaults(t *testing.T) {
	var req RouteRequest
	require.NoError(t, json.Unmarshal([]byte(`{"query":"hello"}`), &req))

	assert.Equal(t, "hello", req.Query)
	assert.True(t, req.WantsLocal())
	assert.Equal(t, 0, req.TokenLimit())
	assert.Nil(t, req.TaskType)

	require.NoError(t, json.Unmarshal([]byte(`{"query":"x","prefer_local":false,"max_tokens":64,"task_type":"coding"}`), &req))
	assert.False(t, req.WantsLocal())
	assert.Equal(t, 64, req.TokenLimit())
	require.NotNil(t, req.TaskType)
	assert.Equal(t, TaskTypeCoding, *req.TaskType)
}

func TestChatRequest_EmbedsRouteFields(t *testing.T) {
	var req ChatRequest
	require.NoError(t, json.Unmarshal([]byte(`{"query":"hello","prefer_local":false,"stream":true}`), &req))

	assert.Equal(t, "hello", req.Query)
	assert.False(t, req.WantsLocal())
	assert.True(t, req.Stream)
}

func TestEnumValidity(t *testing.T) {
	for _, c := range AllComplexities() {
		assert.True(t, c.Valid(), c)
	}
	for _, tt := range AllTaskTypes() {
		assert.True(t, tt.Valid(), tt)
	}
	assert.False(t, Complexity("extreme").Valid())
	assert.False(t, TaskType("poetry").Valid())
}

func TestRouteDecision_JSONShape(t *testing.T) {
	d := RouteDecision{
		ModelID:          "qwen2.5-coder:7b",
		ProviderID:       ProviderOllama,
		EndpointURL:      "http://localhost:11434/api/generate",
		Rationale:        "Simple task - local model is sufficient",
		EstimatedQuality: 0.7,
		EstimatedCost:    "free (local GPU)",
		Complexity:       ComplexityLow,
		TaskType:         TaskTypeGeneral,
	}

	body, err := json.Marshal(d)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.Equal(t, "qwen2.5-coder:7b", fields["model"])
	assert.Equal(t, "ollama", fields["provider"])
	assert.Equal(t, "http://localhost:11434/api/generate", fields["endpoint"])
	assert.Equal(t, "Simple task - local model is sufficient", fields["reason"])
	assert.Equal(t, 0.7, fields["estimated_quality"])
	assert.True(t, d.IsLocal())
}
