package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upb/llm-router/services"
	"github.com/upb/llm-router/services/classifier"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCatalog(t *testing.T) {
	t.Run("models and ruleset override", func(t *testing.T) {
		path := writeCatalog(t, `
models:
  "qwen2.5-coder:7b":
    provider: ollama
    description: Local coding model
    capabilities: [coding, general]
    context_window: 32768
    cost: free (local GPU)
    quality: 0.75
  gpt-4o:
    provider: openai
    capabilities: [multimodal]
classifier:
  name: team-rules
  coding: [terraform, helm]
`)

		catalog, err := LoadCatalog(path)
		require.NoError(t, err)
		assert.True(t, catalog.Found)
		assert.Equal(t, path, catalog.Path)
		assert.Equal(t, 2, catalog.ModelCount())

		entries, ok := catalog.Models.(map[string]interface{})
		require.True(t, ok)
		qwen, ok := entries["qwen2.5-coder:7b"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "ollama", qwen["provider"])
		assert.Equal(t, 32768, qwen["context_window"])
		assert.Equal(t, 0.75, qwen["quality"])
		assert.Equal(t, []interface{}{"coding", "general"}, qwen["capabilities"])

		ruleset := catalog.Ruleset()
		assert.Equal(t, "team-rules", ruleset.Name)
		assert.Equal(t, []string{"terraform", "helm"}, ruleset.Coding)
		assert.Equal(t, classifier.DefaultRuleset().High, ruleset.High)
	})

	t.Run("missing file", func(t *testing.T) {
		catalog, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.False(t, catalog.Found)
		assert.Equal(t, map[string]interface{}{}, catalog.Models)
		assert.Zero(t, catalog.ModelCount())
		assert.Equal(t, classifier.DefaultRuleset(), catalog.Ruleset())
	})

	t.Run("empty models key", func(t *testing.T) {
		catalog, err := LoadCatalog(writeCatalog(t, "models:\n"))
		require.NoError(t, err)
		assert.True(t, catalog.Found)
		assert.Equal(t, map[string]interface{}{}, catalog.Models)
	})

	t.Run("unknown keys are kept as written", func(t *testing.T) {
		catalog, err := LoadCatalog(writeCatalog(t, `
models:
  local:
    name: qwen2.5-coder:7b
    provider: ollama
    use_for: [simple_coding]
    max_tokens: 8192
    tags:
      1: first
`))
		require.NoError(t, err)

		served, err := json.Marshal(catalog.Models)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"local": {
				"name": "qwen2.5-coder:7b",
				"provider": "ollama",
				"use_for": ["simple_coding"],
				"max_tokens": 8192,
				"tags": {"1": "first"}
			}
		}`, string(served))
	})

	t.Run("list shaped models", func(t *testing.T) {
		catalog, err := LoadCatalog(writeCatalog(t, `
models:
  - name: gpt-4o
    provider: openai
  - name: qwen2.5-coder:7b
    provider: ollama
`))
		require.NoError(t, err)
		assert.Equal(t, 2, catalog.ModelCount())

		served, err := json.Marshal(catalog.Models)
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{"name": "gpt-4o", "provider": "openai"},
			{"name": "qwen2.5-coder:7b", "provider": "ollama"}
		]`, string(served))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadCatalog(writeCatalog(t, "models: [unclosed"))
		require.Error(t, err)
		assert.True(t, services.IsConfigError(err))
	})

	t.Run("directory instead of file", func(t *testing.T) {
		_, err := LoadCatalog(t.TempDir())
		require.Error(t, err)
		assert.True(t, services.IsConfigError(err))
	})
}

func TestCatalog_RulesetNil(t *testing.T) {
	var catalog *Catalog
	assert.Equal(t, classifier.DefaultRulesetName, catalog.Ruleset().Name)
	assert.Zero(t, catalog.ModelCount())
}
