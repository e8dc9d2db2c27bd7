package policy

import "github.com/upb/llm-router/models"

// Branch holds the static outcome of one selection rule
type Branch struct {
	Provider models.ProviderID
	Model    string
	Quality  float64
	Cost     string
	Reason   string
}

// Table is the static set of branches the Selector chooses from
type Table struct {
	Multimodal   Branch
	Reasoning    Branch
	LocalCoding  Branch
	LocalGeneral Branch
	Balanced     Branch
}

const localModel = "qwen2.5-coder:7b"

// DefaultTable returns the built-in branch constants
func DefaultTable() Table {
	return Table{
		Multimodal: Branch{
			Provider: models.ProviderOpenAI,
			Model:    "gpt-4o",
			Quality:  0.95,
			Cost:     "free (GPT Pro subscription)",
			Reason:   "Multimodal task detected - GPT-4o has best vision capabilities",
		},
		Reasoning: Branch{
			Provider: models.ProviderAnthropic,
			Model:    "claude-opus-4-5-20251101",
			Quality:  0.98,
			Cost:     "free (Claude Max subscription)",
			Reason:   "Complex reasoning task - Claude Opus 4.5 has best reasoning",
		},
		LocalCoding: Branch{
			Provider: models.ProviderOllama,
			Model:    localModel,
			Quality:  0.75,
			Cost:     "free (local GPU)",
			Reason:   "Simple coding task - local model is fast and free",
		},
		LocalGeneral: Branch{
			Provider: models.ProviderOllama,
			Model:    localModel,
			Quality:  0.70,
			Cost:     "free (local GPU)",
			Reason:   "Simple task - local model is sufficient",
		},
		Balanced: Branch{
			Provider: models.ProviderAnthropic,
			Model:    "claude-sonnet-4-20250514",
			Quality:  0.90,
			Cost:     "free (Claude Max subscription)",
			Reason:   "Balanced task - Claude Sonnet offers good performance/speed",
		},
	}
}

// Branches returns every branch in precedence order
func (t Table) Branches() []Branch {
	return []Branch{t.Multimodal, t.Reasoning, t.LocalCoding, t.LocalGeneral, t.Balanced}
}

// Providers lists each provider the table can emit, without duplicates
func (t Table) Providers() []models.ProviderID {
	seen := make(map[models.ProviderID]bool)
	var out []models.ProviderID
	for _, b := range t.Branches() {
		if seen[b.Provider] {
			continue
		}
		seen[b.Provider] = true
		out = append(out, b.Provider)
	}
	return out
}
