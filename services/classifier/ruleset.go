package classifier

import "strings"

// DefaultRulesetName names the built-in keyword lists
const DefaultRulesetName = "keyword-v1"

// Ruleset is the keyword data driving a KeywordClassifier.
// It is a plain value so it can be loaded from configuration and swapped
// without touching the selector or dispatcher.
type Ruleset struct {
	Name       string   `yaml:"name" json:"name"`
	High       []string `yaml:"high" json:"high"`
	Medium     []string `yaml:"medium" json:"medium"`
	Coding     []string `yaml:"coding" json:"coding"`
	Multimodal []string `yaml:"multimodal" json:"multimodal"`
}

// DefaultRuleset returns the built-in keyword lists
func DefaultRuleset() Ruleset {
	return Ruleset{
		Name: DefaultRulesetName,
		High: []string{
			"analyze", "architect", "design", "complex", "optimize", "refactor",
			"explain why", "compare", "evaluate", "strategic", "comprehensive",
		},
		Medium: []string{
			"implement", "create", "build", "fix", "debug", "write", "modify",
		},
		Coding: []string{
			"code", "function", "class", "implement", "bug", "error",
			"python", "javascript", "typescript", "rust", "go", "sql",
		},
		Multimodal: []string{
			"image", "picture", "photo", "screenshot", "diagram",
			"visual", "see", "look at",
		},
	}
}

// Merge returns r with every empty list taken from fallback
func (r Ruleset) Merge(fallback Ruleset) Ruleset {
	out := r
	if out.Name == "" {
		out.Name = fallback.Name
	}
	if len(out.High) == 0 {
		out.High = fallback.High
	}
	if len(out.Medium) == 0 {
		out.Medium = fallback.Medium
	}
	if len(out.Coding) == 0 {
		out.Coding = fallback.Coding
	}
	if len(out.Multimodal) == 0 {
		out.Multimodal = fallback.Multimodal
	}
	return out
}

// normalized returns a deep copy with lower-cased, trimmed, non-empty keywords
func (r Ruleset) normalized() Ruleset {
	return Ruleset{
		Name:       r.Name,
		High:       lowerAll(r.High),
		Medium:     lowerAll(r.Medium),
		Coding:     lowerAll(r.Coding),
		Multimodal: lowerAll(r.Multimodal),
	}
}

func lowerAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		out = append(out, kw)
	}
	return out
}
