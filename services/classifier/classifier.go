// Package classifier estimates request complexity and task type from free text.
package classifier

import (
	"strings"

	"github.com/upb/llm-router/models"
)

// Classifier maps request text to a complexity level and a task type.
// Implementations must be pure and safe for concurrent use.
type Classifier interface {
	// Name identifies the ruleset or model behind the classifier
	Name() string

	// Classify never fails; text without signals yields (low, general)
	Classify(query string) (models.Complexity, models.TaskType)
}

// KeywordClassifier classifies by ordered, case-insensitive substring matches
type KeywordClassifier struct {
	rules Ruleset
}

// NewKeywordClassifier creates a classifier over a private copy of rules
func NewKeywordClassifier(rules Ruleset) *KeywordClassifier {
	return &KeywordClassifier{rules: rules.normalized()}
}

// Name returns the ruleset name
func (c *KeywordClassifier) Name() string {
	return c.rules.Name
}

// Classify implements Classifier
func (c *KeywordClassifier) Classify(query string) (models.Complexity, models.TaskType) {
	q := strings.ToLower(query)
	return c.complexity(q), c.taskType(q)
}

// Complexity estimates only the complexity level
func (c *KeywordClassifier) Complexity(query string) models.Complexity {
	return c.complexity(strings.ToLower(query))
}

// TaskType detects only the task type
func (c *KeywordClassifier) TaskType(query string) models.TaskType {
	return c.taskType(strings.ToLower(query))
}

// complexity checks high before medium; the first matching category wins
func (c *KeywordClassifier) complexity(q string) models.Complexity {
	switch {
	case containsAny(q, c.rules.High):
		return models.ComplexityHigh
	case containsAny(q, c.rules.Medium):
		return models.ComplexityMedium
	default:
		return models.ComplexityLow
	}
}

// taskType checks multimodal, then coding, then the high-complexity list as reasoning
func (c *KeywordClassifier) taskType(q string) models.TaskType {
	switch {
	case containsAny(q, c.rules.Multimodal):
		return models.TaskTypeMultimodal
	case containsAny(q, c.rules.Coding):
		return models.TaskTypeCoding
	case containsAny(q, c.rules.High):
		return models.TaskTypeReasoning
	default:
		return models.TaskTypeGeneral
	}
}

func containsAny(q string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
