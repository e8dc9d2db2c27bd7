// Package policy turns a classification into a concrete routing decision.
//
// Selection is a pure function of (complexity, task type, local preference)
// and a static branch Table. It never fails and never performs I/O.
package policy

import "github.com/upb/llm-router/models"

// EndpointResolver maps a provider to the URL its adapter posts to
type EndpointResolver interface {
	EndpointFor(id models.ProviderID) string
}

// Selector chooses a backend for a classified request
type Selector struct {
	table     Table
	endpoints EndpointResolver
}

// NewSelector creates a new Selector
func NewSelector(table Table, endpoints EndpointResolver) *Selector {
	return &Selector{
		table:     table,
		endpoints: endpoints,
	}
}

// Table returns the branch table the selector was built with
func (s *Selector) Table() Table {
	return s.table
}

// Select applies the routing rules in order; the first match wins.
//
//  1. multimodal goes to the vision backend regardless of preferLocal
//  2. high complexity or reasoning goes to the strongest remote backend
//  3. with preferLocal, low and medium work stays local
//  4. everything else goes to the balanced remote backend
func (s *Selector) Select(complexity models.Complexity, taskType models.TaskType, preferLocal bool) models.RouteDecision {
	return s.decision(s.branch(complexity, taskType, preferLocal), complexity, taskType)
}

func (s *Selector) branch(complexity models.Complexity, taskType models.TaskType, preferLocal bool) Branch {
	switch {
	case taskType == models.TaskTypeMultimodal:
		return s.table.Multimodal
	case complexity == models.ComplexityHigh || taskType == models.TaskTypeReasoning:
		return s.table.Reasoning
	case preferLocal && (complexity == models.ComplexityLow || complexity == models.ComplexityMedium):
		if taskType == models.TaskTypeCoding {
			return s.table.LocalCoding
		}
		return s.table.LocalGeneral
	default:
		return s.table.Balanced
	}
}

func (s *Selector) decision(b Branch, complexity models.Complexity, taskType models.TaskType) models.RouteDecision {
	var endpoint string
	if s.endpoints != nil {
		endpoint = s.endpoints.EndpointFor(b.Provider)
	}
	return models.RouteDecision{
		ModelID:          b.Model,
		ProviderID:       b.Provider,
		EndpointURL:      endpoint,
		Rationale:        b.Reason,
		EstimatedQuality: b.Quality,
		EstimatedCost:    b.Cost,
		Complexity:       complexity,
		TaskType:         taskType,
	}
}
