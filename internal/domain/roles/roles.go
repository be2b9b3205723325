// Package roles labels clusters with archetypes from an ordered rule table.
package roles

import (
	"github.com/okian/hooplab/internal/domain/profile"
)

// Labels maps cluster id to its archetype label.
type Labels map[int]string

// Assigner evaluates rules in priority order; the first match wins.
type Assigner struct {
	rules    []Rule
	fallback string
}

// NewAssigner creates an assigner. An empty fallback uses FallbackLabel.
func NewAssigner(rules []Rule, fallback string) *Assigner {
	if fallback == "" {
		fallback = FallbackLabel
	}
	return &Assigner{rules: append([]Rule(nil), rules...), fallback: fallback}
}

// Label returns the label for one set of cluster means.
func (a *Assigner) Label(means map[string]float64) string {
	for _, r := range a.rules {
		if r.Matches(means) {
			return r.Label
		}
	}
	return a.fallback
}

// Assign labels every cluster in p.
func (a *Assigner) Assign(p *profile.Profile) Labels {
	out := make(Labels, p.K())
	for _, c := range p.Clusters {
		out[c.ID] = a.Label(c.Means)
	}
	return out
}
