package weakspot

import (
	"github.com/okian/hooplab/internal/domain/catalog"
)

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithThresholdMultiplier sets the fraction of the cluster mean below which a
// standard statistic is weak.
func WithThresholdMultiplier(m float64) Option {
	return func(a *Analyzer) {
		if m > 0 {
			a.threshold = m
		}
	}
}

// WithPercentageStats replaces the set of percentage statistics.
func WithPercentageStats(stats ...string) Option {
	return func(a *Analyzer) {
		a.percentage = toSet(stats)
	}
}

// WithInverseStats replaces the set of lower-is-better statistics.
func WithInverseStats(stats ...string) Option {
	return func(a *Analyzer) {
		a.inverse = toSet(stats)
	}
}

// WithMinGamesForPercentages sets how many games a player must exceed before
// percentages are judged.
func WithMinGamesForPercentages(n float64) Option {
	return func(a *Analyzer) {
		if n >= 0 {
			a.minGames = n
		}
	}
}

// WithCatalog sets the drill and display name catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *Analyzer) {
		if c != nil {
			a.catalog = c
		}
	}
}

func toSet(stats []string) map[string]bool {
	out := make(map[string]bool, len(stats))
	for _, s := range stats {
		out[s] = true
	}
	return out
}
