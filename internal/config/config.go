// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and the environment.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"regexp"
	"slices"

	"github.com/robfig/cron/v3"

	"github.com/okian/hooplab/internal/domain/roles"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatasetPath points at the season table (.xlsx or .csv).
	DatasetPath string `koanf:"dataset_path"`

	// DatasetSheet names the worksheet read from .xlsx datasets.
	DatasetSheet string `koanf:"dataset_sheet"`

	// StatColumns is the ordered list of statistics used for clustering.
	StatColumns []string `koanf:"stat_columns"`

	// ClusterCount is k for the main run; MaxK bounds the elbow sweep.
	ClusterCount int `koanf:"cluster_count"`
	MaxK         int `koanf:"max_k"`

	KMeansInits     int     `koanf:"kmeans_inits"`
	KMeansMaxIter   int     `koanf:"kmeans_max_iter"`
	KMeansTolerance float64 `koanf:"kmeans_tolerance"`
	KMeansSeed      int64   `koanf:"kmeans_seed"`

	// WeakSpotThreshold is the fraction of the cluster mean below which a
	// counting statistic is weak.
	WeakSpotThreshold      float64  `koanf:"weak_spot_threshold"`
	MinGamesForPercentages float64  `koanf:"min_games_for_percentages"`
	PercentageStats        []string `koanf:"percentage_stats"`
	InverseStats           []string `koanf:"inverse_stats"`

	// RoleRules is the archetype cascade, highest priority first.
	RoleRules    []roles.Rule `koanf:"role_rules"`
	RoleFallback string       `koanf:"role_fallback"`

	// ReportDir receives exported workbooks and player reports.
	ReportDir string `koanf:"report_dir"`

	// RefreshSchedule re-reads the dataset and re-runs the pipeline on a cron
	// schedule, e.g. "@every 6h" or "0 5 * * *". Empty disables refreshes.
	RefreshSchedule string `koanf:"refresh_schedule"`

	// MetricsNamespace prefixes every exported Prometheus metric.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsEnabled   bool   `koanf:"metrics_enabled"`
}

var metricNamespace = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// DefaultStatColumns are the box-score columns clustered by default.
func DefaultStatColumns() []string {
	return []string{
		"MIN", "FGM", "FGA", "FG_PCT", "FG3M", "FG3A", "FG3_PCT", "FTM", "FTA", "FT_PCT",
		"OREB", "DREB", "REB", "AST", "STL", "BLK", "TOV", "PF", "PTS", "GP", "GS",
	}
}

// New creates a Config with defaults. Context is accepted first to satisfy the
// project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		DatasetSheet:           "Sheet1",
		StatColumns:            DefaultStatColumns(),
		ClusterCount:           5,
		MaxK:                   10,
		KMeansInits:            10,
		KMeansMaxIter:          300,
		KMeansTolerance:        1e-4,
		KMeansSeed:             42,
		WeakSpotThreshold:      0.75,
		MinGamesForPercentages: 10,
		PercentageStats:        []string{"FG_PCT", "FG3_PCT", "FT_PCT"},
		InverseStats:           []string{"TOV", "PF"},
		RoleRules:              roles.DefaultRules(),
		RoleFallback:           roles.FallbackLabel,
		ReportDir:              "reports",
		MetricsNamespace:       "hooplab",
		MetricsEnabled:         true,
	}
}

// Validate checks the values a run cannot proceed without.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case len(c.StatColumns) == 0:
		return fmt.Errorf("%w: stat_columns must not be empty", ErrInvalidConfig)
	case slices.Contains(c.StatColumns, ""):
		return fmt.Errorf("%w: stat_columns contains an empty name", ErrInvalidConfig)
	case c.ClusterCount < 1:
		return fmt.Errorf("%w: cluster_count must be at least 1, got %d", ErrInvalidConfig, c.ClusterCount)
	case c.MaxK < 1:
		return fmt.Errorf("%w: max_k must be at least 1, got %d", ErrInvalidConfig, c.MaxK)
	case c.KMeansInits < 1 || c.KMeansMaxIter < 1:
		return fmt.Errorf("%w: kmeans_inits and kmeans_max_iter must be positive", ErrInvalidConfig)
	case c.KMeansTolerance < 0:
		return fmt.Errorf("%w: kmeans_tolerance must not be negative", ErrInvalidConfig)
	case c.WeakSpotThreshold <= 0 || c.WeakSpotThreshold > 1:
		return fmt.Errorf("%w: weak_spot_threshold must be in (0, 1], got %g", ErrInvalidConfig, c.WeakSpotThreshold)
	case c.MinGamesForPercentages < 0:
		return fmt.Errorf("%w: min_games_for_percentages must not be negative", ErrInvalidConfig)
	case !metricNamespace.MatchString(c.MetricsNamespace):
		return fmt.Errorf("%w: metrics_namespace %q is not a valid metric prefix", ErrInvalidConfig, c.MetricsNamespace)
	}
	if c.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.RefreshSchedule); err != nil {
			return fmt.Errorf("%w: refresh_schedule: %w", ErrInvalidConfig, err)
		}
	}
	if err := roles.Validate(c.RoleRules); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
