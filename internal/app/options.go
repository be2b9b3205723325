package service

import (
	"github.com/okian/hooplab/internal/config"
	"github.com/okian/hooplab/internal/domain/catalog"
	"github.com/okian/hooplab/internal/domain/cluster"
	"github.com/okian/hooplab/internal/domain/roles"
	"github.com/okian/hooplab/internal/domain/weakspot"
	"github.com/okian/hooplab/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithColumns sets the declared statistic columns. Empty keeps the default
// box-score columns.
func WithColumns(columns []string) Option {
	return func(s *Service) {
		if len(columns) > 0 {
			s.columns = append([]string(nil), columns...)
		}
	}
}

// WithClusterCount sets k for pipeline runs.
func WithClusterCount(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.clusterCount = k
		}
	}
}

// WithMaxK sets the default bound of elbow sweeps.
func WithMaxK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.maxK = k
		}
	}
}

// WithEngine sets the clustering engine.
func WithEngine(e *cluster.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithAssigner sets the role assigner.
func WithAssigner(a *roles.Assigner) Option {
	return func(s *Service) {
		if a != nil {
			s.assigner = a
		}
	}
}

// WithAnalyzer sets the weak-spot analyzer.
func WithAnalyzer(a *weakspot.Analyzer) Option {
	return func(s *Service) {
		if a != nil {
			s.analyzer = a
		}
	}
}

// WithCatalog sets the display name and radar catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// OptionsFromConfig translates cfg into service options. l may be nil.
func OptionsFromConfig(cfg *config.Config, l logger.Logger) []Option {
	if l == nil {
		l = logger.Nop()
	}
	return []Option{
		WithLogger(l),
		WithColumns(cfg.StatColumns),
		WithClusterCount(cfg.ClusterCount),
		WithMaxK(cfg.MaxK),
		WithEngine(cluster.NewEngine(
			cluster.WithSeed(cfg.KMeansSeed),
			cluster.WithInits(cfg.KMeansInits),
			cluster.WithMaxIter(cfg.KMeansMaxIter),
			cluster.WithTolerance(cfg.KMeansTolerance),
			cluster.WithLogger(l.Named("kmeans")),
		)),
		WithAssigner(roles.NewAssigner(cfg.RoleRules, cfg.RoleFallback)),
		WithAnalyzer(weakspot.NewAnalyzer(
			weakspot.WithThresholdMultiplier(cfg.WeakSpotThreshold),
			weakspot.WithPercentageStats(cfg.PercentageStats...),
			weakspot.WithInverseStats(cfg.InverseStats...),
			weakspot.WithMinGamesForPercentages(cfg.MinGamesForPercentages),
		)),
	}
}
