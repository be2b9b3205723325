// Package service runs the clustering pipeline and serves the analysis
// queries required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/hooplab/internal/adapters/report"
	"github.com/okian/hooplab/internal/config"
	"github.com/okian/hooplab/internal/domain/catalog"
	"github.com/okian/hooplab/internal/domain/cluster"
	"github.com/okian/hooplab/internal/domain/features"
	"github.com/okian/hooplab/internal/domain/model"
	"github.com/okian/hooplab/internal/domain/profile"
	"github.com/okian/hooplab/internal/domain/roles"
	"github.com/okian/hooplab/internal/domain/scaler"
	"github.com/okian/hooplab/internal/domain/weakspot"
	"github.com/okian/hooplab/pkg/logger"
	"github.com/okian/hooplab/pkg/metrics"
)

var (
	// ErrPlayerNotFound is returned when no clustered record carries the name.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrNoRun is returned by queries issued before a successful Run.
	ErrNoRun = errors.New("no pipeline run available")
)

// Run is the immutable output of one pipeline execution.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time

	Columns    []string
	Warnings   []features.MissingStatisticWarning
	Dropped    int
	Duplicates int

	// Records are the clustered rows, aligned with Assignment.Labels.
	Records    []model.PlayerRecord
	Scaled     *scaler.Scaled
	Params     *scaler.Params
	Assignment *cluster.Assignment
	Profile    *profile.Profile
	Roles      roles.Labels

	byName   map[string]int // lowercased name -> first clustered record
	excluded map[string]bool
}

// ClusterOf returns the cluster id of clustered record i.
func (r *Run) ClusterOf(i int) int {
	return r.Assignment.Labels[i]
}

// PlayerSummary is one clustered player in a team listing.
type PlayerSummary struct {
	Name    string `json:"name"`
	Team    string `json:"team"`
	Season  string `json:"season"`
	Cluster int    `json:"cluster"`
	Role    string `json:"role"`
}

// Analysis is the full report for one player.
type Analysis struct {
	RunID   string              `json:"run_id"`
	Name    string              `json:"name"`
	Team    string              `json:"team"`
	Season  string              `json:"season"`
	Age     float64             `json:"age,omitempty"`
	Cluster int                 `json:"cluster"`
	Role    string              `json:"role"`
	Report  *weakspot.Report    `json:"report"`
	Radar   []report.RadarChart `json:"radar"`
	Stats   map[string]float64  `json:"stats"`
}

// Service owns the current run. Readers never observe a half-built run.
type Service struct {
	mu      sync.RWMutex
	current *Run

	columns      []string
	clusterCount int
	maxK         int

	engine   *cluster.Engine
	assigner *roles.Assigner
	analyzer *weakspot.Analyzer
	catalog  *catalog.Catalog

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		columns:      config.DefaultStatColumns(),
		clusterCount: 5,
		maxK:         10,
		assigner:     roles.NewAssigner(roles.DefaultRules(), roles.FallbackLabel),
		analyzer:     weakspot.NewAnalyzer(),
		catalog:      catalog.Default(),
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = cluster.NewEngine(cluster.WithLogger(s.logger))
	}
	return s
}

// Run executes the pipeline over ds and, on success, replaces the current run.
// A failed run leaves the previous one in place.
func (s *Service) Run(ctx context.Context, ds *model.Dataset) (*Run, error) {
	if ds == nil {
		ds = &model.Dataset{}
	}
	run := &Run{ID: uuid.NewString(), StartedAt: time.Now()}
	log := s.logger.With(logger.String("run", run.ID))
	log.Info(ctx, "pipeline started", logger.Int("rows", ds.Len()), logger.Int("k", s.clusterCount))

	if err := s.execute(ctx, run, ds, log); err != nil {
		kind := errorKind(err)
		metrics.RecordPipelineRun(kind)
		metrics.RecordError("pipeline", kind)
		log.Error(ctx, "pipeline failed", logger.Error(err))
		return nil, err
	}
	run.FinishedAt = time.Now()

	s.mu.Lock()
	s.current = run
	s.mu.Unlock()

	s.publish(run)
	log.Info(ctx, "pipeline finished",
		logger.Int("clustered", len(run.Records)),
		logger.Int("clusters", run.Assignment.K),
		logger.Float64("inertia", run.Assignment.Inertia),
		logger.Int("duration_ms", int(run.FinishedAt.Sub(run.StartedAt).Milliseconds())),
	)
	return run, nil
}

func (s *Service) execute(ctx context.Context, run *Run, ds *model.Dataset, log logger.Logger) error {
	var prepared *features.Result
	err := stage(ctx, "prepare", func() error {
		var err error
		prepared, err = features.Prepare(ctx, ds, s.columns, features.WithLogger(log))
		return err
	})
	if err != nil {
		return err
	}
	metrics.RecordMissingColumns(len(prepared.Warnings))
	run.Columns = prepared.Matrix.Columns
	run.Warnings = prepared.Warnings
	run.Dropped = prepared.Dropped
	run.Duplicates = prepared.Duplicates
	run.Records = prepared.Records

	sc := scaler.New()
	err = stage(ctx, "scale", func() error {
		var err error
		run.Scaled, err = sc.FitTransform(prepared.Matrix)
		return err
	})
	if err != nil {
		return err
	}
	run.Params = sc.Params()

	err = stage(ctx, "cluster", func() error {
		var err error
		run.Assignment, err = s.engine.Cluster(ctx, run.Scaled, s.clusterCount)
		return err
	})
	if err != nil {
		return err
	}

	err = stage(ctx, "profile", func() error {
		var err error
		run.Profile, err = profile.Build(run.Records, run.Assignment.Labels, run.Assignment.K, run.Columns)
		return err
	})
	if err != nil {
		return err
	}

	err = stage(ctx, "roles", func() error {
		run.Roles = s.assigner.Assign(run.Profile)
		return nil
	})
	if err != nil {
		return err
	}
	for id, role := range run.Roles {
		log.Debug(ctx, "cluster labelled",
			logger.Int("cluster", id),
			logger.Int("size", run.Profile.Size(id)),
			logger.String("role", role),
		)
	}

	run.byName = make(map[string]int, len(run.Records))
	for i, r := range run.Records {
		key := nameKey(r.Name)
		if _, ok := run.byName[key]; !ok && key != "" {
			run.byName[key] = i
		}
	}
	run.excluded = make(map[string]bool)
	for _, r := range features.Records(ds, run.Columns) {
		if key := nameKey(r.Name); key != "" {
			if _, ok := run.byName[key]; !ok {
				run.excluded[key] = true
			}
		}
	}
	return nil
}

func (s *Service) publish(run *Run) {
	sizes := make(map[string]int, run.Assignment.K)
	labels := make(map[string]string, run.Assignment.K)
	for id, n := range run.Assignment.Sizes() {
		key := strconv.Itoa(id)
		sizes[key] = n
		labels[key] = run.Roles[id]
	}
	metrics.RecordPipelineRun("ok")
	metrics.UpdateRowCounts(len(run.Records), run.Dropped, run.Duplicates)
	metrics.UpdateClusters(sizes, labels)
	metrics.UpdateInertia(run.Assignment.Inertia)
	for _, n := range run.Assignment.InitIterations {
		metrics.RecordKMeansIterations(n)
	}
	metrics.UpdateLastRun(run.FinishedAt.Unix())
}

// stage times fn and reports its latency. A cancelled context stops the
// pipeline between stages.
func stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	start := time.Now()
	err := fn()
	metrics.RecordStageLatency(name, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, features.ErrEmptyDataset):
		return "empty_dataset"
	case errors.Is(err, cluster.ErrInvalidK):
		return "invalid_k"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}

// Current returns the latest successful run, or nil.
func (s *Service) Current() *Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Service) currentRun() (*Run, error) {
	run := s.Current()
	if run == nil {
		return nil, ErrNoRun
	}
	return run, nil
}

// Analyze builds the weak-spot report of the first clustered record named name.
func (s *Service) Analyze(ctx context.Context, name string) (*Analysis, error) {
	run, err := s.currentRun()
	if err != nil {
		return nil, err
	}
	key := nameKey(name)
	i, ok := run.byName[key]
	if !ok {
		metrics.RecordPlayerLookup("not_found")
		if run.excluded[key] {
			return nil, fmt.Errorf("%w: %q has incomplete statistics and was not clustered", ErrPlayerNotFound, name)
		}
		return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}

	rec := run.Records[i]
	id := run.ClusterOf(i)
	means := run.Profile.Means(id)
	rep := s.analyzer.Analyze(rec, means, run.Columns)
	for _, f := range rep.Findings {
		metrics.RecordWeakSpot(f.Stat)
	}
	metrics.RecordPlayerLookup("ok")

	s.logger.Debug(ctx, "player analyzed",
		logger.String("run", run.ID),
		logger.String("player", rec.Name),
		logger.Int("cluster", id),
		logger.Int("findings", len(rep.Findings)),
	)

	return &Analysis{
		RunID:   run.ID,
		Name:    rec.Name,
		Team:    rec.Team,
		Season:  rec.Season,
		Age:     rec.Age,
		Cluster: id,
		Role:    run.Roles[id],
		Report:  rep,
		Radar:   report.Radar(s.catalog, run.Columns, rec.Stats, means, rep.Projected),
		Stats:   rec.Stats,
	}, nil
}

// Sweep reports the elbow curve over the current scaled matrix. maxK 0 uses
// the configured bound.
func (s *Service) Sweep(ctx context.Context, maxK int) ([]cluster.InertiaPoint, error) {
	run, err := s.currentRun()
	if err != nil {
		return nil, err
	}
	if maxK == 0 {
		maxK = s.maxK
	}
	start := time.Now()
	pts, err := s.engine.SweepInertia(ctx, run.Scaled, maxK)
	metrics.RecordStageLatency("sweep", float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordError("sweep", errorKind(err))
		return nil, err
	}
	return pts, nil
}

// Teams lists the team abbreviations of clustered players in order.
func (s *Service) Teams() ([]string, error) {
	run, err := s.currentRun()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, r := range run.Records {
		if r.Team != "" && !seen[r.Team] {
			seen[r.Team] = true
			out = append(out, r.Team)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Players lists the clustered players of a team sorted by name. Matching is
// case-insensitive.
func (s *Service) Players(team string) ([]PlayerSummary, error) {
	run, err := s.currentRun()
	if err != nil {
		return nil, err
	}
	out := []PlayerSummary{}
	for i, r := range run.Records {
		if !strings.EqualFold(r.Team, strings.TrimSpace(team)) {
			continue
		}
		id := run.ClusterOf(i)
		out = append(out, PlayerSummary{Name: r.Name, Team: r.Team, Season: r.Season, Cluster: id, Role: run.Roles[id]})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"hasRun":       s.current != nil,
		"clusterCount": s.clusterCount,
		"maxK":         s.maxK,
	}
	if run := s.current; run != nil {
		missing := make([]string, len(run.Warnings))
		for i, w := range run.Warnings {
			missing[i] = w.Column
		}
		stats["runId"] = run.ID
		stats["finishedAt"] = run.FinishedAt.UTC().Format(time.RFC3339)
		stats["rowsClustered"] = len(run.Records)
		stats["rowsDropped"] = run.Dropped
		stats["duplicateRows"] = run.Duplicates
		stats["columns"] = run.Columns
		stats["missingColumns"] = missing
		stats["inertia"] = run.Assignment.Inertia
		stats["iterations"] = run.Assignment.Iterations
		stats["clusterSizes"] = run.Assignment.Sizes()
	}
	return stats
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
