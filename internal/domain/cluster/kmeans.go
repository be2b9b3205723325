// Package cluster partitions standardized player rows with k-means.
package cluster

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/hooplab/internal/domain/scaler"
	"github.com/okian/hooplab/pkg/logger"
)

// Defaults mirror the common scikit-learn KMeans settings.
const (
	DefaultSeed      int64 = 42
	DefaultInits           = 10
	DefaultMaxIter         = 300
	DefaultTolerance       = 1e-4
)

// Assignment is the result of one clustering invocation. It is not modified
// after Cluster returns.
type Assignment struct {
	K         int
	Labels    []int // one cluster id in [0, K) per scaled row
	Index     []int // source row of each label
	Centroids *mat.Dense
	Inertia   float64

	// Iterations is the Lloyd iteration count of the winning initialization.
	Iterations     int
	InitIterations []int
	Converged      bool
}

// Sizes returns the member count of every cluster.
func (a *Assignment) Sizes() []int {
	sizes := make([]int, a.K)
	for _, l := range a.Labels {
		sizes[l]++
	}
	return sizes
}

// Engine runs k-means with k-means++ seeding and best-of-N initializations.
type Engine struct {
	seed        int64
	inits       int
	maxIter     int
	tolerance   float64
	parallelism int
	logger      logger.Logger
}

// NewEngine creates an engine with default settings.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		seed:        DefaultSeed,
		inits:       DefaultInits,
		maxIter:     DefaultMaxIter,
		tolerance:   DefaultTolerance,
		parallelism: runtime.NumCPU(),
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type run struct {
	labels     []int
	centers    [][]float64
	inertia    float64
	iterations int
	converged  bool
	err        error
}

// Cluster assigns every row of s to one of k clusters.
func (e *Engine) Cluster(ctx context.Context, s *scaler.Scaled, k int) (*Assignment, error) {
	n := s.Rows()
	if k < 1 || k > n {
		return nil, &InvalidKError{K: k, Rows: n}
	}
	points := rows(s.Data)
	tol := e.tolerance * meanVariance(s.Data)

	runs := make([]run, e.inits)
	sem := make(chan struct{}, e.parallelism)
	var wg sync.WaitGroup
	for i := 0; i < e.inits; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			rng := rand.New(rand.NewSource(e.seed + int64(i))) //nolint:gosec // reproducible seeding, not crypto
			runs[i] = e.lloyd(ctx, points, k, tol, rng)
		}(i)
	}
	wg.Wait()

	best := -1
	iters := make([]int, len(runs))
	for i := range runs {
		if runs[i].err != nil {
			return nil, fmt.Errorf("kmeans init %d: %w", i, runs[i].err)
		}
		iters[i] = runs[i].iterations
		if best < 0 || runs[i].inertia < runs[best].inertia {
			best = i
		}
	}
	b := runs[best]

	_, c := s.Data.Dims()
	centroids := mat.NewDense(k, c, nil)
	for j, ctr := range b.centers {
		centroids.SetRow(j, ctr)
	}

	e.logger.Debug(ctx, "kmeans finished",
		logger.Int("k", k),
		logger.Int("rows", n),
		logger.Int("best_init", best),
		logger.Int("iterations", b.iterations),
		logger.Float64("inertia", b.inertia),
	)

	return &Assignment{
		K:              k,
		Labels:         b.labels,
		Index:          append([]int(nil), s.Index...),
		Centroids:      centroids,
		Inertia:        b.inertia,
		Iterations:     b.iterations,
		InitIterations: iters,
		Converged:      b.converged,
	}, nil
}

func (e *Engine) lloyd(ctx context.Context, points [][]float64, k int, tol float64, rng *rand.Rand) run {
	centers := seedPlusPlus(points, k, rng)
	labels := make([]int, len(points))
	prev := make([]int, len(points))
	var r run

	for it := 1; it <= e.maxIter; it++ {
		if err := ctx.Err(); err != nil {
			return run{err: err}
		}
		r.iterations = it
		assign(points, centers, labels)
		relocateEmpty(points, centers, labels, k)
		if it > 1 && equalLabels(labels, prev) {
			r.converged = true
			break
		}
		copy(prev, labels)

		next := means(points, labels, k, len(points[0]))
		shift := 0.0
		for j := range centers {
			shift += sqDist(centers[j], next[j])
		}
		centers = next
		if shift <= tol {
			r.converged = true
			break
		}
	}

	assign(points, centers, labels)
	relocateEmpty(points, centers, labels, k)
	r.centers = means(points, labels, k, len(points[0]))
	r.labels = labels
	for i, p := range points {
		r.inertia += sqDist(p, r.centers[labels[i]])
	}
	return r
}

// seedPlusPlus picks k initial centers with greedy k-means++: each step draws
// several candidates proportional to squared distance and keeps the one that
// lowers the potential most.
func seedPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	trials := 2 + int(math.Log(float64(k)))
	centers := make([][]float64, 0, k)

	first := rng.Intn(n)
	centers = append(centers, clone(points[first]))
	closest := make([]float64, n)
	for i, p := range points {
		closest[i] = sqDist(p, points[first])
	}
	pot := floats.Sum(closest)
	cum := make([]float64, n)

	for len(centers) < k {
		if pot == 0 {
			// every point coincides with a chosen center
			centers = append(centers, clone(points[rng.Intn(n)]))
			continue
		}
		floats.CumSum(cum, closest)
		bestIdx, bestPot := -1, math.Inf(1)
		for t := 0; t < trials; t++ {
			r := rng.Float64() * pot
			idx := sort.Search(n, func(i int) bool { return cum[i] > r })
			if idx >= n {
				idx = n - 1
			}
			candPot := 0.0
			for i, p := range points {
				candPot += math.Min(closest[i], sqDist(p, points[idx]))
			}
			if candPot < bestPot {
				bestIdx, bestPot = idx, candPot
			}
		}
		centers = append(centers, clone(points[bestIdx]))
		for i, p := range points {
			closest[i] = math.Min(closest[i], sqDist(p, points[bestIdx]))
		}
		pot = bestPot
	}
	return centers
}

// assign labels every point with its nearest center; ties go to the lower id.
func assign(points, centers [][]float64, labels []int) {
	for i, p := range points {
		best, bestD := 0, math.Inf(1)
		for j, c := range centers {
			if d := sqDist(p, c); d < bestD {
				best, bestD = j, d
			}
		}
		labels[i] = best
	}
}

// relocateEmpty moves into every empty cluster the point farthest from its
// current center, taken from a cluster that keeps at least one member.
func relocateEmpty(points, centers [][]float64, labels []int, k int) {
	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}
	for c := 0; c < k; c++ {
		if sizes[c] > 0 {
			continue
		}
		far, farD := -1, -1.0
		for i, p := range points {
			if sizes[labels[i]] < 2 {
				continue
			}
			if d := sqDist(p, centers[labels[i]]); d > farD {
				far, farD = i, d
			}
		}
		if far < 0 {
			return
		}
		sizes[labels[far]]--
		labels[far] = c
		sizes[c] = 1
		centers[c] = clone(points[far])
	}
}

func means(points [][]float64, labels []int, k, dims int) [][]float64 {
	out := make([][]float64, k)
	counts := make([]int, k)
	for j := range out {
		out[j] = make([]float64, dims)
	}
	for i, p := range points {
		floats.Add(out[labels[i]], p)
		counts[labels[i]]++
	}
	for j := range out {
		if counts[j] > 0 {
			floats.Scale(1/float64(counts[j]), out[j])
		}
	}
	return out
}

func meanVariance(m *mat.Dense) float64 {
	_, c := m.Dims()
	if c == 0 {
		return 0
	}
	total := 0.0
	for j := 0; j < c; j++ {
		_, std := stat.PopMeanStdDev(mat.Col(nil, j, m), nil)
		total += std * std
	}
	return total / float64(c)
}

func rows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(p []float64) []float64 {
	return append([]float64(nil), p...)
}

func equalLabels(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
