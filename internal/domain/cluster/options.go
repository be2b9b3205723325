package cluster

import (
	"github.com/okian/hooplab/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSeed sets the base random seed. Initialization i uses seed+i.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithInits sets how many randomized initializations are tried.
func WithInits(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.inits = n
		}
	}
}

// WithMaxIter bounds the Lloyd iterations of one initialization.
func WithMaxIter(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxIter = n
		}
	}
}

// WithTolerance sets the convergence tolerance, relative to the mean column variance.
func WithTolerance(tol float64) Option {
	return func(e *Engine) {
		if tol >= 0 {
			e.tolerance = tol
		}
	}
}

// WithParallelism caps how many initializations run at once.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
