package features

import "github.com/okian/hooplab/pkg/logger"

// Option applies a configuration option to Prepare.
type Option func(*preparer)

// WithLogger sets the logger used for warnings and counts.
func WithLogger(l logger.Logger) Option {
	return func(p *preparer) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithoutDedupe keeps duplicate player-season rows instead of collapsing them.
func WithoutDedupe() Option {
	return func(p *preparer) {
		p.dedupe = false
	}
}
