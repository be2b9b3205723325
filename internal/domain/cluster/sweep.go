package cluster

import (
	"context"
	"fmt"

	"github.com/okian/hooplab/internal/domain/scaler"
)

// InertiaPoint is one entry of an elbow sweep.
type InertiaPoint struct {
	K       int     `json:"k"`
	Inertia float64 `json:"inertia"`
}

// SweepInertia clusters s for k = 1..min(maxK, rows) and reports the best
// inertia of each k in ascending k order.
func (e *Engine) SweepInertia(ctx context.Context, s *scaler.Scaled, maxK int) ([]InertiaPoint, error) {
	n := s.Rows()
	if maxK < 1 || n == 0 {
		return nil, &InvalidKError{K: maxK, Rows: n}
	}
	limit := min(maxK, n)
	out := make([]InertiaPoint, 0, limit)
	for k := 1; k <= limit; k++ {
		a, err := e.Cluster(ctx, s, k)
		if err != nil {
			return nil, fmt.Errorf("sweep k=%d: %w", k, err)
		}
		out = append(out, InertiaPoint{K: k, Inertia: a.Inertia})
	}
	return out, nil
}
