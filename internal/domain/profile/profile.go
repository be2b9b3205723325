// Package profile summarizes clusters in raw statistic units.
package profile

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/hooplab/internal/domain/model"
)

// ErrMisaligned is returned when records and labels differ in length or a
// label falls outside [0, k).
var ErrMisaligned = errors.New("records and cluster labels are misaligned")

// Cluster summarizes one cluster.
type Cluster struct {
	ID    int                `json:"id"`
	Size  int                `json:"size"`
	Means map[string]float64 `json:"means"`
}

// Profile holds per-cluster and population means for the profiled columns.
type Profile struct {
	Columns  []string           `json:"columns"`
	Clusters []Cluster          `json:"clusters"`
	Overall  map[string]float64 `json:"overall"`
}

// Build groups records by label and averages each column. A record missing a
// column does not contribute to that column's mean.
func Build(records []model.PlayerRecord, labels []int, k int, columns []string) (*Profile, error) {
	if len(records) != len(labels) {
		return nil, fmt.Errorf("%w: %d records, %d labels", ErrMisaligned, len(records), len(labels))
	}
	groups := make([][]model.PlayerRecord, k)
	for i, l := range labels {
		if l < 0 || l >= k {
			return nil, fmt.Errorf("%w: label %d outside [0, %d)", ErrMisaligned, l, k)
		}
		groups[l] = append(groups[l], records[i])
	}

	p := &Profile{
		Columns:  append([]string(nil), columns...),
		Clusters: make([]Cluster, k),
		Overall:  meanOf(records, columns),
	}
	for id, g := range groups {
		p.Clusters[id] = Cluster{ID: id, Size: len(g), Means: meanOf(g, columns)}
	}
	return p, nil
}

// Means returns the per-statistic means of a cluster, or nil for an unknown id.
func (p *Profile) Means(id int) map[string]float64 {
	if id < 0 || id >= len(p.Clusters) {
		return nil
	}
	return p.Clusters[id].Means
}

// Size returns the member count of a cluster.
func (p *Profile) Size(id int) int {
	if id < 0 || id >= len(p.Clusters) {
		return 0
	}
	return p.Clusters[id].Size
}

// K returns the number of clusters.
func (p *Profile) K() int {
	return len(p.Clusters)
}

func meanOf(records []model.PlayerRecord, columns []string) map[string]float64 {
	out := make(map[string]float64, len(columns))
	vals := make([]float64, 0, len(records))
	for _, c := range columns {
		vals = vals[:0]
		for _, r := range records {
			if v, ok := r.Stat(c); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) > 0 {
			out[c] = stat.Mean(vals, nil)
		}
	}
	return out
}
