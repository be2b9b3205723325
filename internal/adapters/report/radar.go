package report

import (
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/okian/hooplab/internal/domain/catalog"
)

// OverallChart names the chart that plots every analyzed statistic.
const OverallChart = "Overall"

// RadarChart is one normalized series set ready for a chart renderer. Values
// are divided by the largest value of the three series so they lie in [0, 1].
type RadarChart struct {
	Title     string    `json:"title"`
	Stats     []string  `json:"stats"`
	Labels    []string  `json:"labels"`
	Player    []float64 `json:"player"`
	Cluster   []float64 `json:"cluster"`
	Projected []float64 `json:"projected"`
}

// Radar builds one chart per catalog category that has analyzed statistics,
// followed by the overall chart. Undefined values plot as 0.
func Radar(cat *catalog.Catalog, columns []string, player, cluster, projected map[string]float64) []RadarChart {
	var out []RadarChart
	for _, c := range cat.RadarCategories() {
		stats := make([]string, 0, len(c.Stats))
		for _, s := range c.Stats {
			if slices.Contains(columns, s) {
				stats = append(stats, s)
			}
		}
		if len(stats) == 0 {
			continue
		}
		out = append(out, chart(cat, c.Name, stats, player, cluster, projected))
	}
	if len(columns) > 0 {
		out = append(out, chart(cat, OverallChart, columns, player, cluster, projected))
	}
	return out
}

func chart(cat *catalog.Catalog, title string, stats []string, player, cluster, projected map[string]float64) RadarChart {
	rc := RadarChart{
		Title:     title,
		Stats:     slices.Clone(stats),
		Labels:    make([]string, len(stats)),
		Player:    pick(player, stats),
		Cluster:   pick(cluster, stats),
		Projected: pick(projected, stats),
	}
	for i, s := range stats {
		rc.Labels[i] = cat.DisplayName(s)
	}
	top := max(floats.Max(rc.Player), floats.Max(rc.Cluster), floats.Max(rc.Projected))
	if top <= 0 {
		top = 1
	}
	for _, series := range [][]float64{rc.Player, rc.Cluster, rc.Projected} {
		floats.Scale(1/top, series)
	}
	return rc
}

func pick(values map[string]float64, stats []string) []float64 {
	out := make([]float64, len(stats))
	for i, s := range stats {
		out[i] = values[s]
	}
	return out
}
