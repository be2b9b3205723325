// Package weakspot compares a player with the mean of their cluster, flags
// deficient statistics and projects a bounded improvement for each.
package weakspot

import (
	"fmt"

	"github.com/okian/hooplab/internal/domain/catalog"
	"github.com/okian/hooplab/internal/domain/model"
)

const statGamesPlayed = "GP"

// Trend summarizes the percentage difference of a comparison row.
type Trend string

// Trends.
const (
	TrendAbove     Trend = "above"
	TrendEven      Trend = "even"
	TrendBelow     Trend = "below"
	TrendUndefined Trend = ""
	trendBand            = 5.0
)

// UndefinedRatioWarning notes a statistic whose percentage difference has a
// zero or missing denominator.
type UndefinedRatioWarning struct {
	Stat string `json:"stat"`
}

func (w UndefinedRatioWarning) String() string {
	return fmt.Sprintf("percentage difference of %s is undefined", w.Stat)
}

// Comparison is one row of the player versus cluster table. Nil values are
// undefined.
type Comparison struct {
	Stat        string   `json:"stat"`
	DisplayName string   `json:"display_name"`
	Player      *float64 `json:"player"`
	Mean        *float64 `json:"cluster_mean"`
	Diff        *float64 `json:"difference"`
	PctDiff     *float64 `json:"percentage_difference"`
	Trend       Trend    `json:"trend,omitempty"`
}

// Finding is one flagged statistic.
type Finding struct {
	Stat        string   `json:"stat"`
	DisplayName string   `json:"display_name"`
	Kind        Kind     `json:"kind"`
	Player      float64  `json:"player"`
	Mean        float64  `json:"cluster_mean"`
	Projected   float64  `json:"projected"`
	DrillGroup  string   `json:"drill_group,omitempty"`
	Drills      []string `json:"drills,omitempty"`
}

// Report is the outcome of one analysis.
type Report struct {
	Comparison []Comparison            `json:"comparison"`
	Findings   []Finding               `json:"findings"`
	Projected  map[string]float64      `json:"projected"`
	Warnings   []UndefinedRatioWarning `json:"warnings,omitempty"`
}

// Analyzer holds the heuristics configuration. It is safe for concurrent use.
type Analyzer struct {
	threshold  float64
	percentage map[string]bool
	inverse    map[string]bool
	minGames   float64
	catalog    *catalog.Catalog
}

// NewAnalyzer creates an analyzer with the default heuristics.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		threshold:  DefaultThreshold,
		percentage: toSet([]string{"FG_PCT", "FG3_PCT", "FT_PCT"}),
		inverse:    toSet([]string{"TOV", "PF"}),
		minGames:   DefaultMinGames,
		catalog:    catalog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// KindOf classifies a statistic. Percentage membership wins over inverse.
func (a *Analyzer) KindOf(stat string) Kind {
	switch {
	case a.percentage[stat]:
		return Percentage
	case a.inverse[stat]:
		return Inverse
	default:
		return Standard
	}
}

// Analyze compares player with clusterMeans over columns. Unflagged statistics
// carry the player value into the projection.
func (a *Analyzer) Analyze(player model.PlayerRecord, clusterMeans map[string]float64, columns []string) *Report {
	r := &Report{
		Comparison: make([]Comparison, 0, len(columns)),
		Findings:   []Finding{},
		Projected:  make(map[string]float64, len(columns)),
	}
	gp, gpOK := player.Stat(statGamesPlayed)
	qualified := gpOK && gp > a.minGames

	for _, s := range columns {
		pv, pOK := player.Stat(s)
		mv, mOK := clusterMeans[s]
		row := a.compare(s, pv, pOK, mv, mOK)
		if row.PctDiff == nil {
			r.Warnings = append(r.Warnings, UndefinedRatioWarning{Stat: s})
		}
		r.Comparison = append(r.Comparison, row)

		if !pOK {
			continue
		}
		r.Projected[s] = pv
		if !mOK {
			continue
		}

		kind := a.KindOf(s)
		if !a.weak(kind, pv, mv, qualified) {
			continue
		}
		f := Finding{
			Stat:        s,
			DisplayName: a.catalog.DisplayName(s),
			Kind:        kind,
			Player:      pv,
			Mean:        mv,
			Projected:   Project(kind, pv, mv),
			DrillGroup:  a.drillGroup(kind, s),
		}
		f.Drills = a.catalog.Drills(f.DrillGroup)
		r.Projected[s] = f.Projected
		r.Findings = append(r.Findings, f)
	}
	return r
}

func (a *Analyzer) weak(kind Kind, player, mean float64, qualified bool) bool {
	if mean == 0 {
		// zero means never flag
		return false
	}
	switch kind {
	case Percentage:
		return qualified && (mean-player) > PercentageGap
	case Inverse:
		return player > mean*InverseExcess && mean > 0
	default:
		return player < mean*a.threshold
	}
}

func (a *Analyzer) drillGroup(kind Kind, stat string) string {
	if kind == Percentage {
		return catalog.GroupShooting
	}
	return a.catalog.GroupFor(stat)
}

func (a *Analyzer) compare(stat string, pv float64, pOK bool, mv float64, mOK bool) Comparison {
	row := Comparison{Stat: stat, DisplayName: a.catalog.DisplayName(stat)}
	if pOK {
		row.Player = &pv
	}
	if mOK {
		row.Mean = &mv
	}
	if !pOK || !mOK {
		return row
	}
	diff := pv - mv
	row.Diff = &diff
	if mv == 0 {
		return row
	}
	pct := diff / mv * 100
	row.PctDiff = &pct
	switch {
	case pct > trendBand:
		row.Trend = TrendAbove
	case pct < -trendBand:
		row.Trend = TrendBelow
	default:
		row.Trend = TrendEven
	}
	return row
}
