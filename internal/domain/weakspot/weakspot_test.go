package weakspot_test

import (
	"testing"

	"github.com/okian/hooplab/internal/domain/catalog"
	"github.com/okian/hooplab/internal/domain/model"
	"github.com/okian/hooplab/internal/domain/weakspot"
	. "github.com/smartystreets/goconvey/convey"
)

func player(stats map[string]float64) model.PlayerRecord {
	return model.PlayerRecord{Name: "Test Player", Stats: stats}
}

func findingFor(r *weakspot.Report, stat string) *weakspot.Finding {
	for i := range r.Findings {
		if r.Findings[i].Stat == stat {
			return &r.Findings[i]
		}
	}
	return nil
}

func TestAnalyzeScenarios(t *testing.T) {
	Convey("Given the default analyzer", t, func() {
		a := weakspot.NewAnalyzer()

		Convey("When a qualified player shoots 0.30 against a 0.45 mean", func() {
			r := a.Analyze(player(map[string]float64{"FG_PCT": 0.30, "GP": 50}),
				map[string]float64{"FG_PCT": 0.45, "GP": 60}, []string{"FG_PCT", "GP"})

			Convey("Then FG_PCT is flagged and projected to 0.33", func() {
				f := findingFor(r, "FG_PCT")
				So(f, ShouldNotBeNil)
				So(f.Kind, ShouldEqual, weakspot.Percentage)
				So(f.Projected, ShouldAlmostEqual, 0.33, 1e-12)
				So(r.Projected["FG_PCT"], ShouldAlmostEqual, 0.33, 1e-12)
				So(f.DrillGroup, ShouldEqual, catalog.GroupShooting)
				So(f.Drills, ShouldNotBeEmpty)
			})

			Convey("Then GP is within the threshold and carried forward", func() {
				So(findingFor(r, "GP"), ShouldBeNil)
				So(r.Projected["GP"], ShouldEqual, 50)
			})
		})

		Convey("When the same shooter played only 10 games", func() {
			r := a.Analyze(player(map[string]float64{"FG_PCT": 0.30, "GP": 10}),
				map[string]float64{"FG_PCT": 0.45}, []string{"FG_PCT"})
			So(r.Findings, ShouldBeEmpty)
		})

		Convey("When games played is unknown", func() {
			r := a.Analyze(player(map[string]float64{"FG_PCT": 0.30}),
				map[string]float64{"FG_PCT": 0.45}, []string{"FG_PCT"})
			So(r.Findings, ShouldBeEmpty)
		})

		Convey("When a player commits 180 turnovers against a mean of 100", func() {
			r := a.Analyze(player(map[string]float64{"TOV": 180}), map[string]float64{"TOV": 100}, []string{"TOV"})

			Convey("Then TOV is flagged and projected to 162", func() {
				f := findingFor(r, "TOV")
				So(f, ShouldNotBeNil)
				So(f.Kind, ShouldEqual, weakspot.Inverse)
				So(f.Projected, ShouldAlmostEqual, 162, 1e-9)
				So(f.DrillGroup, ShouldEqual, catalog.GroupTurnovers)
			})
		})

		Convey("When exactly 20% above the mean", func() {
			r := a.Analyze(player(map[string]float64{"PF": 120}), map[string]float64{"PF": 100}, []string{"PF"})
			So(r.Findings, ShouldBeEmpty)
		})

		Convey("When cluster mean and player BLK are both zero", func() {
			r := a.Analyze(player(map[string]float64{"BLK": 0}), map[string]float64{"BLK": 0}, []string{"BLK"})

			Convey("Then BLK is skipped with an undefined ratio", func() {
				So(r.Findings, ShouldBeEmpty)
				So(r.Projected["BLK"], ShouldEqual, 0)
				So(r.Comparison[0].PctDiff, ShouldBeNil)
				So(*r.Comparison[0].Diff, ShouldEqual, 0)
				So(r.Warnings, ShouldHaveLength, 1)
				So(r.Warnings[0].Stat, ShouldEqual, "BLK")
			})
		})

		Convey("When the player has blocks but the mean is zero", func() {
			r := a.Analyze(player(map[string]float64{"BLK": 5}), map[string]float64{"BLK": 0}, []string{"BLK"})
			So(r.Findings, ShouldBeEmpty)
		})

		Convey("When a standard stat is below three quarters of the mean", func() {
			r := a.Analyze(player(map[string]float64{"AST": 100, "REB": 80}),
				map[string]float64{"AST": 200, "REB": 100}, []string{"AST", "REB"})

			Convey("Then only AST is flagged and projected up to 115", func() {
				So(r.Findings, ShouldHaveLength, 1)
				So(r.Findings[0].Stat, ShouldEqual, "AST")
				So(r.Findings[0].Projected, ShouldAlmostEqual, 115, 1e-9)
				So(r.Findings[0].DisplayName, ShouldEqual, "Assists")
			})

			Convey("Then the comparison table carries trend and percentage difference", func() {
				So(*r.Comparison[0].PctDiff, ShouldAlmostEqual, -50)
				So(r.Comparison[0].Trend, ShouldEqual, weakspot.TrendBelow)
				So(r.Comparison[1].Trend, ShouldEqual, weakspot.TrendBelow)
				So(*r.Comparison[1].Diff, ShouldEqual, -20)
			})
		})

		Convey("When a stat is undefined for the player", func() {
			r := a.Analyze(player(map[string]float64{}), map[string]float64{"PTS": 500}, []string{"PTS"})
			So(r.Findings, ShouldBeEmpty)
			_, ok := r.Projected["PTS"]
			So(ok, ShouldBeFalse)
			So(r.Comparison[0].Player, ShouldBeNil)
			So(*r.Comparison[0].Mean, ShouldEqual, 500)
		})
	})

	Convey("Given a stricter multiplier and custom stat kinds", t, func() {
		a := weakspot.NewAnalyzer(
			weakspot.WithThresholdMultiplier(0.5),
			weakspot.WithInverseStats("PF"),
			weakspot.WithPercentageStats("FG_PCT"),
			weakspot.WithMinGamesForPercentages(0),
		)
		So(a.KindOf("TOV"), ShouldEqual, weakspot.Standard)
		So(a.KindOf("FT_PCT"), ShouldEqual, weakspot.Standard)

		r := a.Analyze(player(map[string]float64{"AST": 120, "FG_PCT": 0.30, "GP": 1}),
			map[string]float64{"AST": 200, "FG_PCT": 0.40}, []string{"AST", "FG_PCT"})
		So(r.Findings, ShouldHaveLength, 1)
		So(r.Findings[0].Stat, ShouldEqual, "FG_PCT")
	})
}

func TestProjectionBounds(t *testing.T) {
	Convey("Given flagged values across a grid", t, func() {
		means := []float64{0.2, 0.35, 0.5, 0.8}
		for _, m := range means {
			for p := 0.0; p < m-weakspot.PercentageGap; p += 0.01 {
				got := weakspot.Project(weakspot.Percentage, p, m)
				So(got, ShouldBeGreaterThanOrEqualTo, p)
				So(got, ShouldBeLessThanOrEqualTo, m+weakspot.PercentageCap+1e-12)
			}
		}
		for _, m := range []float64{10, 55, 100, 240} {
			for p := m*weakspot.InverseExcess + 1; p < m*4; p += 7 {
				got := weakspot.Project(weakspot.Inverse, p, m)
				So(got, ShouldBeLessThanOrEqualTo, p)
				So(got, ShouldBeGreaterThanOrEqualTo, m*weakspot.InverseFloor)
			}
		}
		So(weakspot.Project(weakspot.Percentage, 0, 0), ShouldEqual, weakspot.PercentageFloor)
		So(weakspot.Project(weakspot.Standard, 10, 100), ShouldAlmostEqual, 11.5, 1e-9)
		So(weakspot.Project(weakspot.Standard, 80, 100), ShouldAlmostEqual, 92, 1e-9)
	})
}

func TestAnalyzeIdempotent(t *testing.T) {
	Convey("Given the same inputs twice", t, func() {
		a := weakspot.NewAnalyzer()
		p := player(map[string]float64{"PTS": 200, "TOV": 90, "FT_PCT": 0.55, "GP": 70, "STL": 0})
		means := map[string]float64{"PTS": 700, "TOV": 60, "FT_PCT": 0.78, "GP": 68, "STL": 0}
		cols := []string{"PTS", "TOV", "FT_PCT", "GP", "STL"}

		first := a.Analyze(p, means, cols)
		second := a.Analyze(p, means, cols)

		So(second, ShouldResemble, first)
		So(first.Findings, ShouldHaveLength, 3)
		So(first.Findings[0].Stat, ShouldEqual, "PTS")
		So(first.Findings[1].Stat, ShouldEqual, "TOV")
		So(first.Findings[2].Stat, ShouldEqual, "FT_PCT")
	})
}
