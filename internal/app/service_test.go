package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	service "github.com/okian/hooplab/internal/app"
	"github.com/okian/hooplab/internal/domain/cluster"
	"github.com/okian/hooplab/internal/domain/features"
	"github.com/okian/hooplab/internal/domain/model"
	"github.com/okian/hooplab/internal/domain/weakspot"
	. "github.com/smartystreets/goconvey/convey"
)

func newService() *service.Service {
	return service.New(
		service.WithColumns(fixtureColumns),
		service.WithClusterCount(3),
		service.WithMaxK(5),
	)
}

func TestService_Run(t *testing.T) {
	Convey("Given a service and a season table", t, func() {
		ctx := context.Background()
		svc := newService()

		Convey("When queried before any run", func() {
			_, err := svc.Analyze(ctx, "Ann Guard")
			So(errors.Is(err, service.ErrNoRun), ShouldBeTrue)
			_, err = svc.Teams()
			So(errors.Is(err, service.ErrNoRun), ShouldBeTrue)
			So(svc.Current(), ShouldBeNil)
			So(svc.GetStats()["hasRun"], ShouldBeFalse)
		})

		Convey("When the pipeline runs", func() {
			run, err := svc.Run(ctx, fixtureDataset())
			So(err, ShouldBeNil)

			Convey("Then incomplete rows and absent columns are reported", func() {
				So(run.ID, ShouldNotBeEmpty)
				So(run.Dropped, ShouldEqual, 1)
				So(run.Warnings, ShouldHaveLength, 1)
				So(run.Warnings[0].Column, ShouldEqual, "STL")
				So(run.Columns, ShouldNotContain, "STL")
			})

			Convey("Then every clustered row has exactly one cluster", func() {
				So(run.Records, ShouldHaveLength, 12)
				total := 0
				for _, n := range run.Assignment.Sizes() {
					total += n
				}
				So(total, ShouldEqual, 12)
				So(run.Roles, ShouldHaveLength, 3)
			})

			Convey("Then the archetypes land in separate clusters", func() {
				So(run.ClusterOf(0), ShouldEqual, run.ClusterOf(1))
				So(run.ClusterOf(4), ShouldEqual, run.ClusterOf(5))
				So(run.ClusterOf(8), ShouldEqual, run.ClusterOf(9))
				So(run.ClusterOf(0), ShouldNotEqual, run.ClusterOf(4))
				So(run.ClusterOf(4), ShouldNotEqual, run.ClusterOf(8))
				So(run.Roles[run.ClusterOf(8)], ShouldEqual, "Roster Fringe / Development")
			})

			Convey("Then a second run is reproducible", func() {
				again, err := newService().Run(ctx, fixtureDataset())
				So(err, ShouldBeNil)
				So(again.Assignment.Labels, ShouldResemble, run.Assignment.Labels)
				So(again.ID, ShouldNotEqual, run.ID)
			})

			Convey("Then stats describe the run", func() {
				stats := svc.GetStats()
				So(stats["hasRun"], ShouldBeTrue)
				So(stats["runId"], ShouldEqual, run.ID)
				So(stats["rowsClustered"], ShouldEqual, 12)
				So(stats["missingColumns"], ShouldResemble, []string{"STL"})
			})
		})

		Convey("When k exceeds the usable rows", func() {
			small := &model.Dataset{
				Headers: fixtureHeaders,
				Rows:    fixtureDataset().Rows[:3],
			}
			_, err := service.New(service.WithColumns(fixtureColumns), service.WithClusterCount(5)).Run(ctx, small)

			Convey("Then InvalidKError surfaces and nothing is published", func() {
				var invalid *cluster.InvalidKError
				So(errors.As(err, &invalid), ShouldBeTrue)
				So(invalid.K, ShouldEqual, 5)
				So(invalid.Rows, ShouldEqual, 3)
			})
		})

		Convey("When no declared column exists", func() {
			_, err := service.New(service.WithColumns([]string{"XYZ"})).Run(ctx, fixtureDataset())
			So(errors.Is(err, features.ErrEmptyDataset), ShouldBeTrue)
		})

		Convey("When no columns are declared", func() {
			run, err := service.New(service.WithColumns(nil), service.WithClusterCount(3)).Run(ctx, fixtureDataset())

			Convey("Then the default box-score columns are used", func() {
				So(err, ShouldBeNil)
				So(run.Columns, ShouldResemble, []string{"MIN", "FG_PCT", "REB", "AST", "BLK", "TOV", "PTS", "GP"})
				So(run.Columns, ShouldNotContain, "PLAYER_NAME")
			})
		})

		Convey("When the context is cancelled before roles are assigned", func() {
			first, err := svc.Run(ctx, fixtureDataset())
			So(err, ShouldBeNil)

			// the roles stage performs the last context check of a run
			counting := &countingContext{Context: ctx}
			_, err = newService().Run(counting, fixtureDataset())
			So(err, ShouldBeNil)
			last := counting.calls.Load()

			cancelling := &countingContext{Context: ctx, cancelAt: last}
			run, err := svc.Run(cancelling, fixtureDataset())

			Convey("Then the run fails and the previous run stays current", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(strings.HasPrefix(err.Error(), "roles:"), ShouldBeTrue)
				So(run, ShouldBeNil)
				So(svc.Current(), ShouldEqual, first)
				So(svc.Current().Roles, ShouldHaveLength, 3)
			})
		})

		Convey("When a later run fails", func() {
			first, err := svc.Run(ctx, fixtureDataset())
			So(err, ShouldBeNil)
			_, err = svc.Run(ctx, &model.Dataset{Headers: fixtureHeaders})
			So(err, ShouldNotBeNil)
			So(svc.Current(), ShouldEqual, first)
		})
	})
}

// countingContext reports cancellation from the cancelAt-th Err call on.
type countingContext struct {
	context.Context
	calls    atomic.Int64
	cancelAt int64
}

func (c *countingContext) Err() error {
	n := c.calls.Add(1)
	if c.cancelAt > 0 && n >= c.cancelAt {
		return context.Canceled
	}
	return nil
}

func TestService_Analyze(t *testing.T) {
	Convey("Given a completed run", t, func() {
		ctx := context.Background()
		svc := newService()
		_, err := svc.Run(ctx, fixtureDataset())
		So(err, ShouldBeNil)

		Convey("When analyzing the poor shooting wing", func() {
			a, err := svc.Analyze(ctx, "  ivy wing ")
			So(err, ShouldBeNil)

			Convey("Then the report flags shooting and turnovers", func() {
				So(a.Name, ShouldEqual, "Ivy Wing")
				So(a.Role, ShouldNotBeEmpty)
				stats := map[string]weakspot.Finding{}
				for _, f := range a.Report.Findings {
					stats[f.Stat] = f
				}
				So(stats, ShouldContainKey, "FG_PCT")
				So(stats, ShouldContainKey, "TOV")
				So(stats["TOV"].Projected, ShouldBeLessThanOrEqualTo, 310)
				So(a.Radar, ShouldNotBeEmpty)
			})
		})

		Convey("When the player was excluded from clustering", func() {
			_, err := svc.Analyze(ctx, "Jo Missing")
			So(errors.Is(err, service.ErrPlayerNotFound), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "not clustered")
		})

		Convey("When the player is unknown", func() {
			_, err := svc.Analyze(ctx, "Nobody")
			So(errors.Is(err, service.ErrPlayerNotFound), ShouldBeTrue)
		})

		Convey("When listing teams and players", func() {
			teams, err := svc.Teams()
			So(err, ShouldBeNil)
			So(teams, ShouldResemble, []string{"BOS", "MIA", "NYK"})

			players, err := svc.Players("mia")
			So(err, ShouldBeNil)
			So(players, ShouldHaveLength, 4)
			So(players[0].Name, ShouldEqual, "Cal Tower")

			none, err := svc.Players("LAL")
			So(err, ShouldBeNil)
			So(none, ShouldBeEmpty)
		})

		Convey("When sweeping inertia", func() {
			pts, err := svc.Sweep(ctx, 0)
			So(err, ShouldBeNil)
			So(pts, ShouldHaveLength, 5)
			So(pts[0].K, ShouldEqual, 1)

			_, err = svc.Sweep(ctx, -1)
			So(errors.Is(err, cluster.ErrInvalidK), ShouldBeTrue)
		})

		Convey("When readers race with a rerun", func() {
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, _ = svc.Analyze(ctx, "Bob Big")
					_, _ = svc.Players("NYK")
				}()
			}
			_, err := svc.Run(ctx, fixtureDataset())
			wg.Wait()
			So(err, ShouldBeNil)
		})
	})
}
