package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then collectors are registered under the default namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.pipelineRuns.WithLabelValues("ok").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(strings.Join(names, ","), ShouldContainSubstring, "hooplab_pipeline_runs_total")
			})
		})

		Convey("When creating with a custom namespace", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metric names follow the namespace", func() {
				manager.bestInertia.Set(12.5)
				So(testutil.ToFloat64(manager.bestInertia), ShouldEqual, 12.5)
				n, err := testutil.GatherAndCount(registry, "test_pipeline_kmeans_inertia")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})
	})
}

func TestMetricsInit(t *testing.T) {
	Convey("Given the global manager", t, func() {
		previous, previousRegistry := globalManager, customRegistry
		Reset(func() {
			globalManager, customRegistry = previous, previousRegistry
		})

		Convey("When initialised with a namespace", func() {
			Init(WithNamespace("courtside"))
			RecordPipelineRun("ok")

			Convey("Then the served registry carries the namespaced collectors", func() {
				n, err := testutil.GatherAndCount(GetRegistry(), "courtside_pipeline_runs_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
				n, err = testutil.GatherAndCount(GetRegistry(), "hooplab_pipeline_runs_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 0)
			})
		})

		Convey("When initialised with metrics disabled", func() {
			Init(WithMetricsEnabled(false))
			RecordPipelineRun("ok")

			Convey("Then recorders leave the collectors untouched", func() {
				So(testutil.ToFloat64(globalManager.pipelineRuns.WithLabelValues("ok")), ShouldEqual, 0)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global recorders", t, func() {
		Convey("When recording pipeline metrics", func() {
			before := testutil.ToFloat64(globalManager.pipelineRuns.WithLabelValues("ok"))
			RecordPipelineRun("ok")
			RecordStageLatency("cluster", 3)
			UpdateRowCounts(10, 2, 1)
			RecordMissingColumns(2)
			UpdateInertia(42)
			RecordKMeansIterations(7)
			UpdateLastRun(1700000000)

			Convey("Then values are visible on the global registry", func() {
				So(testutil.ToFloat64(globalManager.pipelineRuns.WithLabelValues("ok")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.rowsClustered), ShouldEqual, 10)
				So(testutil.ToFloat64(globalManager.rowsDropped), ShouldEqual, 2)
				So(testutil.ToFloat64(globalManager.duplicateRows), ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.bestInertia), ShouldEqual, 42)
			})
		})

		Convey("When publishing cluster sizes twice", func() {
			UpdateClusters(map[string]int{"0": 3, "1": 4}, map[string]string{"0": "A", "1": "B"})
			UpdateClusters(map[string]int{"0": 7}, map[string]string{"0": "A"})

			Convey("Then stale clusters are reset", func() {
				So(testutil.ToFloat64(globalManager.clusterCount), ShouldEqual, 1)
				So(testutil.CollectAndCount(globalManager.clusterSize), ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.clusterSize.WithLabelValues("0", "A")), ShouldEqual, 7)
			})
		})

		Convey("When recording analysis and HTTP metrics", func() {
			So(func() {
				RecordPlayerLookup("found")
				RecordPlayerLookup("not_found")
				RecordWeakSpot("FG_PCT")
				RecordHTTPRequest("clusters", "GET", "200")
				RecordHTTPRequestDuration("clusters", "GET", "200", 1.5)
				RecordError("pipeline", "invalid_k")
			}, ShouldNotPanic)
		})

		Convey("When the registry is requested", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
