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
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then every series is registered under the default namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.catalogEntries.Set(1)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				for _, f := range families {
					So(strings.HasPrefix(f.GetName(), "catalog_service_"), ShouldBeTrue)
				}
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then names and labels follow the options", func() {
				manager.catalogScores.Set(2)
				So(testutil.ToFloat64(manager.catalogScores), ShouldEqual, 2)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_unit_catalog_scores" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "test")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When two managers share a registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then the second registration panics", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When publishing catalog sizes", func() {
			UpdateCatalogSize(4, 3, 2)

			Convey("Then the gauges reflect them", func() {
				So(testutil.ToFloat64(globalManager.catalogEntries), ShouldEqual, 4)
				So(testutil.ToFloat64(globalManager.catalogDistinctEntries), ShouldEqual, 3)
				So(testutil.ToFloat64(globalManager.catalogScores), ShouldEqual, 2)
			})
		})

		Convey("When recording queries", func() {
			before := testutil.ToFloat64(globalManager.queriesByKind.WithLabelValues("random_entries"))
			RecordSample(3)
			RecordScores(0)
			RecordQueryError("scores")

			Convey("Then the counters move", func() {
				So(testutil.ToFloat64(globalManager.queriesByKind.WithLabelValues("random_entries")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.queryErrorsTotal.WithLabelValues("scores")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording load, HTTP and system metrics", func() {
			Convey("Then nothing panics", func() {
				So(func() {
					RecordCatalogLoad(12.5, 1_700_000_000)
					RecordCatalogLoadError()
					RecordHTTPRequest("random_entries", "GET", "200")
					RecordHTTPRequestDuration("random_entries", "GET", "200", 1.5)
					RecordErrorByType("not_found", "medium")
					RecordErrorByEndpoint("not_found", "GET", "not_found")
					UpdateSystemMemoryUsage(1024)
					UpdateSystemGoroutineCount(10)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
				So(testutil.ToFloat64(globalManager.catalogLoadedUnix), ShouldEqual, 1_700_000_000)
			})
		})

		Convey("Then GetRegistry exposes the custom registry", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}
