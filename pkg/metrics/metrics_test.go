package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			metricPrefixOpt := WithMetricPrefix("test-prefix")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(metricPrefixOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording ingestion metrics", func() {
			So(func() {
				RecordRumorIngested()
				RecordRumorDuplicate()
				RecordFeedFetch("marca", "ok")
				RecordFeedFetch("sport", "error")
				RecordFeedFetchLatency("marca", 42.0)
			}, ShouldNotPanic)
		})

		Convey("When recording match metrics", func() {
			So(func() {
				RecordMentionRecorded()
				RecordMatchLatency(1.5)
				RecordMatchError()
			}, ShouldNotPanic)
		})

		Convey("When recording registry metrics", func() {
			So(func() {
				RecordPlayerCreated()
				RecordMergeCompleted(3)
				RecordMergeConflict()
				UpdateTotalPlayers(10)
				UpdateTrackedAliases(25)
			}, ShouldNotPanic)
		})

		Convey("When recording sync and queue metrics", func() {
			So(func() {
				RecordSyncCycle(1200)
				UpdateLastSyncUnix(1700000000)
				UpdateQueueSize(5)
				UpdateQueueCapacity(100)
				UpdateQueueUtilization(0.05)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				UpdateWorkerCount(4)
				RecordWorkerProcessingLatency(2.0)
				RecordWorkerError()
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("trending", "GET", "200")
				RecordHTTPRequestDuration("trending", "GET", "200", 3.2)
			}, ShouldNotPanic)
		})

		Convey("Then the registry should be exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
