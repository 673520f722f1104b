package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

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
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty or zero option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithRefreshInterval(0),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should hold and creation succeeds", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "pdex")
				So(manager.subsystem, ShouldEqual, "recommender")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording pipeline metrics", func() {
			So(func() {
				RecordEvaluation()
				RecordEvaluationError()
				RecordRecommendation()
				RecordCandidateCount(4)
				RecordPredictionLatency(1.5)
				RecordInlineEvaluation()
			}, ShouldNotPanic)
		})

		Convey("When recording cache metrics", func() {
			So(func() {
				RecordCacheHit()
				RecordCacheMiss()
				UpdateCacheSize(128)
			}, ShouldNotPanic)
		})

		Convey("When recording dex metrics", func() {
			So(func() {
				UpdateDexSpecies(151)
				UpdateDexMoves(165)
			}, ShouldNotPanic)
		})

		Convey("When recording queue metrics", func() {
			So(func() {
				UpdateQueueSize(10)
				UpdateQueueCapacity(4096)
				UpdateQueueUtilization(0.25)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
			}, ShouldNotPanic)
		})

		Convey("When recording worker metrics", func() {
			So(func() {
				UpdateWorkerCount(8)
				UpdateWorkerActiveCount(3)
				UpdateWorkerIdleCount(5)
				RecordWorkerProcessingLatency(2.0)
				RecordWorkerError()
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/recommend", "POST", "200")
				RecordHTTPRequestDuration("/recommend", "POST", "200", 12.0)
				RecordHTTPRequest("/healthz", "GET", "200")
			}, ShouldNotPanic)
		})

		Convey("When recording error metrics", func() {
			So(func() {
				RecordErrorByComponent("pipeline", "width_mismatch")
				RecordErrorByType("validation_error", "warning")
				RecordErrorByEndpoint("/recommend", "POST", "unknown_species")
			}, ShouldNotPanic)
		})

		Convey("When recording system metrics", func() {
			So(func() {
				UpdateSystemMemoryUsage(1024 * 1024 * 100)
				UpdateSystemGoroutineCount(42)
				RecordSystemGCPauseTime(0.5)
			}, ShouldNotPanic)
		})

		Convey("When recording edge values", func() {
			So(func() {
				UpdateQueueSize(0)
				UpdateQueueSize(-1)
				RecordPredictionLatency(0.0)
				RecordCandidateCount(0)
				RecordHTTPRequest("", "", "")
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent metric writers", t, func() {
		done := make(chan bool, 10)

		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					RecordEvaluation()
					UpdateQueueSize(j)
					RecordPredictionLatency(float64(j))
					RecordHTTPRequest("/recommend", "POST", "200")
				}
				done <- true
			}()
		}

		for i := 0; i < 10; i++ {
			<-done
		}

		Convey("Then concurrent access completes without panics", func() {
			So(true, ShouldBeTrue)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		registry := GetRegistry()

		Convey("Then it is the shared non-nil registry", func() {
			So(registry, ShouldNotBeNil)
			So(registry, ShouldEqual, GetRegistry())
		})

		Convey("And it can gather the registered metrics", func() {
			RecordEvaluation()
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
