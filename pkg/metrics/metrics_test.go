package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

// valueOf reads the current value of a single counter or gauge.
func valueOf(c prometheus.Collector) float64 {
	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)
	var pb dto.Metric
	if err := (<-ch).Write(&pb); err != nil {
		return -1
	}
	switch {
	case pb.Counter != nil:
		return pb.Counter.GetValue()
	case pb.Gauge != nil:
		return pb.Gauge.GetValue()
	}
	return -1
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "mergington")
				So(manager.subsystem, ShouldEqual, "activities")
				So(manager.enabled, ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("school"),
				WithSubsystem("clubs"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "school")
				So(manager.subsystem, ShouldEqual, "clubs")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.enabled, ShouldBeFalse)
			})
		})

		Convey("When empty values are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "mergington")
				So(manager.subsystem, ShouldEqual, "activities")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestRegistryMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording roster changes", func() {
			before := valueOf(globalManager.signups.WithLabelValues("Chess Club"))
			RecordSignup("Chess Club")
			RecordSignup("Chess Club")
			RecordUnregister("Chess Club")
			RecordRejection("signup", "already_registered")
			UpdateParticipants("Chess Club", 3)
			UpdateActivityCount(9)

			Convey("Then the counters and gauges reflect them", func() {
				So(valueOf(globalManager.signups.WithLabelValues("Chess Club")), ShouldEqual, before+2)
				So(valueOf(globalManager.participants.WithLabelValues("Chess Club")), ShouldEqual, 3)
				So(valueOf(globalManager.activityCount), ShouldEqual, 9)
			})
		})

		Convey("When metrics are disabled", func() {
			SetEnabled(false)
			defer SetEnabled(true)
			before := valueOf(globalManager.unregisters.WithLabelValues("Art Club"))
			RecordUnregister("Art Club")

			Convey("Then nothing is recorded", func() {
				So(valueOf(globalManager.unregisters.WithLabelValues("Art Club")), ShouldEqual, before)
			})
		})

		Convey("When recording HTTP, error and system metrics", func() {
			Convey("Then none of them panic", func() {
				So(func() {
					RecordHTTPRequest("activities", "GET", "200")
					RecordHTTPRequestDuration("activities", "GET", "200", 1.5)
					RecordErrorByType("not_found", "medium")
					RecordErrorByEndpoint("signup", "POST", "not_found")
					RecordErrorLatency("http", "client_error", 2.0)
					UpdateSystemMemoryUsage(1024 * 1024)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.4)
				}, ShouldNotPanic)
			})
		})

		Convey("When gathering the custom registry", func() {
			families, err := GetRegistry().Gather()

			Convey("Then the activities namespace is exposed", func() {
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "mergington_activities_signups_total")
			})
		})
	})
}
