package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When created with default options", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When created with custom options", func() {
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording through the package helpers", func() {
			Convey("Then they should not panic", func() {
				So(func() {
					RecordReportGenerated()
					RecordReminderRun()
					UpdateOffendersFound(3)
					RecordDelivery("sent")
					RecordDelivery("join_miss")
					RecordDispatchLatency(12.5)
					RecordUpstreamLatency("timetracking", 40)
					RecordUpstreamError("directory", "network")
					RecordHTTPRequest("command", "POST", "200")
					RecordHTTPRequestDuration("command", "POST", "200", 8)
				}, ShouldNotPanic)
			})
		})

		Convey("When asking for the registry", func() {
			Convey("Then it should be available", func() {
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}
