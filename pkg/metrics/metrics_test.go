package metrics_test

import (
	"testing"

	"github.com/notafinal/notafinal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When created with options", func() {
			m := metrics.NewManager(
				metrics.WithNamespace("test"),
				metrics.WithSubsystem("grading"),
				metrics.WithPrometheusRegistry(registry),
			)

			Convey("Then all metrics register without collisions", func() {
				So(m, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When pipeline events are recorded", func() {
			metrics.RecordBatch(12.5, 10, 2)
			metrics.RecordHeaderMismatch()
			metrics.RecordRecordStatus("Late")
			metrics.RecordPolicyUpdate(160)
			metrics.UpdatePolicyWindow(90)
			metrics.RecordHTTPRequest("upload", "POST", "200")
			metrics.RecordHTTPRequestDuration("upload", "POST", "200", 3.2)

			Convey("Then the custom registry gathers them", func() {
				families, err := metrics.GetRegistry().Gather()
				So(err, ShouldBeNil)

				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["notafinal_grading_batches_total"], ShouldBeTrue)
				So(names["notafinal_grading_records_by_status_total"], ShouldBeTrue)
				So(names["notafinal_grading_policy_window_minutes"], ShouldBeTrue)
				So(names["notafinal_grading_http_requests_total"], ShouldBeTrue)
			})
		})
	})
}
