package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func gatheredNames(reg *prometheus.Registry) map[string]bool {
	families, err := reg.Gather()
	So(err, ShouldBeNil)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("board"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.recomputes.Inc()
			manager.httpRequests.WithLabelValues("/stats", "GET", "200").Inc()

			Convey("Then collectors use the configured names and labels", func() {
				names := gatheredNames(registry)
				So(names["test_board_recomputes_total"], ShouldBeTrue)
				So(names["test_board_http_requests_total"], ShouldBeTrue)

				families, _ := registry.Gather()
				for _, f := range families {
					if f.GetName() != "test_board_recomputes_total" {
						continue
					}
					labels := f.GetMetric()[0].GetLabel()
					So(labels, ShouldHaveLength, 1)
					So(labels[0].GetName(), ShouldEqual, "env")
					So(f.GetMetric()[0].GetCounter().GetValue(), ShouldEqual, 1.0)
				}
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
	Convey("Given the global metrics", t, func() {
		Convey("When recording every kind of metric", func() {
			So(func() {
				RecordRecompute(3.5, BoardStats{Players: 10, Entries: 20, Participations: 40, Skipped: 1, Duplicates: 2})
				RecordRecomputeError()
				RecordSourceLoad(1.2)
				RecordSimulation()
				UpdateRepositoryRecordsTotal(10)
				RecordRepositoryQueryLatency(0.01)
				RecordNotificationPublished()
				RecordHTTPRequest("/leaderboard", "GET", "200")
				RecordHTTPRequestDuration("/leaderboard", "GET", "200", 0.002)
				RecordErrorByComponent("api", "bad_request")
			}, ShouldNotPanic)

			Convey("Then the custom registry exposes them", func() {
				names := gatheredNames(GetRegistry())
				So(names["kaizolist_leaderboard_players"], ShouldBeTrue)
				So(names["kaizolist_leaderboard_recompute_duration_milliseconds"], ShouldBeTrue)
				So(names["kaizolist_leaderboard_simulations_total"], ShouldBeTrue)
				So(names["kaizolist_leaderboard_errors_by_component_total"], ShouldBeTrue)
			})

			Convey("Then board gauges hold the last values", func() {
				So(globalManager.boardPlayers, ShouldNotBeNil)
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				for _, f := range families {
					if f.GetName() == "kaizolist_leaderboard_entries" {
						So(f.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 20.0)
					}
				}
			})
		})
	})
}
