package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyrank_matches_logged_total",
			Help: "The total number of matches logged to the ledger.",
		}),
		MatchesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyrank_matches_deleted_total",
			Help: "The total number of matches hard-deleted from the ledger.",
		}),
		RecalcRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyrank_recalculation_runs_total",
			Help: "The total number of full leaderboard recalculations.",
		}),
		RecalcSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyrank_recalculation_skipped_records_total",
			Help: "The total number of match records skipped as unreplayable during recalculation.",
		}),
		RecalcDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rallyrank_recalculation_duration_seconds",
			Help:    "The duration of full leaderboard recalculations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyrank_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyrank_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rallyrank_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesLogged,
		s.MatchesDeleted,
		s.RecalcRuns,
		s.RecalcSkipped,
		s.RecalcDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesLogged() {
	s.MatchesLogged.Inc()
}

func (s *Service) IncMatchesDeleted() {
	s.MatchesDeleted.Inc()
}

func (s *Service) IncRecalcRuns() {
	s.RecalcRuns.Inc()
}

func (s *Service) AddRecalcSkipped(count int) {
	s.RecalcSkipped.Add(float64(count))
}

func (s *Service) ObserveRecalcDuration(duration float64) {
	s.RecalcDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
