package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	MatchesLogged      prometheus.Counter
	MatchesDeleted     prometheus.Counter
	RecalcRuns         prometheus.Counter
	RecalcSkipped      prometheus.Counter
	RecalcDuration     prometheus.Histogram
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
