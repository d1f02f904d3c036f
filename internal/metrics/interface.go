package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesLogged()
	IncMatchesDeleted()
	IncRecalcRuns()
	AddRecalcSkipped(count int)
	ObserveRecalcDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore persists lifetime operational counters in the database, so
// totals survive process restarts where Prometheus counters do not.
type MetricsStore interface {
	Increment(key string)
	Add(key string, delta int)
	GetAll() (map[string]int, error)
}
