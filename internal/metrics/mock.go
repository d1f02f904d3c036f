package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	matchesLogged    int
	matchesDeleted   int
	recalcRuns       int
	recalcSkipped    int
	recalcDurations  []float64
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		recalcDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesLogged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesLogged++
}

func (m *Mock) IncMatchesDeleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesDeleted++
}

func (m *Mock) IncRecalcRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recalcRuns++
}

func (m *Mock) AddRecalcSkipped(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recalcSkipped += count
}

func (m *Mock) ObserveRecalcDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recalcDurations = append(m.recalcDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesLogged returns the number of times IncMatchesLogged was called.
func (m *Mock) MatchesLogged() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesLogged
}

// MatchesDeleted returns the number of times IncMatchesDeleted was called.
func (m *Mock) MatchesDeleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesDeleted
}

// RecalcRuns returns the number of times IncRecalcRuns was called.
func (m *Mock) RecalcRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recalcRuns
}

// RecalcSkipped returns the accumulated skipped-record count.
func (m *Mock) RecalcSkipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recalcSkipped
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// MockStore is an in-memory MetricsStore for testing.
type MockStore struct {
	mu       sync.Mutex
	counters map[string]int
}

var _ MetricsStore = (*MockStore)(nil)

// NewMockStore creates a new in-memory counter store.
func NewMockStore() *MockStore {
	return &MockStore{counters: make(map[string]int)}
}

func (m *MockStore) Increment(key string) {
	m.Add(key, 1)
}

func (m *MockStore) Add(key string, delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key] += delta
}

func (m *MockStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.counters))
	for k, v := range m.counters {
		out[k] = v
	}
	return out, nil
}
