package notifier

import (
	"sync"

	"github.com/mkjeldsen/rallyrank/internal/club"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendResultNotificationCalls []struct {
		Match   club.Match
		Players []club.Player
	}
	SendLeaderboardCalls    [][]club.Player
	SendPlayerStatsCalls    []struct {
		Player *club.Player
		Query  string
	}
	SendPlayerNotFoundCalls []string

	// Spies for format functions
	FormatLeaderboardResponseFunc    func(players []club.Player) (any, error)
	FormatPlayerStatsResponseFunc    func(player *club.Player, query string) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Spy for send failures
	SendResultNotificationFunc func(match club.Match, players []club.Player, dryRun bool) error
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendLeaderboardCalls = nil
	m.SendPlayerStatsCalls = nil
	m.SendPlayerNotFoundCalls = nil
}

func (m *Mock) SendResultNotification(match club.Match, players []club.Player, dryRun bool) error {
	m.mu.Lock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Match   club.Match
		Players []club.Player
	}{match, players})
	fn := m.SendResultNotificationFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(match, players, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(players []club.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, players)
	return nil
}

func (m *Mock) SendPlayerStats(player *club.Player, query string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerStatsCalls = append(m.SendPlayerStatsCalls, struct {
		Player *club.Player
		Query  string
	}{player, query})
	return nil
}

func (m *Mock) SendPlayerNotFound(query string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerNotFoundCalls = append(m.SendPlayerNotFoundCalls, query)
	return nil
}

func (m *Mock) FormatLeaderboardResponse(players []club.Player) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(players)
	}
	return map[string]any{"leaderboard": len(players)}, nil
}

func (m *Mock) FormatPlayerStatsResponse(player *club.Player, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerStatsResponseFunc != nil {
		return m.FormatPlayerStatsResponseFunc(player, query)
	}
	return map[string]any{"player": player.ID}, nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query)
	}
	return map[string]any{"not_found": query}, nil
}
