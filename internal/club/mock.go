package club

import (
	"fmt"
	"sort"
	"sync"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use. By default it behaves as a simple in-memory
// store; individual methods can be overridden via the Func spies.
type MockStore struct {
	mu sync.Mutex

	players []Player
	matches []Match

	// Spies for method calls
	LoadAllFunc        func() (Snapshot, error)
	AppendMatchFunc    func(match Match) error
	AppendPlayerFunc   func(player Player) error
	UpdatePlayerFunc   func(player Player) error
	UpdatePlayersFunc  func(players []Player) error
	ReplacePlayersFunc func(players []Player) error
	DeleteMatchFunc    func(matchID string) error
	DeletePlayerFunc   func(playerID string) error

	// Call records
	AppendMatchCalls    []Match
	AppendPlayerCalls   []Player
	UpdatePlayerCalls   []Player
	UpdatePlayersCalls  [][]Player
	ReplacePlayersCalls [][]Player
	DeleteMatchCalls    []string
	DeletePlayerCalls   []string
}

var _ ClubStore = (*MockStore)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Seed replaces the mock's in-memory state.
func (m *MockStore) Seed(players []Player, matches []Match) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = append([]Player(nil), players...)
	m.matches = append([]Match(nil), matches...)
}

// Reset clears all call records and state.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = nil
	m.matches = nil
	m.AppendMatchCalls = nil
	m.AppendPlayerCalls = nil
	m.UpdatePlayerCalls = nil
	m.UpdatePlayersCalls = nil
	m.ReplacePlayersCalls = nil
	m.DeleteMatchCalls = nil
	m.DeletePlayerCalls = nil
}

func (m *MockStore) LoadAll() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadAllFunc != nil {
		return m.LoadAllFunc()
	}
	return Snapshot{
		Players: append([]Player(nil), m.players...),
		Matches: append([]Match(nil), m.matches...),
	}, nil
}

func (m *MockStore) AppendMatch(match Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendMatchCalls = append(m.AppendMatchCalls, match)
	if m.AppendMatchFunc != nil {
		return m.AppendMatchFunc(match)
	}
	m.matches = append(m.matches, match)
	return nil
}

func (m *MockStore) AppendPlayer(player Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendPlayerCalls = append(m.AppendPlayerCalls, player)
	if m.AppendPlayerFunc != nil {
		return m.AppendPlayerFunc(player)
	}
	m.players = append(m.players, player)
	return nil
}

func (m *MockStore) UpdatePlayer(player Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdatePlayerCalls = append(m.UpdatePlayerCalls, player)
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(player)
	}
	m.replaceLocked(player)
	return nil
}

func (m *MockStore) UpdatePlayers(players []Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdatePlayersCalls = append(m.UpdatePlayersCalls, players)
	if m.UpdatePlayersFunc != nil {
		return m.UpdatePlayersFunc(players)
	}
	for _, p := range players {
		m.replaceLocked(p)
	}
	return nil
}

func (m *MockStore) ReplacePlayers(players []Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplacePlayersCalls = append(m.ReplacePlayersCalls, players)
	if m.ReplacePlayersFunc != nil {
		return m.ReplacePlayersFunc(players)
	}
	for _, p := range players {
		m.replaceLocked(p)
	}
	return nil
}

func (m *MockStore) DeleteMatch(matchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteMatchCalls = append(m.DeleteMatchCalls, matchID)
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(matchID)
	}
	for i, match := range m.matches {
		if match.ID == matchID {
			m.matches = append(m.matches[:i], m.matches[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("match %s: %w", matchID, ErrMatchNotFound)
}

func (m *MockStore) DeletePlayer(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, playerID)
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(playerID)
	}
	for i, p := range m.players {
		if p.ID == playerID {
			m.players = append(m.players[:i], m.players[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
}

func (m *MockStore) GetPlayer(playerID string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.ID == playerID {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
}

func (m *MockStore) GetPlayerByName(name string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.Name == name {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("player matching %q: %w", name, ErrPlayerNotFound)
}

func (m *MockStore) GetAllPlayers() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Player(nil), m.players...), nil
}

func (m *MockStore) GetAllMatches() ([]Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Match(nil), m.matches...), nil
}

func (m *MockStore) GetLeaderboard() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	players := append([]Player(nil), m.players...)
	sort.Slice(players, func(i, j int) bool {
		if players[i].Rating != players[j].Rating {
			return players[i].Rating > players[j].Rating
		}
		return players[i].Name < players[j].Name
	})
	return players, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = nil
	m.matches = nil
}

func (m *MockStore) replaceLocked(player Player) {
	for i, p := range m.players {
		if p.ID == player.ID {
			m.players[i] = player
			return
		}
	}
	m.players = append(m.players, player)
}
