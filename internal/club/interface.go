package club

// ClubStore defines the interface for interacting with the club's data.
// Each method is a single logical write; there is no multi-write
// transactional guarantee across calls. Recalculation exists to recover
// from partial-write inconsistency.
type ClubStore interface {
	LoadAll() (Snapshot, error)
	AppendMatch(match Match) error
	AppendPlayer(player Player) error
	UpdatePlayer(player Player) error
	UpdatePlayers(players []Player) error
	ReplacePlayers(players []Player) error
	DeleteMatch(matchID string) error
	DeletePlayer(playerID string) error
	GetPlayer(playerID string) (*Player, error)
	GetPlayerByName(name string) (*Player, error)
	GetAllPlayers() ([]Player, error)
	GetAllMatches() ([]Match, error)
	GetLeaderboard() ([]Player, error)
	IsKnownPlayer(playerID string) bool
	Clear()
}
