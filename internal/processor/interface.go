package processor

import (
	"github.com/mkjeldsen/rallyrank/internal/club"
	"github.com/mkjeldsen/rallyrank/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	LoadAll() (club.Snapshot, error)
	AppendMatch(match club.Match) error
	AppendPlayer(player club.Player) error
	UpdatePlayers(players []club.Player) error
	ReplacePlayers(players []club.Player) error
	DeleteMatch(matchID string) error
	DeletePlayer(playerID string) error
}

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
