package notifier

import (
	"github.com/mkjeldsen/rallyrank/internal/club"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For completed matches; players is the post-match player list used to
	// resolve names and new ratings.
	SendResultNotification(match club.Match, players []club.Player, dryRun bool) error

	// For slash commands
	SendLeaderboard(players []club.Player, dryRun bool) error
	SendPlayerStats(player *club.Player, query string, dryRun bool) error
	SendPlayerNotFound(query string, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(players []club.Player) (any, error)
	FormatPlayerStatsResponse(player *club.Player, query string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
