package club

import (
	"database/sql"
	"errors"
	"sync"
)

var (
	// ErrMatchNotFound is returned when a match id does not exist in the store.
	ErrMatchNotFound = errors.New("match not found")
	// ErrPlayerNotFound is returned when a player id or name does not resolve
	// to a stored player.
	ErrPlayerNotFound = errors.New("player not found")
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// MatchType distinguishes 1v1 from 2v2 matches.
type MatchType string

const (
	MatchTypeSingles MatchType = "SINGLES"
	MatchTypeDoubles MatchType = "DOUBLES"
)

// SideSize returns the number of players expected on each side.
func (t MatchType) SideSize() int {
	if t == MatchTypeDoubles {
		return 2
	}
	return 1
}

// InitialRating is the rating assigned to every newly registered player and
// the baseline every recalculation starts from.
const InitialRating = 1200

// Player is a club member on the leaderboard.
type Player struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Rating    float64 `json:"rating"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	CreatedAt int64   `json:"created_at"`
}

// Match is a single recorded game. Canonical records carry WinnerIDs and
// LoserIDs; records imported from the old spreadsheet carry the team-based
// fields instead and are translated by Normalize before any rating logic
// sees them.
type Match struct {
	ID           string    `json:"id"`
	Date         int64     `json:"date"`
	Type         MatchType `json:"type"`
	WinnerIDs    []string  `json:"winner_ids,omitempty"`
	LoserIDs     []string  `json:"loser_ids,omitempty"`
	Score        string    `json:"score"`
	RatingChange int       `json:"rating_change"`

	// Legacy team shape.
	TeamAIDs   []string `json:"team_a_ids,omitempty"`
	TeamBIDs   []string `json:"team_b_ids,omitempty"`
	WinnerTeam string   `json:"winner_team,omitempty"`
}

// Snapshot is the full in-memory state the core operates on.
type Snapshot struct {
	Players []Player `json:"players"`
	Matches []Match  `json:"matches"`
}
