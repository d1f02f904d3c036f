package processor

import (
	"sync"
	"time"

	"github.com/mkjeldsen/rallyrank/internal/club"
	"github.com/mkjeldsen/rallyrank/internal/metrics"
	"github.com/mkjeldsen/rallyrank/internal/pubsub"
)

// Processor owns the business workflows that mutate the leaderboard:
// logging a match, deleting one, registering players and rebuilding the
// ledger. The mutex serializes all mutating workflows; two concurrent
// log-match calls against the same snapshot would both price the match off
// stale ratings and the second write would clobber the first.
type Processor struct {
	mu       sync.Mutex
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	counters metrics.MetricsStore
}

// LogMatchRequest describes a match submission. MatchID and Date are
// normally left zero and filled in by the processor; importers replaying
// history from an external source supply both, plus the participants as
// Guests so unknown players are registered before the match is validated.
type LogMatchRequest struct {
	Type      club.MatchType
	WinnerIDs []string
	LoserIDs  []string
	Score     string
	MatchID   string
	Date      time.Time
	Guests    []club.Player
}

// RecalcSummary reports the outcome of a full leaderboard rebuild.
type RecalcSummary struct {
	PlayerCount     int      `json:"player_count"`
	MatchCount      int      `json:"match_count"`
	SkippedMatchIDs []string `json:"skipped_match_ids"`
}
