package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchLogged  EventType = "match-logged"
	EventMatchDeleted EventType = "match-deleted"
	EventRecalculated EventType = "leaderboard-recalculated"
)

// MatchLoggedEvent is the payload published whenever a match enters the ledger.
type MatchLoggedEvent struct {
	MatchID      string   `msgpack:"match_id"`
	MatchType    string   `msgpack:"match_type"`
	WinnerIDs    []string `msgpack:"winner_ids"`
	LoserIDs     []string `msgpack:"loser_ids"`
	Score        string   `msgpack:"score"`
	RatingChange int      `msgpack:"rating_change"`
}

// MatchDeletedEvent is the payload published after a match is removed from
// the ledger. The rebuild that follows is announced separately as a
// RecalculatedEvent.
type MatchDeletedEvent struct {
	MatchID string `msgpack:"match_id"`
}

// RecalculatedEvent is published after a full leaderboard rebuild.
type RecalculatedEvent struct {
	PlayerCount  int      `msgpack:"player_count"`
	MatchCount   int      `msgpack:"match_count"`
	SkippedIDs   []string `msgpack:"skipped_ids"`
	DurationSecs float64  `msgpack:"duration_secs"`
}
