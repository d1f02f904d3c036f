package processor

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mkjeldsen/rallyrank/internal/club"
	"github.com/mkjeldsen/rallyrank/internal/ledger"
	"github.com/mkjeldsen/rallyrank/internal/metrics"
	"github.com/mkjeldsen/rallyrank/internal/pubsub"
	"github.com/oklog/ulid/v2"
)

var (
	// ErrDuplicateMatch is returned when a match with the same id has
	// already been logged. Importers use it to skip already-seen records.
	ErrDuplicateMatch = errors.New("match already logged")
	// ErrPlayerExists is returned when registering a player whose name is taken.
	ErrPlayerExists = errors.New("player already registered")
	// ErrEmptyName is returned when registering a player without a name.
	ErrEmptyName = errors.New("player name must not be empty")
)

// New creates a new Processor.
func New(store Store, ps pubsub.PubSubClient, notifier Notifier, m metrics.Metrics, counters metrics.MetricsStore) *Processor {
	return &Processor{
		store:    store,
		pubsub:   ps,
		notifier: notifier,
		metrics:  m,
		counters: counters,
	}
}

// LogMatch validates and prices a match against the current snapshot,
// persists it, notifies the club channel and publishes the event. With
// dryRun set the match is priced but nothing is persisted or published.
func (p *Processor) LogMatch(req LogMatchRequest, dryRun bool) (club.Match, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot, err := p.store.LoadAll()
	if err != nil {
		return club.Match{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	matchID := req.MatchID
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	if matchID == "" {
		matchID = ulid.Make().String()
	} else {
		for _, m := range snapshot.Matches {
			if m.ID == matchID {
				return club.Match{}, ErrDuplicateMatch
			}
		}
	}

	// Register unknown guests first so their ids resolve during validation.
	// In a dry run they extend the snapshot without being persisted, so the
	// report matches what a real run would import.
	for _, g := range req.Guests {
		if knownPlayer(snapshot.Players, g.ID) {
			continue
		}
		guest := club.Player{
			ID:        g.ID,
			Name:      g.Name,
			Rating:    club.InitialRating,
			CreatedAt: time.Now().Unix(),
		}
		if dryRun {
			log.Info("[Dry Run] Would register guest player", "id", guest.ID, "name", guest.Name)
		} else {
			if err := p.store.AppendPlayer(guest); err != nil {
				return club.Match{}, fmt.Errorf("failed to persist guest player: %w", err)
			}
			log.Info("Registered guest player", "id", guest.ID, "name", guest.Name)
		}
		snapshot.Players = append(snapshot.Players, guest)
	}

	match, updated, err := ledger.LogMatch(req.Type, req.WinnerIDs, req.LoserIDs, req.Score, snapshot.Players, matchID, date)
	if err != nil {
		return club.Match{}, err
	}

	if dryRun {
		log.Info("[Dry Run] Would log match", "id", match.ID, "type", match.Type, "ratingChange", match.RatingChange)
		return match, nil
	}

	if err := p.store.AppendMatch(match); err != nil {
		return club.Match{}, fmt.Errorf("failed to persist match: %w", err)
	}
	if err := p.store.UpdatePlayers(participants(match, updated)); err != nil {
		return club.Match{}, fmt.Errorf("failed to persist player updates: %w", err)
	}

	p.metrics.IncMatchesLogged()
	p.counters.Increment("matches_logged")
	log.Info("Logged match", "id", match.ID, "type", match.Type, "score", match.Score, "ratingChange", match.RatingChange)

	if err := p.notifier.SendResultNotification(match, participants(match, updated), dryRun); err != nil {
		// The match is already committed; a failed notification is not a
		// reason to report failure to the submitter.
		log.Error("Failed to send result notification", "error", err, "matchId", match.ID)
	}

	event := pubsub.MatchLoggedEvent{
		MatchID:      match.ID,
		MatchType:    string(match.Type),
		WinnerIDs:    match.WinnerIDs,
		LoserIDs:     match.LoserIDs,
		Score:        match.Score,
		RatingChange: match.RatingChange,
	}
	if err := p.pubsub.SendMessage(pubsub.EventMatchLogged, event); err != nil {
		log.Error("Failed to publish match-logged event", "error", err, "matchId", match.ID)
	}

	return match, nil
}

// DeleteMatch removes a match from the log and rebuilds the leaderboard so
// every remaining match is re-priced without it.
func (p *Processor) DeleteMatch(matchID string, dryRun bool) (RecalcSummary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if dryRun {
		log.Info("[Dry Run] Would delete match and rebuild leaderboard", "id", matchID)
		return RecalcSummary{}, nil
	}

	if err := p.store.DeleteMatch(matchID); err != nil {
		return RecalcSummary{}, err
	}
	p.metrics.IncMatchesDeleted()
	p.counters.Increment("matches_deleted")
	log.Info("Deleted match", "id", matchID)

	summary, err := p.recalculateLocked()
	if err != nil {
		return RecalcSummary{}, err
	}

	if err := p.pubsub.SendMessage(pubsub.EventMatchDeleted, pubsub.MatchDeletedEvent{MatchID: matchID}); err != nil {
		log.Error("Failed to publish match-deleted event", "error", err, "matchId", matchID)
	}
	return summary, nil
}

// Recalculate rebuilds every player's rating and counters from the match
// log, replacing whatever the players table currently holds.
func (p *Processor) Recalculate(dryRun bool) (RecalcSummary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if dryRun {
		log.Info("[Dry Run] Would rebuild leaderboard from match log")
		return RecalcSummary{}, nil
	}
	return p.recalculateLocked()
}

// recalculateLocked runs the rebuild. Callers must hold p.mu.
func (p *Processor) recalculateLocked() (RecalcSummary, error) {
	start := time.Now()

	snapshot, err := p.store.LoadAll()
	if err != nil {
		return RecalcSummary{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	result := ledger.Recalculate(snapshot.Players, snapshot.Matches)
	if err := p.store.ReplacePlayers(result.Players); err != nil {
		return RecalcSummary{}, fmt.Errorf("failed to persist rebuilt players: %w", err)
	}

	elapsed := time.Since(start).Seconds()
	p.metrics.IncRecalcRuns()
	p.metrics.AddRecalcSkipped(len(result.SkippedMatchIDs))
	p.metrics.ObserveRecalcDuration(elapsed)
	p.counters.Increment("recalc_runs")
	p.counters.Add("recalc_skipped_records", len(result.SkippedMatchIDs))
	log.Info("Rebuilt leaderboard",
		"players", len(result.Players),
		"matches", len(snapshot.Matches),
		"skipped", len(result.SkippedMatchIDs),
		"duration", elapsed,
	)

	event := pubsub.RecalculatedEvent{
		PlayerCount:  len(result.Players),
		MatchCount:   len(snapshot.Matches),
		SkippedIDs:   result.SkippedMatchIDs,
		DurationSecs: elapsed,
	}
	if err := p.pubsub.SendMessage(pubsub.EventRecalculated, event); err != nil {
		log.Error("Failed to publish recalculated event", "error", err)
	}

	return RecalcSummary{
		PlayerCount:     len(result.Players),
		MatchCount:      len(snapshot.Matches),
		SkippedMatchIDs: result.SkippedMatchIDs,
	}, nil
}

// RegisterPlayer creates a new player at the initial rating.
func (p *Processor) RegisterPlayer(name string, dryRun bool) (club.Player, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if name == "" {
		return club.Player{}, ErrEmptyName
	}

	snapshot, err := p.store.LoadAll()
	if err != nil {
		return club.Player{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	for _, existing := range snapshot.Players {
		if existing.Name == name {
			return club.Player{}, ErrPlayerExists
		}
	}

	player := club.Player{
		ID:        uuid.NewString(),
		Name:      name,
		Rating:    club.InitialRating,
		CreatedAt: time.Now().Unix(),
	}

	if dryRun {
		log.Info("[Dry Run] Would register player", "id", player.ID, "name", player.Name)
		return player, nil
	}

	if err := p.store.AppendPlayer(player); err != nil {
		return club.Player{}, fmt.Errorf("failed to persist player: %w", err)
	}
	log.Info("Registered player", "id", player.ID, "name", player.Name)
	return player, nil
}

// RemovePlayer deletes a player. Their matches stay in the log and are
// skipped during rebuilds once a participant no longer resolves.
func (p *Processor) RemovePlayer(playerID string, dryRun bool) (RecalcSummary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if dryRun {
		log.Info("[Dry Run] Would remove player and rebuild leaderboard", "id", playerID)
		return RecalcSummary{}, nil
	}

	if err := p.store.DeletePlayer(playerID); err != nil {
		return RecalcSummary{}, err
	}
	log.Info("Removed player", "id", playerID)
	return p.recalculateLocked()
}

func knownPlayer(players []club.Player, id string) bool {
	for _, p := range players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// participants filters the updated player list down to the match's own
// winners and losers, in notification order (winners first).
func participants(match club.Match, updated []club.Player) []club.Player {
	byID := make(map[string]club.Player, len(updated))
	for _, p := range updated {
		byID[p.ID] = p
	}
	out := make([]club.Player, 0, len(match.WinnerIDs)+len(match.LoserIDs))
	for _, id := range match.WinnerIDs {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	for _, id := range match.LoserIDs {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
