// Package ledger holds the pure transformations over the club's match
// history: logging a new match against a player snapshot and rebuilding the
// whole leaderboard from the match log. Nothing in this package performs
// I/O; callers supply snapshots and persist the results.
package ledger

import (
	"errors"
	"time"

	"github.com/mkjeldsen/rallyrank/internal/club"
	"github.com/mkjeldsen/rallyrank/internal/rating"
)

var (
	// ErrEmptyScore is returned when a match is logged without a score string.
	ErrEmptyScore = errors.New("score must not be empty")
	// ErrParticipantCount is returned when side sizes do not match the match type.
	ErrParticipantCount = errors.New("participant count does not match match type")
	// ErrDuplicateParticipant is returned when the same player appears more
	// than once within a side. Such a record would replay differently than
	// it was logged, since the reconciler applies the update per occurrence.
	ErrDuplicateParticipant = errors.New("duplicate participant within a side")
	// ErrOverlappingSides is returned when a player appears on both sides.
	ErrOverlappingSides = errors.New("winner and loser sides overlap")
	// ErrUnknownParticipant is returned when a participant id does not
	// resolve against the supplied player snapshot.
	ErrUnknownParticipant = errors.New("unknown participant")
)

// LogMatch validates a match submission against the supplied player
// snapshot and, if valid, returns the new match record together with the
// full player list with winners and losers replaced by their updated
// counterparts. Untouched players pass through unchanged. The caller
// supplies the match id and timestamp and owns persistence; this function
// never mutates its inputs and fails before any state is derived.
func LogMatch(matchType club.MatchType, winnerIDs, loserIDs []string, score string, players []club.Player, matchID string, now time.Time) (club.Match, []club.Player, error) {
	if score == "" {
		return club.Match{}, nil, ErrEmptyScore
	}
	size := matchType.SideSize()
	if len(winnerIDs) != size || len(loserIDs) != size {
		return club.Match{}, nil, ErrParticipantCount
	}
	if hasDuplicate(winnerIDs) || hasDuplicate(loserIDs) {
		return club.Match{}, nil, ErrDuplicateParticipant
	}
	if overlaps(winnerIDs, loserIDs) {
		return club.Match{}, nil, ErrOverlappingSides
	}

	byID := make(map[string]club.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	winnerRatings, err := resolveRatings(winnerIDs, byID)
	if err != nil {
		return club.Match{}, nil, err
	}
	loserRatings, err := resolveRatings(loserIDs, byID)
	if err != nil {
		return club.Match{}, nil, err
	}

	change := rating.ComputeRatingChange(winnerRatings, loserRatings)

	match := club.Match{
		ID:           matchID,
		Date:         now.Unix(),
		Type:         matchType,
		WinnerIDs:    append([]string(nil), winnerIDs...),
		LoserIDs:     append([]string(nil), loserIDs...),
		Score:        score,
		RatingChange: change,
	}

	updated := make([]club.Player, len(players))
	for i, p := range players {
		switch {
		case contains(winnerIDs, p.ID):
			updated[i] = rating.UpdatedPlayer(p, true, change)
		case contains(loserIDs, p.ID):
			updated[i] = rating.UpdatedPlayer(p, false, change)
		default:
			updated[i] = p
		}
	}

	return match, updated, nil
}

func resolveRatings(ids []string, byID map[string]club.Player) ([]float64, error) {
	ratings := make([]float64, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, ErrUnknownParticipant
		}
		ratings = append(ratings, p.Rating)
	}
	return ratings, nil
}

func hasDuplicate(ids []string) bool {
	for i, x := range ids {
		if contains(ids[i+1:], x) {
			return true
		}
	}
	return false
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		if contains(b, x) {
			return true
		}
	}
	return false
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
