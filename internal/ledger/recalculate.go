package ledger

import (
	"sort"

	"github.com/mkjeldsen/rallyrank/internal/club"
	"github.com/mkjeldsen/rallyrank/internal/rating"
)

// Result is the output of a full recalculation. SkippedMatchIDs lists the
// records that contributed no rating information, so operators can detect
// silent history loss instead of inferring it from rating drift.
type Result struct {
	Players         []club.Player
	SkippedMatchIDs []string
}

// Recalculate rebuilds every player's rating and win/loss record from the
// full match log. All players are reset to the initial rating with zeroed
// counters, then the matches are replayed in deterministic order: by date
// ascending, with lexicographic id order as tiebreak (match ids are ULIDs,
// so the tiebreak itself approximates creation order for same-second
// matches and for legacy rows missing a date).
//
// Replay is deliberately lenient: records the normalizer cannot resolve and
// records referencing players that no longer exist are skipped, never
// fatal. An approximately-correct leaderboard beats halting on one bad row.
//
// The function never mutates its inputs, preserves the input player order
// in its output, and is a fixed point: feeding its output back in with the
// same match log yields the identical result.
func Recalculate(players []club.Player, matches []club.Match) Result {
	byID := make(map[string]*club.Player, len(players))
	reset := make([]club.Player, len(players))
	for i, p := range players {
		p.Rating = club.InitialRating
		p.Wins = 0
		p.Losses = 0
		reset[i] = p
		byID[p.ID] = &reset[i]
	}

	ordered := append([]club.Match(nil), matches...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[i].Date < ordered[j].Date
		}
		return ordered[i].ID < ordered[j].ID
	})

	var skipped []string
	for _, m := range ordered {
		sides, ok := club.Normalize(m)
		if !ok {
			skipped = append(skipped, m.ID)
			continue
		}

		winners := resolve(sides.WinnerIDs, byID)
		losers := resolve(sides.LoserIDs, byID)
		if len(winners) == 0 || len(losers) == 0 {
			skipped = append(skipped, m.ID)
			continue
		}

		change := rating.ComputeRatingChange(currentRatings(winners), currentRatings(losers))
		for _, w := range winners {
			*w = rating.UpdatedPlayer(*w, true, change)
		}
		for _, l := range losers {
			*l = rating.UpdatedPlayer(*l, false, change)
		}
	}

	return Result{Players: reset, SkippedMatchIDs: skipped}
}

// resolve maps ids to live player state. A single unresolvable id empties
// the whole side, which causes the match to be skipped.
func resolve(ids []string, byID map[string]*club.Player) []*club.Player {
	resolved := make([]*club.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil
		}
		resolved = append(resolved, p)
	}
	return resolved
}

func currentRatings(players []*club.Player) []float64 {
	ratings := make([]float64, len(players))
	for i, p := range players {
		ratings[i] = p.Rating
	}
	return ratings
}
