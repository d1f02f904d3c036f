// Package rating implements the Elo arithmetic behind the leaderboard.
// Everything here is a pure function over ratings; persistence and
// orchestration live elsewhere.
package rating

import (
	"math"

	"github.com/mkjeldsen/rallyrank/internal/club"
)

// K bounds how many points a single match can move.
const K = 32

// ComputeRatingChange returns the number of points transferred from the
// losing side to the winning side. Each side is collapsed to its arithmetic
// mean rating, then the standard logistic expectation is applied:
//
//	expected = 1 / (1 + 10^((avgLoser-avgWinner)/400))
//	change   = round(K * (1 - expected))
//
// Rounding is math.Round, i.e. half away from zero; since the operand is
// always positive this is plain round-half-up. The result is in [0, K].
// Both sides must be non-empty; group size is not otherwise constrained.
func ComputeRatingChange(winnerRatings, loserRatings []float64) int {
	avgWinner := mean(winnerRatings)
	avgLoser := mean(loserRatings)

	expected := 1.0 / (1.0 + math.Pow(10, (avgLoser-avgWinner)/400.0))
	return int(math.Round(K * (1.0 - expected)))
}

// UpdatedPlayer returns a copy of p with the match outcome applied: winners
// gain ratingChange points and a win, losers lose the points and gain a
// loss. The input is never mutated.
func UpdatedPlayer(p club.Player, isWinner bool, ratingChange int) club.Player {
	if isWinner {
		p.Rating += float64(ratingChange)
		p.Wins++
	} else {
		p.Rating -= float64(ratingChange)
		p.Losses++
	}
	return p
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
