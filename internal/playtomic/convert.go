package playtomic

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Submission is a played match reduced to the fields needed to enter it
// into the club's match log.
type Submission struct {
	MatchID   string
	Date      time.Time
	Singles   bool
	WinnerIDs []string
	LoserIDs  []string
	Score     string
}

// Submission derives a loggable result from a played match. It returns
// false when the match has no usable outcome: not played yet, results not
// confirmed, fewer or more than two teams, uneven team sizes, or no
// winner distinguishable from the set scores.
func (m PlayedMatch) Submission() (Submission, bool) {
	if m.GameStatus != GameStatusPlayed || m.ResultsStatus != ResultsStatusConfirmed {
		return Submission{}, false
	}
	if len(m.Teams) != 2 {
		return Submission{}, false
	}
	teamA, teamB := m.Teams[0], m.Teams[1]
	if len(teamA.Players) != len(teamB.Players) || len(teamA.Players) < 1 || len(teamA.Players) > 2 {
		return Submission{}, false
	}

	winner, loser, ok := m.winnerAndLoser(teamA, teamB)
	if !ok {
		return Submission{}, false
	}

	return Submission{
		MatchID:   m.MatchID,
		Date:      time.Unix(m.Start, 0),
		Singles:   len(teamA.Players) == 1,
		WinnerIDs: userIDs(winner),
		LoserIDs:  userIDs(loser),
		Score:     m.scoreLine(winner.ID, loser.ID),
	}, true
}

func (m PlayedMatch) winnerAndLoser(teamA, teamB Team) (Team, Team, bool) {
	switch {
	case teamA.TeamResult == "WON":
		return teamA, teamB, true
	case teamB.TeamResult == "WON":
		return teamB, teamA, true
	}

	// No explicit result; fall back to counting sets won.
	setsA, setsB := 0, 0
	for _, set := range m.Results {
		a, b := set.Scores[teamA.ID], set.Scores[teamB.ID]
		if a > b {
			setsA++
		} else if b > a {
			setsB++
		}
	}
	switch {
	case setsA > setsB:
		return teamA, teamB, true
	case setsB > setsA:
		return teamB, teamA, true
	}
	return Team{}, Team{}, false
}

// scoreLine renders set results winner-first, e.g. "6-3, 6-4".
func (m PlayedMatch) scoreLine(winnerTeamID, loserTeamID string) string {
	results := append([]SetResult(nil), m.Results...)
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	var sets []string
	for _, set := range results {
		sets = append(sets, fmt.Sprintf("%d-%d", set.Scores[winnerTeamID], set.Scores[loserTeamID]))
	}
	if len(sets) == 0 {
		return "unknown"
	}
	return strings.Join(sets, ", ")
}

func userIDs(team Team) []string {
	ids := make([]string, 0, len(team.Players))
	for _, p := range team.Players {
		ids = append(ids, p.UserID)
	}
	return ids
}
