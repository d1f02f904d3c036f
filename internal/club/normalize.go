package club

// Sides is the canonical winner/loser view of a match that all rating logic
// consumes.
type Sides struct {
	WinnerIDs []string
	LoserIDs  []string
}

// Normalize resolves a match record into its canonical winner/loser sides.
// Records with explicit winner and loser ids are returned as-is. Records in
// the legacy team shape are mapped via the winner-team flag. Anything else
// is unreplayable and returns ok=false: the record contributes no rating
// information and callers skip it.
func Normalize(m Match) (Sides, bool) {
	if len(m.WinnerIDs) > 0 && len(m.LoserIDs) > 0 {
		return Sides{WinnerIDs: m.WinnerIDs, LoserIDs: m.LoserIDs}, true
	}

	if len(m.TeamAIDs) > 0 && len(m.TeamBIDs) > 0 {
		switch m.WinnerTeam {
		case "A":
			return Sides{WinnerIDs: m.TeamAIDs, LoserIDs: m.TeamBIDs}, true
		case "B":
			return Sides{WinnerIDs: m.TeamBIDs, LoserIDs: m.TeamAIDs}, true
		}
	}

	return Sides{}, false
}
