// Package sheet reads the club's old spreadsheet so its history can be
// migrated into the match log. The workbook has a Players sheet (id, name)
// and a Matches sheet recorded in the old team shape: two team columns
// with comma-separated player ids and a winner column naming the team.
package sheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mkjeldsen/rallyrank/internal/club"
	"github.com/xuri/excelize/v2"
)

const (
	playersSheet = "Players"
	matchesSheet = "Matches"
	dateLayout   = "2006-01-02"
)

// Read loads players and legacy-shaped matches from the workbook at path.
// Rows that cannot be parsed are logged and skipped rather than failing
// the whole import; the reconciler treats them the same way.
func Read(path string) ([]club.Player, []club.Match, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	players, err := readPlayers(f)
	if err != nil {
		return nil, nil, err
	}
	matches, err := readMatches(f)
	if err != nil {
		return nil, nil, err
	}
	return players, matches, nil
}

func readPlayers(f *excelize.File) ([]club.Player, error) {
	rows, err := f.GetRows(playersSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", playersSheet, err)
	}

	var players []club.Player
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		players = append(players, club.Player{
			ID:     strings.TrimSpace(row[0]),
			Name:   strings.TrimSpace(row[1]),
			Rating: club.InitialRating,
		})
	}
	return players, nil
}

func readMatches(f *excelize.File) ([]club.Match, error) {
	rows, err := f.GetRows(matchesSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", matchesSheet, err)
	}

	var matches []club.Match
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		match, ok := parseMatchRow(i, row)
		if !ok {
			continue
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// parseMatchRow parses a row of the shape:
// date | team A ids | team B ids | winner (A/B) | score
func parseMatchRow(rowIdx int, row []string) (club.Match, bool) {
	if len(row) < 5 {
		log.Warn("Skipping short spreadsheet row", "row", rowIdx+1)
		return club.Match{}, false
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(row[0]))
	if err != nil {
		log.Warn("Skipping spreadsheet row with unparseable date", "row", rowIdx+1, "date", row[0])
		return club.Match{}, false
	}

	teamA := splitIDs(row[1])
	teamB := splitIDs(row[2])
	winner := strings.ToUpper(strings.TrimSpace(row[3]))
	if winner != "A" && winner != "B" {
		log.Warn("Skipping spreadsheet row with unknown winner team", "row", rowIdx+1, "winner", row[3])
		return club.Match{}, false
	}
	if len(teamA) == 0 || len(teamB) == 0 || len(teamA) != len(teamB) || len(teamA) > 2 {
		log.Warn("Skipping spreadsheet row with unusable teams", "row", rowIdx+1)
		return club.Match{}, false
	}

	matchType := club.MatchTypeSingles
	if len(teamA) == 2 {
		matchType = club.MatchTypeDoubles
	}

	return club.Match{
		ID:         fmt.Sprintf("legacy-%04d", rowIdx),
		Date:       date.Unix(),
		Type:       matchType,
		Score:      strings.TrimSpace(row[4]),
		TeamAIDs:   teamA,
		TeamBIDs:   teamB,
		WinnerTeam: winner,
	}, true
}

// splitIDs splits a comma-separated id cell. Numeric cells come back from
// excelize as plain strings already, so no coercion is needed here.
func splitIDs(cell string) []string {
	var ids []string
	for _, part := range strings.Split(cell, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}
