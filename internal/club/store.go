package club

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// LoadAll returns the full current snapshot of players and matches.
func (s *store) LoadAll() (Snapshot, error) {
	players, err := s.GetAllPlayers()
	if err != nil {
		return Snapshot{}, err
	}
	matches, err := s.GetAllMatches()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Players: players, Matches: matches}, nil
}

// AppendMatch inserts a new match record. Matches are immutable once
// written, so this is a plain insert rather than an upsert.
func (s *store) AppendMatch(match Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	winnerJSON, err := marshalIDs(match.WinnerIDs)
	if err != nil {
		return err
	}
	loserJSON, err := marshalIDs(match.LoserIDs)
	if err != nil {
		return err
	}
	teamAJSON, err := marshalIDs(match.TeamAIDs)
	if err != nil {
		return err
	}
	teamBJSON, err := marshalIDs(match.TeamBIDs)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO matches (id, date, match_type, winner_ids_json, loser_ids_json, team_a_ids_json, team_b_ids_json, winner_team, score, rating_change)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, match.ID, match.Date, match.Type, winnerJSON, loserJSON, teamAJSON, teamBJSON, match.WinnerTeam, match.Score, match.RatingChange)
	if err != nil {
		return fmt.Errorf("failed to insert match %s: %w", match.ID, err)
	}
	return nil
}

// AppendPlayer registers a new player.
func (s *store) AppendPlayer(player Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO players (id, name, rating, wins, losses, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, player.ID, player.Name, player.Rating, player.Wins, player.Losses, player.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert player %s: %w", player.ID, err)
	}
	return nil
}

// UpdatePlayer overwrites a player's mutable fields.
func (s *store) UpdatePlayer(player Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatePlayerLocked(player)
}

func (s *store) updatePlayerLocked(player Player) error {
	_, err := s.db.Exec(`
		UPDATE players SET name = ?, rating = ?, wins = ?, losses = ? WHERE id = ?
	`, player.Name, player.Rating, player.Wins, player.Losses, player.ID)
	if err != nil {
		return fmt.Errorf("failed to update player %s: %w", player.ID, err)
	}
	return nil
}

// UpdatePlayers writes a batch of player updates in one transaction.
func (s *store) UpdatePlayers(players []Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`UPDATE players SET name = ?, rating = ?, wins = ?, losses = ? WHERE id = ?`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.Name, p.Rating, p.Wins, p.Losses, p.ID); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to update player %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// ReplacePlayers upserts the full player list, used to persist the output
// of a recalculation wholesale.
func (s *store) ReplacePlayers(players []Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name, rating, wins, losses, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			rating = excluded.rating,
			wins = excluded.wins,
			losses = excluded.losses;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.Name, p.Rating, p.Wins, p.Losses, p.CreatedAt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to replace player %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// DeleteMatch hard-deletes a match record. Callers must trigger a
// recalculation afterwards to correct the derived player stats.
func (s *store) DeleteMatch(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM matches WHERE id = ?", matchID)
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("match %s: %w", matchID, ErrMatchNotFound)
	}
	return nil
}

// DeletePlayer removes a player. Their match history stays behind; the
// reconciler skips matches whose participants no longer resolve.
func (s *store) DeletePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM players WHERE id = ?", playerID)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", playerID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}
	return nil
}

// GetPlayer retrieves a single player by id.
func (s *store) GetPlayer(playerID string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, name, rating, wins, losses, created_at FROM players WHERE id = ?", playerID)
	p, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return p, nil
}

// GetPlayerByName retrieves a single player by display name.
// It performs a case-insensitive, fuzzy search (e.g., "anna" will match "Anna Holm").
func (s *store) GetPlayerByName(name string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + name + "%"
	row := s.db.QueryRow(`
		SELECT id, name, rating, wins, losses, created_at
		FROM players
		WHERE name LIKE ? COLLATE NOCASE
		LIMIT 1
	`, pattern)
	p, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("No player found matching pattern", "pattern", pattern)
			return nil, fmt.Errorf("player matching %q: %w", name, ErrPlayerNotFound)
		}
		log.Error("Failed to query player by name", "error", err, "pattern", pattern)
		return nil, fmt.Errorf("database error: %w", err)
	}
	return p, nil
}

func (s *store) GetAllPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, rating, wins, losses, created_at FROM players ORDER BY name")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *p)
	}
	return players, nil
}

// GetLeaderboard retrieves all players ordered by rating, best first.
func (s *store) GetLeaderboard() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, rating, wins, losses, created_at FROM players ORDER BY rating DESC, wins DESC, name")
	if err != nil {
		log.Error("Failed to query leaderboard", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *p)
	}
	return players, nil
}

// GetAllMatches retrieves the full match log, oldest first.
func (s *store) GetAllMatches() ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, date, match_type, winner_ids_json, loser_ids_json, team_a_ids_json, team_b_ids_json, winner_team, score, rating_change
		FROM matches ORDER BY date ASC, id ASC
	`)
	if err != nil {
		log.Error("Failed to query all matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, *match)
	}
	return matches, nil
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", playerID)
		return false
	}
	return exists
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"matches", "players", "metrics"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

// scanPlayer reads a player row, coercing NULL numeric fields to their zero
// values so a half-written row still loads.
func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	var name sql.NullString
	var rating sql.NullFloat64
	var wins, losses, createdAt sql.NullInt64

	if err := scanner.Scan(&p.ID, &name, &rating, &wins, &losses, &createdAt); err != nil {
		return nil, err
	}
	p.Name = name.String
	p.Rating = rating.Float64
	p.Wins = int(wins.Int64)
	p.Losses = int(losses.Int64)
	p.CreatedAt = createdAt.Int64
	return &p, nil
}

// scanMatch reads a match row. Malformed id-list JSON degrades to an empty
// side; the normalizer then classifies the record as unreplayable instead
// of the scan failing the whole query.
func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var m Match
	var matchType string
	var winnerJSON, loserJSON, teamAJSON, teamBJSON, winnerTeam, score sql.NullString
	var date, ratingChange sql.NullInt64

	err := scanner.Scan(&m.ID, &date, &matchType, &winnerJSON, &loserJSON, &teamAJSON, &teamBJSON, &winnerTeam, &score, &ratingChange)
	if err != nil {
		return nil, err
	}

	m.Date = date.Int64
	m.Type = MatchType(matchType)
	m.WinnerTeam = winnerTeam.String
	m.Score = score.String
	m.RatingChange = int(ratingChange.Int64)
	m.WinnerIDs = unmarshalIDs(winnerJSON, m.ID, "winner_ids_json")
	m.LoserIDs = unmarshalIDs(loserJSON, m.ID, "loser_ids_json")
	m.TeamAIDs = unmarshalIDs(teamAJSON, m.ID, "team_a_ids_json")
	m.TeamBIDs = unmarshalIDs(teamBJSON, m.ID, "team_b_ids_json")
	return &m, nil
}

func marshalIDs(ids []string) (string, error) {
	if len(ids) == 0 {
		return "", nil
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalIDs decodes a JSON id list. Ids written by older tooling may be
// bare numbers; those are coerced to their string form so all ids compare
// as interchangeable strings.
func unmarshalIDs(col sql.NullString, matchID, column string) []string {
	if !col.Valid || col.String == "" {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(col.String), &raw); err != nil {
		log.Error("Failed to unmarshal id list", "error", err, "matchID", matchID, "column", column)
		return nil
	}
	ids := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			ids = append(ids, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(r, &n); err == nil {
			ids = append(ids, n.String())
			continue
		}
		log.Error("Unrecognized id value in id list", "matchID", matchID, "column", column)
	}
	return ids
}
