package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mkjeldsen/rallyrank/internal/club"
	"github.com/mkjeldsen/rallyrank/internal/ledger"
	"github.com/mkjeldsen/rallyrank/internal/playtomic"
	"github.com/mkjeldsen/rallyrank/internal/processor"
	"github.com/mkjeldsen/rallyrank/internal/pubsub"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Store.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

// PlayersHandler lists players on GET and registers a new player on POST.
func (s *Server) PlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.registerPlayer(w, r)
		default:
			players, err := s.Store.GetAllPlayers()
			if err != nil {
				http.Error(w, "Failed to get players", http.StatusInternalServerError)
				log.Error("Failed to get players from store", "error", err)
				return
			}
			writeJSON(w, players)
		}
	}
}

func (s *Server) registerPlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	player, err := s.Processor.RegisterPlayer(req.Name, isDryRunFromContext(r))
	switch {
	case errors.Is(err, processor.ErrEmptyName):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, processor.ErrPlayerExists):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		http.Error(w, "Failed to register player", http.StatusInternalServerError)
		log.Error("Failed to register player", "error", err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, player)
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.GetAllMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}
		writeJSON(w, matches)
	}
}

// LeaderboardHandler returns a handler that serves the rating leaderboard.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetLeaderboard()
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err)
			return
		}
		writeJSON(w, players)
	}
}

// LogMatchHandler accepts a match submission and enters it into the ledger.
func (s *Server) LogMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			MatchType string   `json:"match_type"`
			WinnerIDs []string `json:"winner_ids"`
			LoserIDs  []string `json:"loser_ids"`
			Score     string   `json:"score"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		matchType := club.MatchType(req.MatchType)
		if matchType == "" {
			matchType = club.MatchTypeSingles
		}
		if matchType != club.MatchTypeSingles && matchType != club.MatchTypeDoubles {
			http.Error(w, "Unknown match type", http.StatusBadRequest)
			return
		}

		match, err := s.Processor.LogMatch(processor.LogMatchRequest{
			Type:      matchType,
			WinnerIDs: req.WinnerIDs,
			LoserIDs:  req.LoserIDs,
			Score:     req.Score,
		}, isDryRunFromContext(r))
		switch {
		case errors.Is(err, ledger.ErrEmptyScore),
			errors.Is(err, ledger.ErrParticipantCount),
			errors.Is(err, ledger.ErrDuplicateParticipant),
			errors.Is(err, ledger.ErrOverlappingSides),
			errors.Is(err, ledger.ErrUnknownParticipant):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			http.Error(w, "Failed to log match", http.StatusInternalServerError)
			log.Error("Failed to log match", "error", err)
			return
		}

		writeJSONStatus(w, http.StatusCreated, match)
	}
}

// DeleteMatchHandler removes a match and rebuilds the leaderboard without it.
func (s *Server) DeleteMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID == "" {
			http.Error(w, "matchID is required", http.StatusBadRequest)
			return
		}

		summary, err := s.Processor.DeleteMatch(matchID, isDryRunFromContext(r))
		switch {
		case errors.Is(err, club.ErrMatchNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		case err != nil:
			// A store or rebuild failure is not "not found": the delete may
			// have applied, leaving stats stale until a recalculation.
			http.Error(w, "Failed to delete match", http.StatusInternalServerError)
			log.Error("Failed to delete match", "error", err, "matchID", matchID)
			return
		}
		writeJSON(w, summary)
	}
}

// RemovePlayerHandler deletes a player; their matches become unreplayable.
func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}

		summary, err := s.Processor.RemovePlayer(playerID, isDryRunFromContext(r))
		switch {
		case errors.Is(err, club.ErrPlayerNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		case err != nil:
			http.Error(w, "Failed to remove player", http.StatusInternalServerError)
			log.Error("Failed to remove player", "error", err, "playerID", playerID)
			return
		}
		writeJSON(w, summary)
	}
}

// RecalculateHandler rebuilds every rating from the match log.
func (s *Server) RecalculateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := s.Processor.Recalculate(isDryRunFromContext(r))
		if err != nil {
			http.Error(w, "Failed to recalculate", http.StatusInternalServerError)
			log.Error("Failed to recalculate", "error", err)
			return
		}
		writeJSON(w, summary)
	}
}

// ImportMatchesHandler fetches played matches from Playtomic and enters any
// confirmed club results into the ledger.
func (s *Server) ImportMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting match import...")
		isDryRun := isDryRunFromContext(r)

		daysStr := r.URL.Query().Get("days")
		daysToSubtract := 0
		if daysStr != "" {
			parsedDays, err := strconv.Atoi(daysStr)
			if err == nil && parsedDays > 0 {
				daysToSubtract = parsedDays
				log.Info("Importing historical matches", "days", daysToSubtract)
			} else {
				log.Warn("Invalid 'days' parameter provided. Defaulting to 0.", "days_param", daysStr)
			}
		}

		startDate := time.Now().AddDate(0, 0, -daysToSubtract)
		params := &playtomic.SearchMatchesParams{
			SportID:       "PADEL",
			HasPlayers:    true,
			Sort:          "start_date,ASC",
			TenantIDs:     []string{s.Cfg.TenantID},
			FromStartDate: startDate.Format("2006-01-02") + "T00:00:00",
		}
		summaries, err := s.PlaytomicClient.GetMatches(params)
		if err != nil {
			log.Error("Error fetching Playtomic matches", "error", err)
			http.Error(w, "Failed to fetch matches", http.StatusInternalServerError)
			return
		}
		log.Info("Found matches from API", "count", len(summaries))

		imported, skipped := 0, 0
		for _, summary := range summaries {
			if summary.OwnerID == nil || !s.Store.IsKnownPlayer(*summary.OwnerID) {
				log.Debug("Skipping non-club match", "matchID", summary.MatchID)
				skipped++
				continue
			}
			match, err := s.PlaytomicClient.GetSpecificMatch(summary.MatchID)
			if err != nil {
				log.Error("Error fetching specific match", "matchID", summary.MatchID, "error", err)
				skipped++
				continue
			}
			sub, ok := match.Submission()
			if !ok {
				log.Debug("Skipping match without a usable result", "matchID", summary.MatchID)
				skipped++
				continue
			}

			var guests []club.Player
			for _, team := range match.Teams {
				for _, p := range team.Players {
					guests = append(guests, club.Player{ID: p.UserID, Name: p.Name})
				}
			}

			matchType := club.MatchTypeDoubles
			if sub.Singles {
				matchType = club.MatchTypeSingles
			}
			_, err = s.Processor.LogMatch(processor.LogMatchRequest{
				Type:      matchType,
				WinnerIDs: sub.WinnerIDs,
				LoserIDs:  sub.LoserIDs,
				Score:     sub.Score,
				MatchID:   sub.MatchID,
				Date:      sub.Date,
				Guests:    guests,
			}, isDryRun)
			switch {
			case errors.Is(err, processor.ErrDuplicateMatch):
				log.Debug("Skipping already imported match", "matchID", sub.MatchID)
				skipped++
			case err != nil:
				log.Error("Failed to log imported match", "error", err, "matchID", sub.MatchID)
				skipped++
			default:
				imported++
			}
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Match import completed. Imported %d, skipped %d.\n", imported, skipped)
		log.Info("Match import finished.", "total_api_matches", len(summaries), "imported", imported, "skipped", skipped)
	}
}

// NotifyLeaderboardHandler handles the pubsub push subscription for
// recalculated events and posts the fresh leaderboard to the club channel.
func (s *Server) NotifyLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received notify leaderboard message", "body", string(bodyBytes))
		// Decode the push wrapper to get the base64 payload.
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"`
			} `json:"message"`
		}
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		event := pubsub.RecalculatedEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode recalculated event", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		log.Info("Leaderboard recalculated", "players", event.PlayerCount, "skipped", len(event.SkippedIDs))

		players, err := s.Store.GetLeaderboard()
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err)
			return
		}
		if err := s.Notifier.SendLeaderboard(players, isDryRunFromContext(r)); err != nil {
			http.Error(w, "Failed to send leaderboard", http.StatusInternalServerError)
			log.Error("Failed to send leaderboard", "error", err)
			return
		}
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetLeaderboard()
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err)
			return
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(players)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// PlayerStatsCommandHandler returns a handler for the /player-stats Slack command.
func (s *Server) PlayerStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		playerName := r.FormValue("text")
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player stats command", "player", playerName)

		player, err := s.Store.GetPlayerByName(playerName)
		var msg any
		if err != nil {
			log.Warn("Could not find player", "player", playerName, "error", err)
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(playerName)
		} else {
			msg, err = s.Notifier.FormatPlayerStatsResponse(player, playerName)
		}

		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// writeJSON writes v as a JSON response body with a 200 status.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

// writeJSONStatus writes v as a JSON response body with the given status.
func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}
