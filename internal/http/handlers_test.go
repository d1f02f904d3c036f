package http

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mkjeldsen/rallyrank/internal/club"
	"github.com/mkjeldsen/rallyrank/internal/config"
	"github.com/mkjeldsen/rallyrank/internal/database"
	"github.com/mkjeldsen/rallyrank/internal/metrics"
	"github.com/mkjeldsen/rallyrank/internal/notifier"
	"github.com/mkjeldsen/rallyrank/internal/playtomic"
	"github.com/mkjeldsen/rallyrank/internal/processor"
	"github.com/mkjeldsen/rallyrank/internal/pubsub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
)

const testSlackSigningSecret = "test-signing-secret"

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, playtomicClient playtomic.PlaytomicClient, notifier notifier.Notifier, slackSigningSecret string) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	clubStore := club.New(db)
	cfg := config.Config{Slack: config.SlackConfig{SigningSecret: slackSigningSecret}}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	ps := pubsub.NewMock("TEST")
	proc := processor.New(clubStore, ps, notifier, metricsSvc, metrics.New(db))
	server := NewServer(clubStore, metricsSvc, metricsHandler, cfg, playtomicClient, notifier, proc, ps)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, teardown
}

func seedPlayers(t *testing.T, server *Server) {
	t.Helper()
	for _, p := range []club.Player{
		{ID: "p1", Name: "Anna", Rating: 1200},
		{ID: "p2", Name: "Bo", Rating: 1200},
		{ID: "p3", Name: "Cleo", Rating: 1200},
		{ID: "p4", Name: "Dara", Rating: 1200},
	} {
		require.NoError(t, server.Store.AppendPlayer(p))
	}
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	body := strings.NewReader(form.Encode())
	req, err := http.NewRequest("POST", targetURL, body)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	bodyBytes, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, string(bodyBytes))
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	signature := hex.EncodeToString(h.Sum(nil))

	req.Header.Set("X-Slack-Signature", "v0="+signature)

	return req
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestPlayersHandler(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	t.Run("registers a player", func(t *testing.T) {
		body := strings.NewReader(`{"name": "Anna"}`)
		req, err := http.NewRequest("POST", "/players", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var player club.Player
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &player))
		assert.NotEmpty(t, player.ID)
		assert.Equal(t, "Anna", player.Name)
		assert.Equal(t, float64(club.InitialRating), player.Rating)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		body := strings.NewReader(`{"name": "Anna"}`)
		req, err := http.NewRequest("POST", "/players", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		body := strings.NewReader(`{}`)
		req, err := http.NewRequest("POST", "/players", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("lists players", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/players", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Anna")
	})
}

func TestLogMatchHandler(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()
	seedPlayers(t, server)

	t.Run("logs a singles match", func(t *testing.T) {
		body := strings.NewReader(`{"match_type": "SINGLES", "winner_ids": ["p1"], "loser_ids": ["p2"], "score": "11-8"}`)
		req, err := http.NewRequest("POST", "/log-match", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var match club.Match
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &match))
		assert.Equal(t, 16, match.RatingChange)
		assert.Equal(t, "11-8", match.Score)

		anna, err := server.Store.GetPlayer("p1")
		require.NoError(t, err)
		assert.Equal(t, float64(1216), anna.Rating)
	})

	t.Run("rejects unknown participant", func(t *testing.T) {
		body := strings.NewReader(`{"match_type": "SINGLES", "winner_ids": ["p1"], "loser_ids": ["ghost"], "score": "11-8"}`)
		req, err := http.NewRequest("POST", "/log-match", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects missing score", func(t *testing.T) {
		body := strings.NewReader(`{"match_type": "SINGLES", "winner_ids": ["p1"], "loser_ids": ["p2"], "score": ""}`)
		req, err := http.NewRequest("POST", "/log-match", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects repeated player within a side", func(t *testing.T) {
		body := strings.NewReader(`{"match_type": "DOUBLES", "winner_ids": ["p1", "p1"], "loser_ids": ["p2", "p3"], "score": "6-3"}`)
		req, err := http.NewRequest("POST", "/log-match", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects wrong side size for doubles", func(t *testing.T) {
		body := strings.NewReader(`{"match_type": "DOUBLES", "winner_ids": ["p1"], "loser_ids": ["p2"], "score": "6-3"}`)
		req, err := http.NewRequest("POST", "/log-match", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects GET", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/log-match", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}

func TestDeleteMatchHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), mockNotifier, "")
	defer teardown()
	seedPlayers(t, server)

	body := strings.NewReader(`{"match_type": "SINGLES", "winner_ids": ["p1"], "loser_ids": ["p2"], "score": "11-8"}`)
	req, err := http.NewRequest("POST", "/log-match", body)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	var match club.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &match))

	t.Run("deletes and rebuilds", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/delete-match?matchID="+match.ID, nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		anna, err := server.Store.GetPlayer("p1")
		require.NoError(t, err)
		assert.Equal(t, float64(club.InitialRating), anna.Rating)
		assert.Equal(t, 0, anna.Wins)
	})

	t.Run("requires matchID", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/delete-match", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown match", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/delete-match?matchID=nope", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

// setupMockStoreServer builds a server over the mock store so individual
// store operations can be made to fail.
func setupMockStoreServer(t *testing.T, store *club.MockStore) *Server {
	t.Helper()

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	ps := pubsub.NewMock("TEST")
	mockNotifier := notifier.NewMock()
	proc := processor.New(store, ps, mockNotifier, metricsSvc, metrics.NewMockStore())
	return NewServer(store, metricsSvc, metrics.NewMetricsHandler(reg), config.Config{}, playtomic.NewMockClient(), mockNotifier, proc, ps)
}

func TestDeleteMatchHandlerFailureClasses(t *testing.T) {
	t.Run("store failure is a 500, not a 404", func(t *testing.T) {
		store := club.NewMock()
		store.DeleteMatchFunc = func(string) error { return assert.AnError }
		server := setupMockStoreServer(t, store)

		req, err := http.NewRequest("POST", "/delete-match?matchID=m1", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("failed rebuild after the delete is a 500", func(t *testing.T) {
		store := club.NewMock()
		store.Seed([]club.Player{
			{ID: "p1", Name: "Anna", Rating: 1216, Wins: 1},
			{ID: "p2", Name: "Bo", Rating: 1184, Losses: 1},
		}, []club.Match{{
			ID: "m1", Date: 100, Type: club.MatchTypeSingles,
			WinnerIDs: []string{"p1"}, LoserIDs: []string{"p2"}, Score: "11-8", RatingChange: 16,
		}})
		store.ReplacePlayersFunc = func([]club.Player) error { return assert.AnError }
		server := setupMockStoreServer(t, store)

		req, err := http.NewRequest("POST", "/delete-match?matchID=m1", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		// The match is already gone; reporting 404 here would hide that the
		// delete applied but the stats are stale.
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, []string{"m1"}, store.DeleteMatchCalls)
	})
}

func TestRecalculateHandler(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()
	seedPlayers(t, server)

	// One replayable match and one referencing an unknown player.
	require.NoError(t, server.Store.AppendMatch(club.Match{
		ID: "m1", Date: 100, Type: club.MatchTypeSingles,
		WinnerIDs: []string{"p1"}, LoserIDs: []string{"p2"}, Score: "11-8",
	}))
	require.NoError(t, server.Store.AppendMatch(club.Match{
		ID: "m2", Date: 200, Type: club.MatchTypeSingles,
		WinnerIDs: []string{"p1"}, LoserIDs: []string{"ghost"}, Score: "11-1",
	}))

	req, err := http.NewRequest("POST", "/recalculate", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var summary processor.RecalcSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 4, summary.PlayerCount)
	assert.Equal(t, 2, summary.MatchCount)
	assert.Equal(t, []string{"m2"}, summary.SkippedMatchIDs)

	anna, err := server.Store.GetPlayer("p1")
	require.NoError(t, err)
	assert.Equal(t, float64(1216), anna.Rating)
}

func TestLeaderboardHandler(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	require.NoError(t, server.Store.AppendPlayer(club.Player{ID: "p1", Name: "Anna", Rating: 1216, Wins: 1}))
	require.NoError(t, server.Store.AppendPlayer(club.Player{ID: "p2", Name: "Bo", Rating: 1184, Losses: 1}))

	req, err := http.NewRequest("GET", "/leaderboard", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var players []club.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	require.Len(t, players, 2)
	assert.Equal(t, "Anna", players[0].Name, "highest rating first")
}

// newImportMockClient serves one confirmed doubles match owned by p1 and one
// summary without an owner.
func newImportMockClient() *playtomic.MockClient {
	mockClient := playtomic.NewMockClient()
	ownerID := "p1"
	mockClient.GetMatchesFunc = func(params *playtomic.SearchMatchesParams) ([]playtomic.MatchSummary, error) {
		return []playtomic.MatchSummary{
			{MatchID: "ext-1", OwnerID: &ownerID},
			{MatchID: "ext-2", OwnerID: nil}, // No owner, should be skipped
		}, nil
	}
	mockClient.GetSpecificMatchFunc = func(matchID string) (playtomic.PlayedMatch, error) {
		return playtomic.PlayedMatch{
			MatchID:       matchID,
			OwnerID:       ownerID,
			Start:         1700000000,
			GameStatus:    playtomic.GameStatusPlayed,
			ResultsStatus: playtomic.ResultsStatusConfirmed,
			Teams: []playtomic.Team{
				{ID: "ta", TeamResult: "WON", Players: []playtomic.Player{{UserID: "p1", Name: "Anna"}, {UserID: "p2", Name: "Bo"}}},
				{ID: "tb", Players: []playtomic.Player{{UserID: "x1", Name: "Guest One"}, {UserID: "x2", Name: "Guest Two"}}},
			},
			Results: []playtomic.SetResult{
				{Name: "SET-1", Scores: map[string]int{"ta": 6, "tb": 4}},
				{Name: "SET-2", Scores: map[string]int{"ta": 6, "tb": 3}},
			},
		}, nil
	}
	return mockClient
}

func TestImportMatchesHandler(t *testing.T) {
	server, teardown := setupTestServer(t, newImportMockClient(), notifier.NewMock(), "")
	defer teardown()
	require.NoError(t, server.Store.AppendPlayer(club.Player{ID: "p1", Name: "Anna", Rating: 1200}))
	require.NoError(t, server.Store.AppendPlayer(club.Player{ID: "p2", Name: "Bo", Rating: 1200}))

	req, err := http.NewRequest("GET", "/import?days=30", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	matches, err := server.Store.GetAllMatches()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "ext-1", matches[0].ID)
	assert.Equal(t, []string{"p1", "p2"}, matches[0].WinnerIDs)
	assert.Equal(t, "6-4, 6-3", matches[0].Score)

	// Unknown opponents were registered on the fly.
	assert.True(t, server.Store.IsKnownPlayer("x1"))
	assert.True(t, server.Store.IsKnownPlayer("x2"))

	// A second import run skips the already logged match.
	rr = httptest.NewRecorder()
	req, err = http.NewRequest("GET", "/import?days=30", nil)
	require.NoError(t, err)
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	matches, err = server.Store.GetAllMatches()
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestImportMatchesHandlerDryRun(t *testing.T) {
	server, teardown := setupTestServer(t, newImportMockClient(), notifier.NewMock(), "")
	defer teardown()
	require.NoError(t, server.Store.AppendPlayer(club.Player{ID: "p1", Name: "Anna", Rating: 1200}))
	require.NoError(t, server.Store.AppendPlayer(club.Player{ID: "p2", Name: "Bo", Rating: 1200}))

	req, err := http.NewRequest("GET", "/import?days=30&dry_run=true", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	// The report counts the match with unregistered opponents as importable,
	// matching what a real run would do.
	assert.Contains(t, rr.Body.String(), "Imported 1, skipped 1.")

	// Nothing was written.
	matches, err := server.Store.GetAllMatches()
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.False(t, server.Store.IsKnownPlayer("x1"))
	assert.False(t, server.Store.IsKnownPlayer("x2"))
}

func TestNotifyLeaderboardHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), mockNotifier, "")
	defer teardown()

	require.NoError(t, server.Store.AppendPlayer(club.Player{ID: "p1", Name: "Anna", Rating: 1216}))

	event := pubsub.RecalculatedEvent{PlayerCount: 1, MatchCount: 0}
	raw, err := msgpack.Marshal(event)
	require.NoError(t, err)

	wrapper := map[string]any{
		"subscription": "projects/test/subscriptions/notify-leaderboard",
		"message":      map[string]any{"data": base64.StdEncoding.EncodeToString(raw)},
	}
	body, err := json.Marshal(wrapper)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/notify-leaderboard", bytes.NewReader(body))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, mockNotifier.SendLeaderboardCalls, 1)
	assert.Equal(t, "Anna", mockNotifier.SendLeaderboardCalls[0][0].Name)
}

func TestNotifyLeaderboardHandlerRejectsBadPayloads(t *testing.T) {
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), notifier.NewMock(), "")
	defer teardown()

	t.Run("invalid wrapper JSON", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/notify-leaderboard", strings.NewReader("not json"))
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid base64", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/notify-leaderboard", strings.NewReader(`{"message": {"data": "%%%"}}`))
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLeaderboardCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.FormatLeaderboardResponseFunc = func(players []club.Player) (any, error) {
		return slack.Message{}, nil
	}
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), mockNotifier, testSlackSigningSecret)
	defer teardown()

	req := createSlackCommandRequest(t, "/slack/command/leaderboard", url.Values{}, testSlackSigningSecret)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPlayerStatsCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.FormatPlayerStatsResponseFunc = func(player *club.Player, query string) (any, error) {
		return slack.Message{}, nil
	}
	mockNotifier.FormatPlayerNotFoundResponseFunc = func(query string) (any, error) {
		return slack.Message{}, nil
	}
	server, teardown := setupTestServer(t, playtomic.NewMockClient(), mockNotifier, testSlackSigningSecret)
	defer teardown()

	require.NoError(t, server.Store.AppendPlayer(club.Player{ID: "p1", Name: "Anna Voss", Rating: 1216, Wins: 3, Losses: 1}))

	t.Run("handles found player", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "Anna")

		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("handles not found player", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "Unknown")

		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("handles missing player name", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/player-stats", url.Values{}, testSlackSigningSecret)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects request with invalid signature", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "Anna")

		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)
		req.Header.Set("X-Slack-Signature", "v0=invalid-signature")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects request with missing signature", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "Anna")

		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)
		req.Header.Del("X-Slack-Signature")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects request with outdated timestamp", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "Anna")

		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)
		req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(time.Now().Add(-6*time.Minute).Unix(), 10))

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
