package playtomic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playedDoubles() PlayedMatch {
	return PlayedMatch{
		MatchID:       "ext-1",
		Start:         1700000000,
		GameStatus:    GameStatusPlayed,
		ResultsStatus: ResultsStatusConfirmed,
		Teams: []Team{
			{ID: "ta", Players: []Player{{UserID: "p1", Name: "Anna"}, {UserID: "p2", Name: "Bo"}}},
			{ID: "tb", Players: []Player{{UserID: "p3", Name: "Cleo"}, {UserID: "p4", Name: "Dara"}}, TeamResult: "WON"},
		},
		Results: []SetResult{
			{Name: "SET-1", Scores: map[string]int{"ta": 3, "tb": 6}},
			{Name: "SET-2", Scores: map[string]int{"ta": 4, "tb": 6}},
		},
	}
}

func TestSubmissionFromExplicitTeamResult(t *testing.T) {
	sub, ok := playedDoubles().Submission()
	require.True(t, ok)

	assert.Equal(t, "ext-1", sub.MatchID)
	assert.False(t, sub.Singles)
	assert.Equal(t, []string{"p3", "p4"}, sub.WinnerIDs)
	assert.Equal(t, []string{"p1", "p2"}, sub.LoserIDs)
	assert.Equal(t, "6-3, 6-4", sub.Score, "score reads winner-first")
	assert.Equal(t, int64(1700000000), sub.Date.Unix())
}

func TestSubmissionFallsBackToSetCount(t *testing.T) {
	m := playedDoubles()
	m.Teams[1].TeamResult = ""

	sub, ok := m.Submission()
	require.True(t, ok)
	assert.Equal(t, []string{"p3", "p4"}, sub.WinnerIDs)
}

func TestSubmissionSingles(t *testing.T) {
	m := playedDoubles()
	m.Teams[0].Players = m.Teams[0].Players[:1]
	m.Teams[1].Players = m.Teams[1].Players[:1]

	sub, ok := m.Submission()
	require.True(t, ok)
	assert.True(t, sub.Singles)
}

func TestSubmissionRejectsUnusableMatches(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlayedMatch)
	}{
		{"not played", func(m *PlayedMatch) { m.GameStatus = GameStatusPending }},
		{"results unconfirmed", func(m *PlayedMatch) { m.ResultsStatus = ResultsStatusPending }},
		{"single team", func(m *PlayedMatch) { m.Teams = m.Teams[:1] }},
		{"uneven teams", func(m *PlayedMatch) { m.Teams[0].Players = m.Teams[0].Players[:1] }},
		{"drawn sets and no result", func(m *PlayedMatch) {
			m.Teams[1].TeamResult = ""
			m.Results = []SetResult{{Name: "SET-1", Scores: map[string]int{"ta": 6, "tb": 6}}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := playedDoubles()
			tt.mutate(&m)
			_, ok := m.Submission()
			assert.False(t, ok)
		})
	}
}
