package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkjeldsen/rallyrank/internal/club"
	"github.com/slack-go/slack"
)

// formatResultNotification creates the Slack message for a logged match using Block Kit.
func (s *Notifier) formatResultNotification(match club.Match, players []club.Player) slack.Message {
	names := make(map[string]string, len(players))
	ratings := make(map[string]float64, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
		ratings[p.ID] = p.Rating
	}

	displayName := func(id string) string {
		if name, ok := names[id]; ok && name != "" {
			return name
		}
		return id
	}

	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏓 Match logged! 🏓", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var winnerNames, loserNames []string
	for _, id := range match.WinnerIDs {
		winnerNames = append(winnerNames, displayName(id))
	}
	for _, id := range match.LoserIDs {
		loserNames = append(loserNames, displayName(id))
	}

	detailsText := fmt.Sprintf("%s beat %s (%s)\nPlayed: %s",
		strings.Join(winnerNames, " & "),
		strings.Join(loserNames, " & "),
		match.Score,
		time.Unix(match.Date, 0).Format("Monday 02 Jan, 15:04"),
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	var ratingLines []string
	for _, id := range match.WinnerIDs {
		ratingLines = append(ratingLines, fmt.Sprintf("• %s: %.0f (+%d)", displayName(id), ratings[id], match.RatingChange))
	}
	for _, id := range match.LoserIDs {
		ratingLines = append(ratingLines, fmt.Sprintf("• %s: %.0f (-%d)", displayName(id), ratings[id], match.RatingChange))
	}
	ratingsText := "New ratings:\n" + strings.Join(ratingLines, "\n")
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", ratingsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the rating leaderboard.
func (s *Notifier) formatLeaderboard(players []club.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Club Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(players) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var lines []string
	for i, p := range players {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		lines = append(lines, fmt.Sprintf("%s %s — %.0f (%dW/%dL)", rank, p.Name, p.Rating, p.Wins, p.Losses))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message for a single player's record.
func (s *Notifier) formatPlayerStats(player *club.Player, query string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("📊 Stats for %s", player.Name), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	total := player.Wins + player.Losses
	winPct := 0.0
	if total > 0 {
		winPct = float64(player.Wins) / float64(total) * 100
	}

	statsText := fmt.Sprintf("Rating: %.0f\nMatches: %d\nWins: %d\nLosses: %d\nWin rate: %.1f%%",
		player.Rating, total, player.Wins, player.Losses, winPct)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", statsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for an unknown player query.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	blocks := make([]slack.Block, 0)
	text := fmt.Sprintf("Couldn't find a player matching \"%s\". 🤷", query)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil))
	return slack.NewBlockMessage(blocks...)
}
