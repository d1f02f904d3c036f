package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

var (
	matchType string
	winners   []string
	losers    []string
	score     string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(logMatchCmd)
	rootCmd.AddCommand(deleteMatchCmd)
	rootCmd.AddCommand(recalculateCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(metricsCmd)

	logMatchCmd.Flags().StringVar(&matchType, "type", "SINGLES", "Match type (SINGLES or DOUBLES)")
	logMatchCmd.Flags().StringSliceVar(&winners, "winner", nil, "Winning player id (repeat for doubles)")
	logMatchCmd.Flags().StringSliceVar(&losers, "loser", nil, "Losing player id (repeat for doubles)")
	logMatchCmd.Flags().StringVar(&score, "score", "", "Score line, e.g. '11-8'")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the match log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the rating leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard")
	},
}

var logMatchCmd = &cobra.Command{
	Use:   "log-match",
	Short: "Log a match result",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"match_type": matchType,
			"winner_ids": winners,
			"loser_ids":  losers,
			"score":      score,
		}
		return performPostRequest("/log-match", body)
	},
}

var deleteMatchCmd = &cobra.Command{
	Use:   "delete-match <matchID>",
	Short: "Delete a match and rebuild the leaderboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/delete-match?matchID="+url.QueryEscape(args[0]), nil)
	},
}

var recalculateCmd = &cobra.Command{
	Use:   "recalculate",
	Short: "Rebuild every rating from the match log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/recalculate", nil)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Register a new player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/players", map[string]any{"name": args[0]})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import played matches from Playtomic",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/import")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, body map[string]any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = strings.NewReader(string(payload))
	}

	resp, err := http.Post(url, "application/json", reader)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
