package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mkjeldsen/rallyrank/internal/club"
	"github.com/oklog/ulid/v2"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	dummyPlayers := []club.Player{
		{ID: "seed-player-1", Name: "Seeder Player A"},
		{ID: "seed-player-2", Name: "Seeder Player B"},
		{ID: "seed-player-3", Name: "Seeder Player C"},
		{ID: "seed-player-4", Name: "Seeder Player D"},
	}

	for _, p := range dummyPlayers {
		_, err := db.Exec("INSERT OR IGNORE INTO players (id, name, rating, created_at) VALUES (?, ?, ?, ?)",
			p.ID, p.Name, float64(club.InitialRating), time.Now().Unix())
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.Name, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	const batchSize = 100 // Insert 100 matches at a time
	const numMatches = 10000

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*7)

	for i := 0; i < numMatches; i++ {
		matchTime := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)

		// Random pairing: two of the four dummies beat the other two.
		order := rand.Perm(4)
		winnerIDs, _ := json.Marshal([]string{dummyPlayers[order[0]].ID, dummyPlayers[order[1]].ID})
		loserIDs, _ := json.Marshal([]string{dummyPlayers[order[2]].ID, dummyPlayers[order[3]].ID})
		score := fmt.Sprintf("6-%d, 6-%d", rand.Intn(5), rand.Intn(5))

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			ulid.MustNew(ulid.Timestamp(matchTime), ulid.DefaultEntropy()).String(),
			matchTime.Unix(),
			string(club.MatchTypeDoubles),
			string(winnerIDs),
			string(loserIDs),
			score,
			0, // rating_change is filled in by recalculation
		)

		if (i+1)%batchSize == 0 || (i+1) == numMatches {
			stmt := fmt.Sprintf(`
				INSERT INTO matches (id, date, match_type, winner_ids_json, loser_ids_json, score, rating_change)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*7)
			log.Info("Inserted batch", "completed", i+1, "total", numMatches)
		}
	}

	// A handful of rows in the old team shape, so recalculation always has
	// legacy records to normalize.
	const numLegacy = 50
	teamA, _ := json.Marshal([]string{dummyPlayers[0].ID, dummyPlayers[1].ID})
	teamB, _ := json.Marshal([]string{dummyPlayers[2].ID, dummyPlayers[3].ID})
	for i := 0; i < numLegacy; i++ {
		matchTime := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		winner := "A"
		if rand.Intn(2) == 1 {
			winner = "B"
		}
		_, err := tx.Exec(`
			INSERT INTO matches (id, date, match_type, team_a_ids_json, team_b_ids_json, winner_team, score, rating_change)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
			ulid.MustNew(ulid.Timestamp(matchTime), ulid.DefaultEntropy()).String(),
			matchTime.Unix(),
			string(club.MatchTypeDoubles),
			string(teamA),
			string(teamB),
			winner,
			fmt.Sprintf("6-%d", rand.Intn(5)),
			0,
		)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert legacy match: %s", err)
		}
	}
	log.Info("Inserted legacy-shaped matches", "count", numLegacy)

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy matches.", "duration", duration)
	log.Info("Run a recalculation against the server to price the seeded history.")
}
