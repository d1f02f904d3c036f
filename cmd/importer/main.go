package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mkjeldsen/rallyrank/internal/club"
	"github.com/mkjeldsen/rallyrank/internal/database"
	"github.com/mkjeldsen/rallyrank/internal/ledger"
	"github.com/mkjeldsen/rallyrank/internal/sheet"
)

// The importer migrates the club's old spreadsheet into the database: it
// loads players and team-shaped match rows from the workbook, appends them
// to the store and then rebuilds every rating from the combined log.
func main() {
	workbook := flag.String("workbook", "legacy.xlsx", "Path to the legacy spreadsheet")
	dbName := flag.String("db", "", "Database file (defaults to DB_NAME from the environment)")
	migrationsDir := flag.String("migrations", "./migrations", "Migrations directory")
	dryRun := flag.Bool("dry-run", false, "Parse and report without writing")
	flag.Parse()

	if *dbName == "" {
		if err := godotenv.Load(); err != nil {
			log.Info("No .env file found, reading from environment variables")
		}
		*dbName = os.Getenv("DB_NAME")
		if *dbName == "" {
			log.Fatal("No database given: pass -db or set DB_NAME")
		}
	}

	players, matches, err := sheet.Read(*workbook)
	if err != nil {
		log.Fatalf("Failed to read workbook: %s", err)
	}
	log.Info("Parsed legacy workbook", "players", len(players), "matches", len(matches))

	if *dryRun {
		log.Info("[Dry Run] Would import workbook", "players", len(players), "matches", len(matches))
		return
	}

	db, teardown, err := database.InitDB(*dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"), *migrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := club.New(db)

	for _, p := range players {
		if store.IsKnownPlayer(p.ID) {
			continue
		}
		if err := store.AppendPlayer(p); err != nil {
			log.Fatalf("Failed to insert player %s: %s", p.ID, err)
		}
	}
	for _, m := range matches {
		if err := store.AppendMatch(m); err != nil {
			log.Fatalf("Failed to insert match %s: %s", m.ID, err)
		}
	}
	log.Info("Imported workbook rows")

	snapshot, err := store.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load snapshot: %s", err)
	}
	result := ledger.Recalculate(snapshot.Players, snapshot.Matches)
	if err := store.ReplacePlayers(result.Players); err != nil {
		log.Fatalf("Failed to persist rebuilt players: %s", err)
	}

	log.Info("Rebuilt leaderboard from imported history",
		"players", len(result.Players),
		"matches", len(snapshot.Matches),
		"skipped", len(result.SkippedMatchIDs),
	)
	if len(result.SkippedMatchIDs) > 0 {
		log.Warn("Some imported matches were unreplayable", "matchIDs", result.SkippedMatchIDs)
	}
}
