/*
main.go - Development database seeder

PURPOSE:
  Installs the fixture dataset: admin users, company profile, employee
  roster, holiday calendar, statutory tables, two weeks of attendance, a
  few leave requests, and one computed payroll run for the previous
  semi-monthly period.

  Seeding is idempotent: every entity is looked up by its natural key
  before insertion, so re-running the command never duplicates data.

COMMAND-LINE FLAGS:
  -db     SQLite database path (default from DATABASE_PATH)
  -seed   Fixed random seed for reproducible attendance/leave data.
          0 (the default) uses the current time.

EXAMPLES:
  # Seed with time-based randomness
  ./seed -db="./data/payroll.db"

  # Reproducible dataset
  ./seed -db="./data/payroll.db" -seed=42

SEE ALSO:
  - seed/seeder.go: Seeding steps and ordering
  - seed/data.go: Fixture catalog
*/
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/seed"
	"github.com/warp/payroll-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	seedValue := flag.Int64("seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	logger := log.New(os.Stdout, "seed: ", log.LstdFlags)
	seeder := seed.New(store, *seedValue, logger)
	if err := seeder.Run(context.Background()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Done: %d created, %d skipped", seeder.Created(), seeder.Skipped())
}
