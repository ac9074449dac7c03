/*
main.go - Guarded database reset

PURPOSE:
  Empties every table after two checks: the deployment must not look like
  production, and the operator must type the exact confirmation phrase at
  the prompt. The production check cannot be overridden.

COMMAND-LINE FLAGS:
  -db     SQLite database path (default from DATABASE_PATH)
  -yes    Supply the confirmation phrase non-interactively
          (still subject to the production guard)

EXAMPLES:
  # Interactive
  ./reset -db="./data/payroll.db"

  # Scripted (CI teardown)
  ./reset -db=":memory:" -yes="DELETE ALL DATA"

SEE ALSO:
  - seed/reset.go: Guard logic and deletion order
*/
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

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
	yes := flag.String("yes", "", "confirmation phrase, skips the prompt")
	flag.Parse()
	cfg.DBPath = *dbPath

	// Fail before the prompt when the guard would refuse anyway.
	if cfg.IsProduction() {
		log.Fatalf("Refusing to reset: deployment looks like production")
	}

	confirmation := *yes
	if confirmation == "" {
		fmt.Printf("This deletes ALL data in %s.\n", cfg.DBPath)
		fmt.Printf("Type %q to continue: ", seed.ConfirmationPhrase)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			log.Fatalf("Failed to read confirmation: %v", err)
		}
		confirmation = strings.TrimSpace(line)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	logger := log.New(os.Stdout, "reset: ", log.LstdFlags)
	if err := seed.Reset(context.Background(), store, cfg, confirmation, logger); err != nil {
		log.Fatalf("Reset refused: %v", err)
	}
}
