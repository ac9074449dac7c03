/*
reset.go - Guarded destructive reset

PURPOSE:
  Deletes every row from every table, but only after two independent
  checks pass: the deployment must not look like production (environment
  name or a "prod" substring in the database path), and the operator must
  have typed the exact confirmation phrase. The deletion itself runs in one
  transaction inside the store.
*/
package seed

import (
	"context"
	"log"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// ConfirmationPhrase must be typed verbatim before a reset proceeds.
const ConfirmationPhrase = "DELETE ALL DATA"

// GuardReset validates a reset request. The production check runs first:
// no confirmation phrase overrides it.
func GuardReset(cfg config.Config, confirmation string) error {
	if cfg.IsProduction() {
		return payroll.ErrProductionGuard
	}
	if confirmation != ConfirmationPhrase {
		return payroll.ErrConfirmationMismatch
	}
	return nil
}

// Reset runs the guard and, when it passes, empties the database.
func Reset(ctx context.Context, store *sqlite.Store, cfg config.Config, confirmation string, logger *log.Logger) error {
	if err := GuardReset(cfg, confirmation); err != nil {
		return err
	}
	if logger != nil {
		for _, table := range sqlite.Tables() {
			n, err := store.CountRows(ctx, table)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Printf("deleting %d rows from %s", n, table)
			}
		}
	}
	if err := store.Reset(ctx); err != nil {
		return err
	}
	if logger != nil {
		logger.Printf("database reset complete")
	}
	return nil
}
