/*
Package sqlite provides the SQLite-backed persistence layer.

PURPOSE:
  Implements storage for every payroll table using SQLite. In production,
  the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  users, company_profile:           operator and company reference rows
  employees:                        salary configuration per person
  holidays:                         company calendar
  benefits_config, tax_config:      bracket tables as JSON documents, per year
  attendance, leaves, leave_balances: accruing records
  payroll_runs, payroll_entries:    computed pay periods
  mandatory_contributions, payslips: statutory shares and frozen snapshots

UNIQUENESS (enforced by the schema, surfaced as domain errors):
  users.email                         ErrDuplicateEmail
  employees.email                     ErrDuplicateEmail
  attendance(employee_id, date)       DuplicateAttendanceError
  holidays.date                       skip-on-seed
  leave_balances(employee_id, year)   upsert
  payroll_runs(start_date, end_date)  plus an overlap query before insert
  payslips.payroll_entry_id           ErrPayslipExists
  configs(type, year)                 upsert

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - payroll: the domain types persisted here
  - seed: the idempotent fixture loader built on this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Store implements all persistence for the payroll service.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: SQLite allows a single writer anyway, and ":memory:"
	// databases exist per connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		hashed_password TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Single-row table keyed by a fixed ID.
	CREATE TABLE IF NOT EXISTS company_profile (
		id TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		address TEXT,
		contact_number TEXT,
		email TEXT,
		tax_id TEXT,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		contact TEXT,
		role TEXT,
		department TEXT,
		salary_type TEXT NOT NULL,
		salary_rate TEXT NOT NULL,
		allowances_json TEXT,
		overtime_rate TEXT NOT NULL,
		night_rate TEXT NOT NULL,
		status TEXT NOT NULL,
		hire_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		date TEXT NOT NULL UNIQUE,
		holiday_type TEXT NOT NULL,
		description TEXT,
		recurring INTEGER NOT NULL DEFAULT 0
	);

	-- Bracket tables as JSON documents, one active row per year.
	CREATE TABLE IF NOT EXISTS benefits_config (
		id TEXT PRIMARY KEY,
		year INTEGER NOT NULL UNIQUE,
		tables_json TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tax_config (
		id TEXT PRIMARY KEY,
		tax_type TEXT NOT NULL,
		year INTEGER NOT NULL,
		brackets_json TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		UNIQUE(tax_type, year)
	);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		date TEXT NOT NULL,
		time_in TEXT,
		time_out TEXT,
		shift TEXT NOT NULL,
		status TEXT NOT NULL,
		regular_hours TEXT NOT NULL,
		overtime_hours TEXT NOT NULL,
		night_hours TEXT NOT NULL,
		late_minutes TEXT NOT NULL,
		undertime_minutes TEXT NOT NULL,
		is_holiday INTEGER NOT NULL DEFAULT 0,
		holiday_id TEXT,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	-- CRITICAL: one attendance row per employee per day.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_attendance_day
		ON attendance(employee_id, date);
	CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date);

	CREATE TABLE IF NOT EXISTS leaves (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		leave_type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		days_count INTEGER NOT NULL,
		reason TEXT,
		status TEXT NOT NULL,
		approved_by TEXT,
		approved_at TEXT,
		rejection_reason TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leaves_employee ON leaves(employee_id);
	CREATE INDEX IF NOT EXISTS idx_leaves_dates ON leaves(start_date, end_date);

	CREATE TABLE IF NOT EXISTS leave_balances (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		year INTEGER NOT NULL,
		sick_balance TEXT NOT NULL,
		vacation_balance TEXT NOT NULL,
		sick_used TEXT NOT NULL,
		vacation_used TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(employee_id, year)
	);

	CREATE TABLE IF NOT EXISTS payroll_runs (
		id TEXT PRIMARY KEY,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		run_type TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(start_date, end_date)
	);

	CREATE TABLE IF NOT EXISTS payroll_entries (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL REFERENCES payroll_runs(id),
		employee_id TEXT NOT NULL REFERENCES employees(id),
		employee_name TEXT NOT NULL,
		base_pay TEXT NOT NULL,
		overtime_pay TEXT NOT NULL,
		night_pay TEXT NOT NULL,
		holiday_pay TEXT NOT NULL,
		allowances_json TEXT,
		deductions_json TEXT,
		gross TEXT NOT NULL,
		net TEXT NOT NULL,
		flagged INTEGER NOT NULL DEFAULT 0,
		is_finalized INTEGER NOT NULL DEFAULT 0,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		UNIQUE(run_id, employee_id)
	);

	CREATE INDEX IF NOT EXISTS idx_entries_run ON payroll_entries(run_id);

	CREATE TABLE IF NOT EXISTS mandatory_contributions (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		payroll_entry_id TEXT NOT NULL REFERENCES payroll_entries(id),
		sss_employee TEXT NOT NULL,
		sss_employer TEXT NOT NULL,
		philhealth_employee TEXT NOT NULL,
		philhealth_employer TEXT NOT NULL,
		pagibig_employee TEXT NOT NULL,
		pagibig_employer TEXT NOT NULL,
		total_employee TEXT NOT NULL,
		total_employer TEXT NOT NULL,
		base_salary TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_contributions_entry
		ON mandatory_contributions(payroll_entry_id);

	CREATE TABLE IF NOT EXISTS payslips (
		id TEXT PRIMARY KEY,
		payroll_entry_id TEXT NOT NULL UNIQUE REFERENCES payroll_entries(id),
		employee_id TEXT NOT NULL REFERENCES employees(id),
		document_json TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payslips_employee ON payslips(employee_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RESET - destructive, reverse dependency order, one transaction
// =============================================================================

// resetOrder lists every table, children before parents, so foreign keys
// never dangle mid-transaction.
var resetOrder = []string{
	"payslips",
	"mandatory_contributions",
	"payroll_entries",
	"payroll_runs",
	"leave_balances",
	"leaves",
	"attendance",
	"holidays",
	"employees",
	"users",
	"tax_config",
	"benefits_config",
	"company_profile",
}

// Reset deletes every row from every table inside a single transaction.
// Callers are responsible for the production guard; the store only does
// what it is told.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	for _, table := range resetOrder {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			tx.Rollback()
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// CountRows returns the row count of a known table. The reset command uses
// this to report what is about to be deleted.
func (s *Store) CountRows(ctx context.Context, table string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	known := false
	for _, t := range resetOrder {
		if t == table {
			known = true
			break
		}
	}
	if !known {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}

// Tables returns the table names in reset order.
func Tables() []string {
	out := make([]string, len(resetOrder))
	copy(out, resetOrder)
	return out
}

// =============================================================================
// HELPERS
// =============================================================================

func newID() string {
	return uuid.NewString()
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseDecimal(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseDate(v string) time.Time {
	t, _ := time.Parse(dateLayout, v)
	return t
}

func parseTimestamp(v string) time.Time {
	t, _ := time.Parse(time.RFC3339, v)
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}
