/*
payroll.go - Payroll run, entry, contribution, and payslip persistence

PURPOSE:
  The computed side of the schema. CreateRun rejects overlapping periods
  before any computation starts; SaveEntryArtifacts writes one employee's
  entry, contribution row, and payslip atomically so a failed computation
  leaves nothing behind.

IMMUTABILITY:
  Finalized entries never change (ErrEntryFinalized), and a payslip is
  written once per entry (ErrPayslipExists).
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// PAYROLL RUNS
// =============================================================================

// CreateRun inserts a run after checking that its period overlaps no
// existing run. The check and insert share the writer lock, so two
// concurrent creations cannot both pass.
func (s *Store) CreateRun(ctx context.Context, r payroll.PayrollRun) (payroll.PayrollRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	period := payroll.Period{Start: r.StartDate, End: r.EndDate}
	if !period.Valid() {
		return payroll.PayrollRun{}, payroll.ErrInvalidPeriod
	}

	var existingID, existingStart, existingEnd string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, start_date, end_date FROM payroll_runs
		WHERE start_date <= ? AND end_date >= ?
		LIMIT 1`,
		r.EndDate.Format(dateLayout), r.StartDate.Format(dateLayout),
	).Scan(&existingID, &existingStart, &existingEnd)
	if err == nil {
		return payroll.PayrollRun{}, &payroll.OverlapError{
			Requested:  period,
			ExistingID: existingID,
			Existing:   payroll.Period{Start: parseDate(existingStart), End: parseDate(existingEnd)},
		}
	}
	if err != sql.ErrNoRows {
		return payroll.PayrollRun{}, err
	}

	if r.ID == "" {
		r.ID = newID()
	}
	if r.Status == "" {
		r.Status = payroll.RunDraft
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO payroll_runs (id, start_date, end_date, run_type, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout),
		string(r.Type), string(r.Status), r.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return payroll.PayrollRun{}, payroll.ErrOverlappingRun
		}
		return payroll.PayrollRun{}, fmt.Errorf("create run: %w", err)
	}
	return r, nil
}

// GetRun retrieves a run by ID. Absent runs are ErrRunNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (payroll.PayrollRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r payroll.PayrollRun
	var start, end, runType, status, createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, start_date, end_date, run_type, status, created_at
		FROM payroll_runs WHERE id = ?`, id,
	).Scan(&r.ID, &start, &end, &runType, &status, &createdAt)
	if err == sql.ErrNoRows {
		return payroll.PayrollRun{}, payroll.ErrRunNotFound
	}
	if err != nil {
		return payroll.PayrollRun{}, err
	}
	r.StartDate = parseDate(start)
	r.EndDate = parseDate(end)
	r.Type = payroll.RunType(runType)
	r.Status = payroll.RunStatus(status)
	r.CreatedAt = parseTimestamp(createdAt)
	return r, nil
}

// FindRunByPeriod returns the run with exactly this period, or nil. The
// seeder's natural-key lookup.
func (s *Store) FindRunByPeriod(ctx context.Context, period payroll.Period) (*payroll.PayrollRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r payroll.PayrollRun
	var start, end, runType, status, createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, start_date, end_date, run_type, status, created_at
		FROM payroll_runs WHERE start_date = ? AND end_date = ?`,
		period.Start.Format(dateLayout), period.End.Format(dateLayout),
	).Scan(&r.ID, &start, &end, &runType, &status, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.StartDate = parseDate(start)
	r.EndDate = parseDate(end)
	r.Type = payroll.RunType(runType)
	r.Status = payroll.RunStatus(status)
	r.CreatedAt = parseTimestamp(createdAt)
	return &r, nil
}

// ListRuns returns all runs, newest period first.
func (s *Store) ListRuns(ctx context.Context) ([]payroll.PayrollRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, start_date, end_date, run_type, status, created_at
		FROM payroll_runs ORDER BY start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []payroll.PayrollRun
	for rows.Next() {
		var r payroll.PayrollRun
		var start, end, runType, status, createdAt string
		if err := rows.Scan(&r.ID, &start, &end, &runType, &status, &createdAt); err != nil {
			return nil, err
		}
		r.StartDate = parseDate(start)
		r.EndDate = parseDate(end)
		r.Type = payroll.RunType(runType)
		r.Status = payroll.RunStatus(status)
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// FinalizeRun marks a draft run and all its entries finalized in one
// transaction. Finalized entries are immutable from then on.
func (s *Store) FinalizeRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin finalize: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE payroll_runs SET status = ? WHERE id = ? AND status = ?",
		string(payroll.RunFinalized), runID, string(payroll.RunDraft))
	if err != nil {
		return fmt.Errorf("finalize run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return payroll.ErrRunNotFound
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE payroll_entries SET is_finalized = 1 WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("finalize entries: %w", err)
	}
	return tx.Commit()
}

// =============================================================================
// ENTRIES + CONTRIBUTIONS + PAYSLIPS - written atomically
// =============================================================================

// SaveEntryArtifacts persists one computed entry with its contribution row
// and payslip in a single transaction. On any failure nothing is written.
// Returns the entry with its assigned ID.
func (s *Store) SaveEntryArtifacts(ctx context.Context, entry payroll.PayrollEntry, contrib payroll.ContributionSet, slip payroll.Payslip) (payroll.PayrollEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = newID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	contrib.ID = newID()
	contrib.EntryID = entry.ID
	if slip.ID == "" {
		slip.ID = newID()
	}
	slip.EntryID = entry.ID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return payroll.PayrollEntry{}, fmt.Errorf("begin entry save: %w", err)
	}
	defer tx.Rollback()

	if err := insertEntry(ctx, tx, entry); err != nil {
		return payroll.PayrollEntry{}, err
	}
	if err := insertContributions(ctx, tx, contrib); err != nil {
		return payroll.PayrollEntry{}, err
	}
	if err := insertPayslip(ctx, tx, slip); err != nil {
		return payroll.PayrollEntry{}, err
	}
	if err := tx.Commit(); err != nil {
		return payroll.PayrollEntry{}, err
	}
	return entry, nil
}

func insertEntry(ctx context.Context, tx *sql.Tx, e payroll.PayrollEntry) error {
	allowances, _ := json.Marshal(e.Allowances)
	deductions, _ := json.Marshal(e.Deductions)

	_, err := tx.ExecContext(ctx, `
		INSERT INTO payroll_entries
		(id, run_id, employee_id, employee_name, base_pay, overtime_pay,
		 night_pay, holiday_pay, allowances_json, deductions_json, gross, net,
		 flagged, is_finalized, version, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.RunID, e.EmployeeID, e.EmployeeName,
		e.BasePay.String(), e.OvertimePay.String(), e.NightPay.String(),
		e.HolidayPay.String(), string(allowances), string(deductions),
		e.Gross.String(), e.Net.String(),
		boolToInt(e.Flagged), boolToInt(e.IsFinalized), e.Version,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("entry exists for employee %s in run %s", e.EmployeeID, e.RunID)
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func insertContributions(ctx context.Context, tx *sql.Tx, c payroll.ContributionSet) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO mandatory_contributions
		(id, employee_id, payroll_entry_id, sss_employee, sss_employer,
		 philhealth_employee, philhealth_employer, pagibig_employee,
		 pagibig_employer, total_employee, total_employer, base_salary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.EmployeeID, c.EntryID,
		c.SSSEmployee.String(), c.SSSEmployer.String(),
		c.PhilEmployee.String(), c.PhilEmployer.String(),
		c.PagEmployee.String(), c.PagEmployer.String(),
		c.TotalEmployee.String(), c.TotalEmployer.String(),
		c.BaseSalary.String(),
	)
	if err != nil {
		return fmt.Errorf("insert contributions: %w", err)
	}
	return nil
}

func insertPayslip(ctx context.Context, tx *sql.Tx, p payroll.Payslip) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO payslips (id, payroll_entry_id, employee_id, document_json, version, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.EntryID, p.EmployeeID, p.Document, p.Version,
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return payroll.ErrPayslipExists
		}
		return fmt.Errorf("insert payslip: %w", err)
	}
	return nil
}

// GetEntry retrieves one entry by ID, or nil.
func (s *Store) GetEntry(ctx context.Context, id string) (*payroll.PayrollEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.queryEntries(ctx, entryColumns+" FROM payroll_entries WHERE id = ?", id)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0], nil
}

// FindEntry returns the entry for (run, employee), or nil. The seeder's
// natural-key lookup.
func (s *Store) FindEntry(ctx context.Context, runID, employeeID string) (*payroll.PayrollEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.queryEntries(ctx,
		entryColumns+" FROM payroll_entries WHERE run_id = ? AND employee_id = ?",
		runID, employeeID)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0], nil
}

// ListEntriesByRun returns a run's entries ordered by employee name.
func (s *Store) ListEntriesByRun(ctx context.Context, runID string) ([]payroll.PayrollEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryEntries(ctx,
		entryColumns+" FROM payroll_entries WHERE run_id = ? ORDER BY employee_name",
		runID)
}

const entryColumns = `SELECT id, run_id, employee_id, employee_name, base_pay,
	overtime_pay, night_pay, holiday_pay, allowances_json, deductions_json,
	gross, net, flagged, is_finalized, version, created_at`

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]payroll.PayrollEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []payroll.PayrollEntry
	for rows.Next() {
		var e payroll.PayrollEntry
		var base, overtime, night, holiday, gross, net, createdAt string
		var allowances, deductions sql.NullString
		var flagged, finalized int

		err := rows.Scan(&e.ID, &e.RunID, &e.EmployeeID, &e.EmployeeName,
			&base, &overtime, &night, &holiday, &allowances, &deductions,
			&gross, &net, &flagged, &finalized, &e.Version, &createdAt)
		if err != nil {
			return nil, err
		}
		e.BasePay = parseDecimal(base)
		e.OvertimePay = parseDecimal(overtime)
		e.NightPay = parseDecimal(night)
		e.HolidayPay = parseDecimal(holiday)
		e.Gross = parseDecimal(gross)
		e.Net = parseDecimal(net)
		e.Flagged = flagged != 0
		e.IsFinalized = finalized != 0
		e.CreatedAt = parseTimestamp(createdAt)
		if allowances.Valid && allowances.String != "" && allowances.String != "null" {
			if err := json.Unmarshal([]byte(allowances.String), &e.Allowances); err != nil {
				return nil, fmt.Errorf("decode allowances for entry %s: %w", e.ID, err)
			}
		}
		if deductions.Valid && deductions.String != "" && deductions.String != "null" {
			if err := json.Unmarshal([]byte(deductions.String), &e.Deductions); err != nil {
				return nil, fmt.Errorf("decode deductions for entry %s: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// =============================================================================
// CONTRIBUTION + PAYSLIP READS
// =============================================================================

// GetContributionsByEntry returns the contribution row for an entry, or nil.
func (s *Store) GetContributionsByEntry(ctx context.Context, entryID string) (*payroll.ContributionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c payroll.ContributionSet
	var sssEE, sssER, philEE, philER, pagEE, pagER, totalEE, totalER, base string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, payroll_entry_id, sss_employee, sss_employer,
		       philhealth_employee, philhealth_employer, pagibig_employee,
		       pagibig_employer, total_employee, total_employer, base_salary
		FROM mandatory_contributions WHERE payroll_entry_id = ?`, entryID,
	).Scan(&c.ID, &c.EmployeeID, &c.EntryID, &sssEE, &sssER,
		&philEE, &philER, &pagEE, &pagER, &totalEE, &totalER, &base)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.SSSEmployee = parseDecimal(sssEE)
	c.SSSEmployer = parseDecimal(sssER)
	c.PhilEmployee = parseDecimal(philEE)
	c.PhilEmployer = parseDecimal(philER)
	c.PagEmployee = parseDecimal(pagEE)
	c.PagEmployer = parseDecimal(pagER)
	c.TotalEmployee = parseDecimal(totalEE)
	c.TotalEmployer = parseDecimal(totalER)
	c.BaseSalary = parseDecimal(base)
	return &c, nil
}

// GetPayslipByEntry returns the payslip frozen for an entry, or nil.
func (s *Store) GetPayslipByEntry(ctx context.Context, entryID string) (*payroll.Payslip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p payroll.Payslip
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, payroll_entry_id, employee_id, document_json, version, created_at
		FROM payslips WHERE payroll_entry_id = ?`, entryID,
	).Scan(&p.ID, &p.EntryID, &p.EmployeeID, &p.Document, &p.Version, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = parseTimestamp(createdAt)
	return &p, nil
}

// ListPayslipsByEmployee returns an employee's payslips, newest first.
func (s *Store) ListPayslipsByEmployee(ctx context.Context, employeeID string) ([]payroll.Payslip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, payroll_entry_id, employee_id, document_json, version, created_at
		FROM payslips WHERE employee_id = ? ORDER BY created_at DESC`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slips []payroll.Payslip
	for rows.Next() {
		var p payroll.Payslip
		var createdAt string
		if err := rows.Scan(&p.ID, &p.EntryID, &p.EmployeeID, &p.Document, &p.Version, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = parseTimestamp(createdAt)
		slips = append(slips, p)
	}
	return slips, rows.Err()
}
