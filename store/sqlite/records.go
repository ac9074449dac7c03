/*
records.go - Attendance and leave persistence

PURPOSE:
  The accruing per-employee records: daily attendance (unique per
  employee-day), leave requests with their approval lifecycle, and annual
  leave balances. Leave approval runs in one transaction so the status
  change and the balance debit commit or roll back together.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// ATTENDANCE
// =============================================================================

// CreateAttendance inserts one employee-day. A second row for the same
// (employee, date) returns DuplicateAttendanceError.
func (s *Store) CreateAttendance(ctx context.Context, r payroll.AttendanceRecord) (payroll.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = newID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance
		(id, employee_id, date, time_in, time_out, shift, status,
		 regular_hours, overtime_hours, night_hours, late_minutes,
		 undertime_minutes, is_holiday, holiday_id, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.EmployeeID, r.Date.Format(dateLayout),
		nullString(r.TimeIn), nullString(r.TimeOut),
		string(r.Shift), string(r.Status),
		r.RegularHours.String(), r.OvertimeHours.String(), r.NightHours.String(),
		r.LateMinutes.String(), r.UndertimeMinutes.String(),
		boolToInt(r.IsHoliday), nullString(r.HolidayID), nullString(r.Notes),
		r.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return payroll.AttendanceRecord{}, &payroll.DuplicateAttendanceError{
				EmployeeID: r.EmployeeID, Date: r.Date,
			}
		}
		return payroll.AttendanceRecord{}, fmt.Errorf("create attendance: %w", err)
	}
	return r, nil
}

// GetAttendanceByDay returns the record for one employee-day, or nil. The
// seeder's lookup-before-insert check.
func (s *Store) GetAttendanceByDay(ctx context.Context, employeeID string, date time.Time) (*payroll.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		attendanceColumns+" FROM attendance WHERE employee_id = ? AND date = ?",
		employeeID, date.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	r, err := scanAttendance(rows)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListAttendanceInPeriod returns one employee's records inside an inclusive
// date range, ordered by date. This is the engine's attendance input.
func (s *Store) ListAttendanceInPeriod(ctx context.Context, employeeID string, period payroll.Period) ([]payroll.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		attendanceColumns+` FROM attendance
		WHERE employee_id = ? AND date >= ? AND date <= ?
		ORDER BY date`,
		employeeID, period.Start.Format(dateLayout), period.End.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []payroll.AttendanceRecord
	for rows.Next() {
		r, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

const attendanceColumns = `SELECT id, employee_id, date, time_in, time_out,
	shift, status, regular_hours, overtime_hours, night_hours, late_minutes,
	undertime_minutes, is_holiday, holiday_id, notes, created_at`

func scanAttendance(row rowScanner) (payroll.AttendanceRecord, error) {
	var r payroll.AttendanceRecord
	var date, shift, status, createdAt string
	var timeIn, timeOut, holidayID, notes sql.NullString
	var regular, overtime, night, late, undertime string
	var isHoliday int

	err := row.Scan(&r.ID, &r.EmployeeID, &date, &timeIn, &timeOut,
		&shift, &status, &regular, &overtime, &night, &late,
		&undertime, &isHoliday, &holidayID, &notes, &createdAt)
	if err != nil {
		return payroll.AttendanceRecord{}, err
	}

	r.Date = parseDate(date)
	r.TimeIn = timeIn.String
	r.TimeOut = timeOut.String
	r.Shift = payroll.ShiftType(shift)
	r.Status = payroll.AttendanceStatus(status)
	r.RegularHours = parseDecimal(regular)
	r.OvertimeHours = parseDecimal(overtime)
	r.NightHours = parseDecimal(night)
	r.LateMinutes = parseDecimal(late)
	r.UndertimeMinutes = parseDecimal(undertime)
	r.IsHoliday = isHoliday != 0
	r.HolidayID = holidayID.String
	r.Notes = notes.String
	r.CreatedAt = parseTimestamp(createdAt)
	return r, nil
}

// =============================================================================
// LEAVES
// =============================================================================

// CreateLeave inserts a pending leave request.
func (s *Store) CreateLeave(ctx context.Context, l payroll.Leave) (payroll.Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !(payroll.Period{Start: l.StartDate, End: l.EndDate}).Valid() {
		return payroll.Leave{}, payroll.ErrInvalidPeriod
	}
	if l.ID == "" {
		l.ID = newID()
	}
	if l.Status == "" {
		l.Status = payroll.LeavePending
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leaves
		(id, employee_id, leave_type, start_date, end_date, days_count,
		 reason, status, approved_by, approved_at, rejection_reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.EmployeeID, string(l.Type),
		l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout),
		l.DaysCount, nullString(l.Reason), string(l.Status),
		nullString(l.ApprovedBy), nil, nullString(l.RejectionReason),
		l.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return payroll.Leave{}, fmt.Errorf("create leave: %w", err)
	}
	return l, nil
}

// GetLeave retrieves a leave request by ID. Returns nil when absent.
func (s *Store) GetLeave(ctx context.Context, id string) (*payroll.Leave, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, leaveColumns+" FROM leaves WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	l, err := scanLeave(rows)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListLeavesByEmployee returns an employee's requests, newest first.
func (s *Store) ListLeavesByEmployee(ctx context.Context, employeeID string) ([]payroll.Leave, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryLeaves(ctx,
		leaveColumns+" FROM leaves WHERE employee_id = ? ORDER BY created_at DESC",
		employeeID)
}

// ListApprovedLeavesInPeriod returns approved leaves overlapping a period
// for one employee. This is the engine's leave input.
func (s *Store) ListApprovedLeavesInPeriod(ctx context.Context, employeeID string, period payroll.Period) ([]payroll.Leave, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryLeaves(ctx,
		leaveColumns+` FROM leaves
		WHERE employee_id = ? AND status = ?
		  AND start_date <= ? AND end_date >= ?
		ORDER BY start_date`,
		employeeID, string(payroll.LeaveApproved),
		period.End.Format(dateLayout), period.Start.Format(dateLayout))
}

func (s *Store) queryLeaves(ctx context.Context, query string, args ...any) ([]payroll.Leave, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []payroll.Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

const leaveColumns = `SELECT id, employee_id, leave_type, start_date, end_date,
	days_count, reason, status, approved_by, approved_at, rejection_reason,
	created_at`

func scanLeave(row rowScanner) (payroll.Leave, error) {
	var l payroll.Leave
	var lType, start, end, status, createdAt string
	var reason, approvedBy, approvedAt, rejection sql.NullString

	err := row.Scan(&l.ID, &l.EmployeeID, &lType, &start, &end,
		&l.DaysCount, &reason, &status, &approvedBy, &approvedAt,
		&rejection, &createdAt)
	if err != nil {
		return payroll.Leave{}, err
	}

	l.Type = payroll.LeaveType(lType)
	l.StartDate = parseDate(start)
	l.EndDate = parseDate(end)
	l.Reason = reason.String
	l.Status = payroll.LeaveStatus(status)
	l.ApprovedBy = approvedBy.String
	if approvedAt.Valid {
		t := parseTimestamp(approvedAt.String)
		l.ApprovedAt = &t
	}
	l.RejectionReason = rejection.String
	l.CreatedAt = parseTimestamp(createdAt)
	return l, nil
}

// ApproveLeave moves a pending request to approved and debits the balance
// in the same transaction. Balance-checked types fail with
// ErrInsufficientLeaveBalance when the credit runs out.
func (s *Store) ApproveLeave(ctx context.Context, leaveID, approverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin approve: %w", err)
	}
	defer tx.Rollback()

	l, err := s.leaveForUpdate(ctx, tx, leaveID)
	if err != nil {
		return err
	}
	if !l.CanTransition(payroll.LeaveApproved) {
		return payroll.ErrInvalidLeaveTransition
	}

	if payroll.RequiresBalance(l.Type) {
		balance, err := s.balanceForUpdate(ctx, tx, l.EmployeeID, l.StartDate.Year())
		if err != nil {
			return err
		}
		if err := balance.Deduct(l.Type, l.DaysCount); err != nil {
			return err
		}
		if err := s.writeBalance(ctx, tx, balance); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE leaves SET status = ?, approved_by = ?, approved_at = ?
		WHERE id = ?`,
		string(payroll.LeaveApproved), approverID, nowRFC3339(), leaveID)
	if err != nil {
		return fmt.Errorf("approve leave: %w", err)
	}
	return tx.Commit()
}

// RejectLeave moves a pending request to rejected with a reason.
func (s *Store) RejectLeave(ctx context.Context, leaveID, approverID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reject: %w", err)
	}
	defer tx.Rollback()

	l, err := s.leaveForUpdate(ctx, tx, leaveID)
	if err != nil {
		return err
	}
	if !l.CanTransition(payroll.LeaveRejected) {
		return payroll.ErrInvalidLeaveTransition
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE leaves SET status = ?, approved_by = ?, approved_at = ?, rejection_reason = ?
		WHERE id = ?`,
		string(payroll.LeaveRejected), approverID, nowRFC3339(), reason, leaveID)
	if err != nil {
		return fmt.Errorf("reject leave: %w", err)
	}
	return tx.Commit()
}

func (s *Store) leaveForUpdate(ctx context.Context, tx *sql.Tx, id string) (payroll.Leave, error) {
	rows, err := tx.QueryContext(ctx, leaveColumns+" FROM leaves WHERE id = ?", id)
	if err != nil {
		return payroll.Leave{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return payroll.Leave{}, err
		}
		return payroll.Leave{}, fmt.Errorf("leave %s not found", id)
	}
	return scanLeave(rows)
}

// =============================================================================
// LEAVE BALANCES
// =============================================================================

// SaveLeaveBalance upserts the (employee, year) balance row.
func (s *Store) SaveLeaveBalance(ctx context.Context, b payroll.LeaveBalance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeBalance(ctx, s.db, b)
}

type dbExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) writeBalance(ctx context.Context, db dbExecer, b payroll.LeaveBalance) error {
	if b.ID == "" {
		b.ID = newID()
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO leave_balances
		(id, employee_id, year, sick_balance, vacation_balance, sick_used, vacation_used, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, year) DO UPDATE SET
			sick_balance = excluded.sick_balance,
			vacation_balance = excluded.vacation_balance,
			sick_used = excluded.sick_used,
			vacation_used = excluded.vacation_used,
			updated_at = excluded.updated_at`,
		b.ID, b.EmployeeID, b.Year,
		b.SickBalance.String(), b.VacationBalance.String(),
		b.SickUsed.String(), b.VacationUsed.String(), nowRFC3339(),
	)
	return err
}

// GetLeaveBalance returns the (employee, year) balance, or nil.
func (s *Store) GetLeaveBalance(ctx context.Context, employeeID string, year int) (*payroll.LeaveBalance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.readBalance(ctx, s.db, employeeID, year)
}

type dbQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) readBalance(ctx context.Context, db dbQuerier, employeeID string, year int) (*payroll.LeaveBalance, error) {
	var b payroll.LeaveBalance
	var sick, vacation, sickUsed, vacationUsed, updatedAt string
	err := db.QueryRowContext(ctx, `
		SELECT id, employee_id, year, sick_balance, vacation_balance,
		       sick_used, vacation_used, updated_at
		FROM leave_balances WHERE employee_id = ? AND year = ?`,
		employeeID, year,
	).Scan(&b.ID, &b.EmployeeID, &b.Year, &sick, &vacation,
		&sickUsed, &vacationUsed, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.SickBalance = parseDecimal(sick)
	b.VacationBalance = parseDecimal(vacation)
	b.SickUsed = parseDecimal(sickUsed)
	b.VacationUsed = parseDecimal(vacationUsed)
	b.UpdatedAt = parseTimestamp(updatedAt)
	return &b, nil
}

func (s *Store) balanceForUpdate(ctx context.Context, tx *sql.Tx, employeeID string, year int) (payroll.LeaveBalance, error) {
	b, err := s.readBalance(ctx, tx, employeeID, year)
	if err != nil {
		return payroll.LeaveBalance{}, err
	}
	if b == nil {
		return payroll.NewAnnualBalance(employeeID, year), nil
	}
	return *b, nil
}
