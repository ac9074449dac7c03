/*
reference.go - Reference data persistence

PURPOSE:
  Users, the company profile, employees, holidays, and the yearly config
  documents. These are the tables the seeder fills first; everything else
  references them.
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

// CompanyProfileID keys the single company_profile row.
const CompanyProfileID = "company-profile"

// =============================================================================
// USERS
// =============================================================================

// CreateUser inserts a user. A duplicate email returns ErrDuplicateEmail.
func (s *Store) CreateUser(ctx context.Context, u payroll.User) (payroll.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, role, hashed_password, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, string(u.Role), u.HashedPassword,
		u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return payroll.User{}, payroll.ErrDuplicateEmail
		}
		return payroll.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetUserByEmail looks a user up by its natural key. Returns nil when absent.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*payroll.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u payroll.User
	var role, createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, role, hashed_password, created_at
		FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Email, &u.Name, &role, &u.HashedPassword, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Role = payroll.UserRole(role)
	u.CreatedAt = parseTimestamp(createdAt)
	return &u, nil
}

// ListUsers returns all users ordered by email.
func (s *Store) ListUsers(ctx context.Context) ([]payroll.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, name, role, hashed_password, created_at
		FROM users ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []payroll.User
	for rows.Next() {
		var u payroll.User
		var role, createdAt string
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &role, &u.HashedPassword, &createdAt); err != nil {
			return nil, err
		}
		u.Role = payroll.UserRole(role)
		u.CreatedAt = parseTimestamp(createdAt)
		users = append(users, u)
	}
	return users, rows.Err()
}

// =============================================================================
// COMPANY PROFILE - single row, fixed ID
// =============================================================================

// SaveCompanyProfile upserts the single company row.
func (s *Store) SaveCompanyProfile(ctx context.Context, p payroll.CompanyProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO company_profile (id, company_name, address, contact_number, email, tax_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company_name = excluded.company_name,
			address = excluded.address,
			contact_number = excluded.contact_number,
			email = excluded.email,
			tax_id = excluded.tax_id,
			updated_at = excluded.updated_at`,
		CompanyProfileID, p.CompanyName, p.Address, p.ContactNumber,
		p.Email, p.TaxID, nowRFC3339(),
	)
	return err
}

// GetCompanyProfile returns the company row, or nil when never saved.
func (s *Store) GetCompanyProfile(ctx context.Context) (*payroll.CompanyProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p payroll.CompanyProfile
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, company_name, address, contact_number, email, tax_id, updated_at
		FROM company_profile WHERE id = ?`, CompanyProfileID,
	).Scan(&p.ID, &p.CompanyName, &p.Address, &p.ContactNumber, &p.Email, &p.TaxID, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.UpdatedAt = parseTimestamp(updatedAt)
	return &p, nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// CreateEmployee inserts an employee. Rates must be positive; a duplicate
// email returns ErrDuplicateEmail.
func (s *Store) CreateEmployee(ctx context.Context, e payroll.Employee) (payroll.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.SalaryRate.Sign() <= 0 {
		return payroll.Employee{}, payroll.ErrInvalidSalaryRate
	}
	if !e.SalaryType.Valid() {
		return payroll.Employee{}, fmt.Errorf("invalid salary type %q", e.SalaryType)
	}
	if e.ID == "" {
		e.ID = newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Status == "" {
		e.Status = payroll.EmployeeActive
	}
	allowances, _ := json.Marshal(e.Allowances)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees
		(id, name, email, contact, role, department, salary_type, salary_rate,
		 allowances_json, overtime_rate, night_rate, status, hire_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Email, e.Contact, e.Role, e.Department,
		string(e.SalaryType), e.SalaryRate.String(), string(allowances),
		e.OvertimeRate.String(), e.NightRate.String(), string(e.Status),
		e.HireDate.Format(dateLayout), e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return payroll.Employee{}, payroll.ErrDuplicateEmail
		}
		return payroll.Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return e, nil
}

// UpdateEmployee rewrites the mutable fields of an existing employee.
// Salary type is fixed at creation and is not updated here.
func (s *Store) UpdateEmployee(ctx context.Context, e payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.SalaryRate.Sign() <= 0 {
		return payroll.ErrInvalidSalaryRate
	}
	allowances, _ := json.Marshal(e.Allowances)
	res, err := s.db.ExecContext(ctx, `
		UPDATE employees SET
			name = ?, contact = ?, role = ?, department = ?,
			salary_rate = ?, allowances_json = ?, overtime_rate = ?,
			night_rate = ?, status = ?
		WHERE id = ?`,
		e.Name, e.Contact, e.Role, e.Department,
		e.SalaryRate.String(), string(allowances), e.OvertimeRate.String(),
		e.NightRate.String(), string(e.Status), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return payroll.ErrEmployeeNotFound
	}
	return nil
}

// GetEmployee retrieves an employee by ID. Returns ErrEmployeeNotFound when
// absent; callers never see sql.ErrNoRows.
func (s *Store) GetEmployee(ctx context.Context, id string) (payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.scanEmployee(s.db.QueryRowContext(ctx,
		employeeColumns+" FROM employees WHERE id = ?", id))
}

// GetEmployeeByEmail looks an employee up by its natural key. Returns nil
// when absent, which the seeder reads as "not yet seeded".
func (s *Store) GetEmployeeByEmail(ctx context.Context, email string) (*payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.scanEmployee(s.db.QueryRowContext(ctx,
		employeeColumns+" FROM employees WHERE email = ?", email))
	if err == payroll.ErrEmployeeNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEmployees returns employees ordered by name, optionally filtered by
// status ("" for all).
func (s *Store) ListEmployees(ctx context.Context, status payroll.EmployeeStatus) ([]payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := employeeColumns + " FROM employees"
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []payroll.Employee
	for rows.Next() {
		e, err := s.scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

const employeeColumns = `SELECT id, name, email, contact, role, department,
	salary_type, salary_rate, allowances_json, overtime_rate, night_rate,
	status, hire_date, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanEmployee(row rowScanner) (payroll.Employee, error) {
	var e payroll.Employee
	var contact, role, department, allowances sql.NullString
	var salaryType, salaryRate, otRate, nightRate, status, hireDate, createdAt string

	err := row.Scan(&e.ID, &e.Name, &e.Email, &contact, &role, &department,
		&salaryType, &salaryRate, &allowances, &otRate, &nightRate,
		&status, &hireDate, &createdAt)
	if err == sql.ErrNoRows {
		return payroll.Employee{}, payroll.ErrEmployeeNotFound
	}
	if err != nil {
		return payroll.Employee{}, err
	}

	e.Contact = contact.String
	e.Role = role.String
	e.Department = department.String
	e.SalaryType = payroll.SalaryType(salaryType)
	e.SalaryRate = parseDecimal(salaryRate)
	e.OvertimeRate = parseDecimal(otRate)
	e.NightRate = parseDecimal(nightRate)
	e.Status = payroll.EmployeeStatus(status)
	e.HireDate = parseDate(hireDate)
	e.CreatedAt = parseTimestamp(createdAt)
	if allowances.Valid && allowances.String != "" && allowances.String != "null" {
		if err := json.Unmarshal([]byte(allowances.String), &e.Allowances); err != nil {
			return payroll.Employee{}, fmt.Errorf("decode allowances for %s: %w", e.ID, err)
		}
	}
	return e, nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// CreateHoliday inserts a calendar entry. Dates are unique; the seeder
// checks GetHolidayByDate first, so a collision here is a real error.
func (s *Store) CreateHoliday(ctx context.Context, h payroll.Holiday) (payroll.Holiday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.ID == "" {
		h.ID = newID()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO holidays (id, name, date, holiday_type, description, recurring)
		VALUES (?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Date.Format(dateLayout), string(h.Type),
		h.Description, boolToInt(h.Recurring),
	)
	if err != nil {
		return payroll.Holiday{}, fmt.Errorf("create holiday: %w", err)
	}
	return h, nil
}

// GetHolidayByDate returns the holiday on an exact date, or nil.
func (s *Store) GetHolidayByDate(ctx context.Context, date time.Time) (*payroll.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var h payroll.Holiday
	var hType, hDate string
	var description sql.NullString
	var recurring int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, date, holiday_type, description, recurring
		FROM holidays WHERE date = ?`, date.Format(dateLayout),
	).Scan(&h.ID, &h.Name, &hDate, &hType, &description, &recurring)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	h.Date = parseDate(hDate)
	h.Type = payroll.HolidayType(hType)
	h.Description = description.String
	h.Recurring = recurring != 0
	return &h, nil
}

// ListHolidays returns the whole calendar ordered by date.
func (s *Store) ListHolidays(ctx context.Context) ([]payroll.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, date, holiday_type, description, recurring
		FROM holidays ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []payroll.Holiday
	for rows.Next() {
		var h payroll.Holiday
		var hType, hDate string
		var description sql.NullString
		var recurring int
		if err := rows.Scan(&h.ID, &h.Name, &hDate, &hType, &description, &recurring); err != nil {
			return nil, err
		}
		h.Date = parseDate(hDate)
		h.Type = payroll.HolidayType(hType)
		h.Description = description.String
		h.Recurring = recurring != 0
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// DeleteHoliday removes a calendar entry.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	return err
}

// =============================================================================
// CONFIG DOCUMENTS - bracket tables per year
// =============================================================================

// SaveBenefitsConfig upserts the contribution tables for a year. The
// document must parse before it is accepted.
func (s *Store) SaveBenefitsConfig(ctx context.Context, year int, tablesJSON string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := payroll.ParseContributionTables(tablesJSON); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO benefits_config (id, year, tables_json, is_active, created_at)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(year) DO UPDATE SET
			tables_json = excluded.tables_json,
			is_active = 1`,
		newID(), year, tablesJSON, nowRFC3339(),
	)
	return err
}

// GetBenefitsConfig returns the active contribution document for a year.
// A missing year is ErrMissingBenefitsConfig - there is no fallback table.
func (s *Store) GetBenefitsConfig(ctx context.Context, year int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc string
	err := s.db.QueryRowContext(ctx, `
		SELECT tables_json FROM benefits_config
		WHERE year = ? AND is_active = 1`, year,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return "", &payroll.MissingConfigError{Kind: "benefits", Year: year}
	}
	if err != nil {
		return "", err
	}
	return doc, nil
}

// SaveTaxConfig upserts the withholding schedule for a year.
func (s *Store) SaveTaxConfig(ctx context.Context, year int, bracketsJSON string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := payroll.ParseTaxTable(bracketsJSON); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tax_config (id, tax_type, year, brackets_json, is_active, created_at)
		VALUES (?, 'withholding_tax', ?, ?, 1, ?)
		ON CONFLICT(tax_type, year) DO UPDATE SET
			brackets_json = excluded.brackets_json,
			is_active = 1`,
		newID(), year, bracketsJSON, nowRFC3339(),
	)
	return err
}

// GetTaxConfig returns the active withholding schedule for a year.
// A missing year is ErrMissingTaxConfig.
func (s *Store) GetTaxConfig(ctx context.Context, year int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc string
	err := s.db.QueryRowContext(ctx, `
		SELECT brackets_json FROM tax_config
		WHERE tax_type = 'withholding_tax' AND year = ? AND is_active = 1`, year,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return "", &payroll.MissingConfigError{Kind: "tax", Year: year}
	}
	if err != nil {
		return "", err
	}
	return doc, nil
}
