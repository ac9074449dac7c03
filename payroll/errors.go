/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All domain error types in one place. The store and API layers translate
  these to constraint handling and HTTP status codes respectively.

ERROR CATEGORIES:
  1. Configuration errors - missing bracket tables; fatal to a computation
  2. Uniqueness errors    - duplicate natural keys; seeder recovers by skipping
  3. Guard errors         - destructive operations refused
  4. Lifecycle errors     - immutability of finalized entries and payslips

USAGE:
  if errors.Is(err, payroll.ErrMissingTaxConfig) { ... }

  var overlap *payroll.OverlapError
  if errors.As(err, &overlap) { ... }
*/
package payroll

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - use with errors.Is()
// =============================================================================

var (
	// ErrMissingBenefitsConfig: no contribution table row for the period year.
	// The computation fails; no partial entry is persisted.
	ErrMissingBenefitsConfig = errors.New("benefits configuration missing for period")

	// ErrMissingTaxConfig: no withholding tax table row for the period year.
	ErrMissingTaxConfig = errors.New("tax configuration missing for period")

	// ErrOverlappingRun: the requested period overlaps an existing payroll run.
	// Rejected before any computation starts.
	ErrOverlappingRun = errors.New("payroll run period overlaps an existing run")

	// ErrDuplicateAttendance: an attendance row already exists for
	// (employee, date). The seeder treats this as "already seeded".
	ErrDuplicateAttendance = errors.New("attendance already recorded for employee and date")

	// ErrDuplicateEmail: a user with this email already exists.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrEntryFinalized: finalized payroll entries are immutable.
	ErrEntryFinalized = errors.New("payroll entry is finalized")

	// ErrPayslipExists: payslips are generated once and never replaced.
	ErrPayslipExists = errors.New("payslip already generated for entry")

	// ErrInvalidLeaveTransition: leave status only moves pending -> approved
	// or pending -> rejected.
	ErrInvalidLeaveTransition = errors.New("invalid leave status transition")

	// ErrInsufficientLeaveBalance: requested days exceed the remaining credit.
	ErrInsufficientLeaveBalance = errors.New("insufficient leave balance")

	// ErrInvalidPeriod: end date before start date.
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrEmployeeNotFound / ErrRunNotFound: referenced rows are missing.
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrRunNotFound      = errors.New("payroll run not found")

	// ErrInvalidSalaryRate: employee rates must be positive.
	ErrInvalidSalaryRate = errors.New("salary rate must be positive")

	// ErrProductionGuard: destructive reset refused in a production-like
	// environment, regardless of confirmation input.
	ErrProductionGuard = errors.New("reset refused: production environment detected")

	// ErrConfirmationMismatch: the typed confirmation phrase did not match.
	ErrConfirmationMismatch = errors.New("reset refused: confirmation phrase mismatch")
)

// =============================================================================
// STRUCTURED ERRORS - carry context
// =============================================================================

// OverlapError reports which existing run blocked a new period.
type OverlapError struct {
	Requested  Period
	ExistingID string
	Existing   Period
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("period %s overlaps run %s (%s)", e.Requested, e.ExistingID, e.Existing)
}

func (e *OverlapError) Unwrap() error { return ErrOverlappingRun }

// DuplicateAttendanceError identifies the colliding employee-day.
type DuplicateAttendanceError struct {
	EmployeeID string
	Date       time.Time
}

func (e *DuplicateAttendanceError) Error() string {
	return fmt.Sprintf("attendance exists for employee %s on %s", e.EmployeeID, e.Date.Format("2006-01-02"))
}

func (e *DuplicateAttendanceError) Unwrap() error { return ErrDuplicateAttendance }

// MissingConfigError names the table and year a computation needed.
type MissingConfigError struct {
	Kind string // "benefits" or "tax"
	Year int
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("%s configuration missing for year %d", e.Kind, e.Year)
}

func (e *MissingConfigError) Unwrap() error {
	if e.Kind == "tax" {
		return ErrMissingTaxConfig
	}
	return ErrMissingBenefitsConfig
}

// =============================================================================
// CLASSIFICATION HELPERS
// =============================================================================

// IsDuplicate reports whether the error is a natural-key collision. The
// seeder absorbs these locally by skipping the record.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateAttendance) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrPayslipExists)
}

// IsClientError reports whether the error maps to a 4xx response.
func IsClientError(err error) bool {
	return IsDuplicate(err) ||
		errors.Is(err, ErrOverlappingRun) ||
		errors.Is(err, ErrInvalidLeaveTransition) ||
		errors.Is(err, ErrInsufficientLeaveBalance) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidSalaryRate) ||
		errors.Is(err, ErrEntryFinalized)
}

// IsNotFound reports whether a referenced row was missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrRunNotFound)
}
