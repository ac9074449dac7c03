/*
Package payroll contains the core payroll computation engine and the
domain records it operates on.

PURPOSE:
  This package is pure computation: given an employee, a pay period, and the
  attendance/leave records inside that period, it produces one PayrollEntry
  and its immutable Payslip snapshot. Persistence lives in store/sqlite;
  HTTP lives in api. Nothing in here touches a database.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee/AttendanceRecord/Leave/Holiday: the inputs to a computation
  - PayrollRun/PayrollEntry/Payslip: the outputs
  - ContributionSet: statutory shares (employee vs employer) per scheme
  - All money is decimal.Decimal - never float64

DESIGN PRINCIPLES:
  1. Precision: decimal arithmetic end to end, rounded to centavos at the edges
  2. Immutability: finalized entries and generated payslips are never edited
  3. Injected configuration: bracket tables come from the caller, not constants

SEE ALSO:
  - engine.go: the computation itself
  - contributions.go: statutory bracket lookups
  - tax.go: progressive withholding tax
  - period.go: semi-monthly pay periods
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY HELPERS
// =============================================================================

// Peso builds a decimal amount from a float literal. Test/seed convenience;
// computed values should stay in decimal space.
func Peso(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// Round2 rounds to centavos. Applied once per output field, not mid-chain.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// SumValues totals a map of named amounts (allowances, deductions).
func SumValues(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}

// =============================================================================
// ENUMERATIONS
// =============================================================================

type SalaryType string

const (
	SalaryHourly  SalaryType = "hourly"
	SalaryDaily   SalaryType = "daily"
	SalaryMonthly SalaryType = "monthly"
)

func (t SalaryType) Valid() bool {
	switch t {
	case SalaryHourly, SalaryDaily, SalaryMonthly:
		return true
	}
	return false
}

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

type ShiftType string

const (
	ShiftDay   ShiftType = "day"
	ShiftNight ShiftType = "night"
	ShiftMixed ShiftType = "mixed"
)

type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "present"
	AttendanceLate      AttendanceStatus = "late"
	AttendanceUndertime AttendanceStatus = "undertime"
	AttendanceHalfDay   AttendanceStatus = "half_day"
	AttendanceAbsent    AttendanceStatus = "absent"
)

type LeaveType string

const (
	LeaveSick      LeaveType = "sick"
	LeaveVacation  LeaveType = "vacation"
	LeaveMaternity LeaveType = "maternity"
	LeaveUnpaid    LeaveType = "unpaid"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

type HolidayType string

const (
	HolidayRegular HolidayType = "regular"
	HolidaySpecial HolidayType = "special"
)

type RunType string

const (
	RunWeekly      RunType = "weekly"
	RunSemiMonthly RunType = "semi-monthly"
	RunMonthly     RunType = "monthly"
)

type RunStatus string

const (
	RunDraft     RunStatus = "draft"
	RunFinalized RunStatus = "finalized"
	RunArchived  RunStatus = "archived"
)

type UserRole string

const (
	RoleSuperAdmin UserRole = "superadmin"
	RoleAdmin      UserRole = "admin"
)

// =============================================================================
// REFERENCE DATA
// =============================================================================

// User is an application operator. Authentication is out of scope for this
// service; users exist as reference rows (who approved a leave, who ran a
// payroll) with a uniquely-keyed email.
type User struct {
	ID             string
	Email          string
	Name           string
	Role           UserRole
	HashedPassword string
	CreatedAt      time.Time
}

// CompanyProfile is a single-row table identified by a fixed ID.
type CompanyProfile struct {
	ID            string
	CompanyName   string
	Address       string
	ContactNumber string
	Email         string
	TaxID         string
	UpdatedAt     time.Time
}

// Employee is long-lived reference data. Salary type is fixed at creation;
// the rate must be positive.
type Employee struct {
	ID            string
	Name          string
	Email         string
	Contact       string
	Role          string
	Department    string
	SalaryType    SalaryType
	SalaryRate    decimal.Decimal
	Allowances    map[string]decimal.Decimal // added verbatim to gross
	OvertimeRate  decimal.Decimal            // multiplier, e.g. 1.25
	NightRate     decimal.Decimal            // multiplier, e.g. 1.10
	Status        EmployeeStatus
	HireDate      time.Time
	CreatedAt     time.Time
}

// HourlyRate derives the per-hour rate used for overtime and late/undertime
// deductions: monthly salaries are spread over the standard month
// (22 days x 8 hours), daily rates over the standard day.
func (e Employee) HourlyRate() decimal.Decimal {
	switch e.SalaryType {
	case SalaryMonthly:
		return e.SalaryRate.Div(decimal.NewFromInt(StandardMonthlyDays)).Div(decimal.NewFromInt(StandardDailyHours))
	case SalaryDaily:
		return e.SalaryRate.Div(decimal.NewFromInt(StandardDailyHours))
	default:
		return e.SalaryRate
	}
}

// DailyRate derives the per-day rate used for absence deductions and
// holiday pay.
func (e Employee) DailyRate() decimal.Decimal {
	switch e.SalaryType {
	case SalaryMonthly:
		return e.SalaryRate.Div(decimal.NewFromInt(StandardMonthlyDays))
	case SalaryHourly:
		return e.SalaryRate.Mul(decimal.NewFromInt(StandardDailyHours))
	default:
		return e.SalaryRate
	}
}

// MonthlyEquivalent converts any salary type to a monthly base, which is what
// the statutory bracket tables are published against.
func (e Employee) MonthlyEquivalent() decimal.Decimal {
	switch e.SalaryType {
	case SalaryMonthly:
		return e.SalaryRate
	case SalaryDaily:
		return e.SalaryRate.Mul(decimal.NewFromInt(StandardMonthlyDays))
	case SalaryHourly:
		return e.SalaryRate.Mul(decimal.NewFromInt(StandardDailyHours)).Mul(decimal.NewFromInt(StandardMonthlyDays))
	}
	return decimal.Zero
}

// Holiday is a calendar entry. Dates are unique; recurring holidays repeat on
// the same month/day every year.
type Holiday struct {
	ID          string
	Name        string
	Date        time.Time
	Type        HolidayType
	Description string
	Recurring   bool
}

// =============================================================================
// ACCRUING RECORDS
// =============================================================================

// AttendanceRecord is one employee-day. The (EmployeeID, Date) pair is unique;
// the store enforces it with a unique index.
type AttendanceRecord struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	TimeIn           string // "HH:MM", empty when absent
	TimeOut          string
	Shift            ShiftType
	Status           AttendanceStatus
	RegularHours     decimal.Decimal
	OvertimeHours    decimal.Decimal
	NightHours       decimal.Decimal
	LateMinutes      decimal.Decimal
	UndertimeMinutes decimal.Decimal
	IsHoliday        bool
	HolidayID        string
	Notes            string
	CreatedAt        time.Time
}

// Leave is a dated request. Status moves pending -> approved or
// pending -> rejected; nothing else.
type Leave struct {
	ID              string
	EmployeeID      string
	Type            LeaveType
	StartDate       time.Time
	EndDate         time.Time
	DaysCount       int
	Reason          string
	Status          LeaveStatus
	ApprovedBy      string
	ApprovedAt      *time.Time
	RejectionReason string
	CreatedAt       time.Time
}

// CanTransition reports whether a status change is legal.
func (l Leave) CanTransition(to LeaveStatus) bool {
	return l.Status == LeavePending && (to == LeaveApproved || to == LeaveRejected)
}

// LeaveBalance tracks annual credits per employee per year.
type LeaveBalance struct {
	ID              string
	EmployeeID      string
	Year            int
	SickBalance     decimal.Decimal
	VacationBalance decimal.Decimal
	SickUsed        decimal.Decimal
	VacationUsed    decimal.Decimal
	UpdatedAt       time.Time
}

// =============================================================================
// PAYROLL OUTPUTS
// =============================================================================

// PayrollRun is one pay period for the whole company. Periods must not
// overlap an existing run.
type PayrollRun struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Type      RunType
	Status    RunStatus
	CreatedAt time.Time
}

// PayrollEntry is the computed result for one employee in one run.
// net = base + overtime + nightshift + holiday + allowances - deductions.
// Deductions include statutory employee shares, withholding tax, and
// attendance deductions; the employer contribution share never reduces net.
type PayrollEntry struct {
	ID            string
	RunID         string
	EmployeeID    string
	EmployeeName  string
	BasePay       decimal.Decimal
	OvertimePay   decimal.Decimal
	NightPay      decimal.Decimal
	HolidayPay    decimal.Decimal
	Allowances    map[string]decimal.Decimal
	Deductions    map[string]decimal.Decimal
	Gross         decimal.Decimal
	Net           decimal.Decimal
	Flagged       bool // true when net was clamped to zero
	IsFinalized   bool
	Version       int
	CreatedAt     time.Time
}

// ContributionSet holds one payroll entry's statutory contributions,
// split into employee and employer shares per scheme.
type ContributionSet struct {
	ID            string
	EmployeeID    string
	EntryID       string
	SSSEmployee   decimal.Decimal
	SSSEmployer   decimal.Decimal
	PhilEmployee  decimal.Decimal
	PhilEmployer  decimal.Decimal
	PagEmployee   decimal.Decimal
	PagEmployer   decimal.Decimal
	TotalEmployee decimal.Decimal
	TotalEmployer decimal.Decimal
	BaseSalary    decimal.Decimal // monthly equivalent the brackets were applied to
}

// Payslip is the immutable snapshot of an entry at generation time. The
// document body is the serialized entry; once written it is never updated.
type Payslip struct {
	ID         string
	EntryID    string
	EmployeeID string
	Document   string // JSON snapshot of the entry
	Version    int
	CreatedAt  time.Time
}

// =============================================================================
// POLICY CONSTANTS
// =============================================================================
// Standard divisors used to convert between salary bases. These mirror the
// conventions of the statutory tables (22 working days, 8-hour day).

const (
	StandardMonthlyDays = 22
	StandardDailyHours  = 8

	// LateGraceMinutes is forgiven before any late deduction applies.
	LateGraceMinutes = 10

	// HalfDayHours: fewer worked hours than this marks the day half-day.
	HalfDayHours = 4
)
