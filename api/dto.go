/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  All amounts are serialized as decimal strings ("12750.00"), never floats.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - server.go: Route wiring
*/
package api

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Contact      string            `json:"contact,omitempty"`
	Role         string            `json:"role,omitempty"`
	Department   string            `json:"department,omitempty"`
	SalaryType   string            `json:"salary_type"`
	SalaryRate   decimal.Decimal   `json:"salary_rate"`
	Allowances   map[string]string `json:"allowances,omitempty"`
	OvertimeRate decimal.Decimal   `json:"overtime_rate"`
	NightRate    decimal.Decimal   `json:"night_rate"`
	Status       string            `json:"status"`
	HireDate     string            `json:"hire_date"`
	CreatedAt    time.Time         `json:"created_at"`
}

// CreateEmployeeRequest is the POST /api/employees body.
type CreateEmployeeRequest struct {
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Contact      string            `json:"contact"`
	Role         string            `json:"role"`
	Department   string            `json:"department"`
	SalaryType   string            `json:"salary_type"`
	SalaryRate   string            `json:"salary_rate"`
	Allowances   map[string]string `json:"allowances"`
	OvertimeRate string            `json:"overtime_rate"`
	NightRate    string            `json:"night_rate"`
	HireDate     string            `json:"hire_date"`
}

func toEmployeeDTO(e payroll.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Contact:      e.Contact,
		Role:         e.Role,
		Department:   e.Department,
		SalaryType:   string(e.SalaryType),
		SalaryRate:   e.SalaryRate,
		Allowances:   amountMap(e.Allowances),
		OvertimeRate: e.OvertimeRate,
		NightRate:    e.NightRate,
		Status:       string(e.Status),
		HireDate:     e.HireDate.Format("2006-01-02"),
		CreatedAt:    e.CreatedAt,
	}
}

func amountMap(m map[string]decimal.Decimal) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.StringFixed(2)
	}
	return out
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// RecordAttendanceRequest is the POST /api/attendance body. Hours and
// minutes are derived from the clock times when omitted.
type RecordAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	TimeIn     string `json:"time_in"`
	TimeOut    string `json:"time_out"`
	Shift      string `json:"shift"`
	Overtime   string `json:"overtime_hours"`
	NightHours string `json:"night_hours"`
	Notes      string `json:"notes"`
}

// AttendanceDTO represents one employee-day in responses.
type AttendanceDTO struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	Date             string          `json:"date"`
	TimeIn           string          `json:"time_in,omitempty"`
	TimeOut          string          `json:"time_out,omitempty"`
	Shift            string          `json:"shift"`
	Status           string          `json:"status"`
	RegularHours     decimal.Decimal `json:"regular_hours"`
	OvertimeHours    decimal.Decimal `json:"overtime_hours"`
	NightHours       decimal.Decimal `json:"night_hours"`
	LateMinutes      decimal.Decimal `json:"late_minutes"`
	UndertimeMinutes decimal.Decimal `json:"undertime_minutes"`
	IsHoliday        bool            `json:"is_holiday"`
	Notes            string          `json:"notes,omitempty"`
}

func toAttendanceDTO(r payroll.AttendanceRecord) AttendanceDTO {
	return AttendanceDTO{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		Date:             r.Date.Format("2006-01-02"),
		TimeIn:           r.TimeIn,
		TimeOut:          r.TimeOut,
		Shift:            string(r.Shift),
		Status:           string(r.Status),
		RegularHours:     r.RegularHours,
		OvertimeHours:    r.OvertimeHours,
		NightHours:       r.NightHours,
		LateMinutes:      r.LateMinutes,
		UndertimeMinutes: r.UndertimeMinutes,
		IsHoliday:        r.IsHoliday,
		Notes:            r.Notes,
	}
}

// =============================================================================
// LEAVES
// =============================================================================

// CreateLeaveRequest is the POST /api/leaves body.
type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

// RejectLeaveRequest carries the rejection reason.
type RejectLeaveRequest struct {
	Reason string `json:"reason"`
}

// LeaveDTO represents a leave request in responses.
type LeaveDTO struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	Type            string `json:"type"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	DaysCount       int    `json:"days_count"`
	Reason          string `json:"reason,omitempty"`
	Status          string `json:"status"`
	ApprovedBy      string `json:"approved_by,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

func toLeaveDTO(l payroll.Leave) LeaveDTO {
	return LeaveDTO{
		ID:              l.ID,
		EmployeeID:      l.EmployeeID,
		Type:            string(l.Type),
		StartDate:       l.StartDate.Format("2006-01-02"),
		EndDate:         l.EndDate.Format("2006-01-02"),
		DaysCount:       l.DaysCount,
		Reason:          l.Reason,
		Status:          string(l.Status),
		ApprovedBy:      l.ApprovedBy,
		RejectionReason: l.RejectionReason,
	}
}

// LeaveBalanceDTO reports remaining and used credits for a year.
type LeaveBalanceDTO struct {
	EmployeeID      string          `json:"employee_id"`
	Year            int             `json:"year"`
	SickBalance     decimal.Decimal `json:"sick_balance"`
	VacationBalance decimal.Decimal `json:"vacation_balance"`
	SickUsed        decimal.Decimal `json:"sick_used"`
	VacationUsed    decimal.Decimal `json:"vacation_used"`
}

// =============================================================================
// HOLIDAYS AND COMPANY
// =============================================================================

// CreateHolidayRequest is the POST /api/holidays body.
type CreateHolidayRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Recurring   bool   `json:"recurring"`
}

// HolidayDTO represents a calendar entry in responses.
type HolidayDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Recurring   bool   `json:"recurring"`
}

func toHolidayDTO(h payroll.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date.Format("2006-01-02"),
		Type:        string(h.Type),
		Description: h.Description,
		Recurring:   h.Recurring,
	}
}

// CompanyProfileDTO doubles as the PUT /api/company body.
type CompanyProfileDTO struct {
	CompanyName   string `json:"company_name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	TaxID         string `json:"tax_id"`
}

// =============================================================================
// PAYROLL
// =============================================================================

// CreateRunRequest is the POST /api/payroll/runs body. The server computes
// entries for every active employee inside the period.
type CreateRunRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Type      string `json:"type"`
}

// RunDTO represents a payroll run in responses.
type RunDTO struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Entries   int    `json:"entries,omitempty"`
}

func toRunDTO(r payroll.PayrollRun) RunDTO {
	return RunDTO{
		ID:        r.ID,
		StartDate: r.StartDate.Format("2006-01-02"),
		EndDate:   r.EndDate.Format("2006-01-02"),
		Type:      string(r.Type),
		Status:    string(r.Status),
	}
}

// EntryDTO represents one computed payroll entry.
type EntryDTO struct {
	ID           string            `json:"id"`
	RunID        string            `json:"run_id"`
	EmployeeID   string            `json:"employee_id"`
	EmployeeName string            `json:"employee_name"`
	BasePay      decimal.Decimal   `json:"base_pay"`
	OvertimePay  decimal.Decimal   `json:"overtime_pay"`
	NightPay     decimal.Decimal   `json:"nightshift_pay"`
	HolidayPay   decimal.Decimal   `json:"holiday_pay"`
	Allowances   map[string]string `json:"allowances,omitempty"`
	Deductions   map[string]string `json:"deductions"`
	Gross        decimal.Decimal   `json:"gross"`
	Net          decimal.Decimal   `json:"net"`
	Flagged      bool              `json:"flagged"`
	IsFinalized  bool              `json:"is_finalized"`
}

func toEntryDTO(e payroll.PayrollEntry) EntryDTO {
	return EntryDTO{
		ID:           e.ID,
		RunID:        e.RunID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		BasePay:      e.BasePay,
		OvertimePay:  e.OvertimePay,
		NightPay:     e.NightPay,
		HolidayPay:   e.HolidayPay,
		Allowances:   amountMap(e.Allowances),
		Deductions:   amountMap(e.Deductions),
		Gross:        e.Gross,
		Net:          e.Net,
		Flagged:      e.Flagged,
		IsFinalized:  e.IsFinalized,
	}
}

// ContributionDTO breaks down one entry's statutory shares.
type ContributionDTO struct {
	EntryID       string          `json:"entry_id"`
	SSSEmployee   decimal.Decimal `json:"sss_employee"`
	SSSEmployer   decimal.Decimal `json:"sss_employer"`
	PhilEmployee  decimal.Decimal `json:"philhealth_employee"`
	PhilEmployer  decimal.Decimal `json:"philhealth_employer"`
	PagEmployee   decimal.Decimal `json:"pagibig_employee"`
	PagEmployer   decimal.Decimal `json:"pagibig_employer"`
	TotalEmployee decimal.Decimal `json:"total_employee"`
	TotalEmployer decimal.Decimal `json:"total_employer"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
}

// PayslipDTO wraps a frozen payslip document.
type PayslipDTO struct {
	ID         string          `json:"id"`
	EntryID    string          `json:"entry_id"`
	EmployeeID string          `json:"employee_id"`
	Document   json.RawMessage `json:"document"`
	Version    int             `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
}

// =============================================================================
// CONFIG AND ADMIN
// =============================================================================

// ConfigDTO carries a bracket-table document for one year.
type ConfigDTO struct {
	Year     int             `json:"year"`
	Document json.RawMessage `json:"document"`
}

// SummaryDTO carries dashboard counts.
type SummaryDTO struct {
	ActiveEmployees   int `json:"active_employees"`
	TotalEmployees    int `json:"total_employees"`
	AttendanceRecords int `json:"attendance_records"`
	LeaveRequests     int `json:"leave_requests"`
	Holidays          int `json:"holidays"`
	PayrollRuns       int `json:"payroll_runs"`
	Payslips          int `json:"payslips"`
}

// ResetRequest requires the typed confirmation phrase.
type ResetRequest struct {
	Confirmation string `json:"confirmation"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
