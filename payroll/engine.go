/*
engine.go - The payroll computation

PURPOSE:
  Turns one employee's attendance and leave inside a pay period into a
  PayrollEntry, its ContributionSet, and an immutable Payslip snapshot.
  The engine is pure: no database, no clock, no randomness. Bracket tables
  arrive pre-parsed in the Engine; callers resolve them from the config rows
  for the period's year and fail fast when a year has none.

COMPUTATION ORDER:
  base pay -> overtime -> night differential -> holiday pay -> allowances
  -> statutory contributions -> withholding tax -> attendance deductions
  -> net (clamped at zero, flagged when clamped)

DEDUCTION KEYS (the Deductions map):
  "sss", "philhealth", "pagibig"  employee contribution shares
  "withholding_tax"               monthly withholding
  "late", "undertime"             missed minutes at the hourly rate
  "absence"                       absent and unpaid-leave days (monthly only;
                                  daily/hourly employees simply earn nothing
                                  for days not worked)

SEE ALSO:
  - contributions.go / tax.go: the bracket walks
  - attendance.go: the per-period rollup
*/
package payroll

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Engine carries the bracket tables resolved for one config year.
type Engine struct {
	Contributions ContributionTables
	Tax           TaxTable
}

// NewEngine resolves the two config documents into an Engine. Either
// document missing (empty string) is fatal: computations never fall back to
// built-in rates.
func NewEngine(year int, benefitsDoc, taxDoc string) (Engine, error) {
	if benefitsDoc == "" {
		return Engine{}, &MissingConfigError{Kind: "benefits", Year: year}
	}
	if taxDoc == "" {
		return Engine{}, &MissingConfigError{Kind: "tax", Year: year}
	}
	tables, err := ParseContributionTables(benefitsDoc)
	if err != nil {
		return Engine{}, err
	}
	taxTable, err := ParseTaxTable(taxDoc)
	if err != nil {
		return Engine{}, err
	}
	return Engine{Contributions: tables, Tax: taxTable}, nil
}

// ComputeInput is everything one entry needs, fetched by the caller in a
// single transaction.
type ComputeInput struct {
	Employee   Employee
	Period     Period
	Attendance []AttendanceRecord // records dated inside the period
	Leaves     []Leave            // approved leaves overlapping the period
	Holidays   []Holiday          // company calendar, any date
}

// monthlyBaseDivisor spreads a monthly salary over calendar days when
// prorating a partial period.
var monthlyBaseDivisor = decimal.NewFromInt(30)

// ComputeEntry runs the full calculation for one employee. The returned
// entry carries no IDs; the store assigns them when persisting.
func (e Engine) ComputeEntry(in ComputeInput) (PayrollEntry, ContributionSet, error) {
	if !in.Period.Valid() {
		return PayrollEntry{}, ContributionSet{}, ErrInvalidPeriod
	}
	emp := in.Employee
	if emp.SalaryRate.Sign() <= 0 {
		return PayrollEntry{}, ContributionSet{}, ErrInvalidSalaryRate
	}

	totals := Aggregate(in.Attendance)
	hourly := emp.HourlyRate()
	daily := emp.DailyRate()

	// Step 1: base pay per salary type. Monthly salaries prorate over
	// calendar days; daily and hourly pay only for time actually worked.
	var base decimal.Decimal
	switch emp.SalaryType {
	case SalaryHourly:
		base = totals.HoursWorked.Mul(emp.SalaryRate)
	case SalaryDaily:
		base = decimal.NewFromInt(int64(totals.DaysWorked)).Mul(emp.SalaryRate)
	case SalaryMonthly:
		days := decimal.NewFromInt(int64(in.Period.CalendarDays()))
		base = emp.SalaryRate.Div(monthlyBaseDivisor).Mul(days)
	default:
		return PayrollEntry{}, ContributionSet{}, fmt.Errorf("unknown salary type %q", emp.SalaryType)
	}
	base = Round2(base)

	// Steps 2-3: overtime at the multiplier, night hours at the differential
	// above straight time (the straight-time portion is already in base).
	overtimePay := Round2(totals.OvertimeHours.Mul(hourly).Mul(emp.OvertimeRate))
	nightDiff := emp.NightRate.Sub(decimal.NewFromInt(1))
	if nightDiff.Sign() < 0 {
		nightDiff = decimal.Zero
	}
	nightPay := Round2(totals.NightHours.Mul(hourly).Mul(nightDiff))

	// Step 3b: holiday pay from the calendar and the holiday-flagged days.
	holidayPay := HolidayPay(emp, in.Period, in.Holidays, in.Attendance)

	// Step 4: allowances verbatim.
	allowanceTotal := Round2(SumValues(emp.Allowances))

	gross := Round2(base.Add(overtimePay).Add(nightPay).Add(holidayPay).Add(allowanceTotal))

	// Step 5: statutory contributions against the monthly equivalent. Only
	// the employee share enters the deductions map.
	contrib := e.Contributions.Compute(emp.MonthlyEquivalent())

	deductions := map[string]decimal.Decimal{
		"sss":        contrib.SSSEmployee,
		"philhealth": contrib.PhilEmployee,
		"pagibig":    contrib.PagEmployee,
	}

	// Step 6: withholding tax on gross less the tax-exempt contributions.
	tax := e.Tax.MonthlyTax(gross, contrib.TotalEmployee)
	if tax.Sign() > 0 {
		deductions["withholding_tax"] = tax
	}

	// Step 7: attendance deductions. Absence only bites monthly salaries;
	// the other types never earned the missed time in the first place.
	if d := MinuteDeduction(totals.LateMinutes, hourly); d.Sign() > 0 {
		deductions["late"] = d
	}
	if d := MinuteDeduction(totals.UndertimeMinutes, hourly); d.Sign() > 0 {
		deductions["undertime"] = d
	}
	if emp.SalaryType == SalaryMonthly {
		missed := totals.AbsentDays + UnpaidLeaveDays(in.Leaves, in.Period, in.Holidays)
		if missed > 0 {
			deductions["absence"] = Round2(decimal.NewFromInt(int64(missed)).Mul(daily))
		}
	}

	// Step 8: net, clamped at zero. A clamp means deductions swallowed the
	// whole gross; the entry is flagged for review instead of going negative.
	totalDeductions := SumValues(deductions)
	net := Round2(gross.Sub(totalDeductions))
	flagged := false
	if net.Sign() < 0 {
		net = decimal.Zero
		flagged = true
	}

	entry := PayrollEntry{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		BasePay:      base,
		OvertimePay:  overtimePay,
		NightPay:     nightPay,
		HolidayPay:   holidayPay,
		Allowances:   emp.Allowances,
		Deductions:   deductions,
		Gross:        gross,
		Net:          net,
		Flagged:      flagged,
		Version:      1,
	}
	contrib.EmployeeID = emp.ID
	return entry, contrib, nil
}

// =============================================================================
// PAYSLIP SNAPSHOT
// =============================================================================

// payslipDocument is the serialized form frozen into a payslip. Field names
// are the public document format; changing them breaks stored payslips.
type payslipDocument struct {
	EmployeeID   string                     `json:"employee_id"`
	EmployeeName string                     `json:"employee_name"`
	PeriodStart  string                     `json:"period_start"`
	PeriodEnd    string                     `json:"period_end"`
	BasePay      decimal.Decimal            `json:"base_pay"`
	OvertimePay  decimal.Decimal            `json:"overtime_pay"`
	NightPay     decimal.Decimal            `json:"nightshift_pay"`
	HolidayPay   decimal.Decimal            `json:"holiday_pay"`
	Allowances   map[string]decimal.Decimal `json:"allowances,omitempty"`
	Deductions   map[string]decimal.Decimal `json:"deductions"`
	Gross        decimal.Decimal            `json:"gross"`
	Net          decimal.Decimal            `json:"net"`
	Flagged      bool                       `json:"flagged,omitempty"`
	GeneratedAt  string                     `json:"generated_at"`
}

// GeneratePayslip freezes an entry into its immutable document. The caller
// supplies the generation time so the snapshot is reproducible in tests.
func GeneratePayslip(entry PayrollEntry, period Period, now time.Time) (Payslip, error) {
	doc := payslipDocument{
		EmployeeID:   entry.EmployeeID,
		EmployeeName: entry.EmployeeName,
		PeriodStart:  period.Start.Format("2006-01-02"),
		PeriodEnd:    period.End.Format("2006-01-02"),
		BasePay:      entry.BasePay,
		OvertimePay:  entry.OvertimePay,
		NightPay:     entry.NightPay,
		HolidayPay:   entry.HolidayPay,
		Allowances:   entry.Allowances,
		Deductions:   entry.Deductions,
		Gross:        entry.Gross,
		Net:          entry.Net,
		Flagged:      entry.Flagged,
		GeneratedAt:  now.UTC().Format(time.RFC3339),
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return Payslip{}, fmt.Errorf("serialize payslip: %w", err)
	}
	return Payslip{
		EntryID:    entry.ID,
		EmployeeID: entry.EmployeeID,
		Document:   string(raw),
		Version:    entry.Version,
		CreatedAt:  now,
	}, nil
}
