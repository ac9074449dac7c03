/*
leave.go - Leave balance arithmetic

PURPOSE:
  Pure balance math for leave requests: how many working days a request
  spans, whether the balance covers it, and the debit/credit applied when a
  request is approved or later rejected. The store persists the resulting
  LeaveBalance rows.

CREDIT POLICY:
  Sick and vacation leave draw on annual credits (15 days each); unused
  credits carry over up to a 30-day accumulation cap. Maternity and unpaid
  leave are not balance-checked. Unpaid leave days reduce pay instead; the
  engine handles that.
*/
package payroll

import "github.com/shopspring/decimal"

const (
	SickLeaveAnnual     = 15
	VacationLeaveAnnual = 15
	MaxAccumulatedLeave = 30
)

// LeaveWorkingDays counts the working days a leave request spans, skipping
// weekends and holidays.
func LeaveWorkingDays(l Leave, holidays []Holiday) int {
	return Period{Start: l.StartDate, End: l.EndDate}.WorkingDays(holidays)
}

// RequiresBalance reports whether the leave type draws on annual credits.
func RequiresBalance(t LeaveType) bool {
	return t == LeaveSick || t == LeaveVacation
}

// Available returns the remaining credit for a balance-checked leave type.
func (b LeaveBalance) Available(t LeaveType) decimal.Decimal {
	switch t {
	case LeaveSick:
		return b.SickBalance
	case LeaveVacation:
		return b.VacationBalance
	}
	return decimal.Zero
}

// Covers reports whether the balance can absorb a request of the given
// length. Non-balance-checked types always pass.
func (b LeaveBalance) Covers(t LeaveType, days int) bool {
	if !RequiresBalance(t) {
		return true
	}
	return b.Available(t).GreaterThanOrEqual(decimal.NewFromInt(int64(days)))
}

// Deduct debits an approved request from the balance. The caller must have
// checked Covers first; Deduct returns ErrInsufficientLeaveBalance otherwise.
func (b *LeaveBalance) Deduct(t LeaveType, days int) error {
	if !RequiresBalance(t) {
		return nil
	}
	if !b.Covers(t, days) {
		return ErrInsufficientLeaveBalance
	}
	d := decimal.NewFromInt(int64(days))
	switch t {
	case LeaveSick:
		b.SickBalance = b.SickBalance.Sub(d)
		b.SickUsed = b.SickUsed.Add(d)
	case LeaveVacation:
		b.VacationBalance = b.VacationBalance.Sub(d)
		b.VacationUsed = b.VacationUsed.Add(d)
	}
	return nil
}

// Restore credits days back, used when an approved leave is reverted.
func (b *LeaveBalance) Restore(t LeaveType, days int) {
	if !RequiresBalance(t) {
		return
	}
	d := decimal.NewFromInt(int64(days))
	switch t {
	case LeaveSick:
		b.SickBalance = b.SickBalance.Add(d)
		b.SickUsed = b.SickUsed.Sub(d)
	case LeaveVacation:
		b.VacationBalance = b.VacationBalance.Add(d)
		b.VacationUsed = b.VacationUsed.Sub(d)
	}
}

// NewAnnualBalance is the opening balance for an employee's first tracked
// year.
func NewAnnualBalance(employeeID string, year int) LeaveBalance {
	return LeaveBalance{
		EmployeeID:      employeeID,
		Year:            year,
		SickBalance:     decimal.NewFromInt(SickLeaveAnnual),
		VacationBalance: decimal.NewFromInt(VacationLeaveAnnual),
		SickUsed:        decimal.Zero,
		VacationUsed:    decimal.Zero,
	}
}

// RollOver advances a balance into a new year: annual credits are added on
// top of what remains, capped at the accumulation limit, and usage counters
// reset.
func (b *LeaveBalance) RollOver(year int) {
	limit := decimal.NewFromInt(MaxAccumulatedLeave)
	b.Year = year
	b.SickBalance = decimal.Min(b.SickBalance.Add(decimal.NewFromInt(SickLeaveAnnual)), limit)
	b.VacationBalance = decimal.Min(b.VacationBalance.Add(decimal.NewFromInt(VacationLeaveAnnual)), limit)
	b.SickUsed = decimal.Zero
	b.VacationUsed = decimal.Zero
}

// UnpaidLeaveDays counts approved unpaid-leave working days that fall inside
// the pay period. The engine deducts these from base pay.
func UnpaidLeaveDays(leaves []Leave, period Period, holidays []Holiday) int {
	days := 0
	for _, l := range leaves {
		if l.Status != LeaveApproved || l.Type != LeaveUnpaid {
			continue
		}
		span := Period{Start: l.StartDate, End: l.EndDate}
		for _, d := range span.Days() {
			if !period.Contains(d) || isWeekend(d) || holidayOn(holidays, d) != nil {
				continue
			}
			days++
		}
	}
	return days
}
