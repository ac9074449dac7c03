/*
attendance.go - Per-day attendance arithmetic

PURPOSE:
  Converts raw clock times into worked hours, late/undertime minutes, and
  their monetary deductions. The engine aggregates these per pay period;
  the API uses DetermineStatus when recording a day.

CONVENTIONS:
  - Clock times are "HH:MM" strings (the wire and storage format)
  - A shift crossing midnight (time_out < time_in) rolls to the next day
  - Late minutes inside the grace period are forgiven entirely
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

const clockLayout = "15:04"

var minutesPerHour = decimal.NewFromInt(60)

// WorkHours computes hours worked between two "HH:MM" clock times.
// Unparseable input counts as zero hours.
func WorkHours(timeIn, timeOut string) decimal.Decimal {
	in, err := time.Parse(clockLayout, timeIn)
	if err != nil {
		return decimal.Zero
	}
	out, err := time.Parse(clockLayout, timeOut)
	if err != nil {
		return decimal.Zero
	}
	if out.Before(in) {
		out = out.Add(24 * time.Hour)
	}
	return decimal.NewFromFloat(out.Sub(in).Hours())
}

// LateMinutes returns minutes late past the expected clock-in, after the
// grace period. On time or within grace returns zero.
func LateMinutes(timeIn, expectedIn string) decimal.Decimal {
	actual, err := time.Parse(clockLayout, timeIn)
	if err != nil {
		return decimal.Zero
	}
	expected, err := time.Parse(clockLayout, expectedIn)
	if err != nil {
		return decimal.Zero
	}
	if !actual.After(expected) {
		return decimal.Zero
	}
	late := decimal.NewFromFloat(actual.Sub(expected).Minutes())
	grace := decimal.NewFromInt(LateGraceMinutes)
	if late.LessThanOrEqual(grace) {
		return decimal.Zero
	}
	return late.Sub(grace)
}

// UndertimeMinutes returns minutes short of the expected clock-out.
func UndertimeMinutes(timeOut, expectedOut string) decimal.Decimal {
	actual, err := time.Parse(clockLayout, timeOut)
	if err != nil {
		return decimal.Zero
	}
	expected, err := time.Parse(clockLayout, expectedOut)
	if err != nil {
		return decimal.Zero
	}
	if !actual.Before(expected) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(expected.Sub(actual).Minutes())
}

// MinuteDeduction prices missed minutes at the hourly rate.
func MinuteDeduction(minutes, hourlyRate decimal.Decimal) decimal.Decimal {
	if minutes.Sign() <= 0 {
		return decimal.Zero
	}
	return Round2(minutes.Div(minutesPerHour).Mul(hourlyRate))
}

// AbsenceDeduction prices a full missed day at the daily rate.
func AbsenceDeduction(dailyRate decimal.Decimal) decimal.Decimal {
	return Round2(dailyRate)
}

// DetermineStatus classifies a day from its clock data.
func DetermineStatus(timeIn string, hoursWorked, lateMinutes, undertimeMinutes decimal.Decimal) AttendanceStatus {
	if timeIn == "" {
		return AttendanceAbsent
	}
	if hoursWorked.LessThan(decimal.NewFromInt(HalfDayHours)) {
		return AttendanceHalfDay
	}
	if undertimeMinutes.Sign() > 0 {
		return AttendanceUndertime
	}
	if lateMinutes.Sign() > 0 {
		return AttendanceLate
	}
	return AttendancePresent
}

// =============================================================================
// PERIOD AGGREGATION
// =============================================================================

// AttendanceTotals is the per-period rollup the engine computes pay from.
type AttendanceTotals struct {
	DaysWorked       int
	HoursWorked      decimal.Decimal
	OvertimeHours    decimal.Decimal
	NightHours       decimal.Decimal
	LateMinutes      decimal.Decimal
	UndertimeMinutes decimal.Decimal
	AbsentDays       int
	HolidaysWorked   []AttendanceRecord // days with the holiday flag set
}

// Aggregate rolls up a slice of attendance records. Absent days contribute
// nothing to hours but are counted for absence deductions.
func Aggregate(records []AttendanceRecord) AttendanceTotals {
	totals := AttendanceTotals{
		HoursWorked:      decimal.Zero,
		OvertimeHours:    decimal.Zero,
		NightHours:       decimal.Zero,
		LateMinutes:      decimal.Zero,
		UndertimeMinutes: decimal.Zero,
	}
	for _, r := range records {
		if r.Status == AttendanceAbsent {
			totals.AbsentDays++
			continue
		}
		totals.DaysWorked++
		hours := r.RegularHours
		if hours.IsZero() && r.TimeIn != "" && r.TimeOut != "" {
			hours = WorkHours(r.TimeIn, r.TimeOut)
		}
		totals.HoursWorked = totals.HoursWorked.Add(hours)
		totals.OvertimeHours = totals.OvertimeHours.Add(r.OvertimeHours)
		totals.NightHours = totals.NightHours.Add(r.NightHours)
		totals.LateMinutes = totals.LateMinutes.Add(r.LateMinutes)
		totals.UndertimeMinutes = totals.UndertimeMinutes.Add(r.UndertimeMinutes)
		if r.IsHoliday {
			totals.HolidaysWorked = append(totals.HolidaysWorked, r)
		}
	}
	return totals
}
