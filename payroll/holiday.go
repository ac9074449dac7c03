/*
holiday.go - Holiday pay under the Philippine Labor Code

PURPOSE:
  Computes the holiday pay bucket of a payroll entry. Regular holidays are
  paid whether or not the employee worked; special (non-working) holidays
  follow no-work-no-pay.

RATES:
  regular holiday, worked       200% of daily rate
  regular holiday, not worked   100% of daily rate
  special holiday, worked       130% of daily rate
  special holiday, not worked   no pay
  overtime on regular holiday   260% of hourly rate per OT hour
  overtime on special holiday   169% of hourly rate per OT hour
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	regularHolidayWorked    = decimal.NewFromFloat(2.00)
	regularHolidayNotWorked = decimal.NewFromFloat(1.00)
	specialHolidayWorked    = decimal.NewFromFloat(1.30)
	regularHolidayOT        = decimal.NewFromFloat(2.60)
	specialHolidayOT        = decimal.NewFromFloat(1.69)
)

// HolidayDayPay prices a single holiday for one employee. overtimeHours is
// only consulted when the day was worked.
func HolidayDayPay(emp Employee, holidayType HolidayType, worked bool, overtimeHours decimal.Decimal) decimal.Decimal {
	daily := emp.DailyRate()
	hourly := emp.HourlyRate()

	switch holidayType {
	case HolidayRegular:
		if worked {
			pay := daily.Mul(regularHolidayWorked)
			pay = pay.Add(overtimeHours.Mul(hourly).Mul(regularHolidayOT))
			return Round2(pay)
		}
		return Round2(daily.Mul(regularHolidayNotWorked))
	case HolidaySpecial:
		if worked {
			pay := daily.Mul(specialHolidayWorked)
			pay = pay.Add(overtimeHours.Mul(hourly).Mul(specialHolidayOT))
			return Round2(pay)
		}
		return decimal.Zero
	}
	return decimal.Zero
}

// HolidayPay totals holiday pay across a pay period. Weekday holidays the
// employee did not work still earn the not-worked rate when regular;
// weekend holidays earn nothing unless actually worked.
func HolidayPay(emp Employee, period Period, holidays []Holiday, records []AttendanceRecord) decimal.Decimal {
	total := decimal.Zero
	for _, day := range period.Days() {
		h := holidayOn(holidays, day)
		if h == nil {
			continue
		}
		rec := recordOn(records, day)
		worked := rec != nil && rec.Status != AttendanceAbsent
		if !worked && isWeekend(day) {
			continue
		}
		var ot decimal.Decimal
		if worked {
			ot = rec.OvertimeHours
		}
		total = total.Add(HolidayDayPay(emp, h.Type, worked, ot))
	}
	return Round2(total)
}

func recordOn(records []AttendanceRecord, day time.Time) *AttendanceRecord {
	d := truncateDay(day)
	for i := range records {
		if truncateDay(records[i].Date).Equal(d) {
			return &records[i]
		}
	}
	return nil
}
