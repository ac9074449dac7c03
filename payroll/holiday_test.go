package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// dailyEmp earns 1000/day, 125/hour.
func dailyEmp() Employee {
	return Employee{
		SalaryType:   SalaryDaily,
		SalaryRate:   decimal.NewFromInt(1000),
		OvertimeRate: decimal.NewFromFloat(1.25),
		NightRate:    decimal.NewFromFloat(1.10),
	}
}

func TestHolidayDayPay_RegularWorked(t *testing.T) {
	// 200% of the daily rate.
	pay := HolidayDayPay(dailyEmp(), HolidayRegular, true, decimal.Zero)
	assert.True(t, pay.Equal(decimal.NewFromInt(2000)), "got %s", pay)
}

func TestHolidayDayPay_RegularNotWorked(t *testing.T) {
	// Regular holidays are paid at 100% even when not worked.
	pay := HolidayDayPay(dailyEmp(), HolidayRegular, false, decimal.Zero)
	assert.True(t, pay.Equal(decimal.NewFromInt(1000)))
}

func TestHolidayDayPay_SpecialWorked(t *testing.T) {
	// 130% of the daily rate.
	pay := HolidayDayPay(dailyEmp(), HolidaySpecial, true, decimal.Zero)
	assert.True(t, pay.Equal(decimal.NewFromInt(1300)))
}

func TestHolidayDayPay_SpecialNotWorked(t *testing.T) {
	// No work, no pay on special holidays.
	pay := HolidayDayPay(dailyEmp(), HolidaySpecial, false, decimal.Zero)
	assert.True(t, pay.IsZero())
}

func TestHolidayDayPay_OvertimePremiums(t *testing.T) {
	// GIVEN: 2 OT hours at 125/hour
	// WHEN: Worked on regular vs special holidays
	// THEN: OT earns 260% and 169% of the hourly rate respectively

	two := decimal.NewFromInt(2)

	regular := HolidayDayPay(dailyEmp(), HolidayRegular, true, two)
	// 2000 day pay + 2 * 125 * 2.60 = 650
	assert.True(t, regular.Equal(decimal.NewFromInt(2650)), "got %s", regular)

	special := HolidayDayPay(dailyEmp(), HolidaySpecial, true, two)
	// 1300 day pay + 2 * 125 * 1.69 = 422.50
	assert.True(t, special.Equal(decimal.NewFromFloat(1722.50)), "got %s", special)
}

func TestHolidayPay_WeekendHolidayNotWorkedEarnsNothing(t *testing.T) {
	// GIVEN: A regular holiday on a Saturday that nobody worked
	// WHEN: Totaling holiday pay for the period
	// THEN: Zero - the not-worked premium only applies to weekday holidays

	period := Period{Start: day(2024, time.June, 1), End: day(2024, time.June, 15)}
	holidays := []Holiday{{Date: day(2024, time.June, 8), Type: HolidayRegular}} // Saturday

	pay := HolidayPay(dailyEmp(), period, holidays, nil)
	assert.True(t, pay.IsZero())
}

func TestHolidayPay_WeekdayHolidayNotWorked(t *testing.T) {
	// Independence Day 2024 falls on a Wednesday; a regular employee who
	// stayed home still earns the daily rate.
	period := Period{Start: day(2024, time.June, 1), End: day(2024, time.June, 15)}
	holidays := []Holiday{{Date: day(2024, time.June, 12), Type: HolidayRegular}}

	pay := HolidayPay(dailyEmp(), period, holidays, nil)
	assert.True(t, pay.Equal(decimal.NewFromInt(1000)), "got %s", pay)
}

func TestHolidayPay_WorkedHolidayUsesAttendanceRecord(t *testing.T) {
	period := Period{Start: day(2024, time.June, 1), End: day(2024, time.June, 15)}
	holidays := []Holiday{{Date: day(2024, time.June, 12), Type: HolidayRegular}}
	records := []AttendanceRecord{{
		Date: day(2024, time.June, 12), TimeIn: "08:00", TimeOut: "17:00",
		Status: AttendancePresent, RegularHours: decimal.NewFromInt(8),
		OvertimeHours: decimal.NewFromInt(1),
		NightHours:    decimal.Zero, LateMinutes: decimal.Zero, UndertimeMinutes: decimal.Zero,
	}}

	pay := HolidayPay(dailyEmp(), period, holidays, records)
	// 1000 * 2.00 + 1 * 125 * 2.60 = 2325
	assert.True(t, pay.Equal(decimal.NewFromInt(2325)), "got %s", pay)
}

func TestHolidayPay_AbsentOnHolidayIsNotWorked(t *testing.T) {
	// An absent-status record on the holiday still earns the not-worked rate.
	period := Period{Start: day(2024, time.June, 1), End: day(2024, time.June, 15)}
	holidays := []Holiday{{Date: day(2024, time.June, 12), Type: HolidayRegular}}
	records := []AttendanceRecord{{
		Date: day(2024, time.June, 12), Status: AttendanceAbsent,
		RegularHours: decimal.Zero, OvertimeHours: decimal.Zero,
		NightHours: decimal.Zero, LateMinutes: decimal.Zero, UndertimeMinutes: decimal.Zero,
	}}

	pay := HolidayPay(dailyEmp(), period, holidays, records)
	assert.True(t, pay.Equal(decimal.NewFromInt(1000)), "got %s", pay)
}
