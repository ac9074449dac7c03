package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWorkHours(t *testing.T) {
	assert.True(t, WorkHours("08:00", "17:00").Equal(decimal.NewFromInt(9)))
	assert.True(t, WorkHours("08:30", "12:00").Equal(decimal.NewFromFloat(3.5)))
	assert.True(t, WorkHours("", "17:00").IsZero(), "missing clock-in is zero hours")
}

func TestWorkHours_MidnightRollover(t *testing.T) {
	// GIVEN: A night shift clocking in at 22:00 and out at 06:00
	// WHEN: Computing worked hours
	// THEN: The clock-out rolls to the next day, 8 hours

	assert.True(t, WorkHours("22:00", "06:00").Equal(decimal.NewFromInt(8)))
}

func TestLateMinutes_GracePeriod(t *testing.T) {
	// Within the grace window nothing is counted; past it, only the excess.
	assert.True(t, LateMinutes("08:00", "08:00").IsZero())
	assert.True(t, LateMinutes("08:10", "08:00").IsZero(), "exactly at grace is forgiven")
	assert.True(t, LateMinutes("08:25", "08:00").Equal(decimal.NewFromInt(15)))
	assert.True(t, LateMinutes("07:45", "08:00").IsZero(), "early is not late")
}

func TestUndertimeMinutes(t *testing.T) {
	assert.True(t, UndertimeMinutes("16:30", "17:00").Equal(decimal.NewFromInt(30)))
	assert.True(t, UndertimeMinutes("17:00", "17:00").IsZero())
	assert.True(t, UndertimeMinutes("18:00", "17:00").IsZero(), "staying late is not undertime")
}

func TestMinuteDeduction(t *testing.T) {
	// 30 minutes at 120/hour is 60 pesos.
	hourly := decimal.NewFromInt(120)
	assert.True(t, MinuteDeduction(decimal.NewFromInt(30), hourly).Equal(decimal.NewFromInt(60)))
	assert.True(t, MinuteDeduction(decimal.Zero, hourly).IsZero())
}

func TestDetermineStatus(t *testing.T) {
	eight := decimal.NewFromInt(8)
	zero := decimal.Zero

	assert.Equal(t, AttendanceAbsent, DetermineStatus("", zero, zero, zero))
	assert.Equal(t, AttendanceHalfDay, DetermineStatus("08:00", decimal.NewFromInt(3), zero, zero))
	assert.Equal(t, AttendanceUndertime, DetermineStatus("08:00", eight, zero, decimal.NewFromInt(30)))
	assert.Equal(t, AttendanceLate, DetermineStatus("08:45", eight, decimal.NewFromInt(35), zero))
	assert.Equal(t, AttendancePresent, DetermineStatus("08:00", eight, zero, zero))
}

func TestAggregate(t *testing.T) {
	// GIVEN: Two worked days, one absent day, and one holiday day
	// WHEN: Rolling up the period
	// THEN: Hours sum across worked days, the absence is counted, and the
	//       holiday-flagged record is collected

	monday := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	records := []AttendanceRecord{
		{
			Date: monday, TimeIn: "08:00", TimeOut: "17:00",
			Status: AttendancePresent, RegularHours: decimal.NewFromInt(8),
			OvertimeHours: decimal.NewFromInt(2), LateMinutes: decimal.Zero,
			NightHours: decimal.Zero, UndertimeMinutes: decimal.Zero,
		},
		{
			Date: monday.AddDate(0, 0, 1), TimeIn: "08:25", TimeOut: "17:00",
			Status: AttendanceLate, RegularHours: decimal.NewFromInt(8),
			OvertimeHours: decimal.Zero, LateMinutes: decimal.NewFromInt(15),
			NightHours: decimal.Zero, UndertimeMinutes: decimal.Zero,
		},
		{
			Date: monday.AddDate(0, 0, 2), Status: AttendanceAbsent,
			RegularHours: decimal.Zero, OvertimeHours: decimal.Zero,
			NightHours: decimal.Zero, LateMinutes: decimal.Zero, UndertimeMinutes: decimal.Zero,
		},
		{
			Date: monday.AddDate(0, 0, 3), TimeIn: "08:00", TimeOut: "17:00",
			Status: AttendancePresent, RegularHours: decimal.NewFromInt(8),
			IsHoliday: true,
			OvertimeHours: decimal.Zero, NightHours: decimal.Zero,
			LateMinutes: decimal.Zero, UndertimeMinutes: decimal.Zero,
		},
	}

	totals := Aggregate(records)
	assert.Equal(t, 3, totals.DaysWorked)
	assert.Equal(t, 1, totals.AbsentDays)
	assert.True(t, totals.HoursWorked.Equal(decimal.NewFromInt(24)))
	assert.True(t, totals.OvertimeHours.Equal(decimal.NewFromInt(2)))
	assert.True(t, totals.LateMinutes.Equal(decimal.NewFromInt(15)))
	assert.Len(t, totals.HolidaysWorked, 1)
}

func TestAggregate_DerivesHoursFromClockTimes(t *testing.T) {
	// Records stored before hours were computed still roll up correctly.
	records := []AttendanceRecord{
		{
			TimeIn: "08:00", TimeOut: "16:00", Status: AttendancePresent,
			RegularHours: decimal.Zero, OvertimeHours: decimal.Zero,
			NightHours: decimal.Zero, LateMinutes: decimal.Zero, UndertimeMinutes: decimal.Zero,
		},
	}
	totals := Aggregate(records)
	assert.True(t, totals.HoursWorked.Equal(decimal.NewFromInt(8)))
}
