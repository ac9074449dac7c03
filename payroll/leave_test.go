package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveWorkingDays_SkipsWeekendsAndHolidays(t *testing.T) {
	// GIVEN: A leave spanning Friday June 7 through Wednesday June 12 2024,
	//        with June 12 a holiday
	// WHEN: Counting the days the request consumes
	// THEN: 3 (Fri, Mon, Tue)

	leave := Leave{
		StartDate: day(2024, time.June, 7),
		EndDate:   day(2024, time.June, 12),
	}
	holidays := []Holiday{{Date: day(2024, time.June, 12), Type: HolidayRegular}}
	assert.Equal(t, 3, LeaveWorkingDays(leave, holidays))
}

func TestRequiresBalance(t *testing.T) {
	assert.True(t, RequiresBalance(LeaveSick))
	assert.True(t, RequiresBalance(LeaveVacation))
	assert.False(t, RequiresBalance(LeaveMaternity))
	assert.False(t, RequiresBalance(LeaveUnpaid))
}

func TestLeaveBalance_DeductAndRestore(t *testing.T) {
	// GIVEN: A fresh annual balance
	// WHEN: Deducting 5 vacation days and restoring 2
	// THEN: Balance and usage counters track both directions

	b := NewAnnualBalance("emp-1", 2024)
	require.NoError(t, b.Deduct(LeaveVacation, 5))
	assert.True(t, b.VacationBalance.Equal(decimal.NewFromInt(10)))
	assert.True(t, b.VacationUsed.Equal(decimal.NewFromInt(5)))

	b.Restore(LeaveVacation, 2)
	assert.True(t, b.VacationBalance.Equal(decimal.NewFromInt(12)))
	assert.True(t, b.VacationUsed.Equal(decimal.NewFromInt(3)))

	// Sick credits are untouched throughout.
	assert.True(t, b.SickBalance.Equal(decimal.NewFromInt(SickLeaveAnnual)))
}

func TestLeaveBalance_InsufficientCredit(t *testing.T) {
	b := NewAnnualBalance("emp-1", 2024)
	err := b.Deduct(LeaveSick, 16)
	assert.ErrorIs(t, err, ErrInsufficientLeaveBalance)
	assert.True(t, b.SickBalance.Equal(decimal.NewFromInt(15)), "failed deduct must not change the balance")
}

func TestLeaveBalance_NonBalancedTypesAlwaysCovered(t *testing.T) {
	b := LeaveBalance{SickBalance: decimal.Zero, VacationBalance: decimal.Zero}
	assert.True(t, b.Covers(LeaveUnpaid, 30))
	assert.NoError(t, b.Deduct(LeaveMaternity, 60))
}

func TestLeaveBalance_RollOver_CapsAccumulation(t *testing.T) {
	// GIVEN: 20 unused vacation days at year end
	// WHEN: Rolling into the new year (adds 15 more)
	// THEN: The balance caps at 30, not 35

	b := NewAnnualBalance("emp-1", 2024)
	require.NoError(t, b.Deduct(LeaveVacation, 10)) // 5 remain... then simulate accrual
	b.VacationBalance = decimal.NewFromInt(20)

	b.RollOver(2025)
	assert.Equal(t, 2025, b.Year)
	assert.True(t, b.VacationBalance.Equal(decimal.NewFromInt(MaxAccumulatedLeave)))
	assert.True(t, b.SickBalance.Equal(decimal.NewFromInt(30)), "15 remaining + 15 annual stays under the cap")
	assert.True(t, b.VacationUsed.IsZero(), "usage counters reset")
}

func TestUnpaidLeaveDays(t *testing.T) {
	// GIVEN: An approved unpaid leave Mon-Fri June 10-14 2024 and a pending one
	// WHEN: Counting unpaid days inside the June 1-15 period
	// THEN: Only the approved request counts, and only its weekdays

	period := Period{Start: day(2024, time.June, 1), End: day(2024, time.June, 15)}
	leaves := []Leave{
		{
			Type: LeaveUnpaid, Status: LeaveApproved,
			StartDate: day(2024, time.June, 10), EndDate: day(2024, time.June, 14),
		},
		{
			Type: LeaveUnpaid, Status: LeavePending,
			StartDate: day(2024, time.June, 3), EndDate: day(2024, time.June, 4),
		},
		{
			Type: LeaveVacation, Status: LeaveApproved,
			StartDate: day(2024, time.June, 5), EndDate: day(2024, time.June, 5),
		},
	}
	assert.Equal(t, 5, UnpaidLeaveDays(leaves, period, nil))

	// A holiday inside the leave stops counting against pay.
	holidays := []Holiday{{Date: day(2024, time.June, 12), Type: HolidayRegular}}
	assert.Equal(t, 4, UnpaidLeaveDays(leaves, period, holidays))
}

func TestUnpaidLeaveDays_ClipsToPeriod(t *testing.T) {
	// A leave straddling the period boundary only counts the inside days.
	period := Period{Start: day(2024, time.June, 1), End: day(2024, time.June, 15)}
	leaves := []Leave{{
		Type: LeaveUnpaid, Status: LeaveApproved,
		StartDate: day(2024, time.June, 13), EndDate: day(2024, time.June, 18),
	}}
	// June 13 (Thu), 14 (Fri) are inside; 17-18 fall outside the period.
	assert.Equal(t, 2, UnpaidLeaveDays(leaves, period, nil))
}

func TestLeave_CanTransition(t *testing.T) {
	pending := Leave{Status: LeavePending}
	assert.True(t, pending.CanTransition(LeaveApproved))
	assert.True(t, pending.CanTransition(LeaveRejected))

	approved := Leave{Status: LeaveApproved}
	assert.False(t, approved.CanTransition(LeaveRejected), "approved is terminal")
	assert.False(t, approved.CanTransition(LeavePending))
}
