package payroll

import (
	"time"
)

// =============================================================================
// PAY PERIOD - semi-monthly by default
// =============================================================================

// Period is an inclusive date range over which attendance and leave are
// aggregated into one PayrollEntry per employee.
type Period struct {
	Start time.Time
	End   time.Time
}

// SemiMonthlyPeriodFor returns the semi-monthly period containing the date:
// the 1st-15th, or the 16th through end of month.
func SemiMonthlyPeriodFor(date time.Time) Period {
	y, m, d := date.Year(), date.Month(), date.Day()
	if d <= 15 {
		return Period{
			Start: time.Date(y, m, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(y, m, 15, 0, 0, 0, 0, time.UTC),
		}
	}
	return Period{
		Start: time.Date(y, m, 16, 0, 0, 0, 0, time.UTC),
		End:   endOfMonth(y, m),
	}
}

// PreviousSemiMonthly returns the semi-monthly period immediately before the
// one containing date. The seeder uses this to pick "the last closed period".
func PreviousSemiMonthly(date time.Time) Period {
	current := SemiMonthlyPeriodFor(date)
	return SemiMonthlyPeriodFor(current.Start.AddDate(0, 0, -1))
}

func endOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// Valid reports whether the range is non-empty.
func (p Period) Valid() bool {
	return !p.End.Before(p.Start)
}

// Contains reports whether day falls inside [Start, End].
func (p Period) Contains(day time.Time) bool {
	d := truncateDay(day)
	return !d.Before(truncateDay(p.Start)) && !d.After(truncateDay(p.End))
}

// Overlaps reports whether two periods share at least one day. Runs for the
// same company must never overlap; the store checks this before insert.
func (p Period) Overlaps(other Period) bool {
	return !p.End.Before(other.Start) && !other.End.Before(p.Start)
}

// CalendarDays returns the inclusive day count.
func (p Period) CalendarDays() int {
	return int(truncateDay(p.End).Sub(truncateDay(p.Start)).Hours()/24) + 1
}

// Days iterates every day in the period.
func (p Period) Days() []time.Time {
	var days []time.Time
	for d := truncateDay(p.Start); !d.After(truncateDay(p.End)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WorkingDays counts weekdays in the period that are not holidays.
func (p Period) WorkingDays(holidays []Holiday) int {
	count := 0
	for _, d := range p.Days() {
		if isWeekend(d) {
			continue
		}
		if holidayOn(holidays, d) != nil {
			continue
		}
		count++
	}
	return count
}

func (p Period) String() string {
	return p.Start.Format("2006-01-02") + " to " + p.End.Format("2006-01-02")
}

// =============================================================================
// CALENDAR HELPERS
// =============================================================================

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// holidayOn finds the holiday matching a day, honoring recurring entries
// (same month/day, any year). Returns nil when the day is a regular workday.
func holidayOn(holidays []Holiday, day time.Time) *Holiday {
	d := truncateDay(day)
	for i := range holidays {
		h := &holidays[i]
		hd := truncateDay(h.Date)
		if hd.Equal(d) {
			return h
		}
		if h.Recurring && hd.Month() == d.Month() && hd.Day() == d.Day() {
			return h
		}
	}
	return nil
}
