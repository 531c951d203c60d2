package dateutil

import (
	"fmt"
	"time"
)

// DaysPerYear is the day count used for full policy years.
const DaysPerYear = 365

// Period is one projection step: a full policy year or a calendar stub.
type Period struct {
	Index   int // 1-based sequence number
	Start   time.Time
	End     time.Time // exclusive
	Months  int
	Days    int
	Partial bool
}

// Label returns a human readable label for the period.
func (p Period) Label() string {
	if p.Start.IsZero() {
		return fmt.Sprintf("%d. év", p.Index)
	}
	if !p.Partial {
		return fmt.Sprintf("%d", p.Start.Year())
	}
	return fmt.Sprintf("%s–%s", p.Start.Format("2006.01.02"), p.End.AddDate(0, 0, -1).Format("2006.01.02"))
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// BeginningOfYear returns the first day of the year for a given date
func BeginningOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), 1, 1, 0, 0, 0, 0, date.Location())
}

// BeginningOfNextYear returns Jan 1 of the year after date.
func BeginningOfNextYear(date time.Time) time.Time {
	return time.Date(date.Year()+1, 1, 1, 0, 0, 0, 0, date.Location())
}

// DaysBetween counts calendar days in [from, to). Negative spans return 0.
func DaysBetween(from, to time.Time) int {
	from = truncateDay(from)
	to = truncateDay(to)
	if !to.After(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24 + 0.5)
}

// MonthsTouched counts the calendar months overlapped by [from, to).
func MonthsTouched(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	last := to.AddDate(0, 0, -1)
	return (last.Year()-from.Year())*12 + int(last.Month()) - int(from.Month()) + 1
}

// PolicyYears returns n full policy years with no calendar anchoring.
func PolicyYears(n int) []Period {
	periods := make([]Period, 0, n)
	for i := 1; i <= n; i++ {
		periods = append(periods, Period{Index: i, Months: 12, Days: DaysPerYear})
	}
	return periods
}

// CalendarPeriods splits a policy of durationYears starting at start into
// calendar-year periods. A start other than Jan 1 yields a partial first
// period up to Dec 31 and a partial last period up to the policy end.
// The last stub takes the months left over, so the periods always add up
// to 12*durationYears months.
func CalendarPeriods(start time.Time, durationYears int) []Period {
	if durationYears <= 0 {
		return nil
	}
	start = truncateDay(start)
	end := start.AddDate(durationYears, 0, 0)

	var periods []Period
	allocated := 0
	cursor := start
	for cursor.Before(end) {
		next := BeginningOfNextYear(cursor)
		if next.After(end) {
			next = end
		}
		p := Period{
			Index: len(periods) + 1,
			Start: cursor,
			End:   next,
		}
		if cursor.Month() == time.January && cursor.Day() == 1 && next.Equal(BeginningOfNextYear(cursor)) {
			p.Months = 12
			p.Days = DaysPerYear
		} else {
			p.Partial = true
			p.Months = MonthsTouched(cursor, next)
			if next.Equal(end) {
				p.Months = max(12*durationYears-allocated, 0)
			}
			p.Days = DaysBetween(cursor, next)
		}
		allocated += p.Months
		periods = append(periods, p)
		cursor = next
	}
	return periods
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
