package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year     int
		expected bool
	}{
		{2000, true},
		{1900, false},
		{2024, true},
		{2025, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsLeapYear(tt.year), "year %d", tt.year)
	}
	assert.Equal(t, 366, DaysInYear(2024))
	assert.Equal(t, 365, DaysInYear(2025))
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 292, DaysBetween(from, to))
	assert.Equal(t, 0, DaysBetween(to, from), "reversed range is empty")
}

func TestMonthsTouched(t *testing.T) {
	from := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, MonthsTouched(from, to))
	assert.Equal(t, 12, MonthsTouched(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to))
}

func TestPolicyYears(t *testing.T) {
	periods := PolicyYears(3)
	require.Len(t, periods, 3)
	for i, p := range periods {
		assert.Equal(t, i+1, p.Index)
		assert.Equal(t, 12, p.Months)
		assert.Equal(t, DaysPerYear, p.Days)
		assert.False(t, p.Partial)
	}
	assert.Equal(t, "2. év", periods[1].Label())
}

func TestCalendarPeriods_JanuaryStart(t *testing.T) {
	periods := CalendarPeriods(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 2)
	require.Len(t, periods, 2)
	assert.False(t, periods[0].Partial)
	assert.False(t, periods[1].Partial)
	assert.Equal(t, "2025", periods[0].Label())
}

func TestCalendarPeriods_MidYearStart(t *testing.T) {
	periods := CalendarPeriods(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), 2)
	require.Len(t, periods, 3)

	first := periods[0]
	assert.True(t, first.Partial)
	assert.Equal(t, 292, first.Days)
	assert.Equal(t, 10, first.Months)
	assert.Equal(t, "2025.03.15–2025.12.31", first.Label())

	assert.False(t, periods[1].Partial)
	assert.Equal(t, 365, periods[1].Days)

	last := periods[2]
	assert.True(t, last.Partial)
	assert.Equal(t, time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC), last.End)
	assert.Equal(t, 73, last.Days)
	assert.Equal(t, 2, last.Months, "the last stub takes the months the first stub left over")
}

func TestCalendarPeriods_MonthsAddUpToDuration(t *testing.T) {
	starts := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, start := range starts {
		for _, years := range []int{1, 2, 10, 25} {
			total := 0
			for _, p := range CalendarPeriods(start, years) {
				assert.GreaterOrEqual(t, p.Months, 0)
				total += p.Months
			}
			assert.Equal(t, 12*years, total, "start %s, %d years", start.Format("2006-01-02"), years)
		}
	}
}

func TestCalendarPeriods_ZeroDuration(t *testing.T) {
	assert.Empty(t, CalendarPeriods(time.Now(), 0))
}
