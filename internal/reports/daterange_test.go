package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 fue lunes; sirve de ancla para las pruebas de semana
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartOfWeekIsMonday(t *testing.T) {
	monday := date(2024, time.January, 1)
	for offset := 0; offset < 7; offset++ {
		day := monday.AddDate(0, 0, offset)
		got := StartOfWeek(day)
		assert.Equal(t, monday, got, "día %s", day.Weekday())
		assert.Equal(t, time.Monday, got.Weekday())
	}
}

func TestResolveRangeWeek(t *testing.T) {
	now := time.Date(2024, time.January, 3, 15, 30, 0, 0, time.UTC) // miércoles
	rng := ResolveRange(PeriodWeek, now, DateRange{})

	assert.Equal(t, date(2024, time.January, 1), rng.Start)
	assert.Equal(t, 2024, rng.End.Year())
	assert.Equal(t, 7, rng.End.Day())
	assert.Equal(t, 23, rng.End.Hour())
}

func TestResolveRangeMonth(t *testing.T) {
	now := time.Date(2024, time.February, 15, 10, 0, 0, 0, time.UTC)
	rng := ResolveRange(PeriodMonth, now, DateRange{})

	assert.Equal(t, date(2024, time.February, 1), rng.Start)
	assert.Equal(t, 29, rng.End.Day()) // bisiesto
}

func TestResolveRangeYesterday(t *testing.T) {
	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	rng := ResolveRange(PeriodYesterday, now, DateRange{})

	assert.Equal(t, date(2024, time.March, 9), rng.Start)
	assert.Equal(t, 9, rng.End.Day())
	assert.Equal(t, 23, rng.End.Hour())
}

func TestResolveRangeTodayEndsNow(t *testing.T) {
	now := time.Date(2024, time.March, 10, 14, 45, 0, 0, time.UTC)
	rng := ResolveRange(PeriodToday, now, DateRange{})

	assert.Equal(t, date(2024, time.March, 10), rng.Start)
	assert.Equal(t, now, rng.End)
}

func TestPreviousRangeCustomSameDuration(t *testing.T) {
	cur := DateRange{Start: date(2024, time.January, 10), End: date(2024, time.January, 14)}
	prev := PreviousRange(PeriodCustom, cur)

	assert.Equal(t, date(2024, time.January, 5), prev.Start)
	assert.Equal(t, 9, prev.End.Day())
	// misma cantidad de días que el periodo actual
	assert.Equal(t, DaysIn(cur), DaysIn(prev))
}

func TestPreviousRangeMonthIsCalendarMonth(t *testing.T) {
	cur := ResolveRange(PeriodMonth, date(2024, time.March, 20), DateRange{})
	prev := PreviousRange(PeriodMonth, cur)

	assert.Equal(t, date(2024, time.February, 1), prev.Start)
	assert.Equal(t, 29, prev.End.Day())
}

func TestPreviousRangeWeekIsCalendarWeek(t *testing.T) {
	cur := ResolveRange(PeriodWeek, date(2024, time.January, 10), DateRange{})
	prev := PreviousRange(PeriodWeek, cur)

	assert.Equal(t, date(2024, time.January, 1), cur.Start)
	assert.Equal(t, date(2023, time.December, 25), prev.Start)
	assert.Equal(t, 31, prev.End.Day())
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 1, DaysIn(DateRange{Start: date(2024, time.May, 1), End: date(2024, time.May, 1)}))
	assert.Equal(t, 5, DaysIn(DateRange{Start: date(2024, time.May, 1), End: date(2024, time.May, 5)}))
	// rango invertido no devuelve menos de un día
	assert.Equal(t, 1, DaysIn(DateRange{Start: date(2024, time.May, 5), End: date(2024, time.May, 1)}))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonth, p)

	p, err = ParsePeriod("week")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeek, p)

	_, err = ParsePeriod("quarter")
	assert.Error(t, err)
}
