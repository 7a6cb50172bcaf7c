package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKeyUsesLocalCalendarFields(t *testing.T) {
	// 01:30 on the 15th in a +07:00 zone is still the 14th in UTC;
	// the key must come from the wall-clock date, not the UTC shift.
	loc := time.FixedZone("ICT", 7*3600)
	early := time.Date(2024, 3, 15, 1, 30, 0, 0, loc)
	assert.Equal(t, "2024-03-15", DayKey(early))
	assert.NotEqual(t, early.UTC().Format(DayKeyLayout), DayKey(early))
}

func TestParseDayKey(t *testing.T) {
	day, ok := ParseDayKey("2024-03-15", time.Local)
	require.True(t, ok)
	assert.Equal(t, "2024-03-15", DayKey(day))

	_, ok = ParseDayKey("15/03/2024", time.Local)
	assert.False(t, ok)
}

func TestStartOfWeekSundayAligned(t *testing.T) {
	loc := time.UTC
	// 2024-01-13 is a Saturday; its week started Sunday 2024-01-07.
	sat := time.Date(2024, 1, 13, 15, 0, 0, 0, loc)
	assert.Equal(t, "2024-01-07", DayKey(StartOfWeek(sat)))

	// A Sunday is its own week start.
	sun := time.Date(2024, 1, 7, 9, 0, 0, 0, loc)
	assert.Equal(t, "2024-01-07", DayKey(StartOfWeek(sun)))
}

func TestDayAfter(t *testing.T) {
	loc := time.UTC
	morning := time.Date(2024, 1, 7, 1, 0, 0, 0, loc)
	evening := time.Date(2024, 1, 7, 23, 0, 0, 0, loc)
	next := time.Date(2024, 1, 8, 0, 30, 0, 0, loc)

	assert.False(t, DayAfter(evening, morning))
	assert.True(t, DayAfter(next, evening))
	assert.False(t, DayAfter(morning, next))
}
