package utils

import "time"

// Day keys are calendar days ("2006-01-02") built from local calendar
// fields. Formatting a UTC-shifted timestamp instead would move events
// across midnight for anyone west of Greenwich.
const DayKeyLayout = "2006-01-02"

func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey interprets a day key in the given location. Returns the
// zero time and false if the key is malformed.
func ParseDayKey(key string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(DayKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the most recent Sunday at local midnight,
// t itself if t falls on a Sunday.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// DayAfter reports whether a falls on a later calendar day than b.
func DayAfter(a, b time.Time) bool {
	return StartOfDay(a).After(StartOfDay(b))
}
