package checkin

import "time"

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// Today returns the UTC calendar date of the given instant.
// All check-in math is anchored to UTC dates so that results do not depend
// on the server's local clock.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// DaysBetween returns the whole number of calendar days from a to b.
// Both arguments must be DateLayout strings; malformed input yields a
// negative sentinel so callers treat it as a broken streak.
func DaysBetween(a, b string) int {
	ta, errA := time.ParseInLocation(DateLayout, a, time.UTC)
	tb, errB := time.ParseInLocation(DateLayout, b, time.UTC)
	if errA != nil || errB != nil {
		return -1
	}
	return int(tb.Sub(ta).Hours() / 24)
}

func addDays(date string, n int) string {
	t, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}
