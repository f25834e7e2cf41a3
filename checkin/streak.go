package checkin

import "sort"

// Streak computes the length of the unbroken run of daily check-ins ending
// at anchor. The history does not need to be sorted and may or may not
// contain the anchor itself; if its most recent entry is not the anchor the
// walk breaks immediately and the result is 0.
//
// The function is pure: it never touches storage or the real clock, so the
// same history always yields the same answer.
func Streak(history []string, anchor string) int {
	if len(history) == 0 {
		return 0
	}

	sorted := make([]string, len(history))
	copy(sorted, history)
	// YYYY-MM-DD sorts lexicographically in chronological order.
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

	streak := 0
	expected := anchor
	for _, day := range sorted {
		if day != expected {
			break
		}
		streak++
		expected = addDays(expected, -1)
	}
	return streak
}
