package checkin_test

import (
	"testing"
	"time"

	"github.com/playgrid/playgrid/checkin"
)

func TestStreak(t *testing.T) {
	tests := []struct {
		name    string
		history []string
		anchor  string
		want    int
	}{
		{"empty history", nil, "2025-03-10", 0},
		{"single day at anchor", []string{"2025-03-10"}, "2025-03-10", 1},
		{"three consecutive days", []string{"2025-03-08", "2025-03-09", "2025-03-10"}, "2025-03-10", 3},
		{"gap right after anchor", []string{"2025-03-08", "2025-03-10"}, "2025-03-10", 1},
		{"latest entry is not anchor", []string{"2025-03-08", "2025-03-09"}, "2025-03-10", 0},
		{"unsorted input", []string{"2025-03-10", "2025-03-08", "2025-03-09"}, "2025-03-10", 3},
		{"gap in the middle", []string{"2025-03-06", "2025-03-08", "2025-03-09", "2025-03-10"}, "2025-03-10", 3},
		{"across month boundary", []string{"2025-02-27", "2025-02-28", "2025-03-01"}, "2025-03-01", 3},
		{"across leap day", []string{"2024-02-28", "2024-02-29", "2024-03-01"}, "2024-03-01", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkin.Streak(tt.history, tt.anchor)
			if got != tt.want {
				t.Fatalf("Streak(%v, %s) = %d, want %d", tt.history, tt.anchor, got, tt.want)
			}
			if got < 0 {
				t.Fatalf("streak must never be negative, got %d", got)
			}
		})
	}
}

func TestStreakDoesNotMutateInput(t *testing.T) {
	history := []string{"2025-03-10", "2025-03-08", "2025-03-09"}
	checkin.Streak(history, "2025-03-10")
	if history[0] != "2025-03-10" || history[1] != "2025-03-08" || history[2] != "2025-03-09" {
		t.Fatalf("input history was reordered: %v", history)
	}
}

func TestReward(t *testing.T) {
	tests := []struct {
		streakDay int
		want      int
	}{
		{1, 15},
		{2, 20},
		{3, 25},
		{7, 45},
		{8, 50},
		{9, 50},
		{100, 50},
	}

	for _, tt := range tests {
		if got := checkin.Reward(tt.streakDay); got != tt.want {
			t.Errorf("Reward(%d) = %d, want %d", tt.streakDay, got, tt.want)
		}
	}
}

func TestToday(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, loc)
	if got := checkin.Today(now); got != "2025-03-11" {
		t.Fatalf("Today() = %s, want 2025-03-11 (UTC date, not local)", got)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2025-03-09", "2025-03-10", 1},
		{"2025-03-10", "2025-03-10", 0},
		{"2025-03-01", "2025-03-10", 9},
		{"2025-02-28", "2025-03-01", 1},
		{"2024-02-28", "2024-03-01", 2},
		{"not-a-date", "2025-03-10", -1},
	}

	for _, tt := range tests {
		if got := checkin.DaysBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
