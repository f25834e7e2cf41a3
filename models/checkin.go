package models

import "time"

// CheckinRecord stores one successful daily check-in. CheckinDate is a UTC
// calendar date string (YYYY-MM-DD); the composite unique index is what
// makes a check-in idempotent per user per day even under concurrent
// submissions.
type CheckinRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_checkin_user_date" json:"user_id"`
	CheckinDate string    `gorm:"size:10;not null;uniqueIndex:idx_checkin_user_date" json:"checkin_date"`
	Reward      int       `json:"reward"`
	StreakDay   int       `json:"streak_day"`
	CreatedAt   time.Time `json:"created_at"`
}
