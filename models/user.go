package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a platform account. Passwords are stored as bcrypt hashes
// only. The wallet and check-in fields (Coins, LastCheckinDate,
// ConsecutiveCheckinDays) are denormalized from CheckinRecord and are
// mutated only by the check-in engine and the shop.
type User struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	Username               string         `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email                  string         `gorm:"size:255" json:"email"`
	PasswordHash           string         `gorm:"size:255" json:"-"`
	AvatarURL              string         `gorm:"size:512" json:"avatar_url"`
	Coins                  int            `gorm:"default:0" json:"coins"`
	LastCheckinDate        string         `gorm:"size:10" json:"last_checkin_date"`
	ConsecutiveCheckinDays int            `gorm:"default:0" json:"consecutive_checkin_days"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
	Posts                  []Post         `json:"-"`
	Comments               []Comment      `json:"-"`
}

// BeforeCreate ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}
