package models

import "time"

// PageView stores aggregated request counts per UTC day and path. The date
// is kept as a YYYY-MM-DD string to match the check-in date convention.
type PageView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"size:10;index:idx_pv_date_path,unique;not null" json:"date"`
	Path      string    `gorm:"size:255;index:idx_pv_date_path,unique;not null" json:"path"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
