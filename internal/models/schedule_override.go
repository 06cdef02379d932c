package models

import "time"

// ScheduleOverride is a date-specific exception layered over the weekly
// rule. is_available=true replaces the weekly window for that date;
// is_available=false blocks a sub-interval of an otherwise open day.
type ScheduleOverride struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_override_window;not null" json:"barber_id"`

	Date      string `gorm:"size:10;uniqueIndex:idx_override_window;not null" json:"date"` // 2006-01-02
	StartTime string `gorm:"size:5;uniqueIndex:idx_override_window;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;uniqueIndex:idx_override_window;not null" json:"end_time"`

	IsAvailable bool   `json:"is_available"`
	SlotMinutes int    `gorm:"default:30" json:"slot_minutes"`
	Notes       string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
