package models

import "time"

// WeeklyAvailability is the recurring default working window for one
// day of the week. Times use "15:04" and stay empty on a day off.
type WeeklyAvailability struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_weekly_barber_weekday;not null" json:"barber_id"`

	Weekday int `gorm:"uniqueIndex:idx_weekly_barber_weekday;not null" json:"weekday"` // 0 = Sunday

	Available bool   `json:"available"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
