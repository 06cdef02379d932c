package models

import "time"

type Barber struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	ExperienceYears int    `gorm:"default:0" json:"experience_years"`
	Bio             string `gorm:"size:1000" json:"bio"`
	Phone           string `gorm:"size:20" json:"phone"`
	PhotoURL        string `gorm:"size:255" json:"photo_url"`

	Active              bool `gorm:"default:true" json:"active"`
	AvailableForBooking bool `gorm:"default:true" json:"available_for_booking"`
	Approved            bool `gorm:"default:false" json:"approved"`

	// Recomputed from completed+rated reservations, never written directly.
	AverageRating float64 `gorm:"type:decimal(3,2);default:0" json:"average_rating"`
	TotalRatings  int64   `gorm:"default:0" json:"total_ratings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
