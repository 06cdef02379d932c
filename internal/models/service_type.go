package models

import "time"

type ServiceType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMin int     `gorm:"default:30" json:"duration_min"`
	Description string  `gorm:"size:500" json:"description"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
