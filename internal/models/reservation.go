package models

import "time"

type Reservation struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:36;uniqueIndex" json:"code"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	BarberID uint   `gorm:"index:idx_reservations_barber_start" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ServiceTypeID uint        `json:"service_type_id"`
	ServiceType   ServiceType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service_type"`

	StartTime time.Time `gorm:"index:idx_reservations_barber_start" json:"start_time"`
	// EndTime is persisted so the overlap exclusion constraint can range over it.
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `gorm:"not null" json:"duration_min"`

	// Snapshotted from the service type at creation, immutable afterward.
	Price float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	Notes  string `gorm:"size:500" json:"notes"`
	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	CancellationReason string     `gorm:"size:255" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelledByID      *uint      `json:"cancelled_by_id,omitempty"`

	Rating   *int   `json:"rating,omitempty"`
	Feedback string `gorm:"size:1000" json:"feedback,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`

	ConfirmationSent bool `gorm:"default:false" json:"confirmation_sent"`
	ReminderSent     bool `gorm:"default:false" json:"reminder_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
