package booking

import (
	"context"
	"time"

	"github.com/trimlylabs/trimly-api/internal/models"
)

type Repository interface {
	// -------- Reference data --------
	GetServiceType(
		ctx context.Context,
		id uint,
	) (*models.ServiceType, error)

	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetCustomer(
		ctx context.Context,
		id uint,
	) (*models.Customer, error)

	GetCustomerByUser(
		ctx context.Context,
		userID uint,
	) (*models.Customer, error)

	GetBarberByUser(
		ctx context.Context,
		userID uint,
	) (*models.Barber, error)

	// -------- Availability inputs --------
	GetWeeklyRule(
		ctx context.Context,
		barberID uint,
		weekday int,
	) (*models.WeeklyAvailability, error)

	ListOverrides(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.ScheduleOverride, error)

	ListActiveReservations(
		ctx context.Context,
		barberID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Reservation, error)

	// -------- Slot claim (create / reschedule) --------
	// ClaimSlot re-checks for overlapping active reservations and
	// inserts inside one transaction; two concurrent claims for
	// overlapping intervals cannot both succeed.
	ClaimSlot(
		ctx context.Context,
		res *models.Reservation,
	) error

	// MoveSlot is the reschedule variant: same transactional overlap
	// check, excluding the reservation being moved.
	MoveSlot(
		ctx context.Context,
		res *models.Reservation,
		newStart time.Time,
		newEnd time.Time,
	) error

	// -------- Reservation (state change) --------
	GetReservation(
		ctx context.Context,
		id uint,
	) (*models.Reservation, error)

	GetReservationForCustomer(
		ctx context.Context,
		id uint,
		customerID uint,
	) (*models.Reservation, error)

	GetReservationForBarber(
		ctx context.Context,
		id uint,
		barberID uint,
	) (*models.Reservation, error)

	UpdateReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	ListReservationsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Reservation, error)

	ListReservationsForCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Reservation, error)

	// -------- Rating aggregate --------
	// RecomputeBarberRating is a pure aggregate over current rows,
	// safe to redo; invoked only by the rating use case.
	RecomputeBarberRating(
		ctx context.Context,
		barberID uint,
	) (avg float64, count int64, err error)

	// -------- Notifications --------
	MarkConfirmationSent(
		ctx context.Context,
		reservationID uint,
	) error
}
