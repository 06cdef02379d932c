package repository

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/httperr"
	"github.com/trimlylabs/trimly-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Reference data
// --------------------------------------------------

func (r *BookingGormRepository) GetServiceType(
	ctx context.Context,
	id uint,
) (*models.ServiceType, error) {

	var svc models.ServiceType
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).Preload("User").First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetCustomer(
	ctx context.Context,
	id uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).Preload("User").First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *BookingGormRepository) GetCustomerByUser(
	ctx context.Context,
	userID uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *BookingGormRepository) GetBarberByUser(
	ctx context.Context,
	userID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Availability inputs
// --------------------------------------------------

func (r *BookingGormRepository) GetWeeklyRule(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.WeeklyAvailability, error) {

	var rule models.WeeklyAvailability
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *BookingGormRepository) ListOverrides(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.ScheduleOverride, error) {

	var overrides []models.ScheduleOverride
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("start_time ASC").
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *BookingGormRepository) ListActiveReservations(
	ctx context.Context,
	barberID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID, domain.ActiveStatuses, dayEnd, dayStart,
		).
		Order("start_time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// --------------------------------------------------
// Slot claim
// --------------------------------------------------

// ClaimSlot locks overlapping active rows, re-checks, then inserts, all
// in one transaction. The database exclusion constraint backs this up;
// its violation surfaces as slot_taken too.
func (r *BookingGormRepository) ClaimSlot(
	ctx context.Context,
	res *models.Reservation,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Reservation{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				res.BarberID, domain.ActiveStatuses, res.EndTime, res.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrConflict(httperr.CodeSlotTaken, "time slot is already booked")
		}

		return tx.Create(res).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrConflict(httperr.CodeSlotTaken, "time slot is already booked")
	}
	return err
}

func (r *BookingGormRepository) MoveSlot(
	ctx context.Context,
	res *models.Reservation,
	newStart time.Time,
	newEnd time.Time,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Reservation{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND id <> ? AND status IN ? AND start_time < ? AND end_time > ?",
				res.BarberID, res.ID, domain.ActiveStatuses, newEnd, newStart,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrConflict(httperr.CodeSlotTaken, "time slot is already booked")
		}

		res.StartTime = newStart
		res.EndTime = newEnd
		return tx.Save(res).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrConflict(httperr.CodeSlotTaken, "time slot is already booked")
	}
	return err
}

// --------------------------------------------------
// Reservation (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetReservation(
	ctx context.Context,
	id uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *BookingGormRepository) GetReservationForCustomer(
	ctx context.Context,
	id uint,
	customerID uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *BookingGormRepository) GetReservationForBarber(
	ctx context.Context,
	id uint,
	barberID uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *BookingGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *BookingGormRepository) ListReservationsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Customer.User").
		Preload("ServiceType").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID, start, end,
		).
		Order("start_time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *BookingGormRepository) ListReservationsForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Barber.User").
		Preload("ServiceType").
		Where("customer_id = ?", customerID).
		Order("start_time DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// --------------------------------------------------
// Rating aggregate
// --------------------------------------------------

func (r *BookingGormRepository) RecomputeBarberRating(
	ctx context.Context,
	barberID uint,
) (float64, int64, error) {

	type aggregate struct {
		Avg   float64
		Count int64
	}

	var agg aggregate
	if err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(rating) AS count").
		Where(
			"barber_id = ? AND status = ? AND rating IS NOT NULL",
			barberID, string(domain.StatusCompleted),
		).
		Scan(&agg).Error; err != nil {
		return 0, 0, err
	}

	avg := math.Round(agg.Avg*100) / 100

	if err := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("id = ?", barberID).
		Updates(map[string]any{
			"average_rating": avg,
			"total_ratings":  agg.Count,
		}).Error; err != nil {
		return 0, 0, err
	}

	return avg, agg.Count, nil
}

// --------------------------------------------------
// Notifications
// --------------------------------------------------

func (r *BookingGormRepository) MarkConfirmationSent(
	ctx context.Context,
	reservationID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", reservationID).
		Update("confirmation_sent", true).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
