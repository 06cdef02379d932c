package booking

import (
	"context"
	"time"

	"github.com/trimlylabs/trimly-api/internal/audit"
	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/httperr"
	"github.com/trimlylabs/trimly-api/internal/models"
)

type RescheduleBooking struct {
	repo     domain.Repository
	clock    domain.Clock
	resolver *SlotResolver
	audit    *audit.Dispatcher
}

func NewRescheduleBooking(
	repo domain.Repository,
	clock domain.Clock,
	auditor *audit.Dispatcher,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:     repo,
		clock:    clock,
		resolver: NewSlotResolver(repo),
		audit:    auditor,
	}
}

// Execute moves a reservation to a new slot. Allowed only while the
// reservation is still cancellable; the new time must pass the same
// validation as a fresh booking, and status is left unchanged.
func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	userID uint,
	reservationID uint,
	newDate string,
	newTime string,
) (*models.Reservation, error) {

	customer, err := uc.repo.GetCustomerByUser(ctx, userID)
	if err != nil {
		return nil, httperr.ErrNotFound("customer_not_found", "Customer profile not found.")
	}

	res, err := uc.repo.GetReservationForCustomer(ctx, reservationID, customer.ID)
	if err != nil {
		return nil, httperr.ErrNotFound("reservation_not_found", "Reservation not found.")
	}

	now := uc.clock.Now()
	if err := domain.CanCancel(res, now); err != nil {
		return nil, err
	}

	newStart, err := time.ParseInLocation(
		domain.DateLayout+" "+domain.TimeLayout,
		newDate+" "+newTime,
		uc.clock.Location(),
	)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time", "Invalid date or time format.")
	}

	if !newStart.After(now) {
		return nil, httperr.ErrConflict(httperr.CodeInPast, "Cannot reschedule to a past date/time.")
	}

	duration := time.Duration(res.DurationMin) * time.Minute

	// The booking being moved must not block its own target slot.
	slots, err := uc.resolver.Resolve(ctx, res.BarberID, newStart, duration, res.ID)
	if err != nil {
		return nil, err
	}
	if !domain.ContainsSlot(slots, newStart) {
		return nil, httperr.ErrConflict(httperr.CodeOutsideAvailability, "The barber is not available at the selected time.")
	}

	newEnd := newStart.Add(duration)
	if err := uc.repo.MoveSlot(ctx, res, newStart, newEnd); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Role:     string(domain.RoleCustomer),
		Action:   "reservation_rescheduled",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
