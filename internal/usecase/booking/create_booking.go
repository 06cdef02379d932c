package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trimlylabs/trimly-api/internal/audit"
	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/httperr"
	"github.com/trimlylabs/trimly-api/internal/metrics"
	"github.com/trimlylabs/trimly-api/internal/models"
	"github.com/trimlylabs/trimly-api/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID    uint
	BarberID  uint
	ServiceID uint

	Date  string // 2006-01-02
	Time  string // 15:04
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	clock    domain.Clock
	resolver *SlotResolver
	notify   *notify.Dispatcher
	audit    *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	clock domain.Clock,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		clock:    clock,
		resolver: NewSlotResolver(repo),
		notify:   notifier,
		audit:    auditor,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Reservation, error) {

	customer, err := uc.repo.GetCustomerByUser(ctx, in.UserID)
	if err != nil {
		return nil, httperr.ErrNotFound("customer_not_found", "Customer profile not found.")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil || !barber.Active || !barber.Approved {
		return nil, httperr.ErrNotFound("barber_not_found", "Barber not found.")
	}
	if !barber.AvailableForBooking {
		return nil, httperr.ErrState("barber_not_accepting_bookings", "Barber is not accepting bookings.")
	}

	svc, err := uc.repo.GetServiceType(ctx, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrNotFound("service_not_found", "Service not found.")
	}

	start, err := time.ParseInLocation(
		domain.DateLayout+" "+domain.TimeLayout,
		in.Date+" "+in.Time,
		uc.clock.Location(),
	)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time", "Invalid date or time format.")
	}

	// Checks in order, short-circuiting on first failure.
	now := uc.clock.Now()
	if !start.After(now) {
		return nil, httperr.ErrConflict(httperr.CodeInPast, "Cannot book appointments in the past.")
	}

	duration := time.Duration(svc.DurationMin) * time.Minute

	slots, err := uc.resolver.Resolve(ctx, in.BarberID, start, duration, 0)
	if err != nil {
		return nil, err
	}
	if !domain.ContainsSlot(slots, start) {
		return nil, httperr.ErrConflict(httperr.CodeOutsideAvailability, "The barber is not available at the selected time.")
	}

	res := &models.Reservation{
		Code:          uuid.NewString(),
		CustomerID:    customer.ID,
		BarberID:      barber.ID,
		ServiceTypeID: svc.ID,
		StartTime:     start,
		Notes:         in.Notes,
		Status:        string(domain.InitialStatus()),
	}
	domain.SnapshotService(res, svc)
	res.EndTime = start.Add(time.Duration(res.DurationMin) * time.Minute)

	if err := uc.repo.ClaimSlot(ctx, res); err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotTaken) {
			metrics.BookingConflicts.Inc()
		}
		return nil, err
	}

	metrics.BookingsCreated.Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Role:     string(domain.RoleCustomer),
		Action:   "reservation_created",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	uc.notify.Dispatch(notify.Event{
		Kind:        notify.KindConfirmation,
		Reservation: *res,
		Email:       customer.User.Email,
	})

	return res, nil
}
