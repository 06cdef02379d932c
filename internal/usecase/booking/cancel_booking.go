package booking

import (
	"context"

	"github.com/trimlylabs/trimly-api/internal/audit"
	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/httperr"
	"github.com/trimlylabs/trimly-api/internal/metrics"
	"github.com/trimlylabs/trimly-api/internal/models"
	"github.com/trimlylabs/trimly-api/internal/notify"
)

type CancelBooking struct {
	repo   domain.Repository
	clock  domain.Clock
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	clock domain.Clock,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		clock:  clock,
		notify: notifier,
		audit:  auditor,
	}
}

// Execute is the customer cancellation path: permitted any time before
// the appointment, always recording reason, timestamp and actor.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	userID uint,
	reservationID uint,
	reason string,
) (*models.Reservation, error) {

	customer, err := uc.repo.GetCustomerByUser(ctx, userID)
	if err != nil {
		return nil, httperr.ErrNotFound("customer_not_found", "Customer profile not found.")
	}

	res, err := uc.repo.GetReservationForCustomer(ctx, reservationID, customer.ID)
	if err != nil {
		return nil, httperr.ErrNotFound("reservation_not_found", "Reservation not found.")
	}

	if reason == "" {
		reason = "Customer requested cancellation"
	}

	now := uc.clock.Now()
	if err := domain.Cancel(res, now, userID, reason); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	metrics.BookingsCancelled.Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Role:     string(domain.RoleCustomer),
		Action:   "reservation_cancelled",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	uc.notify.Dispatch(notify.Event{
		Kind:        notify.KindCancellation,
		Reservation: *res,
		Email:       customer.User.Email,
	})

	return res, nil
}
