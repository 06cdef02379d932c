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

type SetStatus struct {
	repo   domain.Repository
	clock  domain.Clock
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
}

func NewSetStatus(
	repo domain.Repository,
	clock domain.Clock,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *SetStatus {
	return &SetStatus{
		repo:   repo,
		clock:  clock,
		notify: notifier,
		audit:  auditor,
	}
}

// Execute is the barber/admin status path. A barber may only touch
// their own reservations; admins may touch any.
func (uc *SetStatus) Execute(
	ctx context.Context,
	actorUserID uint,
	role domain.Role,
	reservationID uint,
	to domain.Status,
	reason string,
) (*models.Reservation, error) {

	var res *models.Reservation
	var err error

	switch role {
	case domain.RoleAdmin:
		res, err = uc.repo.GetReservation(ctx, reservationID)
		if err != nil {
			return nil, httperr.ErrNotFound("reservation_not_found", "Reservation not found.")
		}
	case domain.RoleBarber:
		barber, berr := uc.repo.GetBarberByUser(ctx, actorUserID)
		if berr != nil {
			return nil, httperr.ErrNotFound("barber_not_found", "Barber profile not found.")
		}
		res, err = uc.repo.GetReservationForBarber(ctx, reservationID, barber.ID)
		if err != nil {
			return nil, httperr.ErrNotFound("reservation_not_found", "Reservation not found.")
		}
	default:
		return nil, httperr.ErrAuthorization("role_not_allowed", "Actor may not change reservation status.")
	}

	now := uc.clock.Now()
	if err := domain.ApplyStatus(res, role, to, now, actorUserID, reason); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorUserID,
		Role:     string(role),
		Action:   "reservation_status_" + string(to),
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	if to == domain.StatusCancelled || to == domain.StatusRejected {
		metrics.BookingsCancelled.Inc()

		if customer, cerr := uc.repo.GetCustomer(ctx, res.CustomerID); cerr == nil {
			uc.notify.Dispatch(notify.Event{
				Kind:        notify.KindCancellation,
				Reservation: *res,
				Email:       customer.User.Email,
			})
		}
	}

	return res, nil
}
