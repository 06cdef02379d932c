package booking

import (
	"context"

	"github.com/trimlylabs/trimly-api/internal/audit"
	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/httperr"
	"github.com/trimlylabs/trimly-api/internal/models"
)

type RateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRateBooking(repo domain.Repository, auditor *audit.Dispatcher) *RateBooking {
	return &RateBooking{repo: repo, audit: auditor}
}

// Execute sets the one-time rating and recomputes the barber's
// aggregate. The recompute runs after the reservation commit and is a
// pure aggregate over current rows, safe to redo.
func (uc *RateBooking) Execute(
	ctx context.Context,
	userID uint,
	reservationID uint,
	rating int,
	feedback string,
) (*models.Reservation, error) {

	customer, err := uc.repo.GetCustomerByUser(ctx, userID)
	if err != nil {
		return nil, httperr.ErrNotFound("customer_not_found", "Customer profile not found.")
	}

	res, err := uc.repo.GetReservationForCustomer(ctx, reservationID, customer.ID)
	if err != nil {
		return nil, httperr.ErrNotFound("reservation_not_found", "Reservation not found.")
	}

	if err := domain.Rate(res, rating, feedback); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	if _, _, err := uc.repo.RecomputeBarberRating(ctx, res.BarberID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Role:     string(domain.RoleCustomer),
		Action:   "reservation_rated",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
