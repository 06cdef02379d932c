package booking

import (
	"context"
	"time"

	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/httperr"
)

type GetSlots struct {
	repo     domain.Repository
	resolver *SlotResolver
}

func NewGetSlots(repo domain.Repository) *GetSlots {
	return &GetSlots{
		repo:     repo,
		resolver: NewSlotResolver(repo),
	}
}

// Execute returns the bookable start times ("15:04") for the barber on
// the given date, sized for the requested service. A barber who is
// inactive, unapproved or switched off for booking has no slots.
func (uc *GetSlots) Execute(
	ctx context.Context,
	barberID uint,
	serviceID uint,
	date time.Time,
) ([]string, error) {

	barber, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return nil, httperr.ErrNotFound("barber_not_found", "Barber not found.")
	}

	if !barber.Active || !barber.Approved || !barber.AvailableForBooking {
		return []string{}, nil
	}

	svc, err := uc.repo.GetServiceType(ctx, serviceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrNotFound("service_not_found", "Service not found.")
	}

	duration := time.Duration(svc.DurationMin) * time.Minute

	slots, err := uc.resolver.Resolve(ctx, barberID, date, duration, 0)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format(domain.TimeLayout))
	}
	return out, nil
}
