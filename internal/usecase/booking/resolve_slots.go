package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/models"
)

// SlotResolver computes the bookable start times for a barber and date.
// The result is recomputed from scratch on every call.
type SlotResolver struct {
	repo domain.Repository
}

func NewSlotResolver(repo domain.Repository) *SlotResolver {
	return &SlotResolver{repo: repo}
}

// Resolve merges the weekly template, the day's overrides and existing
// active reservations into the ordered candidate list. excludeID, when
// non-zero, drops that reservation from the blockers (used when
// rescheduling so a booking does not collide with itself).
func (r *SlotResolver) Resolve(
	ctx context.Context,
	barberID uint,
	date time.Time,
	duration time.Duration,
	excludeID uint,
) ([]time.Time, error) {

	overrides, err := r.repo.ListOverrides(ctx, barberID, date.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}

	window, ok, err := r.dayWindow(ctx, barberID, date, overrides)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	reservations, err := r.repo.ListActiveReservations(ctx, barberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	if excludeID != 0 {
		kept := reservations[:0]
		for _, res := range reservations {
			if res.ID != excludeID {
				kept = append(kept, res)
			}
		}
		reservations = kept
	}

	blockers := domain.BlockersForDay(date, reservations, overrides)

	return domain.ResolveSlots(window, duration, blockers), nil
}

// dayWindow picks the working window: a positive override replaces the
// weekly rule entirely. More than one positive override for a date is a
// data-integrity problem prevented at write time; if present anyway the
// first one wins.
func (r *SlotResolver) dayWindow(
	ctx context.Context,
	barberID uint,
	date time.Time,
	overrides []models.ScheduleOverride,
) (domain.Window, bool, error) {

	for _, ov := range overrides {
		if ov.IsAvailable {
			w, ok := domain.WindowFromOverride(date, ov)
			return w, ok, nil
		}
	}

	rule, err := r.repo.GetWeeklyRule(ctx, barberID, int(date.Weekday()))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No rule for this weekday means the barber simply does not work
		// that day; only real failures go up.
		return domain.Window{}, false, nil
	}
	if err != nil {
		return domain.Window{}, false, err
	}

	w, ok := domain.WindowFromWeekly(date, *rule)
	return w, ok, nil
}
