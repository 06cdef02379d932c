package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/httperr"
	"github.com/trimlylabs/trimly-api/internal/models"
)

func newRescheduleUC(repo *fakeRepo, clock domain.Clock) *RescheduleBooking {
	return NewRescheduleBooking(repo, clock, testAudit())
}

func TestRescheduleBooking_MovesSlot(t *testing.T) {
	repo, clock := newTestEnv()

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	res := repo.addReservation(models.Reservation{
		CustomerID:  1,
		BarberID:    testBarberID,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		DurationMin: 30,
		Status:      string(domain.StatusConfirmed),
	})

	uc := newRescheduleUC(repo, clock)

	out, err := uc.Execute(context.Background(), testUserID, res.ID, testDate, "14:00")
	require.NoError(t, err)

	require.True(t, out.StartTime.Equal(time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)))
	require.True(t, out.EndTime.Equal(time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)))
	require.Equal(t, string(domain.StatusConfirmed), out.Status, "status survives a move")
}

func TestRescheduleBooking_OwnSlotNotABlocker(t *testing.T) {
	repo, clock := newTestEnv()

	// Moving within the booking's own window must not self-collide.
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	res := repo.addReservation(models.Reservation{
		CustomerID:  1,
		BarberID:    testBarberID,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		DurationMin: 30,
		Status:      string(domain.StatusPending),
	})

	uc := newRescheduleUC(repo, clock)

	out, err := uc.Execute(context.Background(), testUserID, res.ID, testDate, "10:00")
	require.NoError(t, err)
	require.True(t, out.StartTime.Equal(start))
}

func TestRescheduleBooking_TargetTaken(t *testing.T) {
	repo, clock := newTestEnv()

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	res := repo.addReservation(models.Reservation{
		CustomerID:  1,
		BarberID:    testBarberID,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		DurationMin: 30,
		Status:      string(domain.StatusConfirmed),
	})

	other := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	repo.addReservation(models.Reservation{
		CustomerID: 99,
		BarberID:   testBarberID,
		StartTime:  other,
		EndTime:    other.Add(30 * time.Minute),
		Status:     string(domain.StatusConfirmed),
	})

	uc := newRescheduleUC(repo, clock)

	_, err := uc.Execute(context.Background(), testUserID, res.ID, testDate, "14:00")
	require.Error(t, err)
	require.True(t, httperr.IsBusiness(err, httperr.CodeOutsideAvailability))
}

func TestRescheduleBooking_PastTarget(t *testing.T) {
	repo, clock := newTestEnv()

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	res := repo.addReservation(models.Reservation{
		CustomerID:  1,
		BarberID:    testBarberID,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		DurationMin: 30,
		Status:      string(domain.StatusConfirmed),
	})

	uc := newRescheduleUC(repo, clock)

	_, err := uc.Execute(context.Background(), testUserID, res.ID, testDate, "07:30")
	require.Error(t, err)
	require.True(t, httperr.IsBusiness(err, httperr.CodeInPast))
}

func TestRescheduleBooking_TerminalReservation(t *testing.T) {
	repo, clock := newTestEnv()

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	res := repo.addReservation(models.Reservation{
		CustomerID:  1,
		BarberID:    testBarberID,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		DurationMin: 30,
		Status:      string(domain.StatusCancelled),
	})

	uc := newRescheduleUC(repo, clock)

	_, err := uc.Execute(context.Background(), testUserID, res.ID, testDate, "14:00")
	require.Error(t, err)
	require.Equal(t, httperr.KindState, httperr.KindOf(err))
}
