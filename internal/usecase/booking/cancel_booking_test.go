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

func newCancelUC(repo *fakeRepo, clock domain.Clock) *CancelBooking {
	return NewCancelBooking(repo, clock, testNotify(repo), testAudit())
}

func TestCancelBooking_MinutesBeforeStart(t *testing.T) {
	repo, clock := newTestEnv()

	// Appointment starts ten minutes after the frozen clock.
	start := clock.Instant.Add(10 * time.Minute)
	res := repo.addReservation(models.Reservation{
		CustomerID: 1,
		BarberID:   testBarberID,
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		Status:     string(domain.StatusConfirmed),
	})

	uc := newCancelUC(repo, clock)

	out, err := uc.Execute(context.Background(), testUserID, res.ID, "traffic")
	require.NoError(t, err)

	require.Equal(t, string(domain.StatusCancelled), out.Status)
	require.Equal(t, "traffic", out.CancellationReason)
	require.NotNil(t, out.CancelledAt)
	require.True(t, out.CancelledAt.Equal(clock.Instant))
	require.NotNil(t, out.CancelledByID)
	require.Equal(t, testUserID, *out.CancelledByID)

	stored, err := repo.GetReservation(context.Background(), res.ID)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusCancelled), stored.Status)
}

func TestCancelBooking_DefaultReason(t *testing.T) {
	repo, clock := newTestEnv()

	start := clock.Instant.Add(2 * time.Hour)
	res := repo.addReservation(models.Reservation{
		CustomerID: 1,
		BarberID:   testBarberID,
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		Status:     string(domain.StatusPending),
	})

	uc := newCancelUC(repo, clock)

	out, err := uc.Execute(context.Background(), testUserID, res.ID, "")
	require.NoError(t, err)
	require.Equal(t, "Customer requested cancellation", out.CancellationReason)
}

func TestCancelBooking_AfterStart(t *testing.T) {
	repo, clock := newTestEnv()

	res := repo.addReservation(models.Reservation{
		CustomerID: 1,
		BarberID:   testBarberID,
		StartTime:  clock.Instant.Add(-1 * time.Hour),
		EndTime:    clock.Instant.Add(-30 * time.Minute),
		Status:     string(domain.StatusConfirmed),
	})

	uc := newCancelUC(repo, clock)

	_, err := uc.Execute(context.Background(), testUserID, res.ID, "")
	require.Error(t, err)
	require.Equal(t, httperr.KindState, httperr.KindOf(err))
}

func TestCancelBooking_NotOwnReservation(t *testing.T) {
	repo, clock := newTestEnv()

	start := clock.Instant.Add(2 * time.Hour)
	res := repo.addReservation(models.Reservation{
		CustomerID: 99, // someone else's
		BarberID:   testBarberID,
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		Status:     string(domain.StatusConfirmed),
	})

	uc := newCancelUC(repo, clock)

	_, err := uc.Execute(context.Background(), testUserID, res.ID, "")
	require.Error(t, err)
	require.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}
