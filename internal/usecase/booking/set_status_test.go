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

const barberUserID = uint(20)

func newSetStatusUC(repo *fakeRepo, clock domain.Clock) *SetStatus {
	return NewSetStatus(repo, clock, testNotify(repo), testAudit())
}

func pendingReservation(repo *fakeRepo, clock domain.FixedClock, barberID uint) *models.Reservation {
	start := clock.Instant.Add(2 * time.Hour)
	return repo.addReservation(models.Reservation{
		CustomerID: 1,
		BarberID:   barberID,
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		Status:     string(domain.StatusPending),
	})
}

func TestSetStatus_BarberConfirms(t *testing.T) {
	repo, clock := newTestEnv()
	res := pendingReservation(repo, clock, testBarberID)

	uc := newSetStatusUC(repo, clock)

	out, err := uc.Execute(
		context.Background(),
		barberUserID, domain.RoleBarber,
		res.ID, domain.StatusConfirmed, "",
	)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusConfirmed), out.Status)
}

func TestSetStatus_BarberCannotTouchOthers(t *testing.T) {
	repo, clock := newTestEnv()

	repo.barbers[2] = &models.Barber{ID: 2, UserID: 30, Active: true, Approved: true}
	res := pendingReservation(repo, clock, 2)

	uc := newSetStatusUC(repo, clock)

	_, err := uc.Execute(
		context.Background(),
		barberUserID, domain.RoleBarber,
		res.ID, domain.StatusConfirmed, "",
	)
	require.Error(t, err)
	require.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestSetStatus_CustomerRoleRejected(t *testing.T) {
	repo, clock := newTestEnv()
	res := pendingReservation(repo, clock, testBarberID)

	uc := newSetStatusUC(repo, clock)

	_, err := uc.Execute(
		context.Background(),
		testUserID, domain.RoleCustomer,
		res.ID, domain.StatusConfirmed, "",
	)
	require.Error(t, err)
	require.Equal(t, httperr.KindAuthorization, httperr.KindOf(err))
}

func TestSetStatus_IllegalTransition(t *testing.T) {
	repo, clock := newTestEnv()
	res := pendingReservation(repo, clock, testBarberID)

	uc := newSetStatusUC(repo, clock)

	// pending cannot jump straight to completed.
	_, err := uc.Execute(
		context.Background(),
		barberUserID, domain.RoleBarber,
		res.ID, domain.StatusCompleted, "",
	)
	require.Error(t, err)
	require.True(t, httperr.IsBusiness(err, "illegal_transition"))
}

func TestSetStatus_AdminFullEnum(t *testing.T) {
	repo, clock := newTestEnv()
	res := pendingReservation(repo, clock, testBarberID)

	uc := newSetStatusUC(repo, clock)
	adminID := uint(99)

	out, err := uc.Execute(
		context.Background(),
		adminID, domain.RoleAdmin,
		res.ID, domain.StatusConfirmed, "",
	)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusConfirmed), out.Status)

	out, err = uc.Execute(
		context.Background(),
		adminID, domain.RoleAdmin,
		res.ID, domain.StatusInProgress, "",
	)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusInProgress), out.Status)

	out, err = uc.Execute(
		context.Background(),
		adminID, domain.RoleAdmin,
		res.ID, domain.StatusCompleted, "",
	)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusCompleted), out.Status)
	require.NotNil(t, out.CompletedAt)
}

func TestSetStatus_RejectionRecordsMetadata(t *testing.T) {
	repo, clock := newTestEnv()
	res := pendingReservation(repo, clock, testBarberID)

	uc := newSetStatusUC(repo, clock)

	out, err := uc.Execute(
		context.Background(),
		barberUserID, domain.RoleBarber,
		res.ID, domain.StatusRejected, "double booked externally",
	)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusRejected), out.Status)
	require.Equal(t, "double booked externally", out.CancellationReason)
	require.NotNil(t, out.CancelledAt)
	require.Equal(t, barberUserID, *out.CancelledByID)
}
