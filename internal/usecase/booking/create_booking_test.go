package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/httperr"
	"github.com/trimlylabs/trimly-api/internal/models"
)

const (
	testUserID    = uint(10)
	testBarberID  = uint(1)
	testServiceID = uint(1)
	testDate      = "2026-03-02" // a Monday
)

// newTestEnv seeds one approved barber working Mondays 09:00-17:00, one
// customer and one 30-minute service, with the clock frozen at 08:00.
func newTestEnv() (*fakeRepo, domain.FixedClock) {
	repo := newFakeRepo()

	repo.customers[1] = &models.Customer{
		ID:     1,
		UserID: testUserID,
		User:   models.User{ID: testUserID, Name: "Ana", Email: "ana@example.com"},
		Active: true,
	}

	repo.barbers[testBarberID] = &models.Barber{
		ID:                  testBarberID,
		UserID:              20,
		User:                models.User{ID: 20, Name: "Marco"},
		Active:              true,
		Approved:            true,
		AvailableForBooking: true,
	}

	repo.services[testServiceID] = &models.ServiceType{
		ID:          testServiceID,
		Name:        "Classic Cut",
		Price:       350,
		DurationMin: 30,
		Active:      true,
	}

	repo.addWeekly(testBarberID, 1, "09:00", "17:00")

	clock := domain.FixedClock{
		Instant: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}
	return repo, clock
}

func newCreateUC(repo *fakeRepo, clock domain.Clock) *CreateBooking {
	return NewCreateBooking(repo, clock, testNotify(repo), testAudit())
}

func TestCreateBooking_Success(t *testing.T) {
	repo, clock := newTestEnv()
	uc := newCreateUC(repo, clock)

	res, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:    testUserID,
		BarberID:  testBarberID,
		ServiceID: testServiceID,
		Date:      testDate,
		Time:      "10:00",
		Notes:     "fade please",
	})
	require.NoError(t, err)

	require.Equal(t, string(domain.StatusPending), res.Status)
	require.NotEmpty(t, res.Code)
	require.Equal(t, 350.0, res.Price)
	require.Equal(t, 30, res.DurationMin)
	require.True(t, res.EndTime.Equal(res.StartTime.Add(30*time.Minute)))
	require.NotZero(t, res.ID)
}

func TestCreateBooking_InPast(t *testing.T) {
	repo, clock := newTestEnv()
	uc := newCreateUC(repo, clock)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:    testUserID,
		BarberID:  testBarberID,
		ServiceID: testServiceID,
		Date:      testDate,
		Time:      "07:00", // clock is frozen at 08:00
	})
	require.Error(t, err)
	require.True(t, httperr.IsBusiness(err, httperr.CodeInPast))
	require.Equal(t, httperr.KindConflict, httperr.KindOf(err))
}

func TestCreateBooking_OutsideAvailability(t *testing.T) {
	repo, clock := newTestEnv()
	uc := newCreateUC(repo, clock)

	for _, hhmm := range []string{"08:30", "17:00", "10:15"} {
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			UserID:    testUserID,
			BarberID:  testBarberID,
			ServiceID: testServiceID,
			Date:      testDate,
			Time:      hhmm,
		})
		require.Error(t, err, "time %s", hhmm)
		require.True(t, httperr.IsBusiness(err, httperr.CodeOutsideAvailability), "time %s", hhmm)
	}
}

func TestCreateBooking_DayOff(t *testing.T) {
	repo, clock := newTestEnv()
	uc := newCreateUC(repo, clock)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:    testUserID,
		BarberID:  testBarberID,
		ServiceID: testServiceID,
		Date:      "2026-03-03", // Tuesday, no weekly rule
		Time:      "10:00",
	})
	require.Error(t, err)
	require.True(t, httperr.IsBusiness(err, httperr.CodeOutsideAvailability))
}

func TestCreateBooking_AlreadyBookedSlot(t *testing.T) {
	repo, clock := newTestEnv()
	uc := newCreateUC(repo, clock)

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	repo.addReservation(models.Reservation{
		CustomerID: 1,
		BarberID:   testBarberID,
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		Status:     string(domain.StatusConfirmed),
	})

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:    testUserID,
		BarberID:  testBarberID,
		ServiceID: testServiceID,
		Date:      testDate,
		Time:      "10:00",
	})
	require.Error(t, err)
	require.True(t, httperr.IsBusiness(err, httperr.CodeOutsideAvailability))
}

func TestCreateBooking_BarberNotAcceptingBookings(t *testing.T) {
	repo, clock := newTestEnv()
	repo.barbers[testBarberID].AvailableForBooking = false
	uc := newCreateUC(repo, clock)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:    testUserID,
		BarberID:  testBarberID,
		ServiceID: testServiceID,
		Date:      testDate,
		Time:      "10:00",
	})
	require.Error(t, err)
	require.Equal(t, httperr.KindState, httperr.KindOf(err))
}

func TestCreateBooking_InvalidDateTime(t *testing.T) {
	repo, clock := newTestEnv()
	uc := newCreateUC(repo, clock)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:    testUserID,
		BarberID:  testBarberID,
		ServiceID: testServiceID,
		Date:      "03/02/2026",
		Time:      "10:00",
	})
	require.Error(t, err)
	require.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

// staleReads hides existing reservations from the resolver, simulating
// two requests that both validated before either one wrote.
type staleReads struct {
	*fakeRepo
}

func (s staleReads) ListActiveReservations(context.Context, uint, time.Time, time.Time) ([]models.Reservation, error) {
	return nil, nil
}

func TestCreateBooking_ConcurrentClaims(t *testing.T) {
	repo, clock := newTestEnv()
	uc := NewCreateBooking(staleReads{repo}, clock, testNotify(repo), testAudit())

	input := CreateBookingInput{
		UserID:    testUserID,
		BarberID:  testBarberID,
		ServiceID: testServiceID,
		Date:      testDate,
		Time:      "10:00",
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), input)
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		require.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))
		losses++
	}
	require.Equal(t, 1, wins, "exactly one claim must win")
	require.Equal(t, 1, losses)

	repo.mu.Lock()
	stored := len(repo.reservations)
	repo.mu.Unlock()
	require.Equal(t, 1, stored)
}
