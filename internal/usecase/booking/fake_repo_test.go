package booking

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trimlylabs/trimly-api/internal/audit"
	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/httperr"
	"github.com/trimlylabs/trimly-api/internal/models"
	"github.com/trimlylabs/trimly-api/internal/notify"
)

// fakeRepo is an in-memory Repository. ClaimSlot and MoveSlot keep the
// production contract: the overlap re-check and the insert happen under
// one lock, so concurrent claims for the same slot cannot both win.
type fakeRepo struct {
	mu sync.Mutex

	services  map[uint]*models.ServiceType
	barbers   map[uint]*models.Barber
	customers map[uint]*models.Customer
	weekly    map[uint]map[int]*models.WeeklyAvailability
	overrides []models.ScheduleOverride

	reservations map[uint]*models.Reservation
	nextID       uint

	confirmationsMarked []uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[uint]*models.ServiceType{},
		barbers:      map[uint]*models.Barber{},
		customers:    map[uint]*models.Customer{},
		weekly:       map[uint]map[int]*models.WeeklyAvailability{},
		reservations: map[uint]*models.Reservation{},
	}
}

func (f *fakeRepo) addWeekly(barberID uint, weekday int, start, end string) {
	if f.weekly[barberID] == nil {
		f.weekly[barberID] = map[int]*models.WeeklyAvailability{}
	}
	f.weekly[barberID][weekday] = &models.WeeklyAvailability{
		BarberID:  barberID,
		Weekday:   weekday,
		Available: true,
		StartTime: start,
		EndTime:   end,
	}
}

func (f *fakeRepo) addReservation(res models.Reservation) *models.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	res.ID = f.nextID
	f.reservations[res.ID] = &res
	return &res
}

// -------- Reference data --------

func (f *fakeRepo) GetServiceType(_ context.Context, id uint) (*models.ServiceType, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	if b, ok := f.barbers[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetCustomer(_ context.Context, id uint) (*models.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetCustomerByUser(_ context.Context, userID uint) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetBarberByUser(_ context.Context, userID uint) (*models.Barber, error) {
	for _, b := range f.barbers {
		if b.UserID == userID {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// -------- Availability inputs --------

func (f *fakeRepo) GetWeeklyRule(_ context.Context, barberID uint, weekday int) (*models.WeeklyAvailability, error) {
	if rules, ok := f.weekly[barberID]; ok {
		if r, ok := rules[weekday]; ok {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListOverrides(_ context.Context, barberID uint, date string) ([]models.ScheduleOverride, error) {
	var out []models.ScheduleOverride
	for _, ov := range f.overrides {
		if ov.BarberID == barberID && ov.Date == date {
			out = append(out, ov)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListActiveReservations(_ context.Context, barberID uint, dayStart, dayEnd time.Time) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Reservation
	for _, res := range f.reservations {
		if res.BarberID == barberID &&
			domain.IsActive(domain.Status(res.Status)) &&
			res.StartTime.Before(dayEnd) && res.EndTime.After(dayStart) {
			out = append(out, *res)
		}
	}
	return out, nil
}

// -------- Slot claim --------

func (f *fakeRepo) overlappingLocked(barberID, excludeID uint, start, end time.Time) bool {
	for _, res := range f.reservations {
		if res.ID == excludeID || res.BarberID != barberID {
			continue
		}
		if domain.IsActive(domain.Status(res.Status)) &&
			res.StartTime.Before(end) && res.EndTime.After(start) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) ClaimSlot(_ context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.overlappingLocked(res.BarberID, 0, res.StartTime, res.EndTime) {
		return httperr.ErrConflict(httperr.CodeSlotTaken, "time slot is already booked")
	}

	f.nextID++
	res.ID = f.nextID
	stored := *res
	f.reservations[res.ID] = &stored
	return nil
}

func (f *fakeRepo) MoveSlot(_ context.Context, res *models.Reservation, newStart, newEnd time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.overlappingLocked(res.BarberID, res.ID, newStart, newEnd) {
		return httperr.ErrConflict(httperr.CodeSlotTaken, "time slot is already booked")
	}

	res.StartTime = newStart
	res.EndTime = newEnd
	stored := *res
	f.reservations[res.ID] = &stored
	return nil
}

// -------- Reservation (state change) --------

func (f *fakeRepo) GetReservation(_ context.Context, id uint) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if res, ok := f.reservations[id]; ok {
		cp := *res
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetReservationForCustomer(ctx context.Context, id, customerID uint) (*models.Reservation, error) {
	res, err := f.GetReservation(ctx, id)
	if err != nil || res.CustomerID != customerID {
		return nil, gorm.ErrRecordNotFound
	}
	return res, nil
}

func (f *fakeRepo) GetReservationForBarber(ctx context.Context, id, barberID uint) (*models.Reservation, error) {
	res, err := f.GetReservation(ctx, id)
	if err != nil || res.BarberID != barberID {
		return nil, gorm.ErrRecordNotFound
	}
	return res, nil
}

func (f *fakeRepo) UpdateReservation(_ context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := *res
	f.reservations[res.ID] = &stored
	return nil
}

func (f *fakeRepo) ListReservationsForPeriod(_ context.Context, barberID uint, start, end time.Time) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Reservation
	for _, res := range f.reservations {
		if res.BarberID == barberID &&
			!res.StartTime.Before(start) && res.StartTime.Before(end) {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListReservationsForCustomer(_ context.Context, customerID uint) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Reservation
	for _, res := range f.reservations {
		if res.CustomerID == customerID {
			out = append(out, *res)
		}
	}
	return out, nil
}

// -------- Rating aggregate --------

func (f *fakeRepo) RecomputeBarberRating(_ context.Context, barberID uint) (float64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var sum float64
	var count int64
	for _, res := range f.reservations {
		if res.BarberID == barberID &&
			res.Status == string(domain.StatusCompleted) &&
			res.Rating != nil {
			sum += float64(*res.Rating)
			count++
		}
	}

	var avg float64
	if count > 0 {
		avg = math.Round(sum/float64(count)*100) / 100
	}

	if b, ok := f.barbers[barberID]; ok {
		b.AverageRating = avg
		b.TotalRatings = count
	}
	return avg, count, nil
}

// -------- Notifications --------

func (f *fakeRepo) MarkConfirmationSent(_ context.Context, reservationID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.confirmationsMarked = append(f.confirmationsMarked, reservationID)
	if res, ok := f.reservations[reservationID]; ok {
		res.ConfirmationSent = true
	}
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// -------- Dispatchers --------

type noopSink struct{}

func (noopSink) Log(*uint, string, string, string, *uint, any) error { return nil }

func testAudit() *audit.Dispatcher {
	return audit.NewDispatcher(noopSink{}, zap.NewNop())
}

func testNotify(repo *fakeRepo) *notify.Dispatcher {
	return notify.NewDispatcher(notify.NoopNotifier{}, repo, zap.NewNop())
}
