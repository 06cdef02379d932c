package booking

import (
	"context"
	"time"

	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/dto"
	"github.com/trimlylabs/trimly-api/internal/models"
)

type ListAppointmentsByDate struct {
	repo  domain.Repository
	clock domain.Clock
}

func NewListAppointmentsByDate(repo domain.Repository, clock domain.Clock) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo, clock: clock}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]dto.ReservationListDTO, error) {

	start := time.Date(
		date.Year(), date.Month(), date.Day(),
		0, 0, 0, 0,
		uc.clock.Location(),
	)
	end := start.Add(24 * time.Hour)

	reservations, err := uc.repo.ListReservationsForPeriod(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTOs(reservations), nil
}

type ListAppointmentsByMonth struct {
	repo  domain.Repository
	clock domain.Clock
}

func NewListAppointmentsByMonth(repo domain.Repository, clock domain.Clock) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{repo: repo, clock: clock}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
) ([]dto.ReservationListDTO, error) {

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.clock.Location())
	end := start.AddDate(0, 1, 0)

	reservations, err := uc.repo.ListReservationsForPeriod(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTOs(reservations), nil
}

func toListDTOs(reservations []models.Reservation) []dto.ReservationListDTO {
	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, dto.ReservationListDTO{
			ID:           res.ID,
			Code:         res.Code,
			StartTime:    res.StartTime,
			EndTime:      res.EndTime,
			Status:       res.Status,
			CustomerName: res.Customer.User.Name,
			ServiceName:  res.ServiceType.Name,
			Price:        res.Price,
		})
	}
	return out
}
