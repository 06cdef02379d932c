package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/httperr"
	"github.com/trimlylabs/trimly-api/internal/httpresp"
	"github.com/trimlylabs/trimly-api/internal/middleware"
	"github.com/trimlylabs/trimly-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	repo       domain.Repository
	create     *booking.CreateBooking
	cancel     *booking.CancelBooking
	reschedule *booking.RescheduleBooking
	rate       *booking.RateBooking
}

func NewReservationHandler(
	repo domain.Repository,
	create *booking.CreateBooking,
	cancel *booking.CancelBooking,
	reschedule *booking.RescheduleBooking,
	rate *booking.RateBooking,
) *ReservationHandler {
	return &ReservationHandler{
		repo:       repo,
		create:     create,
		cancel:     cancel,
		reschedule: reschedule,
		rate:       rate,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Notes     string `json:"notes"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

type RescheduleReservationRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type RateReservationRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	res, err := h.create.Execute(c.Request.Context(), booking.CreateBookingInput{
		UserID:    userID,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, res)
}

// ======================================================
// LIST MINE
// ======================================================

type CustomerReservationDTO struct {
	ID          uint      `json:"id"`
	Code        string    `json:"code"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	BarberName  string    `json:"barber_name"`
	ServiceName string    `json:"service_name"`
	Price       float64   `json:"price"`
	Rating      *int      `json:"rating,omitempty"`
}

func (h *ReservationHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	customer, err := h.repo.GetCustomerByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.NotFound(c, "customer_not_found", "Customer profile not found.")
		return
	}

	reservations, err := h.repo.ListReservationsForCustomer(c.Request.Context(), customer.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_reservations", "Failed to list reservations.")
		return
	}

	out := make([]CustomerReservationDTO, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, CustomerReservationDTO{
			ID:          res.ID,
			Code:        res.Code,
			StartTime:   res.StartTime,
			EndTime:     res.EndTime,
			Status:      res.Status,
			BarberName:  res.Barber.User.Name,
			ServiceName: res.ServiceType.Name,
			Price:       res.Price,
			Rating:      res.Rating,
		})
	}

	httpresp.List(c, out)
}

// ======================================================
// CANCEL
// ======================================================

func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_reservation_id", "Invalid reservation id.")
		return
	}

	var req CancelReservationRequest
	_ = c.ShouldBindJSON(&req) // reason is optional

	res, err := h.cancel.Execute(c.Request.Context(), userID, uint(id), req.Reason)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *ReservationHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_reservation_id", "Invalid reservation id.")
		return
	}

	var req RescheduleReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	res, err := h.reschedule.Execute(c.Request.Context(), userID, uint(id), req.Date, req.Time)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ======================================================
// RATE
// ======================================================

func (h *ReservationHandler) Rate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_reservation_id", "Invalid reservation id.")
		return
	}

	var req RateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	res, err := h.rate.Execute(c.Request.Context(), userID, uint(id), req.Rating, req.Feedback)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
