package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/httperr"
	"github.com/trimlylabs/trimly-api/internal/httpresp"
	"github.com/trimlylabs/trimly-api/internal/middleware"
	"github.com/trimlylabs/trimly-api/internal/models"
	"github.com/trimlylabs/trimly-api/internal/storage"
	"github.com/trimlylabs/trimly-api/internal/usecase/booking"
)

const maxPhotoBytes = 5 << 20

// ======================================================
// HANDLER
// ======================================================

type BarberHandler struct {
	db          *gorm.DB
	clock       domain.Clock
	photos      *storage.PhotoStore
	listByDate  *booking.ListAppointmentsByDate
	listByMonth *booking.ListAppointmentsByMonth
	setStatus   *booking.SetStatus
}

func NewBarberHandler(
	db *gorm.DB,
	clock domain.Clock,
	photos *storage.PhotoStore,
	listByDate *booking.ListAppointmentsByDate,
	listByMonth *booking.ListAppointmentsByMonth,
	setStatus *booking.SetStatus,
) *BarberHandler {
	return &BarberHandler{
		db:          db,
		clock:       clock,
		photos:      photos,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		setStatus:   setStatus,
	}
}

func (h *BarberHandler) barberFromContext(c *gin.Context) (*models.Barber, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var barber models.Barber
	if err := h.db.Where("user_id = ?", userID).First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber profile not found.")
		return nil, false
	}
	return &barber, true
}

// ======================================================
// AVAILABILITY TOGGLE
// ======================================================

type AvailabilityRequest struct {
	AvailableForBooking *bool `json:"available_for_booking" binding:"required"`
}

func (h *BarberHandler) SetAvailability(c *gin.Context) {
	barber, ok := h.barberFromContext(c)
	if !ok {
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "available_for_booking is required.")
		return
	}

	barber.AvailableForBooking = *req.AvailableForBooking
	if err := h.db.Save(barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Failed to update availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available_for_booking": barber.AvailableForBooking,
	})
}

// ======================================================
// PHOTO UPLOAD
// ======================================================

func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	if h.photos == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "photo_storage_unavailable", "Photo storage is not configured.")
		return
	}

	barber, ok := h.barberFromContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "A photo file is required.")
		return
	}
	defer file.Close()

	if header.Size > maxPhotoBytes {
		httperr.BadRequest(c, "photo_too_large", "Photo must be at most 5 MB.")
		return
	}

	url, err := h.photos.Upload(c.Request.Context(), barber.ID, file)
	if err != nil {
		httperr.Internal(c, "photo_upload_failed", "Failed to process or store the photo.")
		return
	}

	barber.PhotoURL = url
	if err := h.db.Save(barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Failed to save photo URL.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}

// ======================================================
// APPOINTMENTS
// ======================================================

func (h *BarberHandler) ListByDate(c *gin.Context) {
	barber, ok := h.barberFromContext(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date is required.")
		return
	}

	date, err := time.ParseInLocation(domain.DateLayout, dateStr, h.clock.Location())
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), barber.ID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	httpresp.List(c, out)
}

func (h *BarberHandler) ListByMonth(c *gin.Context) {
	barber, ok := h.barberFromContext(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), barber.ID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// STATUS
// ======================================================

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

func (h *BarberHandler) SetReservationStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_reservation_id", "Invalid reservation id.")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required.")
		return
	}

	res, err := h.setStatus.Execute(
		c.Request.Context(),
		userID,
		domain.RoleBarber,
		uint(id),
		domain.Status(req.Status),
		req.Reason,
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
