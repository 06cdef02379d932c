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
	"github.com/trimlylabs/trimly-api/internal/models"
	"github.com/trimlylabs/trimly-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	db       *gorm.DB
	getSlots *booking.GetSlots
	clock    domain.Clock
}

func NewPublicHandler(db *gorm.DB, getSlots *booking.GetSlots, clock domain.Clock) *PublicHandler {
	return &PublicHandler{
		db:       db,
		getSlots: getSlots,
		clock:    clock,
	}
}

// ======================================================
// SERVICES
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.ServiceType
	if err := h.db.
		Where("active = true").
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// BARBERS
// ======================================================

type PublicBarberDTO struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	ExperienceYears int     `json:"experience_years"`
	Bio             string  `json:"bio"`
	PhotoURL        string  `json:"photo_url"`
	AverageRating   float64 `json:"average_rating"`
	TotalRatings    int64   `json:"total_ratings"`
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.
		Preload("User").
		Where("active = true AND approved = true AND available_for_booking = true").
		Order("id ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Failed to list barbers.")
		return
	}

	out := make([]PublicBarberDTO, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, PublicBarberDTO{
			ID:              b.ID,
			Name:            b.User.Name,
			ExperienceYears: b.ExperienceYears,
			Bio:             b.Bio,
			PhotoURL:        b.PhotoURL,
			AverageRating:   b.AverageRating,
			TotalRatings:    b.TotalRatings,
		})
	}

	httpresp.List(c, out)
}

// ======================================================
// SLOTS
// ======================================================

func (h *PublicHandler) GetSlots(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber id.")
		return
	}

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "date and service_id are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	date, err := time.ParseInLocation(domain.DateLayout, dateStr, h.clock.Location())
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.getSlots.Execute(
		c.Request.Context(),
		uint(barberID),
		uint(serviceID),
		date,
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
