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
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	db    *gorm.DB
	clock domain.Clock
}

func NewScheduleHandler(db *gorm.DB, clock domain.Clock) *ScheduleHandler {
	return &ScheduleHandler{db: db, clock: clock}
}

func (h *ScheduleHandler) barberFromContext(c *gin.Context) (*models.Barber, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var barber models.Barber
	if err := h.db.Where("user_id = ?", userID).First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber profile not found.")
		return nil, false
	}
	return &barber, true
}

// ======================================================
// WEEKLY TEMPLATE
// ======================================================

type WeeklyDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Available bool   `json:"available"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WeeklyUpdateRequest struct {
	Days []WeeklyDayConfig `json:"days" binding:"required"`
}

func (h *ScheduleHandler) GetWeekly(c *gin.Context) {
	barber, ok := h.barberFromContext(c)
	if !ok {
		return
	}

	var rules []models.WeeklyAvailability
	if err := h.db.
		Where("barber_id = ?", barber.ID).
		Order("weekday ASC").
		Find(&rules).Error; err != nil {

		httperr.Internal(c, "failed_to_get_schedule", "Failed to load weekly schedule.")
		return
	}

	c.JSON(http.StatusOK, rules)
}

func (h *ScheduleHandler) UpdateWeekly(c *gin.Context) {
	barber, ok := h.barberFromContext(c)
	if !ok {
		return
	}

	var req WeeklyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	seen := map[int]bool{}
	for i, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Each weekday may appear only once.")
			return
		}
		seen[d.Weekday] = true

		if d.Available {
			start, end, ok := normalizeWindow(d.StartTime, d.EndTime)
			if !ok {
				httperr.BadRequest(c, "invalid_window", "start_time must be before end_time (HH:mm).")
				return
			}
			req.Days[i].StartTime = start
			req.Days[i].EndTime = end
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barber.ID).
			Delete(&models.WeeklyAvailability{}).Error; err != nil {
			return err
		}

		var toCreate []models.WeeklyAvailability
		for _, d := range req.Days {
			toCreate = append(toCreate, models.WeeklyAvailability{
				BarberID:  barber.ID,
				Weekday:   d.Weekday,
				Available: d.Available,
				StartTime: d.StartTime,
				EndTime:   d.EndTime,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "Failed to save weekly schedule.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// OVERRIDES
// ======================================================

type CreateOverrideRequest struct {
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	IsAvailable bool   `json:"is_available"`
	SlotMinutes int    `json:"slot_minutes"`
	Notes       string `json:"notes"`
}

func (h *ScheduleHandler) ListOverrides(c *gin.Context) {
	barber, ok := h.barberFromContext(c)
	if !ok {
		return
	}

	q := h.db.Where("barber_id = ?", barber.ID)

	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var overrides []models.ScheduleOverride
	if err := q.Order("date ASC, start_time ASC").Find(&overrides).Error; err != nil {
		httperr.Internal(c, "failed_to_list_overrides", "Failed to list overrides.")
		return
	}

	c.JSON(http.StatusOK, overrides)
}

func (h *ScheduleHandler) CreateOverride(c *gin.Context) {
	barber, ok := h.barberFromContext(c)
	if !ok {
		return
	}

	var req CreateOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	date, err := time.ParseInLocation(domain.DateLayout, req.Date, h.clock.Location())
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}
	dateStr := date.Format(domain.DateLayout)

	startTime, endTime, ok := normalizeWindow(req.StartTime, req.EndTime)
	if !ok {
		httperr.BadRequest(c, "invalid_window", "start_time must be before end_time (HH:mm).")
		return
	}

	// Exceptions for days already over are meaningless.
	now := h.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		httperr.BadRequest(c, "date_in_past", "Cannot create an override for a past date.")
		return
	}

	slotMinutes := req.SlotMinutes
	if slotMinutes <= 0 {
		slotMinutes = domain.DefaultSlotMinutes
	}

	// Overlapping overrides on the same date would make the working
	// window ambiguous, so they are rejected up front.
	var existing []models.ScheduleOverride
	if err := h.db.
		Where("barber_id = ? AND date = ?", barber.ID, dateStr).
		Find(&existing).Error; err != nil {

		httperr.Internal(c, "failed_to_check_overrides", "Failed to validate override.")
		return
	}

	for _, ov := range existing {
		if windowsOverlap(startTime, endTime, ov.StartTime, ov.EndTime) {
			httperr.Conflict(c, "override_overlap", "Override overlaps an existing one for this date.")
			return
		}
	}

	override := models.ScheduleOverride{
		BarberID:    barber.ID,
		Date:        dateStr,
		StartTime:   startTime,
		EndTime:     endTime,
		IsAvailable: req.IsAvailable,
		SlotMinutes: slotMinutes,
		Notes:       req.Notes,
	}

	if err := h.db.Create(&override).Error; err != nil {
		httperr.Internal(c, "failed_to_create_override", "Failed to create override.")
		return
	}

	httpresp.Created(c, override)
}

func (h *ScheduleHandler) DeleteOverride(c *gin.Context) {
	barber, ok := h.barberFromContext(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_override_id", "Invalid override id.")
		return
	}

	var override models.ScheduleOverride
	if err := h.db.
		Where("id = ? AND barber_id = ?", id, barber.ID).
		First(&override).Error; err != nil {

		httperr.NotFound(c, "override_not_found", "Override not found.")
		return
	}

	// Removing a positive override would strand bookings made inside
	// its window; the bookings must be resolved first.
	if override.IsAvailable {
		winStart, err1 := domain.AtTime(mustParseDate(override.Date, h.clock.Location()), override.StartTime)
		winEnd, err2 := domain.AtTime(mustParseDate(override.Date, h.clock.Location()), override.EndTime)

		if err1 == nil && err2 == nil {
			var count int64
			h.db.Model(&models.Reservation{}).
				Where(
					"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
					barber.ID, domain.ActiveStatuses, winEnd, winStart,
				).
				Count(&count)

			if count > 0 {
				httperr.Unprocessable(c, "override_in_use", "Active reservations exist inside this override window.")
				return
			}
		}
	}

	if err := h.db.Delete(&override).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_override", "Failed to delete override.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// HELPERS
// ======================================================

// normalizeWindow parses a start/end pair and returns them zero-padded
// ("9:00" becomes "09:00"). Stored values must be padded so that string
// comparison of times stays correct.
func normalizeWindow(start, end string) (string, string, bool) {
	s, err1 := time.Parse(domain.TimeLayout, start)
	e, err2 := time.Parse(domain.TimeLayout, end)
	if err1 != nil || err2 != nil || !s.Before(e) {
		return "", "", false
	}
	return s.Format(domain.TimeLayout), e.Format(domain.TimeLayout), true
}

// windowsOverlap expects padded "HH:mm" values from normalizeWindow.
func windowsOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

func mustParseDate(date string, loc *time.Location) time.Time {
	d, _ := time.ParseInLocation(domain.DateLayout, date, loc)
	return d
}
