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
	"github.com/trimlylabs/trimly-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db        *gorm.DB
	setStatus *booking.SetStatus
}

func NewAdminHandler(db *gorm.DB, setStatus *booking.SetStatus) *AdminHandler {
	return &AdminHandler{db: db, setStatus: setStatus}
}

// ======================================================
// SERVICE TYPES
// ======================================================

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	DurationMin int     `json:"duration_min"`
	Description string  `json:"description"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	DurationMin *int     `json:"duration_min"`
	Description *string  `json:"description"`
	Active      *bool    `json:"active"`
}

func (h *AdminHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	duration := req.DurationMin
	if duration <= 0 {
		duration = domain.DefaultSlotMinutes
	}

	svc := models.ServiceType{
		Name:        req.Name,
		Price:       req.Price,
		DurationMin: duration,
		Description: req.Description,
		Active:      true,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Failed to create service.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *AdminHandler) UpdateService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	var svc models.ServiceType
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			httperr.BadRequest(c, "invalid_price", "Price must be positive.")
			return
		}
		svc.Price = *req.Price
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duration must be positive.")
			return
		}
		svc.DurationMin = *req.DurationMin
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	// Price and duration edits never touch existing reservations;
	// those keep their snapshot.
	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Failed to update service.")
		return
	}

	c.JSON(http.StatusOK, svc)
}

// ======================================================
// BARBER APPROVAL
// ======================================================

func (h *AdminHandler) ApproveBarber(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber id.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	if barber.Approved {
		c.JSON(http.StatusOK, gin.H{"approved": true})
		return
	}

	barber.Approved = true
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_approve_barber", "Failed to approve barber.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"approved": true})
}

// ======================================================
// RESERVATION STATUS (FULL ENUM)
// ======================================================

func (h *AdminHandler) SetReservationStatus(c *gin.Context) {
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
		domain.RoleAdmin,
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

// ======================================================
// AUDIT LOGS
// ======================================================

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.Model(&models.AuditLog{})

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr != "" {
		if from, err := time.Parse(domain.DateLayout, fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr != "" {
		if to, err := time.Parse(domain.DateLayout, toStr); err == nil {
			q = q.Where("created_at <= ?", to.Add(24*time.Hour))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Failed to count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Failed to list audit logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
