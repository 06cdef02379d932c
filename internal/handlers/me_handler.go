package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/trimlylabs/trimly-api/internal/domain/booking"
	"github.com/trimlylabs/trimly-api/internal/middleware"
	"github.com/trimlylabs/trimly-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	out := gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
	}

	// Attach the role profile when one exists.
	switch user.Role {
	case string(domain.RoleBarber):
		var barber models.Barber
		if err := h.db.Where("user_id = ?", user.ID).First(&barber).Error; err == nil {
			out["barber"] = gin.H{
				"id":                    barber.ID,
				"experience_years":      barber.ExperienceYears,
				"bio":                   barber.Bio,
				"photo_url":             barber.PhotoURL,
				"approved":              barber.Approved,
				"available_for_booking": barber.AvailableForBooking,
				"average_rating":        barber.AverageRating,
				"total_ratings":         barber.TotalRatings,
			}
		}
	case string(domain.RoleCustomer):
		var customer models.Customer
		if err := h.db.Where("user_id = ?", user.ID).First(&customer).Error; err == nil {
			out["customer"] = gin.H{
				"id":     customer.ID,
				"phone":  customer.Phone,
				"active": customer.Active,
			}
		}
	}

	c.JSON(http.StatusOK, out)
}
