package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/business-booking/internal/httperr"
	"github.com/BruksfildServices01/business-booking/internal/middleware"
	"github.com/BruksfildServices01/business-booking/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe returns the token identity and the businesses the caller created.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	role := c.GetString(middleware.ContextUserRole)

	var businesses []models.Business
	if err := h.db.
		Preload("BusinessType").
		Where("creator_id = ?", userID).
		Order("id").
		Find(&businesses).Error; err != nil {
		httperr.Internal(c, "business_list_failed", "Failed to list businesses.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":   userID,
			"role": role,
		},
		"businesses": businesses,
	})
}
