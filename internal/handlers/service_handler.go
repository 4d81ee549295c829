package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/business-booking/internal/audit"
	"github.com/BruksfildServices01/business-booking/internal/httperr"
	"github.com/BruksfildServices01/business-booking/internal/httpresp"
	"github.com/BruksfildServices01/business-booking/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{
		db:    db,
		audit: audit,
	}
}

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	DurationMin int    `json:"duration_min" binding:"required,gt=0"`
	ParentID    *uint  `json:"parent_id"`
}

// --------- Handlers ---------

// List returns the top-level services of a business.
func (h *ServiceHandler) List(c *gin.Context) {
	biz, ok := loadBusiness(c, h.db)
	if !ok {
		return
	}

	var list []models.Service
	if err := h.db.
		Where("business_id = ? AND parent_id IS NULL", biz.ID).
		Order("name").
		Find(&list).Error; err != nil {
		httperr.Internal(c, "service_list_failed", "Failed to list services.")
		return
	}

	httpresp.List(c, list)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	biz, ok := loadBusiness(c, h.db)
	if !ok {
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "name and a positive duration_min are required.")
		return
	}

	if req.ParentID != nil {
		var parent models.Service
		if err := h.db.
			Where("id = ? AND business_id = ?", *req.ParentID, biz.ID).
			First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.BadRequest(c, "parent_not_found", "Parent service does not belong to this business.")
				return
			}
			httperr.Internal(c, "service_create_failed", "Failed to create service.")
			return
		}
	}

	svc := models.Service{
		BusinessID:  biz.ID,
		Name:        strings.TrimSpace(req.Name),
		DurationMin: req.DurationMin,
		ParentID:    req.ParentID,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "service_exists", "This service name already exists for this business.")
			return
		}
		httperr.Internal(c, "service_create_failed", "Failed to create service.")
		return
	}

	writeAudit(h.audit, biz.ID, userID, audit.ActionServiceCreated, "service", svc.ID, map[string]any{
		"name":         svc.Name,
		"duration_min": svc.DurationMin,
	})

	httpresp.Created(c, svc)
}

// Subservices lists the children of :service_pk. A service without
// children is a client error.
func (h *ServiceHandler) Subservices(c *gin.Context) {
	businessID, ok := pathID(c, "business_pk")
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "service_pk")
	if !ok {
		return
	}

	var list []models.Service
	if err := h.db.
		Where("business_id = ? AND parent_id = ?", businessID, serviceID).
		Order("name").
		Find(&list).Error; err != nil {
		httperr.Internal(c, "service_list_failed", "Failed to list services.")
		return
	}

	if len(list) == 0 {
		httperr.BadRequest(c, "no_subservices", fmt.Sprintf("Service with ID %d does not have subservices.", serviceID))
		return
	}

	httpresp.List(c, list)
}
