package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/business-booking/internal/audit"
	"github.com/BruksfildServices01/business-booking/internal/httperr"
	"github.com/BruksfildServices01/business-booking/internal/httpresp"
	"github.com/BruksfildServices01/business-booking/internal/models"
	"github.com/BruksfildServices01/business-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type BusinessHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBusinessHandler(db *gorm.DB, audit *audit.Dispatcher) *BusinessHandler {
	return &BusinessHandler{
		db:    db,
		audit: audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Exactly one of BusinessTypeID and NewBusinessType is needed on create.
type CreateBusinessRequest struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Description     string  `json:"description"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Timezone        string  `json:"timezone"`
	BusinessTypeID  *uint   `json:"business_type_id"`
	NewBusinessType string  `json:"new_business_type"`
}

type UpdateBusinessRequest struct {
	Name            *string  `json:"name" binding:"omitempty,max=100"`
	Description     *string  `json:"description"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Timezone        *string  `json:"timezone"`
	BusinessTypeID  *uint    `json:"business_type_id"`
	NewBusinessType *string  `json:"new_business_type"`
}

var (
	errBusinessTypeRequired = errors.New("business type required")
	errBusinessTypeNotFound = errors.New("business type not found")
)

// ======================================================
// HELPERS
// ======================================================

// resolveBusinessType returns the id of an existing type, or creates the
// named one if it does not exist yet.
func resolveBusinessType(tx *gorm.DB, id *uint, name string) (uint, error) {
	if id != nil && *id != 0 {
		var bt models.BusinessType
		if err := tx.First(&bt, *id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, errBusinessTypeNotFound
			}
			return 0, err
		}
		return bt.ID, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errBusinessTypeRequired
	}

	bt := models.BusinessType{Name: name}
	if err := tx.Where("name = ?", name).FirstOrCreate(&bt).Error; err != nil {
		return 0, err
	}
	return bt.ID, nil
}

func writeBusinessTypeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errBusinessTypeRequired):
		httperr.BadRequest(c, "business_type_required", "You must provide either 'new_business_type' or 'business_type_id'.")
	case errors.Is(err, errBusinessTypeNotFound):
		httperr.BadRequest(c, "business_type_not_found", "Business type with the given id does not exist.")
	default:
		httperr.Internal(c, "business_type_failed", "Failed to resolve business type.")
	}
}

// loadBusiness writes 404 or 500 itself when it returns false.
func loadBusiness(c *gin.Context, db *gorm.DB) (*models.Business, bool) {
	id, ok := pathID(c, "business_pk")
	if !ok {
		return nil, false
	}

	var biz models.Business
	if err := db.Preload("BusinessType").First(&biz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "business_not_found", "Business not found.")
			return nil, false
		}
		httperr.Internal(c, "business_load_failed", "Failed to load business.")
		return nil, false
	}
	return &biz, true
}

// ======================================================
// BUSINESS TYPES
// ======================================================

func (h *BusinessHandler) ListTypes(c *gin.Context) {
	var types []models.BusinessType
	if err := h.db.Order("name").Find(&types).Error; err != nil {
		httperr.Internal(c, "business_type_list_failed", "Failed to list business types.")
		return
	}
	httpresp.List(c, types)
}

// ======================================================
// LIST / DETAIL
// ======================================================

func (h *BusinessHandler) List(c *gin.Context) {
	q := h.db.Preload("BusinessType").Order("id")

	if typeID := c.Query("type_id"); typeID != "" {
		q = q.Where("business_type_id = ?", typeID)
	}

	var list []models.Business
	if err := q.Find(&list).Error; err != nil {
		httperr.Internal(c, "business_list_failed", "Failed to list businesses.")
		return
	}
	httpresp.List(c, list)
}

func (h *BusinessHandler) Get(c *gin.Context) {
	biz, ok := loadBusiness(c, h.db)
	if !ok {
		return
	}
	httpresp.OK(c, biz)
}

// ======================================================
// CREATE
// ======================================================

func (h *BusinessHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid business data.")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.Default()
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	biz := models.Business{
		CreatorID:   userID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Timezone:    tz,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		typeID, err := resolveBusinessType(tx, req.BusinessTypeID, req.NewBusinessType)
		if err != nil {
			return err
		}
		biz.BusinessTypeID = typeID
		return tx.Create(&biz).Error
	})
	if err != nil {
		writeBusinessTypeError(c, err)
		return
	}

	writeAudit(h.audit, biz.ID, userID, audit.ActionBusinessCreated, "business", biz.ID, map[string]any{
		"name":             biz.Name,
		"business_type_id": biz.BusinessTypeID,
	})

	h.db.Preload("BusinessType").First(&biz, biz.ID)
	httpresp.Created(c, biz)
}

// ======================================================
// UPDATE (creator only)
// ======================================================

func (h *BusinessHandler) Update(c *gin.Context) {
	biz, ok := loadBusiness(c, h.db)
	if !ok {
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid business data.")
		return
	}

	updates := map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Name cannot be empty.")
			return
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		updates["timezone"] = *req.Timezone
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.BusinessTypeID != nil || req.NewBusinessType != nil {
			var name string
			if req.NewBusinessType != nil {
				name = *req.NewBusinessType
			}
			typeID, err := resolveBusinessType(tx, req.BusinessTypeID, name)
			if err != nil {
				return err
			}
			updates["business_type_id"] = typeID
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(biz).Updates(updates).Error
	})
	if err != nil {
		writeBusinessTypeError(c, err)
		return
	}

	h.db.Preload("BusinessType").First(biz, biz.ID)
	httpresp.OK(c, biz)
}

// ======================================================
// DELETE (creator only)
// ======================================================

func (h *BusinessHandler) Delete(c *gin.Context) {
	biz, ok := loadBusiness(c, h.db)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		employees := tx.Model(&models.Employee{}).Select("id").Where("business_id = ?", biz.ID)

		if err := tx.Where("business_id = ?", biz.ID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id IN (?)", employees).Delete(&models.EmployeeWorkSchedule{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM employee_services WHERE employee_id IN (?)", employees).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", biz.ID).Delete(&models.Employee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", biz.ID).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		return tx.Delete(biz).Error
	})
	if err != nil {
		httperr.Internal(c, "business_delete_failed", "Failed to delete business.")
		return
	}

	httpresp.NoContent(c)
}
