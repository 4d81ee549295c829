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
	"github.com/BruksfildServices01/business-booking/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type EmployeeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewEmployeeHandler(db *gorm.DB, audit *audit.Dispatcher) *EmployeeHandler {
	return &EmployeeHandler{
		db:    db,
		audit: audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateEmployeeRequest struct {
	FirstName     string                `json:"first_name" binding:"required,max=100"`
	LastName      string                `json:"last_name" binding:"required,max=100"`
	Patronymic    string                `json:"patronymic" binding:"max=100"`
	Phone         string                `json:"phone" binding:"required"`
	DurationMin   *int                  `json:"duration_min" binding:"omitempty,gt=0"`
	RoleID        *uint                 `json:"role_id"`
	NewRole       string                `json:"new_role"`
	Services      []uint                `json:"services"`
	WorkSchedules []WorkScheduleRequest `json:"work_schedules" binding:"dive"`
}

// Nil fields are left untouched. A non-nil WorkSchedules replaces all
// blocks, so [] removes them; a non-nil Services replaces the service set.
// DurationMin 0 clears the fixed duration.
type UpdateEmployeeRequest struct {
	FirstName     *string               `json:"first_name" binding:"omitempty,max=100"`
	LastName      *string               `json:"last_name" binding:"omitempty,max=100"`
	Patronymic    *string               `json:"patronymic" binding:"omitempty,max=100"`
	Phone         *string               `json:"phone"`
	DurationMin   *int                  `json:"duration_min" binding:"omitempty,gte=0"`
	RoleID        *uint                 `json:"role_id"`
	NewRole       *string               `json:"new_role"`
	Services      []uint                `json:"services"`
	WorkSchedules []WorkScheduleRequest `json:"work_schedules" binding:"dive"`
}

var (
	errRoleRequired   = errors.New("role required")
	errRoleNotFound   = errors.New("role not found")
	errForeignService = errors.New("service of another business")
)

// ======================================================
// HELPERS
// ======================================================

// resolveRole returns an existing role or get-or-creates the named one
// under the business type.
func resolveRole(tx *gorm.DB, biz *models.Business, id *uint, name string) (uint, error) {
	if id != nil && *id != 0 {
		var role models.EmployeeRole
		if err := tx.First(&role, *id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, errRoleNotFound
			}
			return 0, err
		}
		return role.ID, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errRoleRequired
	}

	typeID := biz.BusinessTypeID
	role := models.EmployeeRole{Name: name, BusinessTypeID: &typeID}
	if err := tx.
		Where("name = ? AND business_type_id = ?", name, typeID).
		FirstOrCreate(&role).Error; err != nil {
		return 0, err
	}
	return role.ID, nil
}

func loadServices(tx *gorm.DB, businessID uint, ids []uint) ([]models.Service, error) {
	if len(ids) == 0 {
		return []models.Service{}, nil
	}

	var list []models.Service
	if err := tx.Where("id IN ? AND business_id = ?", ids, businessID).Find(&list).Error; err != nil {
		return nil, err
	}
	if len(list) != len(uniqueIDs(ids)) {
		return nil, errForeignService
	}
	return list, nil
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func writeEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errRoleRequired):
		httperr.BadRequest(c, "role_required", "You must provide either 'new_role' or 'role_id'.")
	case errors.Is(err, errRoleNotFound):
		httperr.BadRequest(c, "role_not_found", "Employee role with the given id does not exist.")
	case errors.Is(err, errForeignService):
		httperr.BadRequest(c, "service_not_found", "Every service must belong to this business.")
	case httperr.IsUniqueViolation(err):
		httperr.BadRequest(c, "phone_taken", "An employee with this phone already exists.")
	default:
		httperr.Internal(c, "employee_save_failed", "Failed to save employee.")
	}
}

func (h *EmployeeHandler) load(c *gin.Context, businessID uint) (*models.Employee, bool) {
	id, ok := pathID(c, "employee_pk")
	if !ok {
		return nil, false
	}

	var emp models.Employee
	if err := h.db.
		Preload("Role").
		Preload("Services").
		Preload("WorkSchedules").
		Where("id = ? AND business_id = ?", id, businessID).
		First(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "employee_not_found", "Employee not found.")
			return nil, false
		}
		httperr.Internal(c, "employee_load_failed", "Failed to load employee.")
		return nil, false
	}
	return &emp, true
}

// ======================================================
// LIST / DETAIL
// ======================================================

func (h *EmployeeHandler) List(c *gin.Context) {
	biz, ok := loadBusiness(c, h.db)
	if !ok {
		return
	}

	var list []models.Employee
	if err := h.db.
		Preload("Role").
		Preload("Services").
		Preload("WorkSchedules").
		Where("business_id = ?", biz.ID).
		Order("id").
		Find(&list).Error; err != nil {
		httperr.Internal(c, "employee_list_failed", "Failed to list employees.")
		return
	}

	httpresp.List(c, list)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	businessID, ok := pathID(c, "business_pk")
	if !ok {
		return
	}
	emp, ok := h.load(c, businessID)
	if !ok {
		return
	}
	httpresp.OK(c, emp)
}

// ======================================================
// CREATE
// ======================================================

func (h *EmployeeHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	biz, ok := loadBusiness(c, h.db)
	if !ok {
		return
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid employee data.")
		return
	}

	if !validators.IsPhoneValid(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Phone number must be in the format 998XXXXXXXXX.")
		return
	}

	schedules, err := schedulesFromRequest(req.WorkSchedules)
	if err != nil {
		httperr.BadRequest(c, "invalid_work_schedule", err.Error())
		return
	}

	emp := models.Employee{
		BusinessID:    biz.ID,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Patronymic:    strings.TrimSpace(req.Patronymic),
		Phone:         req.Phone,
		DurationMin:   req.DurationMin,
		WorkSchedules: schedules,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		roleID, err := resolveRole(tx, biz, req.RoleID, req.NewRole)
		if err != nil {
			return err
		}
		emp.RoleID = roleID

		services, err := loadServices(tx, biz.ID, req.Services)
		if err != nil {
			return err
		}
		emp.Services = services

		return tx.Create(&emp).Error
	})
	if err != nil {
		writeEmployeeError(c, err)
		return
	}

	writeAudit(h.audit, biz.ID, userID, audit.ActionEmployeeCreated, "employee", emp.ID, map[string]any{
		"phone":     emp.Phone,
		"role_id":   emp.RoleID,
		"schedules": len(emp.WorkSchedules),
	})

	created, ok := h.reload(c, biz.ID, emp.ID)
	if !ok {
		return
	}
	httpresp.Created(c, created)
}

func (h *EmployeeHandler) reload(c *gin.Context, businessID, id uint) (*models.Employee, bool) {
	var emp models.Employee
	if err := h.db.
		Preload("Role").
		Preload("Services").
		Preload("WorkSchedules").
		Where("id = ? AND business_id = ?", id, businessID).
		First(&emp).Error; err != nil {
		httperr.Internal(c, "employee_load_failed", "Failed to load employee.")
		return nil, false
	}
	return &emp, true
}

// ======================================================
// UPDATE
// ======================================================

func (h *EmployeeHandler) Update(c *gin.Context) {
	biz, ok := loadBusiness(c, h.db)
	if !ok {
		return
	}
	emp, ok := h.load(c, biz.ID)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid employee data.")
		return
	}

	updates := map[string]any{}

	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Patronymic != nil {
		updates["patronymic"] = strings.TrimSpace(*req.Patronymic)
	}
	if req.Phone != nil {
		if !validators.IsPhoneValid(*req.Phone) {
			httperr.BadRequest(c, "invalid_phone", "Phone number must be in the format 998XXXXXXXXX.")
			return
		}
		updates["phone"] = *req.Phone
	}
	switch {
	case req.DurationMin == nil:
	case *req.DurationMin == 0:
		updates["duration_min"] = nil
	default:
		updates["duration_min"] = *req.DurationMin
	}

	schedules, err := schedulesFromRequest(req.WorkSchedules)
	if err != nil {
		httperr.BadRequest(c, "invalid_work_schedule", err.Error())
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if req.RoleID != nil || req.NewRole != nil {
			var name string
			if req.NewRole != nil {
				name = *req.NewRole
			}
			roleID, err := resolveRole(tx, biz, req.RoleID, name)
			if err != nil {
				return err
			}
			updates["role_id"] = roleID
		}

		if len(updates) > 0 {
			if err := tx.Model(emp).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.WorkSchedules != nil {
			if err := tx.Where("employee_id = ?", emp.ID).Delete(&models.EmployeeWorkSchedule{}).Error; err != nil {
				return err
			}
			for i := range schedules {
				schedules[i].EmployeeID = emp.ID
			}
			if len(schedules) > 0 {
				if err := tx.Create(&schedules).Error; err != nil {
					return err
				}
			}
		}

		if req.Services != nil {
			services, err := loadServices(tx, biz.ID, req.Services)
			if err != nil {
				return err
			}
			if err := tx.Model(emp).Association("Services").Replace(services); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		writeEmployeeError(c, err)
		return
	}

	updated, ok := h.reload(c, biz.ID, emp.ID)
	if !ok {
		return
	}
	httpresp.OK(c, updated)
}

// ======================================================
// DELETE
// ======================================================

func (h *EmployeeHandler) Delete(c *gin.Context) {
	businessID, ok := pathID(c, "business_pk")
	if !ok {
		return
	}
	emp, ok := h.load(c, businessID)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", emp.ID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", emp.ID).Delete(&models.EmployeeWorkSchedule{}).Error; err != nil {
			return err
		}
		if err := tx.Model(emp).Association("Services").Clear(); err != nil {
			return err
		}
		return tx.Delete(emp).Error
	})
	if err != nil {
		httperr.Internal(c, "employee_delete_failed", "Failed to delete employee.")
		return
	}

	httpresp.NoContent(c)
}
