package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/business-booking/internal/domain/booking"
	"github.com/BruksfildServices01/business-booking/internal/httperr"
	"github.com/BruksfildServices01/business-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// translate maps driver errors onto the domain's.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return booking.ErrNotFound
	case httperr.IsExclusionConflict(err):
		return booking.ErrDoubleBooked
	}
	return err
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *BookingGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

// --------------------------------------------------
// Employee / Service
// --------------------------------------------------

func (r *BookingGormRepository) GetEmployee(
	ctx context.Context,
	employeeID uint,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).First(&emp, employeeID).Error; err != nil {
		return nil, translate(err)
	}
	return &emp, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, serviceID).Error; err != nil {
		return nil, translate(err)
	}
	return &svc, nil
}

// --------------------------------------------------
// Schedules
// --------------------------------------------------

func (r *BookingGormRepository) ListWorkSchedules(
	ctx context.Context,
	employeeID uint,
	weekday booking.Weekday,
) ([]models.EmployeeWorkSchedule, error) {

	var rows []models.EmployeeWorkSchedule
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND workday = ?", employeeID, string(weekday)).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingGormRepository) ListEmployeeSchedules(
	ctx context.Context,
	employeeID uint,
) ([]models.EmployeeWorkSchedule, error) {

	var rows []models.EmployeeWorkSchedule
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("workday ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Orders (read)
// --------------------------------------------------

func (r *BookingGormRepository) ListOrdersForPeriod(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
) ([]models.Order, error) {
	return overlapping(r.db.WithContext(ctx), employeeID, start, end)
}

func overlapping(db *gorm.DB, employeeID uint, start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	if err := db.
		Where(
			"employee_id = ? AND start_time < ? AND end_time > ?",
			employeeID, end, start,
		).
		Order("start_time ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *BookingGormRepository) ListOrdersByDate(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
	userID *uint,
) ([]models.Order, error) {

	q := r.db.WithContext(ctx).
		Where(
			"employee_id = ? AND start_time >= ? AND start_time < ?",
			employeeID, start, end,
		)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var orders []models.Order
	if err := q.Order("start_time ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *BookingGormRepository) GetOrder(
	ctx context.Context,
	orderID uint,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).First(&o, orderID).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// --------------------------------------------------
// Orders (write)
// --------------------------------------------------

// lockEmployee serialises writers for one employee until the transaction
// ends.
func lockEmployee(tx *gorm.DB, employeeID uint) error {
	var emp models.Employee
	return tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&emp, employeeID).Error
}

func (r *BookingGormRepository) CreateOrderExclusive(
	ctx context.Context,
	order *models.Order,
	verify booking.VerifyFunc,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockEmployee(tx, order.EmployeeID); err != nil {
			return err
		}

		existing, err := overlapping(tx, order.EmployeeID, order.StartTime, order.EndTime)
		if err != nil {
			return err
		}
		if err := verify(existing); err != nil {
			return err
		}

		return tx.Create(order).Error
	})
	return translate(err)
}

func (r *BookingGormRepository) ReplaceOrderExclusive(
	ctx context.Context,
	old *models.Order,
	next *models.Order,
	verify booking.VerifyFunc,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockEmployee(tx, next.EmployeeID); err != nil {
			return err
		}

		res := tx.Delete(&models.Order{}, old.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		existing, err := overlapping(tx, next.EmployeeID, next.StartTime, next.EndTime)
		if err != nil {
			return err
		}
		if err := verify(existing); err != nil {
			return err
		}

		return tx.Create(next).Error
	})
	return translate(err)
}

func (r *BookingGormRepository) DeleteOrder(
	ctx context.Context,
	order *models.Order,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Order{}, order.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// Compile-time check
var _ booking.Repository = (*BookingGormRepository)(nil)
