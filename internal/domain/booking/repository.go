package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/business-booking/internal/models"
)

// VerifyFunc re-checks a write against the orders read inside the write
// transaction. A non-nil error aborts the write.
type VerifyFunc func(existing []models.Order) error

type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	// -------- Employee / Service --------
	GetEmployee(
		ctx context.Context,
		employeeID uint,
	) (*models.Employee, error)

	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Schedules --------
	ListWorkSchedules(
		ctx context.Context,
		employeeID uint,
		weekday Weekday,
	) ([]models.EmployeeWorkSchedule, error)

	ListEmployeeSchedules(
		ctx context.Context,
		employeeID uint,
	) ([]models.EmployeeWorkSchedule, error)

	// -------- Orders (read) --------

	// ListOrdersForPeriod returns orders overlapping [start, end).
	ListOrdersForPeriod(
		ctx context.Context,
		employeeID uint,
		start time.Time,
		end time.Time,
	) ([]models.Order, error)

	// ListOrdersByDate returns orders starting in [start, end), limited
	// to userID when it is non-nil.
	ListOrdersByDate(
		ctx context.Context,
		employeeID uint,
		start time.Time,
		end time.Time,
		userID *uint,
	) ([]models.Order, error)

	GetOrder(
		ctx context.Context,
		orderID uint,
	) (*models.Order, error)

	// -------- Orders (write) --------

	// CreateOrderExclusive locks the employee, passes the orders
	// overlapping order to verify and inserts order in one transaction.
	CreateOrderExclusive(
		ctx context.Context,
		order *models.Order,
		verify VerifyFunc,
	) error

	// ReplaceOrderExclusive deletes old and inserts next in one
	// transaction under the same lock and verification as create.
	ReplaceOrderExclusive(
		ctx context.Context,
		old *models.Order,
		next *models.Order,
		verify VerifyFunc,
	) error

	DeleteOrder(
		ctx context.Context,
		order *models.Order,
	) error
}
