package booking

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/business-booking/internal/audit"
	domain "github.com/BruksfildServices01/business-booking/internal/domain/booking"
	"github.com/BruksfildServices01/business-booking/internal/models"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetBusinessByID(ctx context.Context, id uint) (*models.Business, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*models.Business), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	args := m.Called(ctx, id)
	if e := args.Get(0); e != nil {
		return e.(*models.Employee), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListWorkSchedules(ctx context.Context, employeeID uint, weekday domain.Weekday) ([]models.EmployeeWorkSchedule, error) {
	args := m.Called(ctx, employeeID, weekday)
	return args.Get(0).([]models.EmployeeWorkSchedule), args.Error(1)
}

func (m *mockRepo) ListEmployeeSchedules(ctx context.Context, employeeID uint) ([]models.EmployeeWorkSchedule, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).([]models.EmployeeWorkSchedule), args.Error(1)
}

func (m *mockRepo) ListOrdersForPeriod(ctx context.Context, employeeID uint, start, end time.Time) ([]models.Order, error) {
	args := m.Called(ctx, employeeID, start, end)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockRepo) ListOrdersByDate(ctx context.Context, employeeID uint, start, end time.Time, userID *uint) ([]models.Order, error) {
	args := m.Called(ctx, employeeID, start, end, userID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) CreateOrderExclusive(ctx context.Context, order *models.Order, verify domain.VerifyFunc) error {
	return m.Called(ctx, order, verify).Error(0)
}

func (m *mockRepo) ReplaceOrderExclusive(ctx context.Context, old, next *models.Order, verify domain.VerifyFunc) error {
	return m.Called(ctx, old, next, verify).Error(0)
}

func (m *mockRepo) DeleteOrder(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

var _ domain.Repository = (*mockRepo)(nil)

// auditSink collects dispatched events; flush closes the dispatcher so
// every queued event is written before assertions.
type auditSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *auditSink) Write(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func newAudit() (*audit.Dispatcher, *auditSink) {
	sink := &auditSink{}
	return audit.NewDispatcher(sink), sink
}

func flush(d *audit.Dispatcher, s *auditSink) []audit.Event {
	_ = d.Close(context.Background())
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events
}
