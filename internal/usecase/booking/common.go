package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/business-booking/internal/domain/booking"
	"github.com/BruksfildServices01/business-booking/internal/httperr"
	"github.com/BruksfildServices01/business-booking/internal/models"
	"github.com/BruksfildServices01/business-booking/internal/timezone"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// target is the resolved (employee, service, business) triple every
// booking operation works on.
type target struct {
	employee *models.Employee
	service  *models.Service
	business *models.Business
	loc      *time.Location
}

func (t target) core() (domain.Employee, domain.Service) {
	return domain.EmployeeFromModel(t.employee), domain.ServiceFromModel(t.service)
}

// notFound replaces the repository's ErrNotFound with a business code.
func notFound(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

func loadTarget(
	ctx context.Context,
	repo domain.Repository,
	employeeID uint,
	serviceID uint,
) (target, error) {

	emp, err := repo.GetEmployee(ctx, employeeID)
	if err != nil {
		return target{}, notFound(err, "employee_not_found")
	}

	svc, err := repo.GetService(ctx, serviceID)
	if err != nil {
		return target{}, notFound(err, "service_not_found")
	}
	if svc.BusinessID != emp.BusinessID {
		return target{}, httperr.ErrBusiness("service_not_found")
	}

	biz, err := repo.GetBusinessByID(ctx, emp.BusinessID)
	if err != nil {
		return target{}, notFound(err, "business_not_found")
	}

	return target{
		employee: emp,
		service:  svc,
		business: biz,
		loc:      timezone.Location(biz.Timezone),
	}, nil
}

func parseRange(start, end string, loc *time.Location) (time.Time, time.Time, error) {
	s, err := time.ParseInLocation(dateTimeLayout, start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	e, err := time.ParseInLocation(dateTimeLayout, end, loc)
	if err != nil {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return s, e, nil
}

// parseDay parses YYYY-MM-DD as midnight in loc; empty means def.
func parseDay(s string, loc *time.Location, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return d, nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func orderMetadata(o *models.Order, loc *time.Location) map[string]any {
	return map[string]any{
		"employee_id": o.EmployeeID,
		"service_id":  o.ServiceID,
		"start_time":  o.StartTime.In(loc).Format(dateTimeLayout),
		"end_time":    o.EndTime.In(loc).Format(dateTimeLayout),
	}
}
