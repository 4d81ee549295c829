package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/business-booking/internal/domain/booking"
	"github.com/BruksfildServices01/business-booking/internal/dto"
	"github.com/BruksfildServices01/business-booking/internal/httperr"
	"github.com/BruksfildServices01/business-booking/internal/timezone"
)

type ListOrdersInput struct {
	EmployeeID uint

	// YYYY-MM-DD, defaults to today in the business timezone.
	Date string

	// UserID limits the listing to one customer's orders; nil lists all.
	UserID *uint

	// BusinessID, when set, requires the employee to work there.
	BusinessID uint
}

type ListOrdersByDate struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListOrdersByDate(
	repo domain.Repository,
) *ListOrdersByDate {
	return &ListOrdersByDate{
		repo: repo,
		now:  time.Now,
	}
}

func (uc *ListOrdersByDate) Execute(
	ctx context.Context,
	in ListOrdersInput,
) ([]dto.OrderDTO, error) {

	emp, err := uc.repo.GetEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, notFound(err, "employee_not_found")
	}
	if in.BusinessID != 0 && emp.BusinessID != in.BusinessID {
		return nil, httperr.ErrBusiness("employee_not_found")
	}

	biz, err := uc.repo.GetBusinessByID(ctx, emp.BusinessID)
	if err != nil {
		return nil, notFound(err, "business_not_found")
	}

	loc := timezone.Location(biz.Timezone)

	start, err := parseDay(in.Date, loc, midnight(uc.now().In(loc)))
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 0, 1)

	orders, err := uc.repo.ListOrdersByDate(ctx, emp.ID, start, end, in.UserID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, dto.NewOrderDTO(&orders[i], loc))
	}
	return out, nil
}
