package booking

import (
	"context"

	"github.com/BruksfildServices01/business-booking/internal/audit"
	domain "github.com/BruksfildServices01/business-booking/internal/domain/booking"
	"github.com/BruksfildServices01/business-booking/internal/dto"
	"github.com/BruksfildServices01/business-booking/internal/httperr"
	"github.com/BruksfildServices01/business-booking/internal/models"
)

type RescheduleOrderInput struct {
	UserID     uint
	EmployeeID uint
	OrderID    uint

	// ServiceID zero keeps the order's service.
	ServiceID uint

	StartTime string
	EndTime   string
}

// RescheduleOrder moves an order to a new time. The order is deleted and
// recreated in one transaction, so it gets a new id.
type RescheduleOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRescheduleOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleOrder {
	return &RescheduleOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RescheduleOrder) Execute(
	ctx context.Context,
	in RescheduleOrderInput,
) (*dto.OrderDTO, error) {

	old, err := ownOrder(ctx, uc.repo, in.UserID, in.EmployeeID, in.OrderID)
	if err != nil {
		return nil, err
	}

	serviceID := in.ServiceID
	if serviceID == 0 {
		serviceID = old.ServiceID
	}

	t, err := loadTarget(ctx, uc.repo, old.EmployeeID, serviceID)
	if err != nil {
		return nil, err
	}

	start, end, err := parseRange(in.StartTime, in.EndTime, t.loc)
	if err != nil {
		return nil, err
	}

	cand := domain.Candidate{Start: start, End: end, ExcludeOrderID: old.ID}

	if err := validate(ctx, uc.repo, t, cand); err != nil {
		return nil, rejectOrder(uc.audit, t, in.UserID, err, start, end)
	}

	next := &models.Order{
		UserID:     old.UserID,
		BusinessID: old.BusinessID,
		EmployeeID: old.EmployeeID,
		ServiceID:  t.service.ID,
		StartTime:  start,
		EndTime:    end,
	}

	if err := uc.repo.ReplaceOrderExclusive(ctx, old, next, recheck(cand)); err != nil {
		return nil, rejectOrder(uc.audit, t, in.UserID, notFound(err, "order_not_found"), start, end)
	}

	meta := orderMetadata(next, t.loc)
	meta["previous_order_id"] = old.ID
	meta["previous_start_time"] = old.StartTime.In(t.loc).Format(dateTimeLayout)

	uc.audit.Dispatch(audit.Event{
		BusinessID: next.BusinessID,
		UserID:     &in.UserID,
		Action:     audit.ActionOrderRescheduled,
		Entity:     "order",
		EntityID:   &next.ID,
		Metadata:   meta,
	})

	out := dto.NewOrderDTO(next, t.loc)
	return &out, nil
}

// ownOrder loads an order of employeeID placed by userID. Orders of other
// users are reported as missing.
func ownOrder(
	ctx context.Context,
	repo domain.Repository,
	userID uint,
	employeeID uint,
	orderID uint,
) (*models.Order, error) {

	o, err := repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order_not_found")
	}
	if o.UserID != userID || o.EmployeeID != employeeID {
		return nil, httperr.ErrBusiness("order_not_found")
	}
	return o, nil
}
