package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/business-booking/internal/audit"
	domain "github.com/BruksfildServices01/business-booking/internal/domain/booking"
	"github.com/BruksfildServices01/business-booking/internal/dto"
	"github.com/BruksfildServices01/business-booking/internal/metrics"
	"github.com/BruksfildServices01/business-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateOrderInput struct {
	UserID     uint
	EmployeeID uint
	ServiceID  uint

	// "YYYY-MM-DD HH:MM" in the business timezone
	StartTime string
	EndTime   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateOrder {
	return &CreateOrder{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateOrder) Execute(
	ctx context.Context,
	in CreateOrderInput,
) (*dto.OrderDTO, error) {

	t, err := loadTarget(ctx, uc.repo, in.EmployeeID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	start, end, err := parseRange(in.StartTime, in.EndTime, t.loc)
	if err != nil {
		return nil, err
	}

	cand := domain.Candidate{Start: start, End: end}

	if err := validate(ctx, uc.repo, t, cand); err != nil {
		return nil, rejectOrder(uc.audit, t, in.UserID, err, start, end)
	}

	order := &models.Order{
		UserID:     in.UserID,
		BusinessID: t.business.ID,
		EmployeeID: t.employee.ID,
		ServiceID:  t.service.ID,
		StartTime:  start,
		EndTime:    end,
	}

	if err := uc.repo.CreateOrderExclusive(ctx, order, recheck(cand)); err != nil {
		return nil, rejectOrder(uc.audit, t, in.UserID, err, start, end)
	}

	metrics.IncOrderCreated()
	uc.audit.Dispatch(audit.Event{
		BusinessID: t.business.ID,
		UserID:     &in.UserID,
		Action:     audit.ActionOrderCreated,
		Entity:     "order",
		EntityID:   &order.ID,
		Metadata:   orderMetadata(order, t.loc),
	})

	out := dto.NewOrderDTO(order, t.loc)
	return &out, nil
}

// validate runs the full check against the schedules of the start's
// weekday and the orders overlapping the candidate.
func validate(
	ctx context.Context,
	repo domain.Repository,
	t target,
	cand domain.Candidate,
) error {

	rows, err := repo.ListWorkSchedules(ctx, t.employee.ID, domain.WeekdayOf(cand.Start))
	if err != nil {
		return err
	}
	schedules, err := domain.SchedulesFromModels(rows)
	if err != nil {
		return err
	}

	var orders []models.Order
	if cand.Start.Before(cand.End) {
		orders, err = repo.ListOrdersForPeriod(ctx, t.employee.ID, cand.Start, cand.End)
		if err != nil {
			return err
		}
	}

	emp, svc := t.core()
	return domain.ValidateOrder(emp, svc, cand, schedules, domain.BookingsFromOrders(orders))
}

// recheck repeats the overlap test inside the write transaction.
func recheck(cand domain.Candidate) domain.VerifyFunc {
	return func(existing []models.Order) error {
		return domain.CheckNoOverlap(cand, domain.BookingsFromOrders(existing))
	}
}

// rejectOrder records a validation failure and returns err unchanged.
// Errors that are not rejection reasons pass through untouched.
func rejectOrder(d *audit.Dispatcher, t target, userID uint, err error, start, end time.Time) error {
	reason, ok := domain.AsReason(err)
	if !ok {
		return err
	}

	metrics.IncOrderRejected(string(reason))
	log.Info().
		Str("reason", string(reason)).
		Uint("employee_id", t.employee.ID).
		Time("start", start).
		Msg("order rejected")

	d.Dispatch(audit.Event{
		BusinessID: t.business.ID,
		UserID:     &userID,
		Action:     audit.ActionOrderRejected,
		Entity:     "order",
		Metadata: map[string]any{
			"reason":      string(reason),
			"employee_id": t.employee.ID,
			"service_id":  t.service.ID,
			"start_time":  start.In(t.loc).Format(dateTimeLayout),
			"end_time":    end.In(t.loc).Format(dateTimeLayout),
		},
	})
	return err
}
