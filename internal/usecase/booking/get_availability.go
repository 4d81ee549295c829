package booking

import (
	"context"
	"slices"
	"time"

	domain "github.com/BruksfildServices01/business-booking/internal/domain/booking"
	"github.com/BruksfildServices01/business-booking/internal/dto"
	"github.com/BruksfildServices01/business-booking/internal/httperr"
	"github.com/BruksfildServices01/business-booking/internal/metrics"
)

type AvailabilityInput struct {
	EmployeeID uint
	ServiceID  uint

	// YYYY-MM-DD; Date defaults to today and EndDate to Date.
	Date    string
	EndDate string
}

type GetAvailability struct {
	repo    domain.Repository
	maxDays int
	now     func() time.Time
}

func NewGetAvailability(repo domain.Repository, maxDays int) *GetAvailability {
	return &GetAvailability{
		repo:    repo,
		maxDays: maxDays,
		now:     time.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]dto.SlotDTO, error) {

	t, err := loadTarget(ctx, uc.repo, in.EmployeeID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	today := midnight(uc.now().In(t.loc))

	from, err := parseDay(in.Date, t.loc, today)
	if err != nil {
		return nil, err
	}
	if from.Before(today) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	to, err := parseDay(in.EndDate, t.loc, from)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, domain.ErrInvalidRange
	}
	if uc.maxDays > 0 && to.After(from.AddDate(0, 0, uc.maxDays-1)) {
		return nil, httperr.ErrBusiness("range_too_long")
	}

	rows, err := uc.repo.ListEmployeeSchedules(ctx, t.employee.ID)
	if err != nil {
		return nil, err
	}
	schedules, err := domain.SchedulesFromModels(rows)
	if err != nil {
		return nil, err
	}

	// the last slot of a day may run past midnight
	orders, err := uc.repo.ListOrdersForPeriod(ctx, t.employee.ID, from, to.AddDate(0, 0, 2))
	if err != nil {
		return nil, err
	}

	emp, svc := t.core()
	seq, err := domain.AvailableSlots(emp, svc, from, to, schedules, domain.BookingsFromOrders(orders))
	if err != nil {
		return nil, err
	}

	slots := slices.Collect(seq)
	metrics.ObserveAvailability(len(slots))

	out := make([]dto.SlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.NewSlotDTO(s.Start, s.End, t.loc))
	}
	return out, nil
}
