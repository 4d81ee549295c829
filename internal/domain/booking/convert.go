package booking

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/business-booking/internal/models"
)

func EmployeeFromModel(m *models.Employee) Employee {
	e := Employee{ID: m.ID}
	if m.DurationMin != nil {
		e.Duration = time.Duration(*m.DurationMin) * time.Minute
	}
	return e
}

func ServiceFromModel(m *models.Service) Service {
	return Service{
		ID:       m.ID,
		Duration: time.Duration(m.DurationMin) * time.Minute,
	}
}

// SchedulesFromModels parses stored rows. A row with an unknown workday or
// a malformed time fails the whole conversion.
func SchedulesFromModels(rows []models.EmployeeWorkSchedule) ([]WorkSchedule, error) {
	out := make([]WorkSchedule, 0, len(rows))
	for _, r := range rows {
		s, err := ScheduleFromModel(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func ScheduleFromModel(r models.EmployeeWorkSchedule) (WorkSchedule, error) {
	wd, err := ParseWeekday(r.Workday)
	if err != nil {
		return WorkSchedule{}, fmt.Errorf("schedule %d: %w", r.ID, err)
	}
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return WorkSchedule{}, fmt.Errorf("schedule %d: %w", r.ID, err)
	}
	end, err := ParseClock(r.EndTime)
	if err != nil {
		return WorkSchedule{}, fmt.Errorf("schedule %d: %w", r.ID, err)
	}
	return WorkSchedule{Weekday: wd, Start: start, End: end}, nil
}

func BookingsFromOrders(orders []models.Order) []Booking {
	out := make([]Booking, 0, len(orders))
	for _, o := range orders {
		out = append(out, Booking{ID: o.ID, Start: o.StartTime, End: o.EndTime})
	}
	return out
}
