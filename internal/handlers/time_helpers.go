package handlers

import (
	"fmt"

	"github.com/BruksfildServices01/business-booking/internal/domain/booking"
	"github.com/BruksfildServices01/business-booking/internal/models"
)

type WorkScheduleRequest struct {
	Workday   string `json:"workday" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// --------------------------------------------------
// Work schedule normalisation
// --------------------------------------------------

// schedulesFromRequest validates each block and returns rows with the
// weekday upper-cased and times rewritten as HH:MM or HH:MM:SS.
func schedulesFromRequest(in []WorkScheduleRequest) ([]models.EmployeeWorkSchedule, error) {
	out := make([]models.EmployeeWorkSchedule, 0, len(in))

	for i, r := range in {
		wd, err := booking.ParseWeekday(r.Workday)
		if err != nil {
			return nil, fmt.Errorf("work_schedules[%d]: %w", i, err)
		}

		start, err := booking.ParseClock(r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("work_schedules[%d]: %w", i, err)
		}

		end, err := booking.ParseClock(r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("work_schedules[%d]: %w", i, err)
		}

		if start >= end {
			return nil, fmt.Errorf("work_schedules[%d]: start_time must be before end_time", i)
		}

		out = append(out, models.EmployeeWorkSchedule{
			Workday:   string(wd),
			StartTime: start.String(),
			EndTime:   end.String(),
		})
	}

	return out, nil
}
