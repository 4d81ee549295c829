package dto

import (
	"time"

	"github.com/BruksfildServices01/business-booking/internal/models"
)

// DateTimeLayout is the wire format of order and slot times, always in the
// business timezone.
const DateTimeLayout = "2006-01-02 15:04"

type OrderDTO struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"user"`
	BusinessID uint   `json:"business"`
	EmployeeID uint   `json:"employee"`
	ServiceID  uint   `json:"service"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	CreatedAt  string `json:"created_at"`
}

func NewOrderDTO(o *models.Order, loc *time.Location) OrderDTO {
	return OrderDTO{
		ID:         o.ID,
		UserID:     o.UserID,
		BusinessID: o.BusinessID,
		EmployeeID: o.EmployeeID,
		ServiceID:  o.ServiceID,
		StartTime:  o.StartTime.In(loc).Format(DateTimeLayout),
		EndTime:    o.EndTime.In(loc).Format(DateTimeLayout),
		CreatedAt:  o.CreatedAt.In(loc).Format(DateTimeLayout),
	}
}

type SlotDTO struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func NewSlotDTO(start, end time.Time, loc *time.Location) SlotDTO {
	return SlotDTO{
		StartTime: start.In(loc).Format(DateTimeLayout),
		EndTime:   end.In(loc).Format(DateTimeLayout),
	}
}
