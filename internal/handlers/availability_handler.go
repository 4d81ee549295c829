package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/business-booking/internal/dto"
	ucBooking "github.com/BruksfildServices01/business-booking/internal/usecase/booking"
)

type availabilityFinder interface {
	Execute(ctx context.Context, in ucBooking.AvailabilityInput) ([]dto.SlotDTO, error)
}

type AvailabilityHandler struct {
	find availabilityFinder
}

func NewAvailabilityHandler(find availabilityFinder) *AvailabilityHandler {
	return &AvailabilityHandler{find: find}
}

// Get lists free slots of an employee for a service.
// Query: date=YYYY-MM-DD (default today), end_date=YYYY-MM-DD (default date).
func (h *AvailabilityHandler) Get(c *gin.Context) {
	employeeID, ok := pathID(c, "employee_pk")
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "service_pk")
	if !ok {
		return
	}

	slots, err := h.find.Execute(c.Request.Context(), ucBooking.AvailabilityInput{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Date:       c.Query("date"),
		EndDate:    c.Query("end_date"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(200, slots)
}
