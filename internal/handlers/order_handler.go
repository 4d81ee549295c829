package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/business-booking/internal/dto"
	"github.com/BruksfildServices01/business-booking/internal/httperr"
	"github.com/BruksfildServices01/business-booking/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/business-booking/internal/usecase/booking"
)

// ======================================================
// USE CASE PORTS
// ======================================================

type orderCreator interface {
	Execute(ctx context.Context, in ucBooking.CreateOrderInput) (*dto.OrderDTO, error)
}

type orderRescheduler interface {
	Execute(ctx context.Context, in ucBooking.RescheduleOrderInput) (*dto.OrderDTO, error)
}

type orderCanceller interface {
	Execute(ctx context.Context, userID, employeeID, orderID uint) error
}

type orderLister interface {
	Execute(ctx context.Context, in ucBooking.ListOrdersInput) ([]dto.OrderDTO, error)
}

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	create     orderCreator
	reschedule orderRescheduler
	cancel     orderCanceller
	list       orderLister
}

func NewOrderHandler(
	create orderCreator,
	reschedule orderRescheduler,
	cancel orderCanceller,
	list orderLister,
) *OrderHandler {
	return &OrderHandler{
		create:     create,
		reschedule: reschedule,
		cancel:     cancel,
		list:       list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Times are "YYYY-MM-DD HH:MM" in the business timezone.
type CreateOrderRequest struct {
	Service   uint   `json:"service" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type RescheduleOrderRequest struct {
	Service   uint   `json:"service"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	employeeID, ok := pathID(c, "employee_pk")
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "service, start_time and end_time are required.")
		return
	}

	out, err := h.create.Execute(c.Request.Context(), ucBooking.CreateOrderInput{
		UserID:     userID,
		EmployeeID: employeeID,
		ServiceID:  req.Service,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, out)
}

// ======================================================
// LIST (customer view)
// ======================================================

func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	employeeID, ok := pathID(c, "employee_pk")
	if !ok {
		return
	}

	out, err := h.list.Execute(c.Request.Context(), ucBooking.ListOrdersInput{
		EmployeeID: employeeID,
		Date:       c.Query("date"),
		UserID:     &userID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// LIST (business creator view)
// ======================================================

func (h *OrderHandler) ListForBusiness(c *gin.Context) {
	businessID, ok := pathID(c, "business_pk")
	if !ok {
		return
	}
	employeeID, ok := pathID(c, "employee_pk")
	if !ok {
		return
	}

	out, err := h.list.Execute(c.Request.Context(), ucBooking.ListOrdersInput{
		EmployeeID: employeeID,
		BusinessID: businessID,
		Date:       c.Query("date"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *OrderHandler) Reschedule(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	employeeID, ok := pathID(c, "employee_pk")
	if !ok {
		return
	}
	orderID, ok := pathID(c, "order_pk")
	if !ok {
		return
	}

	var req RescheduleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "start_time and end_time are required.")
		return
	}

	out, err := h.reschedule.Execute(c.Request.Context(), ucBooking.RescheduleOrderInput{
		UserID:     userID,
		EmployeeID: employeeID,
		OrderID:    orderID,
		ServiceID:  req.Service,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// CANCEL
// ======================================================

func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	employeeID, ok := pathID(c, "employee_pk")
	if !ok {
		return
	}
	orderID, ok := pathID(c, "order_pk")
	if !ok {
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), userID, employeeID, orderID); err != nil {
		writeError(c, err)
		return
	}

	httpresp.NoContent(c)
}
