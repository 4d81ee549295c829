package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/business-booking/internal/domain/booking"
	"github.com/BruksfildServices01/business-booking/internal/dto"
	"github.com/BruksfildServices01/business-booking/internal/httperr"
	"github.com/BruksfildServices01/business-booking/internal/httpresp"
	"github.com/BruksfildServices01/business-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/business-booking/internal/usecase/booking"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const caller = uint(7)

// ======================================================
// Use case doubles
// ======================================================

type mockCreate struct{ mock.Mock }

func (m *mockCreate) Execute(_ context.Context, in ucBooking.CreateOrderInput) (*dto.OrderDTO, error) {
	args := m.Called(in)
	out, _ := args.Get(0).(*dto.OrderDTO)
	return out, args.Error(1)
}

type mockReschedule struct{ mock.Mock }

func (m *mockReschedule) Execute(_ context.Context, in ucBooking.RescheduleOrderInput) (*dto.OrderDTO, error) {
	args := m.Called(in)
	out, _ := args.Get(0).(*dto.OrderDTO)
	return out, args.Error(1)
}

type mockCancel struct{ mock.Mock }

func (m *mockCancel) Execute(_ context.Context, userID, employeeID, orderID uint) error {
	return m.Called(userID, employeeID, orderID).Error(0)
}

type mockList struct{ mock.Mock }

func (m *mockList) Execute(_ context.Context, in ucBooking.ListOrdersInput) ([]dto.OrderDTO, error) {
	args := m.Called(in)
	out, _ := args.Get(0).([]dto.OrderDTO)
	return out, args.Error(1)
}

type mockAvailability struct{ mock.Mock }

func (m *mockAvailability) Execute(_ context.Context, in ucBooking.AvailabilityInput) ([]dto.SlotDTO, error) {
	args := m.Called(in)
	out, _ := args.Get(0).([]dto.SlotDTO)
	return out, args.Error(1)
}

// ======================================================
// Router
// ======================================================

type doubles struct {
	create       *mockCreate
	reschedule   *mockReschedule
	cancel       *mockCancel
	list         *mockList
	availability *mockAvailability
}

func asCaller(c *gin.Context) {
	c.Set(middleware.ContextUserID, caller)
	c.Next()
}

func newRouter(authenticated bool) (*gin.Engine, doubles) {
	d := doubles{
		create:       &mockCreate{},
		reschedule:   &mockReschedule{},
		cancel:       &mockCancel{},
		list:         &mockList{},
		availability: &mockAvailability{},
	}

	h := NewOrderHandler(d.create, d.reschedule, d.cancel, d.list)
	a := NewAvailabilityHandler(d.availability)

	r := gin.New()
	if authenticated {
		r.Use(asCaller)
	}
	r.POST("/employee/:employee_pk/order", h.Create)
	r.GET("/employee/:employee_pk/order", h.ListMine)
	r.PATCH("/employee/:employee_pk/order/:order_pk", h.Reschedule)
	r.DELETE("/employee/:employee_pk/order/:order_pk", h.Cancel)
	r.GET("/employee/:employee_pk/service/:service_pk/available", a.Get)
	r.GET("/business/:business_pk/employee/:employee_pk/orders", h.ListForBusiness)
	return r, d
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httperr.HTTPError {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ======================================================
// Create
// ======================================================

func TestCreateOrderHandler(t *testing.T) {
	r, d := newRouter(true)

	in := ucBooking.CreateOrderInput{
		UserID:     caller,
		EmployeeID: 10,
		ServiceID:  20,
		StartTime:  "2030-01-07 10:00",
		EndTime:    "2030-01-07 10:30",
	}
	d.create.On("Execute", in).Return(&dto.OrderDTO{ID: 1, EmployeeID: 10, StartTime: in.StartTime, EndTime: in.EndTime}, nil)

	w := do(r, http.MethodPost, "/employee/10/order", CreateOrderRequest{
		Service:   20,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var out dto.OrderDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, uint(1), out.ID)
	assert.Equal(t, "2030-01-07 10:00", out.StartTime)
	d.create.AssertExpectations(t)
}

func TestCreateOrderHandlerRejections(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid range", booking.ErrInvalidRange, http.StatusBadRequest, "invalid_range"},
		{"duration", booking.ErrDurationMismatch, http.StatusBadRequest, "duration_mismatch"},
		{"hours", booking.ErrOutsideWorkingHours, http.StatusBadRequest, "outside_working_hours"},
		{"double booked", booking.ErrDoubleBooked, http.StatusBadRequest, "double_booked"},
		{"employee", httperr.ErrBusiness("employee_not_found"), http.StatusNotFound, "employee_not_found"},
		{"service", httperr.ErrBusiness("service_not_found"), http.StatusNotFound, "service_not_found"},
		{"bad time", httperr.ErrBusiness("invalid_date_or_time"), http.StatusBadRequest, "invalid_date_or_time"},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, d := newRouter(true)
			d.create.On("Execute", mock.Anything).Return(nil, tc.err)

			w := do(r, http.MethodPost, "/employee/10/order", CreateOrderRequest{
				Service:   20,
				StartTime: "2030-01-07 10:00",
				EndTime:   "2030-01-07 10:30",
			})

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decodeError(t, w).Code)
		})
	}
}

func TestCreateOrderHandlerMessages(t *testing.T) {
	r, d := newRouter(true)
	d.create.On("Execute", mock.Anything).Return(nil, booking.ErrDoubleBooked)

	w := do(r, http.MethodPost, "/employee/10/order", CreateOrderRequest{Service: 20, StartTime: "a", EndTime: "b"})

	assert.Equal(t, "The employee is not available during the specified times.", decodeError(t, w).Message)
}

func TestCreateOrderHandlerBadInput(t *testing.T) {
	r, d := newRouter(true)

	w := do(r, http.MethodPost, "/employee/10/order", gin.H{"start_time": "2030-01-07 10:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decodeError(t, w).Code)

	w = do(r, http.MethodPost, "/employee/abc/order", CreateOrderRequest{Service: 1, StartTime: "x", EndTime: "y"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_employee_pk", decodeError(t, w).Code)

	d.create.AssertNotCalled(t, "Execute", mock.Anything)
}

func TestCreateOrderHandlerNeedsUser(t *testing.T) {
	r, d := newRouter(false)

	w := do(r, http.MethodPost, "/employee/10/order", CreateOrderRequest{Service: 20, StartTime: "x", EndTime: "y"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	d.create.AssertNotCalled(t, "Execute", mock.Anything)
}

// ======================================================
// Listing
// ======================================================

func TestListMineScopesToCaller(t *testing.T) {
	r, d := newRouter(true)

	d.list.On("Execute", mock.MatchedBy(func(in ucBooking.ListOrdersInput) bool {
		return in.EmployeeID == 10 &&
			in.Date == "2030-01-08" &&
			in.UserID != nil && *in.UserID == caller &&
			in.BusinessID == 0
	})).Return([]dto.OrderDTO{{ID: 3}}, nil)

	w := do(r, http.MethodGet, "/employee/10/order?date=2030-01-08", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var out httpresp.ListResponse[dto.OrderDTO]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, uint(3), out.Data[0].ID)
}

func TestListForBusinessShowsEveryCustomer(t *testing.T) {
	r, d := newRouter(true)

	d.list.On("Execute", mock.MatchedBy(func(in ucBooking.ListOrdersInput) bool {
		return in.EmployeeID == 10 && in.BusinessID == 4 && in.UserID == nil
	})).Return([]dto.OrderDTO{{ID: 3}, {ID: 4}}, nil)

	w := do(r, http.MethodGet, "/business/4/employee/10/orders", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var out httpresp.ListResponse[dto.OrderDTO]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Total)
}

// ======================================================
// Reschedule / cancel
// ======================================================

func TestRescheduleHandler(t *testing.T) {
	r, d := newRouter(true)

	in := ucBooking.RescheduleOrderInput{
		UserID:     caller,
		EmployeeID: 10,
		OrderID:    5,
		StartTime:  "2030-01-07 11:00",
		EndTime:    "2030-01-07 11:30",
	}
	d.reschedule.On("Execute", in).Return(&dto.OrderDTO{ID: 6}, nil)

	w := do(r, http.MethodPatch, "/employee/10/order/5", RescheduleOrderRequest{StartTime: in.StartTime, EndTime: in.EndTime})

	require.Equal(t, http.StatusOK, w.Code)
	d.reschedule.AssertExpectations(t)
}

func TestRescheduleHandlerForeignOrder(t *testing.T) {
	r, d := newRouter(true)
	d.reschedule.On("Execute", mock.Anything).Return(nil, httperr.ErrBusiness("order_not_found"))

	w := do(r, http.MethodPatch, "/employee/10/order/5", RescheduleOrderRequest{StartTime: "a", EndTime: "b"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "order_not_found", decodeError(t, w).Code)
}

func TestCancelHandler(t *testing.T) {
	r, d := newRouter(true)
	d.cancel.On("Execute", caller, uint(10), uint(5)).Return(nil)

	w := do(r, http.MethodDelete, "/employee/10/order/5", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	d.cancel.AssertExpectations(t)
}

// ======================================================
// Availability
// ======================================================

func TestAvailabilityHandler(t *testing.T) {
	r, d := newRouter(true)

	in := ucBooking.AvailabilityInput{EmployeeID: 10, ServiceID: 20, Date: "2030-01-07", EndDate: "2030-01-08"}
	d.availability.On("Execute", in).Return([]dto.SlotDTO{
		{StartTime: "2030-01-07 09:00", EndTime: "2030-01-07 09:30"},
		{StartTime: "2030-01-07 09:30", EndTime: "2030-01-07 10:00"},
	}, nil)

	w := do(r, http.MethodGet, "/employee/10/service/20/available?date=2030-01-07&end_date=2030-01-08", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var out []dto.SlotDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "2030-01-07 09:30", out[1].StartTime)
}

func TestAvailabilityHandlerErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{httperr.ErrBusiness("date_in_past"), http.StatusBadRequest, "date_in_past"},
		{httperr.ErrBusiness("range_too_long"), http.StatusBadRequest, "range_too_long"},
		{booking.ErrInvalidRange, http.StatusBadRequest, "invalid_range"},
		{httperr.ErrBusiness("employee_not_found"), http.StatusNotFound, "employee_not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			r, d := newRouter(true)
			d.availability.On("Execute", mock.Anything).Return(nil, tc.err)

			w := do(r, http.MethodGet, "/employee/10/service/20/available", nil)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decodeError(t, w).Code)
		})
	}
}

func TestAvailabilityHandlerEmptyIsArray(t *testing.T) {
	r, d := newRouter(true)
	d.availability.On("Execute", mock.Anything).Return([]dto.SlotDTO{}, nil)

	w := do(r, http.MethodGet, "/employee/10/service/20/available", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
