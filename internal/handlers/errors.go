package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/business-booking/internal/domain/booking"
	"github.com/BruksfildServices01/business-booking/internal/httperr"
	"github.com/BruksfildServices01/business-booking/internal/middleware"
)

type businessFailure struct {
	status  int
	message string
}

var businessFailures = map[string]businessFailure{
	"business_not_found":   {http.StatusNotFound, "Business not found."},
	"employee_not_found":   {http.StatusNotFound, "Employee not found."},
	"service_not_found":    {http.StatusNotFound, "Service not found."},
	"order_not_found":      {http.StatusNotFound, "Order not found."},
	"invalid_date_or_time": {http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD for dates and YYYY-MM-DD HH:MM for times."},
	"date_in_past":         {http.StatusBadRequest, "Date must be today or in the future."},
	"range_too_long":       {http.StatusBadRequest, "The requested date range is too long."},
}

// writeError renders a use case error. Rejection reasons and known
// business codes are client errors, anything else is logged as a 500.
func writeError(c *gin.Context, err error) {
	if reason, ok := booking.AsReason(err); ok {
		httperr.BadRequest(c, string(reason), reason.Message())
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		if f, known := businessFailures[code]; known {
			httperr.Write(c, f.status, code, f.message)
			return
		}
		httperr.BadRequest(c, code, code)
		return
	}

	log.Error().Err(err).
		Str("path", c.FullPath()).
		Msg("request failed")
	httperr.Internal(c, "internal_error", "Internal server error.")
}

// pathID reads a positive integer path parameter. On failure the 400 is
// already written.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Path parameter "+name+" must be a positive integer.")
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "missing_authorization_header", "Authentication credentials were not provided.")
		return 0, false
	}
	return id, true
}
