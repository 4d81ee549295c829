package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/business-booking/internal/domain/booking"
	"github.com/BruksfildServices01/business-booking/internal/httperr"
	"github.com/BruksfildServices01/business-booking/internal/models"
)

const ContextBusiness = "business"

type BusinessLookup interface {
	GetBusinessByID(ctx context.Context, id uint) (*models.Business, error)
}

// BusinessCreatorOrReadOnly lets safe methods through and requires the
// authenticated user to be the creator of :business_pk for the rest.
func BusinessCreatorOrReadOnly(lookup BusinessLookup) gin.HandlerFunc {
	return requireCreator(lookup, true)
}

// BusinessCreatorOnly requires the creator for every method.
func BusinessCreatorOnly(lookup BusinessLookup) gin.HandlerFunc {
	return requireCreator(lookup, false)
}

func requireCreator(lookup BusinessLookup, allowSafe bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allowSafe && isSafe(c.Request.Method) {
			c.Next()
			return
		}

		id, err := strconv.ParseUint(c.Param("business_pk"), 10, 64)
		if err != nil {
			httperr.Abort(c, http.StatusBadRequest, "invalid_business_id", "Business id must be a positive integer.")
			return
		}

		userID, ok := UserID(c)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authentication credentials were not provided.")
			return
		}

		biz, err := lookup.GetBusinessByID(c.Request.Context(), uint(id))
		if errors.Is(err, booking.ErrNotFound) {
			httperr.Abort(c, http.StatusNotFound, "business_not_found", "Business not found.")
			return
		}
		if err != nil {
			_ = c.Error(err)
			httperr.Abort(c, http.StatusInternalServerError, "internal_error", "Failed to load business.")
			return
		}

		if biz.CreatorID != userID {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "You do not have permission to perform this action.")
			return
		}

		c.Set(ContextBusiness, biz)
		c.Next()
	}
}

func isSafe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
