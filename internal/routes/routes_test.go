package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/business-booking/internal/config"
	"github.com/BruksfildServices01/business-booking/internal/metrics"
	"github.com/BruksfildServices01/business-booking/internal/middleware"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	metrics.Register()

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config: &config.Config{JWTSecret: "test-secret", MaxAvailabilityDays: 31},
		Health: okPinger{},
	})
	return r
}

func get(r http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOperationalRoutes(t *testing.T) {
	r := router()

	w := get(r, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = get(r, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "booking_orders_created_total")
}

func TestRequestIDIsEchoed(t *testing.T) {
	w := get(router(), "/health", http.Header{middleware.RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestOrderRoutesRequireAuth(t *testing.T) {
	r := router()

	for _, path := range []string{
		"/api/me",
		"/api/employee/1/order",
		"/api/employee/1/service/2/available",
		"/api/business/1/audit-logs",
		"/api/business/1/employee/1/orders",
	} {
		w := get(r, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
