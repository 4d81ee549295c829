package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/business-booking/internal/audit"
	"github.com/BruksfildServices01/business-booking/internal/config"
	"github.com/BruksfildServices01/business-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/business-booking/internal/infra/repository"
	"github.com/BruksfildServices01/business-booking/internal/logging"
	"github.com/BruksfildServices01/business-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/business-booking/internal/usecase/booking"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Audit   *audit.Dispatcher
	Limiter *middleware.RateLimiter
	Health  handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(logging.GinLogger())
	r.Use(middleware.CORSMiddleware(d.Config))

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	createOrderUC := ucBooking.NewCreateOrder(bookingRepo, d.Audit)
	rescheduleOrderUC := ucBooking.NewRescheduleOrder(bookingRepo, d.Audit)
	cancelOrderUC := ucBooking.NewCancelOrder(bookingRepo, d.Audit)
	listOrdersUC := ucBooking.NewListOrdersByDate(bookingRepo)
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, d.Config.MaxAvailabilityDays)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.Health)
	meHandler := handlers.NewMeHandler(d.DB)
	businessHandler := handlers.NewBusinessHandler(d.DB, d.Audit)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit)
	employeeHandler := handlers.NewEmployeeHandler(d.DB, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	orderHandler := handlers.NewOrderHandler(
		createOrderUC,
		rescheduleOrderUC,
		cancelOrderUC,
		listOrdersUC,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)

	auth := middleware.AuthMiddleware(d.Config)
	creatorOrReadOnly := middleware.BusinessCreatorOrReadOnly(bookingRepo)
	creatorOnly := middleware.BusinessCreatorOnly(bookingRepo)
	limited := d.Limiter.Middleware()

	// ======================================================
	// OPERATIONS
	// ======================================================
	r.GET("/health", healthHandler.Get)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/me", auth, meHandler.GetMe)

		// ------------------------------
		// BUSINESSES
		// ------------------------------
		api.GET("/type", businessHandler.ListTypes)
		api.GET("/business", businessHandler.List)
		api.POST("/business", auth, businessHandler.Create)
		api.GET("/business/:business_pk", businessHandler.Get)
		api.PUT("/business/:business_pk", auth, creatorOnly, businessHandler.Update)
		api.PATCH("/business/:business_pk", auth, creatorOnly, businessHandler.Update)
		api.DELETE("/business/:business_pk", auth, creatorOnly, businessHandler.Delete)

		// ------------------------------
		// SERVICES
		// ------------------------------
		api.GET("/business/:business_pk/service", serviceHandler.List)
		api.POST("/business/:business_pk/service", auth, creatorOrReadOnly, serviceHandler.Create)
		api.GET("/business/:business_pk/service/:service_pk", serviceHandler.Subservices)

		// ------------------------------
		// EMPLOYEES
		// ------------------------------
		api.GET("/business/:business_pk/employee", employeeHandler.List)
		api.POST("/business/:business_pk/employee", auth, creatorOrReadOnly, employeeHandler.Create)
		api.GET("/business/:business_pk/employee/:employee_pk", employeeHandler.Get)
		api.PUT("/business/:business_pk/employee/:employee_pk", auth, creatorOrReadOnly, employeeHandler.Update)
		api.PATCH("/business/:business_pk/employee/:employee_pk", auth, creatorOrReadOnly, employeeHandler.Update)
		api.DELETE("/business/:business_pk/employee/:employee_pk", auth, creatorOrReadOnly, employeeHandler.Delete)

		// ------------------------------
		// BUSINESS CREATOR VIEWS
		// ------------------------------
		api.GET("/business/:business_pk/employee/:employee_pk/orders", auth, creatorOnly, orderHandler.ListForBusiness)
		api.GET("/business/:business_pk/audit-logs", auth, creatorOnly, auditLogsHandler.List)

		// ------------------------------
		// ORDERS (customer)
		// ------------------------------
		orders := api.Group("/employee/:employee_pk")
		orders.Use(auth)
		{
			orders.GET("/order", orderHandler.ListMine)
			orders.POST("/order", limited, orderHandler.Create)
			orders.PATCH("/order/:order_pk", limited, orderHandler.Reschedule)
			orders.DELETE("/order/:order_pk", orderHandler.Cancel)

			orders.GET("/service/:service_pk/available", limited, availabilityHandler.Get)
		}
	}
}
