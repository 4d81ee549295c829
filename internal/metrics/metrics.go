package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ordersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_orders_created_total",
			Help: "Count of orders accepted and persisted.",
		},
	)

	ordersRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_orders_rejected_total",
			Help: "Count of orders rejected by reason.",
		},
		[]string{"reason"},
	)

	ordersCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_orders_cancelled_total",
			Help: "Count of orders cancelled by their owner.",
		},
	)

	availabilityRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_availability_requests_total",
			Help: "Count of availability computations.",
		},
	)

	availabilitySlots = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_availability_slots",
			Help:    "Slots returned per availability request.",
			Buckets: []float64{0, 1, 4, 8, 16, 32, 64, 128, 256},
		},
	)
)

// Register registers metrics with the default registry (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ordersCreated,
			ordersRejected,
			ordersCancelled,
			availabilityRequests,
			availabilitySlots,
		)
	})
}

func IncOrderCreated() {
	ordersCreated.Inc()
}

func IncOrderRejected(reason string) {
	ordersRejected.WithLabelValues(reason).Inc()
}

func IncOrderCancelled() {
	ordersCancelled.Inc()
}

func ObserveAvailability(slots int) {
	availabilityRequests.Inc()
	availabilitySlots.Observe(float64(slots))
}
