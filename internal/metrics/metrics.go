package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trimly_bookings_created_total",
		Help: "Reservations successfully created.",
	})

	BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trimly_booking_conflicts_total",
		Help: "Booking attempts rejected because the slot was taken.",
	})

	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trimly_bookings_cancelled_total",
		Help: "Reservations cancelled by any actor.",
	})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trimly_notification_failures_total",
		Help: "Email notifications that failed or were dropped.",
	})
)

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
