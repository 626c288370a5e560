package monitoring

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var (
	authOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_operations_total",
			Help: "Total identity operations",
		},
		[]string{"operation", "status"},
	)

	cartOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Total cart operations",
		},
		[]string{"operation", "status"},
	)

	bookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Bookings created or cancelled",
		},
		[]string{"status"},
	)

	bookingRevenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_revenue_rupees_total",
			Help: "Sum of final amounts of confirmed bookings",
		},
	)

	checkoutDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "checkout_duration_seconds",
			Help:    "Duration of checkouts including simulated payment",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"payment_method", "status"},
	)

	activeCarts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_carts",
			Help: "Carts currently holding at least one item",
		},
	)

	storedBookings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stored_bookings",
			Help: "Bookings in the booking table",
		},
	)
)

const (
	cartKeyPattern = "luxetickets:cart:*"
	bookingsKey    = "luxetickets:bookings"
)

// Monitor records storefront metrics. A nil *Monitor is valid and records
// nothing.
type Monitor struct {
	redis    redis.Cmdable
	interval time.Duration
}

func NewMonitor(redisClient redis.Cmdable, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Monitor{redis: redisClient, interval: interval}
}

// Run collects the Redis gauges on every tick until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	if m == nil || m.redis == nil {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		m.collectStoreMetrics(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *Monitor) collectStoreMetrics(ctx context.Context) {
	carts := 0
	iter := m.redis.Scan(ctx, 0, cartKeyPattern, 100).Iterator()
	for iter.Next(ctx) {
		carts++
	}
	if err := iter.Err(); err != nil {
		slog.Warn("Failed to scan carts", "error", err)
		return
	}
	activeCarts.Set(float64(carts))

	count, err := m.redis.HLen(ctx, bookingsKey).Result()
	if err != nil {
		slog.Warn("Failed to count bookings", "error", err)
		return
	}
	storedBookings.Set(float64(count))
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (m *Monitor) TrackAuth(operation string, err error) {
	if m == nil {
		return
	}
	authOperations.WithLabelValues(operation, statusLabel(err)).Inc()
}

func (m *Monitor) TrackCart(operation string, err error) {
	if m == nil {
		return
	}
	cartOperations.WithLabelValues(operation, statusLabel(err)).Inc()
}

func (m *Monitor) TrackBooking(status string, finalAmount decimal.Decimal) {
	if m == nil {
		return
	}
	bookingsTotal.WithLabelValues(status).Inc()
	if status == "confirmed" {
		bookingRevenue.Add(finalAmount.InexactFloat64())
	}
}

func (m *Monitor) TrackCheckout(paymentMethod string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	checkoutDuration.WithLabelValues(paymentMethod, statusLabel(err)).Observe(duration.Seconds())
}
