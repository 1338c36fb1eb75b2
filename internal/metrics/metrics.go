package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officespace",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	sessionsOpened = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "officespace",
			Name:      "sessions_opened_total",
			Help:      "Booking sessions opened.",
		},
	)

	reservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officespace",
			Name:      "reservations_total",
			Help:      "Reservation submissions by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, sessionsOpened, reservations)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncSessionOpened counts one opened booking session.
func IncSessionOpened() {
	sessionsOpened.Inc()
}

// IncReservation counts one submission outcome ("confirmed" or "failed").
func IncReservation(outcome string) {
	reservations.WithLabelValues(outcome).Inc()
}
