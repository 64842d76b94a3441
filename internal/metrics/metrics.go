package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "disciplix_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "disciplix_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SessionsBookedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "disciplix_sessions_booked_total",
			Help: "Total number of training sessions booked",
		},
		[]string{"type"},
	)

	BookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "disciplix_booking_conflicts_total",
			Help: "Booking attempts rejected due to a slot conflict",
		},
	)

	SessionCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "disciplix_session_cancellations_total",
			Help: "Total number of session cancellations",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "disciplix_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	TrainerCounterRecomputesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "disciplix_trainer_counter_recomputes_total",
			Help: "Runs of the trainer aggregate recompute job",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSessionBooked(sessionType string) {
	SessionsBookedTotal.WithLabelValues(sessionType).Inc()
}

func RecordBookingConflict() {
	BookingConflictsTotal.Inc()
}

func RecordSessionCancellation() {
	SessionCancellationsTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordTrainerCounterRecompute() {
	TrainerCounterRecomputesTotal.Inc()
}
