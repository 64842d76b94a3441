package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/api/training/trainers", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/training/trainers", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/api/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/api/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/api/auth/login", "401", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/auth/login", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/auth/login", "401"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordSessionBooked(t *testing.T) {
	SessionsBookedTotal.Reset()

	RecordSessionBooked("VIRTUAL")
	RecordSessionBooked("VIRTUAL")
	RecordSessionBooked("IN_PERSON")

	assert.Equal(t, float64(2), testutil.ToFloat64(SessionsBookedTotal.WithLabelValues("VIRTUAL")))
	assert.Equal(t, float64(1), testutil.ToFloat64(SessionsBookedTotal.WithLabelValues("IN_PERSON")))
}

func TestRecordBookingConflict(t *testing.T) {
	before := testutil.ToFloat64(BookingConflictsTotal)

	RecordBookingConflict()

	assert.Equal(t, before+1, testutil.ToFloat64(BookingConflictsTotal))
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("booking_confirmation", "sent")
	RecordEmail("booking_confirmation", "failed")

	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("booking_confirmation", "sent")))
	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("booking_confirmation", "failed")))
}

func TestRecordTrainerCounterRecompute(t *testing.T) {
	before := testutil.ToFloat64(TrainerCounterRecomputesTotal)

	RecordTrainerCounterRecompute()

	assert.Equal(t, before+1, testutil.ToFloat64(TrainerCounterRecomputesTotal))
}
