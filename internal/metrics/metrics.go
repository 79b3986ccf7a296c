package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Event pipeline metrics
	EventsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "walletwatch_events_received_total",
			Help: "Total number of webhook events received",
		},
	)

	EventsFiltered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletwatch_events_filtered_total",
			Help: "Total number of events dropped per pipeline stage",
		},
		[]string{"stage"}, // type, actor, cooldown, trigger, cap
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "walletwatch_batch_duration_seconds",
			Help:    "Duration of batch processing",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Alert metrics
	AlertsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletwatch_alerts_emitted_total",
			Help: "Total number of alerts emitted",
		},
		[]string{"action"}, // BUY, SELL, SWAP
	)

	AlertsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletwatch_alerts_sent_total",
			Help: "Total number of alert send attempts",
		},
		[]string{"status"}, // success, error
	)

	AlertsSuppressed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "walletwatch_alerts_suppressed_total",
			Help: "Total number of alerts suppressed by the per-wallet cooldown",
		},
	)

	SignificanceScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "walletwatch_significance_scores",
			Help:    "Distribution of significance scores for emitted alerts",
			Buckets: []float64{1, 2, 3, 5, 8, 10, 13, 16, 20},
		},
	)

	// Ingress metrics
	WebhookRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletwatch_webhook_requests_total",
			Help: "Total number of webhook HTTP requests",
		},
		[]string{"status"}, // ok, unauthorized, bad_request, unavailable
	)

	HealthChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletwatch_health_checks_total",
			Help: "Total number of health check requests",
		},
		[]string{"status"},
	)
)

// RecordBatch records batch-level processing metrics.
func RecordBatch(duration time.Duration, received int) {
	EventsReceived.Add(float64(received))
	BatchDuration.Observe(duration.Seconds())
}

// RecordFiltered counts an event dropped at the given pipeline stage.
func RecordFiltered(stage string) {
	EventsFiltered.WithLabelValues(stage).Inc()
}

// RecordAlert records an emitted alert and the outcome of its delivery.
func RecordAlert(action string, score int, sendErr error) {
	AlertsEmitted.WithLabelValues(action).Inc()
	SignificanceScores.Observe(float64(score))

	status := "success"
	if sendErr != nil {
		status = "error"
	}
	AlertsSent.WithLabelValues(status).Inc()
}

// RecordHealthCheck records health check status.
func RecordHealthCheck(healthy bool) {
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}
	HealthChecks.WithLabelValues(status).Inc()
}
