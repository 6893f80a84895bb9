// Package metrics provides Prometheus metrics for the news portal.
// Metrics are organized by domain: HTTP requests, article image processing and reader activity.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "news_portal"
)

var (
	// HTTP metrics - track request volume and latency
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Image metrics - track the normalization step of article saves
	ImageNormalizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "normalizations_total",
			Help:      "Article image normalizations by result (normalized, failed)",
		},
		[]string{"result"},
	)

	ImageNormalizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "images",
			Name:      "normalization_duration_seconds",
			Help:      "Time spent decoding, resizing and re-encoding article images",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	// Reader metrics - track detail visits and visitor submissions
	ArticleViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reader",
			Name:      "article_views_total",
			Help:      "Total number of article detail views",
		},
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reader",
			Name:      "submissions_total",
			Help:      "Visitor submissions by kind (comment, contact) and result (accepted, rejected)",
		},
		[]string{"kind", "result"},
	)
)

// ObserveImageNormalization records the outcome of one image normalization
func ObserveImageNormalization(result string, elapsed time.Duration) {
	ImageNormalizationsTotal.WithLabelValues(result).Inc()
	ImageNormalizationDuration.Observe(elapsed.Seconds())
}

// ObserveSubmission records a visitor submission
func ObserveSubmission(kind string, accepted bool) {
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	SubmissionsTotal.WithLabelValues(kind, result).Inc()
}

// Timer is a helper for measuring operation duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer starting now
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the time since the timer was created
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// ObserveDuration records the elapsed time since the timer was created
func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(t.Elapsed().Seconds())
}
