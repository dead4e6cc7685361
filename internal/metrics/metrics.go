// Package metrics instruments the service with Prometheus counters and
// histograms: RED metrics for the HTTP surface plus domain counters for
// generations and ratings.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcome labels.
const (
	OutcomeSuccess          = "success"
	OutcomeDecodeFailure    = "decode_failure"
	OutcomeTransportFailure = "transport_failure"
	OutcomeRejected         = "rejected"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantrio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pantrio_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// GenerationsTotal counts completed generation requests by outcome.
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantrio_generations_total",
			Help: "Completed recipe generation requests by outcome",
		},
		[]string{"outcome"},
	)

	// GenerationAttempts records how many model calls a generation
	// consumed before it finished, successfully or not.
	GenerationAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pantrio_generation_attempts",
			Help:    "Model calls consumed per finished generation",
			Buckets: []float64{1, 2, 3},
		},
	)

	// ModelCallDuration records the latency of individual generateContent
	// round trips, failed ones included.
	ModelCallDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pantrio_model_call_duration_seconds",
			Help:    "Latency of Gemini generateContent calls",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
		},
	)

	// RatingsTotal counts submitted star ratings.
	RatingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantrio_ratings_total",
			Help: "Total number of star ratings submitted",
		},
	)
)

// RegisterSessionGauge exposes the live session count through a gauge that
// reads from count on every scrape.
func RegisterSessionGauge(count func() float64) {
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "pantrio_sessions_live",
			Help: "Currently live user sessions",
		},
		count,
	)
}

// Middleware instruments HTTP requests with request rate and latency.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
