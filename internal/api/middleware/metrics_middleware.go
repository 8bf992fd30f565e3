package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mws_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mws_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	checkinsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mws_checkins_submitted_total",
			Help: "Total number of check-ins accepted",
		},
	)

	emotionAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mws_emotion_analyses_total",
			Help: "Total number of emotion analyses by outcome",
		},
		[]string{"outcome"},
	)
)

// MetricsMiddleware collects metrics for HTTP requests
type MetricsMiddleware struct{}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{}
}

// CollectMetrics collects metrics for HTTP requests
func (m *MetricsMiddleware) CollectMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		requestDuration.WithLabelValues(method, path, status).Observe(duration)
		requestTotal.WithLabelValues(method, path, status).Inc()
	}
}

// CountCheckinSubmitted increments the accepted check-in counter.
func CountCheckinSubmitted() {
	checkinsSubmitted.Inc()
}

// CountEmotionAnalysis increments the analysis counter for an outcome.
func CountEmotionAnalysis(outcome string) {
	emotionAnalyses.WithLabelValues(outcome).Inc()
}
