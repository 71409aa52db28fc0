// Package metrics exposes the engine's Prometheus collectors: HTTP traffic,
// footprint calculations and factor seeding runs.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "carbon_engine",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carbon_engine",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "carbon_engine",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	calculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carbon_engine",
			Subsystem: "calculations",
			Name:      "total",
			Help:      "Total number of footprint calculations by eco rating.",
		},
		[]string{"eco_rating"},
	)

	calculationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "carbon_engine",
			Subsystem: "calculations",
			Name:      "duration_seconds",
			Help:      "Duration of footprint calculations including persistence.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)

	factorsSeeded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carbon_engine",
			Subsystem: "factors",
			Name:      "seeded_total",
			Help:      "Total number of emission factors offered for seeding.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		calculations,
		calculationDuration,
		factorsSeeded,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// GinMiddleware collects request counters and latency histograms for every
// routed request. Unrouted paths are labeled "unmatched" to bound cardinality.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordCalculation records one completed footprint calculation.
func RecordCalculation(ecoRating string, duration time.Duration) {
	if ecoRating == "" {
		ecoRating = "unknown"
	}
	calculations.WithLabelValues(ecoRating).Inc()
	calculationDuration.Observe(duration.Seconds())
}

// RecordFactorsSeeded records how many factors a seeding run offered.
func RecordFactorsSeeded(count int) {
	factorsSeeded.Add(float64(count))
}
