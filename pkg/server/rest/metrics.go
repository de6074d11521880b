package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	originalPoints prometheus.Histogram
	sampledPoints  prometheus.Histogram
	turns          prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	pointBuckets := prometheus.ExponentialBuckets(2, 2, 12)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "navsampler",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "navsampler",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "path"}),
		originalPoints: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navsampler",
			Subsystem: "sampling",
			Name:      "original_points",
			Help:      "Number of points fed to the waypoint sampler",
			Buckets:   pointBuckets,
		}),
		sampledPoints: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navsampler",
			Subsystem: "sampling",
			Name:      "sampled_points",
			Help:      "Number of waypoints returned by the sampler",
			Buckets:   prometheus.LinearBuckets(0, 5, 11),
		}),
		turns: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navsampler",
			Subsystem: "sampling",
			Name:      "turns",
			Help:      "Number of significant turns detected per route",
			Buckets:   pointBuckets,
		}),
	}
}

// ReportSamplingStats makes Metrics a sampler.StatsReporter.
func (m *Metrics) ReportSamplingStats(originalCount, sampledCount, turnCount int) {
	m.originalPoints.Observe(float64(originalCount))
	m.sampledPoints.Observe(float64(sampledCount))
	m.turns.Observe(float64(turnCount))
}

// PromeHttpMiddleware records request count and latency labelled by the chi route pattern.
func PromeHttpMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			m.httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
			m.httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}
