// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apmap_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "apmap_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// External import
	WigleRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apmap_wigle_requests_total",
			Help: "Requests to the WiGLE API by result",
		},
		[]string{"endpoint", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "apmap_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	AccessPointsImported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apmap_access_points_imported_total",
			Help: "Access points upserted from external imports",
		},
	)

	// Realtime
	RealtimeClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "apmap_realtime_clients",
			Help: "Connected websocket clients",
		},
	)

	RealtimeEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apmap_realtime_events_published_total",
			Help: "Events published to organization channels",
		},
		[]string{"event"},
	)

	RealtimeEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apmap_realtime_events_dropped_total",
			Help: "Events dropped because a client could not keep up",
		},
	)
)

// Middleware records request counts and latencies by chi route pattern, so
// path parameters do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
