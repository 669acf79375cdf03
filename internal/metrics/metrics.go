// Package metrics exposes Prometheus instrumentation for the HTTP surface and
// gauges describing the inventory as last rendered on the dashboard.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rogerio-castellano/inventory-dashboard/internal/dashboard"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed.",
		},
	)

	inventoryProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_products",
		Help: "Number of inventory records.",
	})
	inventoryQuantity = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_quantity_total",
		Help: "Sum of quantities across all records.",
	})
	inventoryValue = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_value_total",
		Help: "Sum of quantity times unit price across all records.",
	})
	inventoryCategories = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_categories",
		Help: "Number of distinct categories in use.",
	})
)

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latencies labelled by the chi route
// pattern, so query strings and item names never become label values.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				path = p
			}
		}

		httpRequestsDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(strconv.Itoa(rw.statusCode), r.Method, path).Inc()
	})
}

func ObserveInventory(s dashboard.Summary) {
	inventoryProducts.Set(float64(s.ProductCount))
	inventoryQuantity.Set(float64(s.TotalQuantity))
	inventoryValue.Set(s.TotalValue.InexactFloat64())
	inventoryCategories.Set(float64(s.CategoryCount))
}

func Handler() http.Handler {
	return promhttp.Handler()
}
