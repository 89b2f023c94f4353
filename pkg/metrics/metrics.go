package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors groups every metric the service exports.
type Collectors struct {
	registry          *prometheus.Registry
	requests          *prometheus.CounterVec
	duration          *prometheus.HistogramVec
	wsConnections     prometheus.Gauge
	wsEvents          *prometheus.CounterVec
	auxiliaryFailures *prometheus.CounterVec
}

func New() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campusbuddy",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "campusbuddy",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		wsConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "campusbuddy",
			Name:      "ws_connections",
			Help:      "Active realtime connections.",
		}),
		wsEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campusbuddy",
			Name:      "ws_events_total",
			Help:      "Realtime events received by name.",
		}, []string{"event"}),
		auxiliaryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campusbuddy",
			Name:      "auxiliary_failures_total",
			Help:      "Swallowed failures of auxiliary side effects.",
		}, []string{"effect"}),
	}
	c.registry.MustRegister(
		c.requests,
		c.duration,
		c.wsConnections,
		c.wsEvents,
		c.auxiliaryFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency keyed by chi route pattern.
func (c *Collectors) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (c *Collectors) ConnectionOpened() {
	if c != nil {
		c.wsConnections.Inc()
	}
}

func (c *Collectors) ConnectionClosed() {
	if c != nil {
		c.wsConnections.Dec()
	}
}

func (c *Collectors) EventReceived(event string) {
	if c != nil {
		c.wsEvents.WithLabelValues(event).Inc()
	}
}

func (c *Collectors) AuxiliaryFailed(effect string) {
	if c != nil {
		c.auxiliaryFailures.WithLabelValues(effect).Inc()
	}
}
