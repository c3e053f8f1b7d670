// Package metrics exposes Prometheus collectors for the web frontend and
// an optional CloudWatch publisher.
// file: metrics/prometheus.go
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Live view kinds.
const (
	ViewDashboard = "dashboard"
	ViewAdmin     = "admin"
)

// Recorder holds every collector. It implements the apiclient observer
// and the request observer of the middleware package.
type Recorder struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	upstream        *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	liveViews       *prometheus.GaugeVec

	mu    sync.Mutex
	views map[string]int
}

// NewRecorder creates a Recorder on its own registry.
func NewRecorder(namespace string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests served, by route and status",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Request handling latency",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Backend API calls, by route and status (0 means no response)",
		}, []string{"route", "status"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Backend API call latency",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"route"}),
		liveViews: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_views",
			Help:      "Open live view connections",
		}, []string{"view"}),
		views: make(map[string]int),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests,
		r.requestLatency,
		r.upstream,
		r.upstreamLatency,
		r.liveViews,
	)
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served request.
func (r *Recorder) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveUpstream records one backend call.
func (r *Recorder) ObserveUpstream(route string, status int, elapsed time.Duration) {
	r.upstream.WithLabelValues(route, strconv.Itoa(status)).Inc()
	r.upstreamLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// LiveViewOpened counts a new live view connection.
func (r *Recorder) LiveViewOpened(view string) {
	r.mu.Lock()
	r.views[view]++
	n := r.views[view]
	r.mu.Unlock()
	r.liveViews.WithLabelValues(view).Set(float64(n))
}

// LiveViewClosed counts a closed live view connection.
func (r *Recorder) LiveViewClosed(view string) {
	r.mu.Lock()
	if r.views[view] > 0 {
		r.views[view]--
	}
	n := r.views[view]
	r.mu.Unlock()
	r.liveViews.WithLabelValues(view).Set(float64(n))
}

// LiveViews returns the open connection count per view.
func (r *Recorder) LiveViews() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.views))
	for k, v := range r.views {
		out[k] = v
	}
	return out
}
