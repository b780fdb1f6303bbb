package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for this module.
	Registry = prometheus.NewRegistry()

	// RemoteRequests counts calls to the routing service by endpoint and outcome.
	RemoteRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vrp_remote_requests_total", Help: "Routing service calls by endpoint and status."},
		[]string{"endpoint", "status"},
	)
	// RemoteDuration records routing service latency in seconds.
	RemoteDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "vrp_remote_request_duration_seconds", Help: "Routing service call duration in seconds.", Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}},
		[]string{"endpoint"},
	)
	// CacheLookups counts schedule cache lookups by result (hit, miss, error).
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vrp_schedule_cache_lookups_total", Help: "Schedule cache lookups by result."},
		[]string{"result"},
	)
	// HTTPRequests counts gateway requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
)

var regOnce sync.Once

// RegisterDefault registers the collectors on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(RemoteRequests)
		Registry.MustRegister(RemoteDuration)
		Registry.MustRegister(CacheLookups)
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
