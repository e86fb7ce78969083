// README: Prometheus registry and collectors for the API.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated registry served on /metrics.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "carshare_http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "carshare_http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Quotes counts priced trips by the option that came out cheapest.
	Quotes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "carshare_quotes_total", Help: "Priced trips by cheapest option."},
		[]string{"cheapest"},
	)
	RouteLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "carshare_route_lookups_total", Help: "Route lookups by outcome (hit, miss, error)."},
		[]string{"outcome"},
	)
)

var regOnce sync.Once

// Register adds all collectors to Registry. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests, HTTPDuration, Quotes, RouteLookups)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
