package workast

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors a Client records into.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	retries  *prometheus.CounterVec
}

// NewMetrics creates the SDK collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "workast_client_requests_total",
			Help: "Total API calls by method, route and outcome status.",
		}, []string{"method", "route", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "workast_client_request_duration_seconds",
			Help:    "API call duration in seconds, retries included.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		retries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "workast_client_retries_total",
			Help: "Total retried attempts by method and route.",
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) observe(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(method, route, label).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) retried(method, route string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(method, route).Inc()
}
