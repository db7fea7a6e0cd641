package apiclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects request pipeline counters. A nil *Metrics disables
// collection; every method is nil-safe.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
	refreshTotal    *prometheus.CounterVec
}

// NewMetrics registers the client pipeline collectors with the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_client_requests_total",
				Help: "Total number of API requests issued by the client pipeline",
			},
			[]string{"method", "status"},
		),
		requestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "api_client_request_duration_milliseconds",
				Help:    "API request duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		refreshTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_client_token_refresh_total",
				Help: "Total number of access token refresh attempts",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) observeRequest(method string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}

	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	m.requestsTotal.WithLabelValues(method, status).Inc()
	m.requestDuration.Observe(float64(duration.Milliseconds()))
}

func (m *Metrics) observeRefresh(result string) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(result).Inc()
}
