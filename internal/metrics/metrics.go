// Package metrics holds the Prometheus collectors recorded by the API client.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "basic_api_client"

// StatusTransportError labels requests that never produced an HTTP response.
const StatusTransportError = "error"

// Metrics holds the client's Prometheus collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on registerer.
// A nil registerer leaves them unregistered.
func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of dispatched requests by method and status",
			},
			[]string{"method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Request round-trip latency histogram",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 17), // 1ms to ~65s
			},
			[]string{"method"},
		),
	}

	if registerer != nil {
		registerer.MustRegister(m.RequestsTotal, m.RequestDuration)
	}

	return m
}

// ObserveRequest records one request. A statusCode of 0 means no response was received.
// It is safe to call on a nil *Metrics.
func (m *Metrics) ObserveRequest(method string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}

	status := StatusTransportError
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}

	m.RequestsTotal.WithLabelValues(method, status).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}
