package jira

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects Prometheus metrics for the request pipeline. A nil *Metrics
// records nothing, so clients built without WithMetrics pay no cost.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the pipeline collectors on reg. A nil reg uses the
// default registerer. Calling it again on the same registerer returns a
// Metrics backed by the collectors already registered there.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Metrics{
		requestsTotal: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jirac_requests_total",
				Help: "Total number of Jira API requests by method and status code",
			},
			[]string{"method", "code"},
		)),
		requestDuration: register(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jirac_request_duration_seconds",
				Help:    "Duration of Jira API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		)),
	}
}

// register adds c to reg, or returns the equivalent collector reg already
// holds. Any other registration failure panics.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	panic(err)
}

// observe records one finished exchange. Status 0 means no response arrived.
func (m *Metrics) observe(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := "transport_error"
	if status != 0 {
		code = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(method, code).Inc()
	m.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
