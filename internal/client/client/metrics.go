package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"
)

// Metrics holds dispatcher collectors. A nil *Metrics records nothing.
type Metrics struct {
	requests          *prometheus.CounterVec
	duration          *prometheus.HistogramVec
	breakerState      *prometheus.GaugeVec
	deauthentications prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskboard",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Outbound API requests by method and outcome (status code or network_error).",
			},
			[]string{"method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskboard",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Outbound API request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		breakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskboard",
				Subsystem: "client",
				Name:      "circuit_breaker_state",
				Help:      "Current state of the circuit breaker (0=closed, 1=half-open, 2=open).",
			},
			[]string{"name"},
		),
		deauthentications: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "taskboard",
				Subsystem: "client",
				Name:      "deauthentications_total",
				Help:      "Sessions cleared because the service answered 401.",
			},
		),
	}
	reg.MustRegister(m.requests, m.duration, m.breakerState, m.deauthentications)
	return m
}

const outcomeNetworkError = "network_error"

func (m *Metrics) observe(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := outcomeNetworkError
	if status > 0 {
		outcome = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(method, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) deauthenticated() {
	if m == nil {
		return
	}
	m.deauthentications.Inc()
}

func (m *Metrics) setBreakerState(name string, state gobreaker.State) {
	if m == nil {
		return
	}
	m.breakerState.WithLabelValues(name).Set(stateToFloat(state))
}

// stateToFloat maps gobreaker states to gauge values.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
