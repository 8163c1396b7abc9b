package gateway

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the gateway. All fields are optional at the call
// sites: a nil *Metrics disables instrumentation.
type Metrics struct {
	requests  *prometheus.CounterVec
	refreshes *prometheus.CounterVec
	inFlight  prometheus.Gauge
}

// NewMetrics creates gateway metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "servify",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "API requests by method and response status.",
		}, []string{"method", "status"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "servify",
			Subsystem: "gateway",
			Name:      "token_refresh_total",
			Help:      "Token refresh attempts by outcome.",
		}, []string{"outcome"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "servify",
			Subsystem: "gateway",
			Name:      "in_flight_requests",
			Help:      "Requests currently awaiting a response.",
		}),
	}
	reg.MustRegister(m.requests, m.refreshes, m.inFlight)
	return m
}

func (m *Metrics) recordRequest(method string, status int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *Metrics) recordRefresh(outcome string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) incInFlight() {
	if m != nil {
		m.inFlight.Inc()
	}
}

func (m *Metrics) decInFlight() {
	if m != nil {
		m.inFlight.Dec()
	}
}
