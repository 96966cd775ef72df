// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Agent call outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeUpstreamError  = "upstream_error"
	OutcomeTransportError = "transport_error"
)

// Metrics groups the request and agent proxy collectors.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AgentQueriesTotal   *prometheus.CounterVec
	AgentQueryDuration  prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with a fresh registry, along
// with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors with reg and serves from g.
func NewWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guardrails_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "guardrails_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latency",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		AgentQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guardrails_agent_queries_total",
				Help: "Queries forwarded to the agent engine by outcome",
			},
			[]string{"outcome"},
		),
		AgentQueryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "guardrails_agent_query_duration_seconds",
				Help:    "Round trip time of agent engine queries",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
			},
		),
		gatherer: g,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AgentQueriesTotal,
		m.AgentQueryDuration,
	)
	return m
}

// ObserveAgentQuery records one agent call. Safe on a nil receiver.
func (m *Metrics) ObserveAgentQuery(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.AgentQueriesTotal.WithLabelValues(outcome).Inc()
	m.AgentQueryDuration.Observe(seconds)
}

// Handler serves the exposition format for the registry behind m.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
