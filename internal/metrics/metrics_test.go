package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAgentQuery(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, reg)

	m.ObserveAgentQuery(OutcomeSuccess, 0.2)
	m.ObserveAgentQuery(OutcomeSuccess, 0.3)
	m.ObserveAgentQuery(OutcomeUpstreamError, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AgentQueriesTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AgentQueriesTotal.WithLabelValues(OutcomeUpstreamError)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.AgentQueriesTotal.WithLabelValues(OutcomeTransportError)))
}

func TestObserveAgentQuery_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveAgentQuery(OutcomeSuccess, 1) })
}

func TestHandler(t *testing.T) {
	m := New()
	m.HTTPRequestsTotal.WithLabelValues("GET", "/health", "200").Inc()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `guardrails_http_requests_total{method="GET",path="/health",status="200"} 1`))
	assert.Contains(t, string(body), "go_goroutines")
}
