package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.Gate(DecisionAllowed)
	m.Gate(DecisionAllowed)
	m.Gate(DecisionDenied)
	m.Webhook(WebhookProvisioned)
	m.Upstream("market", nil)
	m.Upstream("market", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GateDecisions.WithLabelValues(DecisionAllowed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GateDecisions.WithLabelValues(DecisionDenied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhookEvents.WithLabelValues(WebhookProvisioned)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamCalls.WithLabelValues("market", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamCalls.WithLabelValues("market", "error")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Gate(DecisionAllowed)
		m.Webhook(WebhookFailed)
		m.Upstream("chat", nil)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Gate(DecisionNoSession)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `gate_decisions_total{decision="no_session"} 1`)
}
