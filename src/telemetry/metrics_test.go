package telemetry

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := NewMetrics()

	m.SetConnections(3)
	m.IncPush("metrics-update", 2)
	m.IncPush("metrics-update", 0)
	m.IncTick("metrics", true)
	m.IncTick("metrics", false)
	m.IncTick("metrics", false)
	m.IncDropped()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.HubConnections))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HubPushes.WithLabelValues("metrics-update")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SchedulerTicks.WithLabelValues("metrics", "idle")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HubDropped))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SetConnections(1)
		m.IncPush("live-update", 1)
		m.IncTick("alerts", true)
		m.IncDropped()
		m.IncMutation()
	})
}

func TestHandlerExposesNamespace(t *testing.T) {
	m := NewMetrics()
	m.IncMutation()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "campaign_pulse_metrics_mutations_total 1"))
}
