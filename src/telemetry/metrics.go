package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "campaign_pulse"

// -----------------------------------------------------------------------------
// Metrics holds the Prometheus collectors for the real-time layer.
// A nil *Metrics is valid and records nothing.
// -----------------------------------------------------------------------------

type Metrics struct {
	Registry *prometheus.Registry

	HubConnections  prometheus.Gauge
	HubPushes       *prometheus.CounterVec
	HubDropped      prometheus.Counter
	SchedulerTicks  *prometheus.CounterVec
	SnapshotChanges prometheus.Counter
}

// -----------------------------------------------------------------------------

// NewMetrics builds the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HubConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "hub",
			Name:      "connections",
			Help:      "Open websocket connections.",
		}),
		HubPushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hub",
			Name:      "pushes_total",
			Help:      "Events queued to clients, by event name.",
		}, []string{"event"}),
		HubDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hub",
			Name:      "dropped_clients_total",
			Help:      "Clients disconnected because their send buffer was full.",
		}),
		SchedulerTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "ticks_total",
			Help:      "Scheduler timer firings, by timer and state.",
		}, []string{"timer", "state"}),
		SnapshotChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "metrics",
			Name:      "mutations_total",
			Help:      "Mutations applied to the live metric snapshot.",
		}),
	}

	m.Registry.MustRegister(
		m.HubConnections,
		m.HubPushes,
		m.HubDropped,
		m.SchedulerTicks,
		m.SnapshotChanges,
		collectors.NewGoCollector(),
	)
	return m
}

// -----------------------------------------------------------------------------

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// -----------------------------------------------------------------------------

func (m *Metrics) SetConnections(n int) {
	if m == nil {
		return
	}
	m.HubConnections.Set(float64(n))
}

func (m *Metrics) IncPush(event string, recipients int) {
	if m == nil || recipients == 0 {
		return
	}
	m.HubPushes.WithLabelValues(event).Add(float64(recipients))
}

func (m *Metrics) IncDropped() {
	if m == nil {
		return
	}
	m.HubDropped.Inc()
}

func (m *Metrics) IncTick(timer string, active bool) {
	if m == nil {
		return
	}
	state := "idle"
	if active {
		state = "active"
	}
	m.SchedulerTicks.WithLabelValues(timer, state).Inc()
}

func (m *Metrics) IncMutation() {
	if m == nil {
		return
	}
	m.SnapshotChanges.Inc()
}
