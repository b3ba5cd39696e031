package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine counters.
// Counters are operational only; they carry no per-node or per-reader labels.
type Metrics struct {
	registry *prometheus.Registry

	SessionsStarted  prometheus.Counter
	SessionsFinished prometheus.Counter
	NodesEntered     prometheus.Counter
	Choices          prometheus.Counter
	ActiveSessions   prometheus.Gauge
}

// NewMetrics creates the counters and registers them on reg.
// A nil reg gets a fresh registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: reg,
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storybuilder_sessions_started_total",
			Help: "Total number of reading sessions started",
		}),
		SessionsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storybuilder_sessions_finished_total",
			Help: "Total number of reading sessions that reached an ending",
		}),
		NodesEntered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storybuilder_node_enters_total",
			Help: "Total number of nodes entered across all sessions",
		}),
		Choices: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storybuilder_choices_total",
			Help: "Total number of choices taken",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storybuilder_sessions_active",
			Help: "Sessions started and not yet finished by this process",
		}),
	}
	reg.MustRegister(m.SessionsStarted, m.SessionsFinished, m.NodesEntered, m.Choices, m.ActiveSessions)
	return m
}

// Registry returns the registry the counters live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that update the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSessionStart: func(ctx context.Context, e *domain.NodeEvent) {
			m.SessionsStarted.Inc()
			m.ActiveSessions.Inc()
		},
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			m.NodesEntered.Inc()
		},
		OnChoice: func(ctx context.Context, e *domain.ChoiceEvent) {
			m.Choices.Inc()
		},
		OnSessionFinish: func(ctx context.Context, e *domain.NodeEvent) {
			m.SessionsFinished.Inc()
			m.ActiveSessions.Dec()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
