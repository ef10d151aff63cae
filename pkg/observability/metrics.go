package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Discovery metrics
	DiscoveryTotal    *prometheus.CounterVec
	DiscoveredPlugins *prometheus.GaugeVec

	// Pipeline metrics
	RunsTotal               *prometheus.CounterVec
	RunDuration             *prometheus.HistogramVec
	InstancesProcessedTotal *prometheus.CounterVec
	InstanceFailuresTotal   *prometheus.CounterVec

	// Context metrics
	InstancesInContext prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,

		DiscoveryTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "publish_discovery_total",
				Help: "Total number of plugin discovery calls",
			},
			[]string{"stage"},
		),
		DiscoveredPlugins: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "publish_discovered_plugins",
				Help: "Number of plugins found by the most recent discovery per stage",
			},
			[]string{"stage"},
		),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "publish_runs_total",
				Help: "Total number of pipeline runs by result",
			},
			[]string{"result"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "publish_run_duration_seconds",
				Help:    "Duration of pipeline runs",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		InstancesProcessedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "publish_instances_processed_total",
				Help: "Total per-instance outcomes by stage and result",
			},
			[]string{"stage", "result"},
		),
		InstanceFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "publish_instance_failures_total",
				Help: "Total per-instance failures by stage and plugin",
			},
			[]string{"stage", "plugin"},
		),
		InstancesInContext: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "publish_instances_in_context",
				Help: "Number of instances in the most recent run's context",
			},
		),
	}

	registry.MustRegister(
		m.DiscoveryTotal,
		m.DiscoveredPlugins,
		m.RunsTotal,
		m.RunDuration,
		m.InstancesProcessedTotal,
		m.InstanceFailuresTotal,
		m.InstancesInContext,
	)

	return m
}

// Handler returns an HTTP handler exposing the metrics registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
