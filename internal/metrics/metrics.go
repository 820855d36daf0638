// Package metrics holds the Prometheus collectors of the deployment
// processor. All observation methods are safe to call on a nil *Metrics,
// which disables collection.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "timerwire"

// Failure reasons reported by the installer.
const (
	ReasonDuplicate         = "duplicate"
	ReasonMissingDependency = "missing_dependency"
	ReasonCycle             = "cycle"
	ReasonStart             = "start"
	ReasonCanceled          = "canceled"
)

// Metrics contains the collectors and the registry they are registered with.
type Metrics struct {
	NodesInstalled   *prometheus.CounterVec
	InstallFailures  *prometheus.CounterVec
	InstallDuration  prometheus.Histogram
	DeploymentsTotal *prometheus.CounterVec
	ProviderSelected *prometheus.GaugeVec
	registry         *prometheus.Registry
}

// New creates the collectors and registers them with a fresh registry.
func New() *Metrics {
	m := &Metrics{
		NodesInstalled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "installer",
				Name:      "nodes_installed_total",
				Help:      "Total number of timer-service factory nodes installed",
			},
			[]string{"kind"},
		),
		InstallFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "installer",
				Name:      "failures_total",
				Help:      "Total number of rejected or rolled back install calls",
			},
			[]string{"reason"}, // duplicate, missing_dependency, cycle, start, canceled
		),
		InstallDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "installer",
				Name:      "duration_seconds",
				Help:      "Duration of install calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		DeploymentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "processor",
				Name:      "deployments_total",
				Help:      "Total number of deployment units processed",
			},
			[]string{"status"}, // ok, failed
		),
		ProviderSelected: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "processor",
				Name:      "distributable_provider",
				Help:      "1 for the selected distributable timer provider, legacy when none is registered",
			},
			[]string{"provider"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.NodesInstalled,
		m.InstallFailures,
		m.InstallDuration,
		m.DeploymentsTotal,
		m.ProviderSelected,
	)
	return m
}

// Registry returns the registry the collectors are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// NodeInstalled counts one started node of the given kind.
func (m *Metrics) NodeInstalled(kind string) {
	if m == nil {
		return
	}
	m.NodesInstalled.WithLabelValues(kind).Inc()
}

// InstallFailed counts one failed install call.
func (m *Metrics) InstallFailed(reason string) {
	if m == nil {
		return
	}
	m.InstallFailures.WithLabelValues(reason).Inc()
}

// ObserveInstall records the duration of an install call.
func (m *Metrics) ObserveInstall(d time.Duration) {
	if m == nil {
		return
	}
	m.InstallDuration.Observe(d.Seconds())
}

// DeploymentProcessed counts one processed unit.
func (m *Metrics) DeploymentProcessed(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "failed"
	}
	m.DeploymentsTotal.WithLabelValues(status).Inc()
}

// SetProvider records the selected provider. An empty name records legacy mode.
func (m *Metrics) SetProvider(name string) {
	if m == nil {
		return
	}
	if name == "" {
		name = "legacy"
	}
	m.ProviderSelected.Reset()
	m.ProviderSelected.WithLabelValues(name).Set(1)
}
