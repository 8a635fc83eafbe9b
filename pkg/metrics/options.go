package metrics

import (
	"maps"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager.
type Option func(*Manager)

// All latencies are observed in milliseconds; the default buckets run from
// 1ms to roughly 16s.
var defaultLatencyBuckets = prometheus.ExponentialBuckets(1, 2, 15) //nolint:gochecknoglobals // read-only defaults

// WithNamespace sets the first segment of every metric name. Empty keeps
// "mvdstats".
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem sets the second segment of every metric name.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithLatencyBuckets replaces the millisecond buckets of the latency
// histograms. Buckets that are not strictly increasing are ignored.
func WithLatencyBuckets(buckets ...float64) Option {
	return func(m *Manager) {
		if len(buckets) == 0 {
			return
		}
		for i := 1; i < len(buckets); i++ {
			if buckets[i] <= buckets[i-1] {
				return
			}
		}
		m.latencyBuckets = append([]float64(nil), buckets...)
	}
}

// WithConstLabels attaches fixed labels, such as an instance name, to every
// metric.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(m *Manager) {
		if len(labels) > 0 {
			m.constLabels = maps.Clone(labels)
		}
	}
}

// WithDisabled turns the package level Record and Update helpers into no-ops.
func WithDisabled() Option {
	return func(m *Manager) {
		m.enabled = false
	}
}

// WithRegistry registers the metrics on registry instead of the default
// registerer.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
