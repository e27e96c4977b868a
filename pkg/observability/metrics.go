package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/yannn/strictdata/pkg/domain"
)

// Metrics holds the collectors fed by engine hooks.
type Metrics struct {
	Accesses       *prometheus.CounterVec
	SchemaBuilds   *prometheus.CounterVec
	BuildDuration  *prometheus.HistogramVec
	EnumResolution *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Accesses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "property_access_total",
				Help:      "Property reads and writes by class, operation and outcome",
			},
			[]string{"class", "operation", "outcome"},
		),
		SchemaBuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "schema_builds_total",
				Help:      "Class schemas built, by outcome",
			},
			[]string{"class", "outcome"},
		),
		BuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "schema_build_duration_seconds",
				Help:      "Time spent parsing and compiling class schemas",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"class"},
		),
		EnumResolution: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "enum_resolutions_total",
				Help:      "Enum value sets resolved, by provider and outcome",
			},
			[]string{"class", "provider", "outcome"},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Accesses, m.SchemaBuilds, m.BuildDuration, m.EnumResolution} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Hooks returns the hook set that records into m.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnAccess: func(e *domain.AccessEvent) {
			m.Accesses.WithLabelValues(e.Class, string(e.Operation), e.Outcome()).Inc()
		},
		OnSchemaBuilt: func(e *domain.SchemaEvent) {
			m.SchemaBuilds.WithLabelValues(e.Class, outcome(e.Err)).Inc()
			m.BuildDuration.WithLabelValues(e.Class).Observe(e.Duration.Seconds())
		},
		OnEnumResolve: func(e *domain.EnumEvent) {
			provider := e.Provider
			if provider == "" {
				provider = "literal"
			}
			m.EnumResolution.WithLabelValues(e.Class, provider, outcome(e.Err)).Inc()
		},
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if kind, ok := domain.KindOf(err); ok {
		return string(kind)
	}
	return "error"
}
