package component

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "cfactory"

// Build kinds and failure reasons used as label values.
const (
	buildNamed     = "named"
	buildAnonymous = "anonymous"
	buildPrebuilt  = "prebuilt"

	failureNotFound    = "not_found"
	failureEnvironment = "environment"
	failureBuild       = "build"
)

type factoryMetrics struct {
	cacheHits prometheus.Counter
	builds    *prometheus.CounterVec
	failures  *prometheus.CounterVec
	instances prometheus.Counter
}

// newFactoryMetrics creates the factory collectors and registers them on reg
// when reg is non-nil. Collectors already registered by another factory on the
// same registerer are shared.
func newFactoryMetrics(reg prometheus.Registerer) *factoryMetrics {
	m := &factoryMetrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "class_cache_hits_total",
			Help:      "Named class lookups served from the class cache.",
		}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "class_builds_total",
			Help:      "Classes built by the resolver, by kind.",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "resolution_failures_total",
			Help:      "Top-level resolutions that failed, by reason.",
		}, []string{"reason"}),
		instances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "instances_created_total",
			Help:      "Instances created through CreateInstance.",
		}),
	}
	if reg == nil {
		return m
	}

	m.cacheHits = register(reg, m.cacheHits)
	m.builds = register(reg, m.builds)
	m.failures = register(reg, m.failures)
	m.instances = register(reg, m.instances)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return failureNotFound
	case errors.Is(err, ErrEnvironmentInvalid):
		return failureEnvironment
	default:
		return failureBuild
	}
}
