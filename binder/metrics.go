package binder

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// binderMetrics holds the Prometheus metrics of a binder, labelled by the
// binder prefix. A nil *binderMetrics records nothing.
type binderMetrics struct {
	fills           *prometheus.CounterVec   // by form
	extracts        *prometheus.CounterVec   // by form
	invalidExtracts *prometheus.CounterVec   // by form
	configMisses    *prometheus.CounterVec   // by form and kind: processor, renderer, conditional, sort, prefill
	instances       *prometheus.CounterVec   // by form and source: fill, add, insert
	fillDuration    *prometheus.HistogramVec // by form
}

// newBinderMetrics creates the metrics and registers them with reg. Binders
// sharing a registry share the collectors.
func newBinderMetrics(reg prometheus.Registerer) (*binderMetrics, error) {
	if reg == nil {
		return nil, nil // metrics disabled
	}

	m := &binderMetrics{
		fills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formbind",
			Subsystem: "binder",
			Name:      "fills_total",
			Help:      "Total number of records filled into field trees",
		}, []string{"form"}),

		extracts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formbind",
			Subsystem: "binder",
			Name:      "extracts_total",
			Help:      "Total number of records extracted from field trees",
		}, []string{"form"}),

		invalidExtracts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formbind",
			Subsystem: "binder",
			Name:      "invalid_extracts_total",
			Help:      "Total number of extracts that found invalid fields",
		}, []string{"form"}),

		configMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formbind",
			Subsystem: "binder",
			Name:      "config_misses_total",
			Help:      "Total number of references to unregistered processors, renderers or conditionals",
		}, []string{"form", "kind"}),

		instances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formbind",
			Subsystem: "binder",
			Name:      "collection_instances_total",
			Help:      "Total number of collection instances created",
		}, []string{"form", "source"}),

		fillDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "formbind",
			Subsystem: "binder",
			Name:      "fill_duration_seconds",
			Help:      "Duration of filling a record into a field tree",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"form"}),
	}

	var err error

	m.fills, err = register(reg, m.fills)
	if err != nil {
		return nil, err
	}

	m.extracts, err = register(reg, m.extracts)
	if err != nil {
		return nil, err
	}

	m.invalidExtracts, err = register(reg, m.invalidExtracts)
	if err != nil {
		return nil, err
	}

	m.configMisses, err = register(reg, m.configMisses)
	if err != nil {
		return nil, err
	}

	m.instances, err = register(reg, m.instances)
	if err != nil {
		return nil, err
	}

	m.fillDuration, err = register(reg, m.fillDuration)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// register registers c, or returns the collector already registered under
// the same description.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, err
}

func (m *binderMetrics) recordFill(form string, d time.Duration) {
	if m == nil {
		return
	}

	m.fills.WithLabelValues(form).Inc()
	m.fillDuration.WithLabelValues(form).Observe(d.Seconds())
}

func (m *binderMetrics) recordExtract(form string, invalid bool) {
	if m == nil {
		return
	}

	m.extracts.WithLabelValues(form).Inc()

	if invalid {
		m.invalidExtracts.WithLabelValues(form).Inc()
	}
}

func (m *binderMetrics) recordConfigMiss(form, kind string) {
	if m == nil {
		return
	}

	m.configMisses.WithLabelValues(form, kind).Inc()
}

func (m *binderMetrics) recordInstance(form, source string) {
	if m == nil {
		return
	}

	m.instances.WithLabelValues(form, source).Inc()
}
