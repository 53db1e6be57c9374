// Package metrics exposes Prometheus counters for generation runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeInvalid = "invalid"
)

// Metrics holds the collectors of one registry. A nil *Metrics records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	generations     *prometheus.CounterVec
	regenerations   *prometheus.CounterVec
	qualityFailures *prometheus.CounterVec
	complianceScore prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groepsplan_generations_total",
				Help: "Total number of generation runs by prompt variant and outcome",
			},
			[]string{"variant", "outcome"},
		),
		regenerations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groepsplan_regenerations_total",
				Help: "Total number of corrective regenerations by reason",
			},
			[]string{"reason"},
		),
		qualityFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groepsplan_quality_failures_total",
				Help: "Total number of failed quality checks by check name",
			},
			[]string{"check"},
		),
		complianceScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "groepsplan_compliance_score",
			Help:    "Overall compliance score of generated documents",
			Buckets: prometheus.LinearBuckets(4, 1, 7), // 4..10
		}),
	}
	m.registry.MustRegister(
		m.generations,
		m.regenerations,
		m.qualityFailures,
		m.complianceScore,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveGeneration counts a finished run.
func (m *Metrics) ObserveGeneration(variant, outcome string) {
	if m == nil {
		return
	}
	if variant == "" {
		variant = "none"
	}
	m.generations.WithLabelValues(variant, outcome).Inc()
}

// ObserveRegeneration counts a corrective retry.
func (m *Metrics) ObserveRegeneration(reason string) {
	if m == nil {
		return
	}
	m.regenerations.WithLabelValues(reason).Inc()
}

// ObserveQualityFailures counts each failed check.
func (m *Metrics) ObserveQualityFailures(checks []string) {
	if m == nil {
		return
	}
	for _, c := range checks {
		m.qualityFailures.WithLabelValues(c).Inc()
	}
}

// ObserveComplianceScore records the overall compliance score of a document.
func (m *Metrics) ObserveComplianceScore(score int) {
	if m == nil {
		return
	}
	m.complianceScore.Observe(float64(score))
}
