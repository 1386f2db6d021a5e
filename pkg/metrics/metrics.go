// Package metrics instruments the decision path with Prometheus collectors.
// The engine exposes no scrape endpoint of its own; callers mount the
// underlying registry wherever their boundary serves metrics.
package metrics

import (
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the routing engine
type Registry struct {
	// Decision metrics
	DecisionsTotal    *prometheus.CounterVec
	CoherenceScore    prometheus.Histogram
	RiskAmplification prometheus.Histogram
	ValidateDuration  prometheus.Histogram

	// Obstruction metrics
	ObstructionSeverity  prometheus.Histogram
	ObstructionsPerQuery *prometheus.HistogramVec

	// Diffusion metrics
	DiffusionIterations prometheus.Histogram
	NonConvergenceTotal prometheus.Counter

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all collectors registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.DecisionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "latticeroute_decisions_total",
			Help: "Total routing decisions by outcome",
		},
		[]string{"decision"},
	)

	r.CoherenceScore = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "latticeroute_coherence_score",
			Help:    "Coherence score distribution of validated paths",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	r.RiskAmplification = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "latticeroute_risk_amplification",
			Help:    "Risk amplification multiplier distribution",
			Buckets: []float64{1.0, 1.1, 1.25, 1.5, 2.0, 3.0, 5.0, 10.0},
		},
	)

	r.ValidateDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "latticeroute_validate_duration_seconds",
			Help:    "Path validation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	r.ObstructionSeverity = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "latticeroute_obstruction_severity",
			Help:    "Severity distribution of detected obstructions",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	r.ObstructionsPerQuery = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "latticeroute_obstructions_per_query",
			Help:    "Number of obstructions detected per validation",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		},
		[]string{"kind"},
	)

	r.DiffusionIterations = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "latticeroute_diffusion_iterations",
			Help:    "Harmonic flow iterations to fixed point",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		},
	)

	r.NonConvergenceTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "latticeroute_nonconvergence_total",
			Help: "Harmonic flow runs that exceeded the iteration bound",
		},
	)

	return r
}

// RecordDecision records one completed path validation.
func (r *Registry) RecordDecision(decision string, coherence, riskAmp float64, duration time.Duration) {
	r.DecisionsTotal.WithLabelValues(decision).Inc()
	r.CoherenceScore.Observe(coherence)
	if riskAmp >= 1 && !math.IsInf(riskAmp, 1) {
		r.RiskAmplification.Observe(riskAmp)
	}
	r.ValidateDuration.Observe(duration.Seconds())
}

// RecordObstructions records the obstruction profile of one validation.
func (r *Registry) RecordObstructions(pathCount, neighborhoodCount int, severities []float64) {
	r.ObstructionsPerQuery.WithLabelValues("path").Observe(float64(pathCount))
	r.ObstructionsPerQuery.WithLabelValues("neighborhood").Observe(float64(neighborhoodCount))
	for _, s := range severities {
		r.ObstructionSeverity.Observe(s)
	}
}

// RecordDiffusion records one harmonic flow run.
func (r *Registry) RecordDiffusion(iterations int, converged bool) {
	r.DiffusionIterations.Observe(float64(iterations))
	if !converged {
		r.NonConvergenceTotal.Inc()
	}
}

// Prometheus returns the underlying registry for mounting on a scrape
// boundary.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// Global default registry instance
var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the shared default registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
