// Package router is the top-level consumer of the sheaf engine: it validates
// candidate paths through the weighted trust graph and emits ALLOW,
// QUARANTINE, or DENY decisions with full diagnostics. Every detectable
// anomaly resolves to DENY or a construction error, never to a default
// ALLOW.
package router

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/sheafworks/latticeroute/pkg/builder"
	"github.com/sheafworks/latticeroute/pkg/consensus"
	"github.com/sheafworks/latticeroute/pkg/diffusion"
	"github.com/sheafworks/latticeroute/pkg/lattice"
	"github.com/sheafworks/latticeroute/pkg/logging"
	"github.com/sheafworks/latticeroute/pkg/metrics"
	"github.com/sheafworks/latticeroute/pkg/registry"
	"github.com/sheafworks/latticeroute/pkg/sheaf"
)

// Decision is a routing outcome.
type Decision string

const (
	DecisionAllow      Decision = "ALLOW"
	DecisionQuarantine Decision = "QUARANTINE"
	DecisionDeny       Decision = "DENY"
)

// severityFloor is the minimum obstruction severity that feeds risk
// amplification.
const severityFloor = 0.3

// neighborhoodWeight discounts obstructions that touch a path vertex without
// lying on a traversed edge.
const neighborhoodWeight = 0.3

// RoutingResult is the full outcome of one path validation.
type RoutingResult struct {
	// ID correlates this decision with downstream audit artifacts
	ID string
	// Decision is the routing outcome
	Decision Decision
	// CoherenceScore is 1 minus the mean severity of path-edge
	// obstructions, in [0, 1]
	CoherenceScore float64
	// Obstructions lists every disagreement detected on or around the path
	Obstructions []consensus.Obstruction
	// FixedPoint is the harmonic flow fixed point of the supplied trust
	// assignment over the full graph (nil for vacuous or structurally
	// invalid paths)
	FixedPoint sheaf.Cochain[float64]
	// Path echoes the validated path
	Path []int
	// PathValid reports whether every consecutive pair is a graph edge
	PathValid bool
	// RiskAmplification is the compounding multiplier derived from severe
	// obstructions; +Inf for out-of-range path elements
	RiskAmplification float64
}

// Router validates paths against a weighted trust graph. Immutable after
// construction and safe for concurrent use; each call works on its own
// cochain and result.
type Router struct {
	cfg     Config
	built   *builder.Graph
	unit    *lattice.UnitInterval
	trust   *sheaf.Sheaf[float64, float64]
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Router.
type Option func(*Router)

// WithLogger replaces the default stdout JSON logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// WithMetrics attaches a metrics registry to the decision path.
func WithMetrics(m *metrics.Registry) Option {
	return func(r *Router) { r.metrics = m }
}

// New builds a router from a node registry, family configuration, and
// decision parameters. Construction failures (malformed lattice, unknown
// families, invalid thresholds) are returned, never defaulted away.
func New(reg *registry.Registry, familyCfg builder.Config, cfg Config, opts ...Option) (*Router, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	unit, err := lattice.NewUnitInterval(cfg.LatticeSteps)
	if err != nil {
		return nil, err
	}

	built, err := builder.Build(reg, familyCfg)
	if err != nil {
		return nil, err
	}

	trust, err := sheaf.Trust(built.Complex, unit, built.Weights())
	if err != nil {
		return nil, err
	}

	r := &Router{
		cfg:     cfg,
		built:   built,
		unit:    unit,
		trust:   trust,
		logger:  logging.NewDefaultLogger(),
		metrics: nil,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logging.String("component", "router"))
	return r, nil
}

// Graph returns the underlying weighted graph.
func (r *Router) Graph() *builder.Graph { return r.built }

// Config returns the decision parameters.
func (r *Router) Config() Config { return r.cfg }

// GlobalSections returns the sheaf's intrinsic consensus assignment,
// derived from the restriction structure alone.
func (r *Router) GlobalSections() (sheaf.Cochain[float64], error) {
	return consensus.GlobalSections(r.trust, r.cfg.MaxIterations)
}

// ValidatePath decides whether a candidate path through the trust graph is
// globally consistent enough to traverse. trustOverrides maps node id to an
// initial trust value; absent nodes default to the lattice bottom. The only
// error case is diffusion non-convergence, which indicates a construction
// bug rather than a property of the path.
func (r *Router) ValidatePath(path []int, trustOverrides map[int]float64) (*RoutingResult, error) {
	start := time.Now()
	res := &RoutingResult{
		ID:                uuid.New().String(),
		Path:              path,
		PathValid:         true,
		RiskAmplification: 1.0,
	}

	// Vacuous path: nothing to traverse, nothing to disagree about
	if len(path) == 0 {
		res.Decision = DecisionAllow
		res.CoherenceScore = 1.0
		r.finish(res, 0, start)
		return res, nil
	}

	// Out-of-range elements are fatal to the call: fail closed immediately
	g := r.built.Complex
	for _, id := range path {
		if !g.HasVertex(id) {
			res.Decision = DecisionDeny
			res.CoherenceScore = 0
			res.PathValid = false
			res.RiskAmplification = math.Inf(1)
			res.Obstructions = []consensus.Obstruction{{
				EdgeID:       -1,
				SourceVertex: id,
				TargetVertex: id,
				Severity:     1.0,
				Reason:       fmt.Sprintf("path element %d references no known node", id),
			}}
			r.finish(res, 0, start)
			return res, nil
		}
	}

	// Connectivity: every consecutive pair must be an existing edge
	pathEdges := make(map[int]bool)
	for i := 0; i+1 < len(path); i++ {
		eid, ok := g.EdgeBetween(path[i], path[i+1])
		if !ok {
			res.PathValid = false
			continue
		}
		pathEdges[eid] = true
	}

	pathVertices := make(map[int]bool, len(path))
	for _, id := range path {
		pathVertices[id] = true
	}

	// The sheaf spans the entire graph, not just the path: neighborhood
	// disagreement is part of the risk picture even though it never
	// affects coherence directly.
	assignment := r.assignment(trustOverrides)
	all := consensus.DetectObstructions(r.trust, assignment)

	var pathObs, neighborhoodObs []consensus.Obstruction
	for _, o := range all {
		switch {
		case pathEdges[o.EdgeID]:
			pathObs = append(pathObs, o)
		case pathVertices[o.SourceVertex] || pathVertices[o.TargetVertex]:
			neighborhoodObs = append(neighborhoodObs, o)
		}
	}
	res.Obstructions = append(pathObs, neighborhoodObs...)

	res.CoherenceScore = coherence(pathObs)
	res.RiskAmplification = r.amplification(pathObs, neighborhoodObs)

	flow := diffusion.HarmonicFlow(r.trust, assignment, r.cfg.MaxIterations)
	if r.metrics != nil {
		r.metrics.RecordDiffusion(flow.Iterations, flow.Converged)
	}
	if !flow.Converged {
		r.logger.Error("harmonic flow exceeded iteration bound",
			logging.DecisionID(res.ID),
			logging.Iterations(flow.Iterations),
		)
		return nil, fmt.Errorf("validate path after %d iterations: %w", flow.Iterations, diffusion.ErrNonConvergence)
	}
	res.FixedPoint = flow.Fixed

	switch {
	case !res.PathValid:
		res.Decision = DecisionDeny
	case res.CoherenceScore >= r.cfg.AllowThreshold:
		res.Decision = DecisionAllow
	case res.CoherenceScore >= r.cfg.QuarantineThreshold:
		res.Decision = DecisionQuarantine
	default:
		res.Decision = DecisionDeny
	}

	if r.metrics != nil {
		severities := make([]float64, 0, len(res.Obstructions))
		for _, o := range res.Obstructions {
			severities = append(severities, o.Severity)
		}
		r.metrics.RecordObstructions(len(pathObs), len(neighborhoodObs), severities)
	}
	r.finish(res, flow.Iterations, start)
	return res, nil
}

// assignment builds the full-graph trust cochain: caller overrides where
// supplied, lattice bottom everywhere else.
func (r *Router) assignment(trustOverrides map[int]float64) sheaf.Cochain[float64] {
	quantized := make(map[int]float64, len(trustOverrides))
	for id, v := range trustOverrides {
		quantized[id] = r.unit.Quantize(v)
	}
	return sheaf.CochainFromMap(r.trust, quantized)
}

// coherence is 1 minus the mean severity of path-edge obstructions. An
// unobstructed path scores 1; the guard denominator only matters when the
// sum is already zero.
func coherence(pathObs []consensus.Obstruction) float64 {
	var sum float64
	for _, o := range pathObs {
		sum += o.Severity
	}
	n := len(pathObs)
	if n < 1 {
		n = 1
	}
	score := 1.0 - sum/float64(n)
	if score < 0 {
		return 0
	}
	return score
}

// amplification compounds severe obstructions multiplicatively:
// coupling^Σ(w·severity²) over obstructions at or above the severity floor,
// with neighborhood obstructions discounted. Returns exactly 1 when nothing
// qualifies.
func (r *Router) amplification(pathObs, neighborhoodObs []consensus.Obstruction) float64 {
	var exponent float64
	for _, o := range pathObs {
		if o.Severity >= severityFloor {
			exponent += o.Severity * o.Severity
		}
	}
	for _, o := range neighborhoodObs {
		if o.Severity >= severityFloor {
			exponent += neighborhoodWeight * o.Severity * o.Severity
		}
	}
	if exponent == 0 {
		return 1.0
	}
	return math.Pow(r.cfg.HarmonicCoupling, exponent)
}

func (r *Router) finish(res *RoutingResult, iterations int, start time.Time) {
	elapsed := time.Since(start)
	fields := []logging.Field{
		logging.DecisionID(res.ID),
		logging.Decision(string(res.Decision)),
		logging.Coherence(res.CoherenceScore),
		logging.PathLength(len(res.Path)),
		logging.Obstructions(len(res.Obstructions)),
		logging.Iterations(iterations),
		logging.Bool("path_valid", res.PathValid),
		logging.Duration("elapsed", elapsed),
	}
	if res.Decision == DecisionDeny {
		r.logger.Warn("path denied", fields...)
	} else {
		r.logger.Info("path decision", fields...)
	}
	if r.metrics != nil {
		r.metrics.RecordDecision(string(res.Decision), res.CoherenceScore, res.RiskAmplification, elapsed)
	}
}
