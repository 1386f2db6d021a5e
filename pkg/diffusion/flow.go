// Package diffusion implements the Tarski Laplacian and its harmonic flow:
// a fixed-point iteration that drives a vertex assignment down to the
// greatest assignment consistent with every edge's restriction rule. The
// flow step is monotone non-increasing in the lattice order, so on a finite
// lattice it reaches a fixed point in at most height(lattice) iterations per
// vertex (Tarski's fixed-point theorem); the iteration cap is a safety bound
// against malformed configurations, not a runtime timeout.
package diffusion

import (
	"errors"

	"github.com/sheafworks/latticeroute/pkg/sheaf"
)

// ErrNonConvergence reports a harmonic flow that exceeded its iteration
// bound. A correctly constructed finite lattice always converges well under
// the bound, so this indicates a construction bug upstream.
var ErrNonConvergence = errors.New("harmonic flow exceeded iteration bound")

// Result is the outcome of a harmonic flow run.
type Result[V any] struct {
	// Fixed is the final cochain (the fixed point when Converged is true)
	Fixed sheaf.Cochain[V]
	// Iterations is the number of flow steps applied
	Iterations int
	// Converged reports whether consecutive iterates became equal within
	// the iteration bound
	Converged bool
}

// Laplacian evaluates the Tarski Laplacian of a cochain: at each vertex, for
// every incident edge, both endpoint values are pushed into the edge lattice
// through the lower adjoints and met there (enforcing agreement), then the
// agreed value is pulled back through the vertex's own upper adjoint;
// results meet across all incident edges. Isolated vertices map to their
// lattice top, the neutral element for meet.
func Laplacian[V, E any](s *sheaf.Sheaf[V, E], x sheaf.Cochain[V]) sheaf.Cochain[V] {
	g := s.Graph()
	out := make(sheaf.Cochain[V], g.VertexCount())

	for v := 0; v < g.VertexCount(); v++ {
		vl := s.VertexLattice(v)
		acc := vl.Top()

		for _, eid := range g.IncidentEdges(v) {
			edge, _ := g.Edge(eid)
			r := s.Restriction(eid)
			el := s.EdgeLattice(eid)

			agreed := el.Meet(r.Source.Lower(x[edge.Source]), r.Target.Lower(x[edge.Target]))

			// Pull back through the adjoint on this vertex's side; a
			// self-loop attaches on both sides and meets both pullbacks.
			if edge.Source == v {
				acc = vl.Meet(acc, r.Source.Upper(agreed))
			}
			if edge.Target == v {
				acc = vl.Meet(acc, r.Target.Upper(agreed))
			}
		}

		out[v] = acc
	}
	return out
}

// Step applies one harmonic flow step Φ(x) = x ∧ L(x). The result is always
// pointwise at or below x.
func Step[V, E any](s *sheaf.Sheaf[V, E], x sheaf.Cochain[V]) sheaf.Cochain[V] {
	lap := Laplacian(s, x)
	out := make(sheaf.Cochain[V], len(x))
	for v := range x {
		out[v] = s.VertexLattice(v).Meet(x[v], lap[v])
	}
	return out
}

// HarmonicFlow iterates Step from the starting cochain until two consecutive
// iterates agree at every vertex, or the iteration bound is hit. The input
// cochain is not mutated.
func HarmonicFlow[V, E any](s *sheaf.Sheaf[V, E], start sheaf.Cochain[V], maxIterations int) *Result[V] {
	x := start.Clone()
	for i := 0; i < maxIterations; i++ {
		next := Step(s, x)
		if sheaf.EqualCochains(s, next, x) {
			return &Result[V]{Fixed: next, Iterations: i, Converged: true}
		}
		x = next
	}
	// One more comparison so a fixed point reached exactly at the bound
	// still counts as converged.
	next := Step(s, x)
	if sheaf.EqualCochains(s, next, x) {
		return &Result[V]{Fixed: x, Iterations: maxIterations, Converged: true}
	}
	return &Result[V]{Fixed: x, Iterations: maxIterations, Converged: false}
}
