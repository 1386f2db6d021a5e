// Package sheaf binds lattices and Galois connections to a graph: every
// vertex and edge carries a lattice, and each (vertex, incident-edge) pair
// carries a restriction map constraining how adjacent values must agree.
// Sheaves are immutable once built and safe to share across concurrent
// queries.
package sheaf

import (
	"github.com/sheafworks/latticeroute/pkg/graph"
	"github.com/sheafworks/latticeroute/pkg/lattice"
)

// Restriction is the pair of Galois connections attached to one edge: one
// for the source endpoint, one for the target endpoint.
type Restriction[V, E any] struct {
	Source lattice.GaloisConnection[V, E]
	Target lattice.GaloisConnection[V, E]
}

// Sheaf assigns a lattice to every vertex and edge of a graph, plus a
// restriction per edge. V is the vertex element type, E the edge element
// type.
type Sheaf[V, E any] struct {
	g            *graph.Graph
	vertexLats   []lattice.Lattice[V]
	edgeLats     []lattice.Lattice[E]
	restrictions []Restriction[V, E]
}

// New builds a sheaf from explicit per-cell lattices and per-edge
// restrictions. Slice lengths must match the graph exactly.
func New[V, E any](
	g *graph.Graph,
	vertexLats []lattice.Lattice[V],
	edgeLats []lattice.Lattice[E],
	restrictions []Restriction[V, E],
) (*Sheaf[V, E], error) {
	if len(vertexLats) != g.VertexCount() {
		return nil, newError("New", "vertex", -1, ErrLatticeCount)
	}
	if len(edgeLats) != g.EdgeCount() {
		return nil, newError("New", "edge", -1, ErrLatticeCount)
	}
	if len(restrictions) != g.EdgeCount() {
		return nil, newError("New", "edge", -1, ErrRestrictionCount)
	}
	for i, l := range vertexLats {
		if l == nil {
			return nil, newError("New", "vertex", i, ErrNilLattice)
		}
	}
	for i, l := range edgeLats {
		if l == nil {
			return nil, newError("New", "edge", i, ErrNilLattice)
		}
	}
	for i, r := range restrictions {
		if r.Source == nil || r.Target == nil {
			return nil, newError("New", "edge", i, ErrNilRestriction)
		}
	}
	return &Sheaf[V, E]{
		g:            g,
		vertexLats:   vertexLats,
		edgeLats:     edgeLats,
		restrictions: restrictions,
	}, nil
}

// Constant builds the degenerate sheaf where every cell carries the same
// lattice and every restriction is the identity. Any cochain that agrees
// across edges is already a global section of it; used for sanity testing.
func Constant[T any](g *graph.Graph, l lattice.Lattice[T]) (*Sheaf[T, T], error) {
	vertexLats := make([]lattice.Lattice[T], g.VertexCount())
	for i := range vertexLats {
		vertexLats[i] = l
	}
	edgeLats := make([]lattice.Lattice[T], g.EdgeCount())
	restrictions := make([]Restriction[T, T], g.EdgeCount())
	id := lattice.NewIdentity[T]()
	for i := range edgeLats {
		edgeLats[i] = l
		restrictions[i] = Restriction[T, T]{Source: id, Target: id}
	}
	return New[T, T](g, vertexLats, edgeLats, restrictions)
}

// Trust builds the weighted trust sheaf: every cell carries the same
// discretized unit-interval lattice and each edge's restriction is a scaling
// connection parameterized by that edge's trust-decay weight, so low-weight
// edges structurally pass less information through.
func Trust(g *graph.Graph, unit *lattice.UnitInterval, edgeWeights []float64) (*Sheaf[float64, float64], error) {
	if len(edgeWeights) != g.EdgeCount() {
		return nil, newError("Trust", "edge", -1, ErrWeightCount)
	}
	vertexLats := make([]lattice.Lattice[float64], g.VertexCount())
	for i := range vertexLats {
		vertexLats[i] = unit
	}
	edgeLats := make([]lattice.Lattice[float64], g.EdgeCount())
	restrictions := make([]Restriction[float64, float64], g.EdgeCount())
	for i, w := range edgeWeights {
		sc, err := lattice.NewScaling(unit, w)
		if err != nil {
			return nil, newError("Trust", "edge", i, err)
		}
		edgeLats[i] = unit
		// Both endpoints decay symmetrically through the same weight
		restrictions[i] = Restriction[float64, float64]{Source: sc, Target: sc}
	}
	return New[float64, float64](g, vertexLats, edgeLats, restrictions)
}

// Graph returns the underlying cell complex.
func (s *Sheaf[V, E]) Graph() *graph.Graph { return s.g }

// VertexLattice returns the lattice assigned to a vertex.
func (s *Sheaf[V, E]) VertexLattice(id int) lattice.Lattice[V] { return s.vertexLats[id] }

// EdgeLattice returns the lattice assigned to an edge.
func (s *Sheaf[V, E]) EdgeLattice(id int) lattice.Lattice[E] { return s.edgeLats[id] }

// Restriction returns the Galois connections attached to an edge.
func (s *Sheaf[V, E]) Restriction(id int) Restriction[V, E] { return s.restrictions[id] }
