package sheaf

// Cochain is a total assignment of one lattice element per vertex, indexed
// by vertex id. Cochains are per-query scratch state: cheap to copy, never
// shared between concurrent calls.
type Cochain[V any] []V

// TopCochain assigns every vertex its lattice top ("no information yet").
func TopCochain[V, E any](s *Sheaf[V, E]) Cochain[V] {
	x := make(Cochain[V], s.g.VertexCount())
	for i := range x {
		x[i] = s.vertexLats[i].Top()
	}
	return x
}

// BottomCochain assigns every vertex its lattice bottom.
func BottomCochain[V, E any](s *Sheaf[V, E]) Cochain[V] {
	x := make(Cochain[V], s.g.VertexCount())
	for i := range x {
		x[i] = s.vertexLats[i].Bottom()
	}
	return x
}

// CochainFromMap builds a cochain from a sparse assignment. Vertices absent
// from the map default to their lattice bottom.
func CochainFromMap[V, E any](s *Sheaf[V, E], values map[int]V) Cochain[V] {
	x := BottomCochain(s)
	for id, v := range values {
		if id >= 0 && id < len(x) {
			x[id] = v
		}
	}
	return x
}

// Clone returns an independent copy.
func (c Cochain[V]) Clone() Cochain[V] {
	out := make(Cochain[V], len(c))
	copy(out, c)
	return out
}

// EqualCochains reports whether two cochains agree at every vertex under the
// sheaf's per-vertex equality.
func EqualCochains[V, E any](s *Sheaf[V, E], a, b Cochain[V]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !s.vertexLats[i].Eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

// LeqCochains reports whether a ≤ b pointwise in each vertex's lattice.
func LeqCochains[V, E any](s *Sheaf[V, E], a, b Cochain[V]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !s.vertexLats[i].Leq(a[i], b[i]) {
			return false
		}
	}
	return true
}
