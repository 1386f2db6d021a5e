package lattice

import "fmt"

// GaloisConnection is an adjoint pair of monotone maps between two lattices
// satisfying Lower(s) ≤ t ⟺ s ≤ Upper(t). Used as an edge restriction rule:
// Lower pushes a vertex value into the edge lattice, Upper pulls an edge
// value back to the vertex lattice.
type GaloisConnection[S, T any] interface {
	// Lower maps a source element forward (left adjoint)
	Lower(s S) T
	// Upper maps a target element back (right adjoint)
	Upper(t T) S
}

type identity[T any] struct{}

func (identity[T]) Lower(s T) T { return s }
func (identity[T]) Upper(t T) T { return t }

// NewIdentity creates the identity connection, the default restriction when
// no rule is configured.
func NewIdentity[T any]() GaloisConnection[T, T] {
	return identity[T]{}
}

// LevelShift escalates a chain by k levels on the way forward, saturating at
// top, and is its exact right adjoint on the way back. Bottom stays fixed: a
// lower adjoint must preserve bottom, and semantically a zero level carries
// nothing to escalate. The naive t-k pullback is wrong at both ends of the
// chain, so Upper is derived from Lower instead.
type LevelShift struct {
	chain *Chain
	k     int
}

// NewLevelShift creates a shift-by-k connection on a chain. k must be
// non-negative.
func NewLevelShift(chain *Chain, k int) (*LevelShift, error) {
	if k < 0 {
		return nil, fmt.Errorf("level shift %d: %w", k, ErrBadShift)
	}
	return &LevelShift{chain: chain, k: k}, nil
}

// lowerOf maps one level forward: bottom is fixed, everything above shifts
// up by k and saturates at top.
func (ls *LevelShift) lowerOf(s int) int {
	if s <= 0 {
		return 0
	}
	return minInt(s+ls.k, ls.chain.Top())
}

func (ls *LevelShift) Lower(s int) int {
	return ls.lowerOf(s)
}

// Upper returns the greatest s with Lower(s) ≤ t, scanned on the chain with
// the same saturation as Lower, which makes the adjunction exact by
// construction.
func (ls *LevelShift) Upper(t int) int {
	for s := ls.chain.Top(); s > 0; s-- {
		if ls.lowerOf(s) <= t {
			return s
		}
	}
	return 0
}

// Scaling is a trust-decay connection on a discretized unit interval: Lower
// multiplies by a weight w ∈ (0, 1] (rounding down to the grid), so a low
// weight structurally limits how much trust passes through the edge. Upper
// is derived from Lower so the adjunction holds exactly on the grid rather
// than approximately in float arithmetic.
type Scaling struct {
	unit   *UnitInterval
	weight float64
}

// NewScaling creates a scaling connection with the given weight on the given
// unit-interval lattice.
func NewScaling(unit *UnitInterval, weight float64) (*Scaling, error) {
	if weight <= 0 || weight > 1 {
		return nil, fmt.Errorf("scaling weight %g: %w", weight, ErrBadWeight)
	}
	return &Scaling{unit: unit, weight: weight}, nil
}

// Weight returns the trust-decay factor.
func (sc *Scaling) Weight() float64 { return sc.weight }

// lowerLevel maps a grid level forward: floor(i·w) on the grid.
func (sc *Scaling) lowerLevel(i int) int {
	scaled := int(float64(i) * sc.weight)
	return clampInt(scaled, 0, sc.unit.steps)
}

func (sc *Scaling) Lower(s float64) float64 {
	return sc.unit.value(sc.lowerLevel(sc.unit.Level(s)))
}

// Upper returns the greatest element whose image under Lower stays at or
// below t. Computed by scanning the grid with the same rounding as Lower,
// which makes the adjunction exact by construction.
func (sc *Scaling) Upper(t float64) float64 {
	j := sc.unit.Level(t)
	for i := sc.unit.steps; i > 0; i-- {
		if sc.lowerLevel(i) <= j {
			return sc.unit.value(i)
		}
	}
	return 0.0
}
