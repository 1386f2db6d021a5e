package lattice

import (
	"fmt"
	"math"
)

// BoolLattice is the two-element lattice false < true.
type BoolLattice struct{}

// NewBool creates the boolean lattice.
func NewBool() BoolLattice { return BoolLattice{} }

func (BoolLattice) Top() bool           { return true }
func (BoolLattice) Bottom() bool        { return false }
func (BoolLattice) Meet(a, b bool) bool { return a && b }
func (BoolLattice) Join(a, b bool) bool { return a || b }
func (BoolLattice) Leq(a, b bool) bool  { return !a || b }
func (BoolLattice) Eq(a, b bool) bool   { return a == b }
func (BoolLattice) Elements() []bool    { return []bool{false, true} }
func (BoolLattice) Height() int         { return 2 }

func (BoolLattice) Rank(x bool) int {
	if x {
		return 1
	}
	return 0
}

// RiskLevel is a policy outcome severity. Levels form a chain:
// ALLOW < QUARANTINE < ESCALATE < DENY.
type RiskLevel int

const (
	RiskAllow RiskLevel = iota
	RiskQuarantine
	RiskEscalate
	RiskDeny
)

// String returns the level name.
func (r RiskLevel) String() string {
	switch r {
	case RiskAllow:
		return "ALLOW"
	case RiskQuarantine:
		return "QUARANTINE"
	case RiskEscalate:
		return "ESCALATE"
	case RiskDeny:
		return "DENY"
	default:
		return fmt.Sprintf("RiskLevel(%d)", int(r))
	}
}

// RiskLattice is the four-level linear risk lattice. Bottom is ALLOW (least
// severe), top is DENY (most severe).
type RiskLattice struct{}

// NewRisk creates the risk lattice.
func NewRisk() RiskLattice { return RiskLattice{} }

func (RiskLattice) Top() RiskLevel    { return RiskDeny }
func (RiskLattice) Bottom() RiskLevel { return RiskAllow }

func (RiskLattice) Meet(a, b RiskLevel) RiskLevel {
	if a < b {
		return a
	}
	return b
}

func (RiskLattice) Join(a, b RiskLevel) RiskLevel {
	if a > b {
		return a
	}
	return b
}

func (RiskLattice) Leq(a, b RiskLevel) bool { return a <= b }
func (RiskLattice) Eq(a, b RiskLevel) bool  { return a == b }

func (RiskLattice) Elements() []RiskLevel {
	return []RiskLevel{RiskAllow, RiskQuarantine, RiskEscalate, RiskDeny}
}

func (RiskLattice) Rank(x RiskLevel) int { return clampInt(int(x), 0, 3) }
func (RiskLattice) Height() int          { return 4 }

// Chain is an n-level linear lattice over the integers 0..n-1.
type Chain struct {
	levels int
}

// NewChain creates a linear lattice with the given number of levels.
func NewChain(levels int) (*Chain, error) {
	if levels <= 0 {
		return nil, fmt.Errorf("chain with %d levels: %w", levels, ErrMalformedLattice)
	}
	return &Chain{levels: levels}, nil
}

// Levels returns the number of elements in the chain.
func (c *Chain) Levels() int { return c.levels }

func (c *Chain) Top() int    { return c.levels - 1 }
func (c *Chain) Bottom() int { return 0 }

func (c *Chain) Meet(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (c *Chain) Join(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (c *Chain) Leq(a, b int) bool { return a <= b }
func (c *Chain) Eq(a, b int) bool  { return a == b }

func (c *Chain) Elements() []int {
	out := make([]int, c.levels)
	for i := range out {
		out[i] = i
	}
	return out
}

func (c *Chain) Rank(x int) int { return clampInt(x, 0, c.levels-1) }
func (c *Chain) Height() int    { return c.levels }

// UnitInterval is the discretized unit interval [0, 1] with a fixed number
// of steps: elements are k/steps for k = 0..steps. It carries continuous
// trust scores; arbitrary float inputs are snapped onto the grid.
type UnitInterval struct {
	steps int
}

// NewUnitInterval creates a unit-interval lattice with the given number of
// steps. steps must be positive; a non-positive resolution is a construction
// bug and is never defaulted.
func NewUnitInterval(steps int) (*UnitInterval, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("unit interval with %d steps: %w", steps, ErrMalformedLattice)
	}
	return &UnitInterval{steps: steps}, nil
}

// Steps returns the discretization resolution.
func (u *UnitInterval) Steps() int { return u.steps }

// Quantize snaps a continuous value onto the lattice grid, clamping to [0, 1].
func (u *UnitInterval) Quantize(v float64) float64 {
	return u.value(u.Level(v))
}

// Level returns the grid index of the nearest lattice element to v.
func (u *UnitInterval) Level(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return clampInt(int(math.Round(v*float64(u.steps))), 0, u.steps)
}

func (u *UnitInterval) value(level int) float64 {
	return float64(level) / float64(u.steps)
}

func (u *UnitInterval) Top() float64    { return 1.0 }
func (u *UnitInterval) Bottom() float64 { return 0.0 }

func (u *UnitInterval) Meet(a, b float64) float64 {
	return u.value(minInt(u.Level(a), u.Level(b)))
}

func (u *UnitInterval) Join(a, b float64) float64 {
	return u.value(maxInt(u.Level(a), u.Level(b)))
}

func (u *UnitInterval) Leq(a, b float64) bool { return u.Level(a) <= u.Level(b) }
func (u *UnitInterval) Eq(a, b float64) bool  { return u.Level(a) == u.Level(b) }

func (u *UnitInterval) Elements() []float64 {
	out := make([]float64, u.steps+1)
	for i := range out {
		out[i] = u.value(i)
	}
	return out
}

func (u *UnitInterval) Rank(x float64) int { return u.Level(x) }
func (u *UnitInterval) Height() int        { return u.steps + 1 }

// Pair is an element of a product lattice.
type Pair[A, B any] struct {
	First  A
	Second B
}

// ProductLattice combines two lattices componentwise.
type ProductLattice[A, B any] struct {
	first  Lattice[A]
	second Lattice[B]
}

// NewProduct creates the product of two lattices. Order, meet, and join are
// componentwise.
func NewProduct[A, B any](first Lattice[A], second Lattice[B]) *ProductLattice[A, B] {
	return &ProductLattice[A, B]{first: first, second: second}
}

func (p *ProductLattice[A, B]) Top() Pair[A, B] {
	return Pair[A, B]{First: p.first.Top(), Second: p.second.Top()}
}

func (p *ProductLattice[A, B]) Bottom() Pair[A, B] {
	return Pair[A, B]{First: p.first.Bottom(), Second: p.second.Bottom()}
}

func (p *ProductLattice[A, B]) Meet(a, b Pair[A, B]) Pair[A, B] {
	return Pair[A, B]{First: p.first.Meet(a.First, b.First), Second: p.second.Meet(a.Second, b.Second)}
}

func (p *ProductLattice[A, B]) Join(a, b Pair[A, B]) Pair[A, B] {
	return Pair[A, B]{First: p.first.Join(a.First, b.First), Second: p.second.Join(a.Second, b.Second)}
}

func (p *ProductLattice[A, B]) Leq(a, b Pair[A, B]) bool {
	return p.first.Leq(a.First, b.First) && p.second.Leq(a.Second, b.Second)
}

func (p *ProductLattice[A, B]) Eq(a, b Pair[A, B]) bool {
	return p.first.Eq(a.First, b.First) && p.second.Eq(a.Second, b.Second)
}

func (p *ProductLattice[A, B]) Elements() []Pair[A, B] {
	fs := p.first.Elements()
	ss := p.second.Elements()
	out := make([]Pair[A, B], 0, len(fs)*len(ss))
	for _, f := range fs {
		for _, s := range ss {
			out = append(out, Pair[A, B]{First: f, Second: s})
		}
	}
	return out
}

// Rank sums the component ranks; the longest chain in a product interleaves
// component steps.
func (p *ProductLattice[A, B]) Rank(x Pair[A, B]) int {
	return RankOf(p.first, x.First) + RankOf(p.second, x.Second)
}

func (p *ProductLattice[A, B]) Height() int {
	return HeightOf(p.first) + HeightOf(p.second) - 1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
