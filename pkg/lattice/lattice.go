package lattice

import "errors"

// Common construction errors
var (
	ErrMalformedLattice = errors.New("malformed lattice")
	ErrBadWeight        = errors.New("edge weight outside (0, 1]")
	ErrBadShift         = errors.New("negative level shift")
)

// Lattice is a finite complete lattice over element type T: a partial order
// closed under meet and join with a unique top and bottom and an enumerable
// element set. Meet/join are assumed idempotent, commutative, and associative
// by construction; implementations are not runtime-verified.
type Lattice[T any] interface {
	// Top returns the greatest element (neutral for meet)
	Top() T
	// Bottom returns the least element (neutral for join)
	Bottom() T
	// Meet returns the greatest lower bound of a and b
	Meet(a, b T) T
	// Join returns the least upper bound of a and b
	Join(a, b T) T
	// Leq reports whether a is less than or equal to b in the lattice order
	Leq(a, b T) bool
	// Eq reports whether a and b are the same element
	Eq(a, b T) bool
	// Elements enumerates every element of the lattice
	Elements() []T
}

// Ranked is an optional fast path for lattices that know each element's
// chain rank directly. RankOf and HeightOf use it when available and fall
// back to a longest-chain computation otherwise.
type Ranked[T any] interface {
	// Rank returns the length of the longest chain from bottom to x
	Rank(x T) int
	// Height returns the number of levels in the longest bottom-to-top chain
	Height() int
}

// RankOf returns the length of the longest strictly ascending chain from the
// lattice bottom to x. Bottom has rank 0.
func RankOf[T any](l Lattice[T], x T) int {
	if r, ok := l.(Ranked[T]); ok {
		return r.Rank(x)
	}
	elems := l.Elements()
	ranks := longestChainRanks(l, elems)
	for i, e := range elems {
		if l.Eq(e, x) {
			return ranks[i]
		}
	}
	return 0
}

// HeightOf returns the number of levels in the longest bottom-to-top chain.
// A one-element lattice has height 1.
func HeightOf[T any](l Lattice[T]) int {
	if r, ok := l.(Ranked[T]); ok {
		return r.Height()
	}
	return RankOf(l, l.Top()) + 1
}

// longestChainRanks computes, for every enumerated element, the length of
// the longest chain reaching it from below. Quadratic passes until stable;
// fine for the small lattices this engine works with.
func longestChainRanks[T any](l Lattice[T], elems []T) []int {
	ranks := make([]int, len(elems))
	for changed := true; changed; {
		changed = false
		for i, a := range elems {
			for j, b := range elems {
				// a strictly below b lifts b's rank above a's
				if i == j || !l.Leq(a, b) || l.Eq(a, b) {
					continue
				}
				if ranks[i]+1 > ranks[j] {
					ranks[j] = ranks[i] + 1
					changed = true
				}
			}
		}
	}
	return ranks
}
