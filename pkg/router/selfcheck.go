package router

import (
	"fmt"
	"math"
	"strings"
)

// CheckDeterminism re-runs ValidatePath and returns the fraction of runs
// whose outcome is bit-identical to the first. The engine has no hidden
// state or randomness on the decision path, so any correct implementation
// scores exactly 1.0; anything less is a defect, not noise.
func (r *Router) CheckDeterminism(path []int, trustOverrides map[int]float64, runs int) (float64, error) {
	if runs <= 0 {
		return 1.0, nil
	}

	first, err := r.ValidatePath(path, trustOverrides)
	if err != nil {
		return 0, err
	}
	reference := fingerprint(first)

	matched := 1
	for i := 1; i < runs; i++ {
		res, err := r.ValidatePath(path, trustOverrides)
		if err != nil {
			continue
		}
		if fingerprint(res) == reference {
			matched++
		}
	}
	return float64(matched) / float64(runs), nil
}

// CheckFailSafe validates a batch of known-bad paths and returns the
// fraction correctly refused. A hard error counts as refused: the engine
// declined to produce a decision at all. Must be 1.0 for any correct
// implementation.
func (r *Router) CheckFailSafe(invalidPaths [][]int) float64 {
	if len(invalidPaths) == 0 {
		return 1.0
	}
	denied := 0
	for _, path := range invalidPaths {
		res, err := r.ValidatePath(path, nil)
		if err != nil || res.Decision == DecisionDeny {
			denied++
		}
	}
	return float64(denied) / float64(len(invalidPaths))
}

// fingerprint canonicalizes everything decision-relevant in a result,
// excluding only the per-call id. Float fields go through their exact bit
// patterns so "equal" means bit-identical, not approximately close.
func fingerprint(res *RoutingResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%x|%x|%v|", res.Decision, math.Float64bits(res.CoherenceScore), math.Float64bits(res.RiskAmplification), res.PathValid)
	for _, p := range res.Path {
		fmt.Fprintf(&b, "%d,", p)
	}
	b.WriteByte('|')
	for _, o := range res.Obstructions {
		fmt.Fprintf(&b, "%d:%x;", o.EdgeID, math.Float64bits(o.Severity))
	}
	b.WriteByte('|')
	for _, v := range res.FixedPoint {
		fmt.Fprintf(&b, "%x,", math.Float64bits(v))
	}
	return b.String()
}
