// Package consensus extracts global sections and obstruction measurements
// from harmonic flow runs: how far a vertex assignment is from being
// globally consistent with the sheaf's restriction structure, and which
// edges carry the disagreement.
package consensus

import (
	"fmt"

	"github.com/sheafworks/latticeroute/pkg/diffusion"
	"github.com/sheafworks/latticeroute/pkg/lattice"
	"github.com/sheafworks/latticeroute/pkg/sheaf"
)

// GlobalSections runs harmonic flow from the all-top cochain and returns its
// fixed point: the most-agreed-upon consistent assignment derivable purely
// from the restriction structure, with no external input. Non-convergence is
// a construction bug and surfaces as a hard error, never as an approximate
// result.
func GlobalSections[V, E any](s *sheaf.Sheaf[V, E], maxIterations int) (sheaf.Cochain[V], error) {
	res := diffusion.HarmonicFlow(s, sheaf.TopCochain(s), maxIterations)
	if !res.Converged {
		return nil, fmt.Errorf("global sections after %d iterations: %w", res.Iterations, diffusion.ErrNonConvergence)
	}
	return res.Fixed, nil
}

// ObstructionDegree runs harmonic flow from a caller-supplied cochain and
// measures how much information had to be discarded to reconcile it: the
// normalized rank drop between the initial and fixed value at each vertex,
// averaged over vertices with non-trivial lattices. 0 means the assignment
// was already a global section; 1 means maximal disagreement.
func ObstructionDegree[V, E any](s *sheaf.Sheaf[V, E], start sheaf.Cochain[V], maxIterations int) (float64, error) {
	res := diffusion.HarmonicFlow(s, start, maxIterations)
	if !res.Converged {
		return 0, fmt.Errorf("obstruction degree after %d iterations: %w", res.Iterations, diffusion.ErrNonConvergence)
	}

	var total float64
	var counted int
	for v := range start {
		vl := s.VertexLattice(v)
		height := lattice.HeightOf(vl)
		if height <= 1 {
			continue
		}
		drop := lattice.RankOf(vl, start[v]) - lattice.RankOf(vl, res.Fixed[v])
		if drop < 0 {
			drop = 0
		}
		total += float64(drop) / float64(height-1)
		counted++
	}
	if counted == 0 {
		return 0, nil
	}
	return total / float64(counted), nil
}
