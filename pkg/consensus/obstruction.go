package consensus

import (
	"fmt"

	"github.com/sheafworks/latticeroute/pkg/lattice"
	"github.com/sheafworks/latticeroute/pkg/sheaf"
)

// Obstruction records a detected disagreement at one edge: the offending
// cells, a severity in [0, 1], and a human-readable reason.
type Obstruction struct {
	// EdgeID is the edge where the pushed endpoint values disagree.
	// -1 marks structural obstructions with no edge (e.g. a path element
	// referencing a nonexistent node).
	EdgeID int
	// SourceVertex and TargetVertex are the edge endpoints
	SourceVertex int
	TargetVertex int
	// Severity is the normalized lattice-rank distance between the
	// disagreeing values, in [0, 1]
	Severity float64
	// Reason is a human-readable description
	Reason string
}

// DetectObstructions inspects every edge of the sheaf under the given
// cochain and reports one Obstruction per edge whose pushed-forward endpoint
// values disagree (their meet differs from their join in the edge lattice).
// Results are in edge-id order, so severity accumulation downstream is
// deterministic.
func DetectObstructions[V, E any](s *sheaf.Sheaf[V, E], x sheaf.Cochain[V]) []Obstruction {
	g := s.Graph()
	var out []Obstruction

	for _, edge := range g.Edges() {
		r := s.Restriction(edge.ID)
		el := s.EdgeLattice(edge.ID)

		a := r.Source.Lower(x[edge.Source])
		b := r.Target.Lower(x[edge.Target])

		m := el.Meet(a, b)
		j := el.Join(a, b)
		if el.Eq(m, j) {
			continue
		}

		height := lattice.HeightOf(el)
		severity := 1.0
		if height > 1 {
			severity = float64(lattice.RankOf(el, j)-lattice.RankOf(el, m)) / float64(height-1)
		}
		out = append(out, Obstruction{
			EdgeID:       edge.ID,
			SourceVertex: edge.Source,
			TargetVertex: edge.Target,
			Severity:     severity,
			Reason: fmt.Sprintf("edge %d (%d-%d): pushed values %v and %v disagree",
				edge.ID, edge.Source, edge.Target, a, b),
		})
	}
	return out
}
