package diffusion

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/sheafworks/latticeroute/pkg/graph"
	"github.com/sheafworks/latticeroute/pkg/lattice"
	"github.com/sheafworks/latticeroute/pkg/sheaf"
)

const testSteps = 8

// lineSheaf builds a trust sheaf over a 4-vertex line with mixed weights.
func lineSheaf(t *testing.T) *sheaf.Sheaf[float64, float64] {
	t.Helper()
	g, err := graph.Build(4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	unit, err := lattice.NewUnitInterval(testSteps)
	if err != nil {
		t.Fatalf("NewUnitInterval failed: %v", err)
	}
	s, err := sheaf.Trust(g, unit, []float64{1.0, 0.5, 0.75})
	if err != nil {
		t.Fatalf("Trust failed: %v", err)
	}
	return s
}

func TestStepMonotoneDescent(t *testing.T) {
	s := lineSheaf(t)
	unit, _ := lattice.NewUnitInterval(testSteps)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("flow step never raises a vertex", prop.ForAll(
		func(raw []float64) bool {
			x := sheaf.BottomCochain(s)
			for i := 0; i < len(x) && i < len(raw); i++ {
				x[i] = unit.Quantize(raw[i])
			}
			next := Step(s, x)
			return sheaf.LeqCochains(s, next, x)
		},
		gen.SliceOfN(4, gen.Float64Range(0, 1)),
	))

	properties.TestingRun(t)
}

func TestFlowConvergesWithinLatticeHeight(t *testing.T) {
	s := lineSheaf(t)
	unit, _ := lattice.NewUnitInterval(testSteps)

	// The descending chain at any vertex has at most height(lattice) - 1
	// strict drops, so convergence inside the height bound is guaranteed.
	height := lattice.HeightOf[float64](unit)

	res := HarmonicFlow(s, sheaf.TopCochain(s), height)
	if !res.Converged {
		t.Fatalf("flow did not converge within %d iterations", height)
	}
	if res.Iterations > height {
		t.Errorf("Iterations = %d, want <= %d", res.Iterations, height)
	}
}

func TestFixedPointIsIdempotent(t *testing.T) {
	s := lineSheaf(t)

	res := HarmonicFlow(s, sheaf.TopCochain(s), 64)
	if !res.Converged {
		t.Fatal("flow did not converge")
	}
	again := Step(s, res.Fixed)
	if !sheaf.EqualCochains(s, again, res.Fixed) {
		t.Errorf("Step(fixed) = %v, want %v", again, res.Fixed)
	}
}

func TestIsolatedVertexKeepsValue(t *testing.T) {
	// Vertex 2 has no incident edges: its Laplacian is top, so the flow
	// step x ∧ ⊤ leaves it untouched.
	g, _ := graph.Build(3, [][2]int{{0, 1}})
	unit, _ := lattice.NewUnitInterval(testSteps)
	s, err := sheaf.Trust(g, unit, []float64{1.0})
	if err != nil {
		t.Fatalf("Trust failed: %v", err)
	}

	x := sheaf.CochainFromMap(s, map[int]float64{0: 1.0, 1: 1.0, 2: 0.625})
	lap := Laplacian(s, x)
	if lap[2] != unit.Top() {
		t.Errorf("Laplacian at isolated vertex = %g, want top", lap[2])
	}

	res := HarmonicFlow(s, x, 64)
	if !res.Converged {
		t.Fatal("flow did not converge")
	}
	if res.Fixed[2] != 0.625 {
		t.Errorf("isolated vertex drifted to %g, want 0.625", res.Fixed[2])
	}
}

func TestConstantSheafAgreementIsFixed(t *testing.T) {
	// On a constant sheaf an all-equal cochain is already a global section.
	g, _ := graph.Build(4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
	s, err := sheaf.Constant[lattice.RiskLevel](g, lattice.NewRisk())
	if err != nil {
		t.Fatalf("Constant failed: %v", err)
	}

	x := make(sheaf.Cochain[lattice.RiskLevel], 4)
	for i := range x {
		x[i] = lattice.RiskQuarantine
	}
	res := HarmonicFlow(s, x, 16)
	if !res.Converged || res.Iterations != 0 {
		t.Errorf("agreeing cochain flowed: iterations=%d converged=%v", res.Iterations, res.Converged)
	}
}

func TestConstantSheafDisagreementMeets(t *testing.T) {
	// Two vertices disagreeing across an identity edge settle on their meet.
	g, _ := graph.Build(2, [][2]int{{0, 1}})
	s, err := sheaf.Constant[lattice.RiskLevel](g, lattice.NewRisk())
	if err != nil {
		t.Fatalf("Constant failed: %v", err)
	}

	x := sheaf.Cochain[lattice.RiskLevel]{lattice.RiskDeny, lattice.RiskQuarantine}
	res := HarmonicFlow(s, x, 16)
	if !res.Converged {
		t.Fatal("flow did not converge")
	}
	for i, v := range res.Fixed {
		if v != lattice.RiskQuarantine {
			t.Errorf("Fixed[%d] = %v, want QUARANTINE", i, v)
		}
	}
}

func TestFlowDoesNotMutateInput(t *testing.T) {
	s := lineSheaf(t)
	x := sheaf.TopCochain(s)
	HarmonicFlow(s, x, 64)
	for i, v := range x {
		if v != 1.0 {
			t.Errorf("input cochain mutated at %d: %g", i, v)
		}
	}
}

func TestNonConvergenceReported(t *testing.T) {
	s := lineSheaf(t)
	// A zero iteration budget on a cochain that needs work cannot converge.
	x := sheaf.CochainFromMap(s, map[int]float64{0: 1.0})
	first := Step(s, x)
	if sheaf.EqualCochains(s, first, x) {
		t.Skip("cochain unexpectedly already a fixed point")
	}
	res := HarmonicFlow(s, x, 0)
	if res.Converged {
		t.Error("flow reported convergence with a zero budget on unstable input")
	}
}
