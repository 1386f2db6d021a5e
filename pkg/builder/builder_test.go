package builder

import (
	"errors"
	"math"
	"testing"

	"github.com/sheafworks/latticeroute/pkg/registry"
)

func testConfig() Config {
	return Config{
		FamilyOrder: []string{"core", "service", "edge"},
		FamilyTiers: map[string]float64{
			"core":    0.9,
			"service": 0.6,
			"edge":    0.3,
		},
	}
}

func testRegistry() *registry.Registry {
	return &registry.Registry{Nodes: []registry.Node{
		{ID: 0, Family: "core"},
		{ID: 1, Family: "core"},
		{ID: 2, Family: "service"},
		{ID: 3, Family: "edge"},
	}}
}

func TestBuildIntraFamilyClique(t *testing.T) {
	g, err := Build(testRegistry(), testConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	id, ok := g.Complex.EdgeBetween(0, 1)
	if !ok {
		t.Fatal("intra-family edge (0,1) missing")
	}
	we := g.Edges[id]
	if we.Weight != 1.0 {
		t.Errorf("intra-family weight = %g, want 1.0", we.Weight)
	}
	if we.CrossFamily {
		t.Error("intra-family edge classified as cross-family")
	}
}

func TestBuildCrossFamilyGeometricMean(t *testing.T) {
	g, err := Build(testRegistry(), testConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// core(0.9) - service(0.6): weight sqrt(0.54)
	id, ok := g.Complex.EdgeBetween(0, 2)
	if !ok {
		t.Fatal("cross-family edge (0,2) missing")
	}
	we := g.Edges[id]
	want := math.Sqrt(0.9 * 0.6)
	if math.Abs(we.Weight-want) > 1e-12 {
		t.Errorf("cross-family weight = %g, want %g", we.Weight, want)
	}
	if !we.CrossFamily {
		t.Error("cross-family edge classified as intra-family")
	}
	if we.SourceFamily != "core" || we.TargetFamily != "service" {
		t.Errorf("families = %s,%s", we.SourceFamily, we.TargetFamily)
	}
}

func TestBuildNonAdjacentFamiliesDisconnected(t *testing.T) {
	g, err := Build(testRegistry(), testConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// core and edge are two steps apart in the order: no direct edge
	if _, ok := g.Complex.EdgeBetween(0, 3); ok {
		t.Error("non-adjacent families got a direct edge")
	}
	if _, ok := g.Complex.EdgeBetween(1, 3); ok {
		t.Error("non-adjacent families got a direct edge")
	}
	// reachable through service
	if _, ok := g.Complex.EdgeBetween(2, 3); !ok {
		t.Error("adjacent service-edge pair missing its edge")
	}
}

func TestBuildUnknownFamily(t *testing.T) {
	reg := &registry.Registry{Nodes: []registry.Node{
		{ID: 0, Family: "core"},
		{ID: 1, Family: "mystery"},
	}}
	if _, err := Build(reg, testConfig()); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("error = %v, want ErrUnknownFamily", err)
	}
}

func TestConfigValidation(t *testing.T) {
	cfg := testConfig()
	delete(cfg.FamilyTiers, "edge")
	if err := cfg.Validate(); !errors.Is(err, ErrMissingTier) {
		t.Errorf("error = %v, want ErrMissingTier", err)
	}

	cfg = testConfig()
	cfg.FamilyTiers["core"] = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("tier above 1 accepted")
	}

	cfg = testConfig()
	cfg.FamilyOrder = nil
	if err := cfg.Validate(); err == nil {
		t.Error("empty family order accepted")
	}
}

func TestBuildHandlesShuffledRegistry(t *testing.T) {
	reg := &registry.Registry{Nodes: []registry.Node{
		{ID: 2, Family: "service"},
		{ID: 0, Family: "core"},
		{ID: 1, Family: "core"},
	}}
	g, err := Build(reg, testConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	v, _ := g.Complex.Vertex(2)
	if v.Label != "service" {
		t.Errorf("vertex 2 label = %q, want service", v.Label)
	}
	if _, ok := g.Complex.EdgeBetween(0, 1); !ok {
		t.Error("intra-family edge missing after shuffle")
	}
}

func TestWeightsAlignWithEdgeIDs(t *testing.T) {
	g, err := Build(testRegistry(), testConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	ws := g.Weights()
	if len(ws) != g.Complex.EdgeCount() {
		t.Fatalf("weights = %d, edges = %d", len(ws), g.Complex.EdgeCount())
	}
	for i, we := range g.Edges {
		if we.ID != i {
			t.Errorf("edge %d carries id %d", i, we.ID)
		}
		if ws[i] != we.Weight {
			t.Errorf("weight %d misaligned", i)
		}
	}
}
