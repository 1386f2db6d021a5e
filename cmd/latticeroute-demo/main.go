package main

import (
	"fmt"
	"log"

	"github.com/sheafworks/latticeroute/pkg/builder"
	"github.com/sheafworks/latticeroute/pkg/registry"
	"github.com/sheafworks/latticeroute/pkg/router"
)

func main() {
	fmt.Println("=== LatticeRoute Policy Routing Demo ===")
	fmt.Println()

	// A small fleet: two core nodes, one service node, one edge node
	reg := &registry.Registry{Nodes: []registry.Node{
		{ID: 0, Family: "core", Attributes: map[string]string{"name": "core-a"}},
		{ID: 1, Family: "core", Attributes: map[string]string{"name": "core-b"}},
		{ID: 2, Family: "service", Attributes: map[string]string{"name": "svc-1"}},
		{ID: 3, Family: "edge", Attributes: map[string]string{"name": "edge-1"}},
	}}

	familyCfg := builder.Config{
		FamilyOrder: []string{"core", "service", "edge"},
		FamilyTiers: map[string]float64{"core": 0.9, "service": 0.6, "edge": 0.3},
	}

	cfg := router.DefaultConfig()
	r, err := router.New(reg, familyCfg, cfg)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	g := r.Graph()
	fmt.Printf("Built trust graph: %d nodes, %d edges\n", g.Complex.VertexCount(), g.Complex.EdgeCount())
	for _, e := range g.Edges {
		kind := "intra"
		if e.CrossFamily {
			kind = "cross"
		}
		fmt.Printf("  edge %d: %d <-> %d  weight=%.3f (%s %s/%s)\n",
			e.ID, e.Source, e.Target, e.Weight, kind, e.SourceFamily, e.TargetFamily)
	}
	fmt.Println()

	// Fully trusted core pair: expect ALLOW
	fmt.Println("1. Routing inside the core family...")
	report(r, []int{0, 1}, map[int]float64{0: 1.0, 1: 1.0})

	// Trust mismatch across a family boundary: expect QUARANTINE
	fmt.Println("2. Routing core -> service with a trust mismatch...")
	report(r, []int{0, 1, 2}, map[int]float64{0: 1.0, 1: 1.0, 2: 0.0})

	// core and edge are non-adjacent families: expect DENY
	fmt.Println("3. Routing across non-adjacent families...")
	report(r, []int{0, 3}, map[int]float64{0: 1.0, 3: 1.0})

	// Unknown node id: expect DENY, fail closed
	fmt.Println("4. Routing through an unknown node...")
	report(r, []int{0, 42}, nil)

	fmt.Println("5. Computing global sections (consensus from full trust)...")
	sections, err := r.GlobalSections()
	if err != nil {
		log.Fatalf("Global sections failed: %v", err)
	}
	for id, v := range sections {
		fmt.Printf("  node %d: equilibrium trust %.3f\n", id, v)
	}
	fmt.Println()

	fmt.Println("6. Self-checks...")
	det, err := r.CheckDeterminism([]int{0, 1, 2}, map[int]float64{0: 1.0, 2: 0.5}, 5)
	if err != nil {
		log.Fatalf("Determinism check failed: %v", err)
	}
	failSafe := r.CheckFailSafe([][]int{{42}, {-1}, {0, 3}})
	fmt.Printf("  determinism: %.2f  fail-safe: %.2f\n", det, failSafe)

	fmt.Println()
	fmt.Println("=== Demo Complete ===")
}

func report(r *router.Router, path []int, trust map[int]float64) {
	res, err := r.ValidatePath(path, trust)
	if err != nil {
		log.Fatalf("Validation failed for %v: %v", path, err)
	}
	fmt.Printf("  path %v -> %s (coherence=%.3f, risk=%.3f, obstructions=%d)\n",
		path, res.Decision, res.CoherenceScore, res.RiskAmplification, len(res.Obstructions))
	for _, o := range res.Obstructions {
		fmt.Printf("    obstruction edge=%d %d/%d severity=%.3f: %s\n",
			o.EdgeID, o.SourceVertex, o.TargetVertex, o.Severity, o.Reason)
	}
	fmt.Println()
}
