// Package builder constructs the weighted trust graph from a node registry:
// nodes sharing a family form a full-trust clique, nodes in adjacent
// families are joined by edges decayed to the geometric mean of the two
// family tiers, and non-adjacent families get no direct edge at all. Trust
// therefore erodes multiplicatively with every family boundary a path
// crosses, never additively.
package builder

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sheafworks/latticeroute/pkg/graph"
	"github.com/sheafworks/latticeroute/pkg/registry"
	"github.com/sheafworks/latticeroute/pkg/validation"
)

// Common builder errors
var (
	ErrUnknownFamily = errors.New("node family not in family order")
	ErrMissingTier   = errors.New("family has no trust tier")
)

// Config fixes the family ordering and per-family base trust tiers. It is
// passed explicitly so independently configured builders can coexist; there
// is no process-wide default.
type Config struct {
	// FamilyOrder is the total order over families; only neighbors in this
	// list get direct cross-family edges
	FamilyOrder []string `yaml:"family_order"`
	// FamilyTiers maps each family to its base trust tier in (0, 1]
	FamilyTiers map[string]float64 `yaml:"family_tiers"`
}

// Validate checks the config is internally consistent.
func (c Config) Validate() error {
	cv := validation.NewConfigValidator("BuilderConfig").
		NotEmpty("FamilyOrder", c.FamilyOrder)
	for _, fam := range c.FamilyOrder {
		tier, ok := c.FamilyTiers[fam]
		if !ok {
			cv.Custom("FamilyTiers", func() error {
				return fmt.Errorf("family %q: %w", fam, ErrMissingTier)
			})
			continue
		}
		cv.HalfOpenUnit("FamilyTiers["+fam+"]", tier)
	}
	return cv.Validate()
}

// WeightedEdge is an edge plus its trust-decay weight and its intra/cross
// classification.
type WeightedEdge struct {
	ID           int
	Source       int
	Target       int
	Weight       float64
	CrossFamily  bool
	SourceFamily string
	TargetFamily string
}

// Graph is the built complex plus per-edge weights aligned with edge ids.
type Graph struct {
	Complex *graph.Graph
	Edges   []WeightedEdge
}

// Weights returns the edge weights in edge-id order, the form the trust
// sheaf constructor takes.
func (g *Graph) Weights() []float64 {
	out := make([]float64, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = e.Weight
	}
	return out
}

// Build constructs the weighted graph from a validated registry. Node ids
// become vertex ids directly. Edge construction is deterministic: intra-
// family cliques in node-id order first, then cross-family edges in family
// order.
func Build(reg *registry.Registry, cfg Config) (*Graph, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rank := make(map[string]int, len(cfg.FamilyOrder))
	for i, fam := range cfg.FamilyOrder {
		rank[fam] = i
	}
	for _, n := range reg.Nodes {
		if _, ok := rank[n.Family]; !ok {
			return nil, fmt.Errorf("node %d family %q: %w", n.ID, n.Family, ErrUnknownFamily)
		}
	}

	// Registry ids are dense but may arrive in any order; placing nodes in
	// id order makes AddVertex assign each node its own id back.
	nodes := sortedByID(reg.Nodes)

	g := graph.New()
	members := make([][]int, len(cfg.FamilyOrder))
	for _, n := range nodes {
		g.AddVertex(n.Family)
		fi := rank[n.Family]
		members[fi] = append(members[fi], n.ID)
	}

	var weighted []WeightedEdge

	addEdge := func(a, b int, weight float64, cross bool) error {
		id, err := g.AddEdge(a, b, "")
		if err != nil {
			return err
		}
		na, _ := reg.ByID(a)
		nb, _ := reg.ByID(b)
		weighted = append(weighted, WeightedEdge{
			ID:           id,
			Source:       a,
			Target:       b,
			Weight:       weight,
			CrossFamily:  cross,
			SourceFamily: na.Family,
			TargetFamily: nb.Family,
		})
		return nil
	}

	// Intra-family cliques: full trust, no decay
	for fi := range members {
		ids := members[fi]
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				if err := addEdge(ids[i], ids[j], 1.0, false); err != nil {
					return nil, err
				}
			}
		}
	}

	// Cross-family edges between adjacent families only, decayed to the
	// geometric mean of the two tiers
	for fi := 0; fi+1 < len(cfg.FamilyOrder); fi++ {
		tierA := cfg.FamilyTiers[cfg.FamilyOrder[fi]]
		tierB := cfg.FamilyTiers[cfg.FamilyOrder[fi+1]]
		weight := math.Sqrt(tierA * tierB)
		for _, a := range members[fi] {
			for _, b := range members[fi+1] {
				if err := addEdge(a, b, weight, true); err != nil {
					return nil, err
				}
			}
		}
	}

	return &Graph{Complex: g, Edges: weighted}, nil
}

func sortedByID(nodes []registry.Node) []registry.Node {
	out := make([]registry.Node, len(nodes))
	copy(out, nodes)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
