package graph

import (
	"errors"
	"testing"
)

func TestBuild(t *testing.T) {
	g, err := Build(4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", g.VertexCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	if _, err := Build(-1, nil); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("Build(-1) error = %v, want ErrNegativeCount", err)
	}
	if _, err := Build(2, [][2]int{{0, 5}}); !errors.Is(err, ErrVertexOutOfRange) {
		t.Errorf("Build with bad edge error = %v, want ErrVertexOutOfRange", err)
	}
	if _, err := Build(2, [][2]int{{-1, 0}}); !errors.Is(err, ErrVertexOutOfRange) {
		t.Errorf("Build with negative endpoint error = %v, want ErrVertexOutOfRange", err)
	}
}

func TestIncidentEdges(t *testing.T) {
	// Star around vertex 0
	g, err := Build(4, [][2]int{{0, 1}, {0, 2}, {0, 3}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := g.IncidentEdges(0); len(got) != 3 {
		t.Errorf("IncidentEdges(0) = %v, want 3 edges", got)
	}
	if got := g.IncidentEdges(1); len(got) != 1 {
		t.Errorf("IncidentEdges(1) = %v, want 1 edge", got)
	}
	if got := g.IncidentEdges(99); got != nil {
		t.Errorf("IncidentEdges(99) = %v, want nil", got)
	}
}

func TestEdgeBetween(t *testing.T) {
	g, err := Build(3, [][2]int{{0, 1}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, ok := g.EdgeBetween(0, 1); !ok {
		t.Error("EdgeBetween(0,1) not found")
	}
	// Undirected: reversed lookup finds the same edge
	id1, _ := g.EdgeBetween(0, 1)
	id2, ok := g.EdgeBetween(1, 0)
	if !ok || id1 != id2 {
		t.Errorf("EdgeBetween(1,0) = %d,%v, want %d,true", id2, ok, id1)
	}
	if _, ok := g.EdgeBetween(0, 2); ok {
		t.Error("EdgeBetween(0,2) found nonexistent edge")
	}
}

func TestIsolatedVertex(t *testing.T) {
	g, err := Build(3, [][2]int{{0, 1}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := g.IncidentEdges(2); len(got) != 0 {
		t.Errorf("isolated vertex has incident edges: %v", got)
	}
}

func TestVertexLookup(t *testing.T) {
	g := New()
	id := g.AddVertex("gateway")
	v, ok := g.Vertex(id)
	if !ok || v.Label != "gateway" {
		t.Errorf("Vertex(%d) = %+v,%v", id, v, ok)
	}
	if _, ok := g.Vertex(-1); ok {
		t.Error("Vertex(-1) should not exist")
	}
	if !g.HasVertex(id) || g.HasVertex(id+1) {
		t.Error("HasVertex bounds check failed")
	}
}
