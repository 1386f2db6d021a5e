// Package graph implements the cell complex the sheaf engine runs over:
// typed vertices and undirected edges held in flat arenas and addressed by
// stable integer ids, so higher layers can reference cells without object
// cycles.
package graph

import (
	"errors"
	"fmt"
)

// Common graph construction errors
var (
	ErrVertexOutOfRange = errors.New("vertex id out of range")
	ErrNegativeCount    = errors.New("negative vertex count")
)

// Vertex is a 0-cell.
type Vertex struct {
	ID    int
	Label string
}

// Edge is a 1-cell joining two vertices. Edges are undirected; Source and
// Target fix an orientation only so restriction maps know which endpoint is
// which.
type Edge struct {
	ID     int
	Source int
	Target int
	Label  string
}

// Graph is a finite set of vertices and edges. Construction-only mutation:
// once handed to a sheaf it is read-only and safe for concurrent use.
type Graph struct {
	vertices []Vertex
	edges    []Edge
	incident [][]int        // vertex id -> incident edge ids, in insertion order
	between  map[[2]int]int // normalized endpoint pair -> edge id
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{between: make(map[[2]int]int)}
}

// Build creates a graph with vertexCount unlabeled vertices and one edge per
// pair in edgePairs.
func Build(vertexCount int, edgePairs [][2]int) (*Graph, error) {
	if vertexCount < 0 {
		return nil, fmt.Errorf("build graph: %w", ErrNegativeCount)
	}
	g := New()
	for i := 0; i < vertexCount; i++ {
		g.AddVertex("")
	}
	for _, pair := range edgePairs {
		if _, err := g.AddEdge(pair[0], pair[1], ""); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddVertex appends a vertex and returns its id.
func (g *Graph) AddVertex(label string) int {
	id := len(g.vertices)
	g.vertices = append(g.vertices, Vertex{ID: id, Label: label})
	g.incident = append(g.incident, nil)
	return id
}

// AddEdge appends an undirected edge between two existing vertices and
// returns its id.
func (g *Graph) AddEdge(source, target int, label string) (int, error) {
	if source < 0 || source >= len(g.vertices) {
		return 0, fmt.Errorf("add edge: source %d: %w", source, ErrVertexOutOfRange)
	}
	if target < 0 || target >= len(g.vertices) {
		return 0, fmt.Errorf("add edge: target %d: %w", target, ErrVertexOutOfRange)
	}
	id := len(g.edges)
	g.edges = append(g.edges, Edge{ID: id, Source: source, Target: target, Label: label})
	g.incident[source] = append(g.incident[source], id)
	if target != source {
		g.incident[target] = append(g.incident[target], id)
	}
	g.between[normalize(source, target)] = id
	return id, nil
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Vertex returns the vertex with the given id.
func (g *Graph) Vertex(id int) (Vertex, bool) {
	if id < 0 || id >= len(g.vertices) {
		return Vertex{}, false
	}
	return g.vertices[id], true
}

// Edge returns the edge with the given id.
func (g *Graph) Edge(id int) (Edge, bool) {
	if id < 0 || id >= len(g.edges) {
		return Edge{}, false
	}
	return g.edges[id], true
}

// Edges returns all edges in id order. The returned slice is shared; callers
// must not mutate it.
func (g *Graph) Edges() []Edge { return g.edges }

// IncidentEdges returns the ids of every edge touching the vertex, in
// insertion order. The returned slice is shared; callers must not mutate it.
func (g *Graph) IncidentEdges(vertex int) []int {
	if vertex < 0 || vertex >= len(g.incident) {
		return nil
	}
	return g.incident[vertex]
}

// EdgeBetween returns the edge joining two vertices, if one exists.
// Direction is ignored.
func (g *Graph) EdgeBetween(a, b int) (int, bool) {
	id, ok := g.between[normalize(a, b)]
	return id, ok
}

// HasVertex reports whether the id names an existing vertex.
func (g *Graph) HasVertex(id int) bool {
	return id >= 0 && id < len(g.vertices)
}

func normalize(a, b int) [2]int {
	if a > b {
		return [2]int{b, a}
	}
	return [2]int{a, b}
}
