// Package registry holds the typed-node registry the graph builder consumes:
// a list of nodes, each tagged with a family drawn from a totally ordered
// enumeration. Registries arrive from upstream collaborators as structs or
// YAML documents and are validated before any graph is built from them.
package registry

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Common registry errors
var (
	ErrDuplicateID = errors.New("duplicate node id")
	ErrSparseIDs   = errors.New("node ids must be dense, starting at 0")
	ErrEmpty       = errors.New("registry has no nodes")
)

// validate is a singleton validator instance
var validate = validator.New()

// Node is one registry entry. ID doubles as the vertex id in the built
// graph, so ids must be dense: 0..len(nodes)-1.
type Node struct {
	ID         int               `yaml:"id" validate:"gte=0"`
	Family     string            `yaml:"family" validate:"required,max=50"`
	Attributes map[string]string `yaml:"attributes,omitempty" validate:"omitempty,max=100"`
}

// Registry is the full node list.
type Registry struct {
	Nodes []Node `yaml:"nodes" validate:"required,min=1,dive"`
}

// Load reads and validates a YAML registry document.
func Load(r io.Reader) (*Registry, error) {
	var reg Registry
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&reg); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// LoadFile reads and validates a YAML registry file.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks struct tags plus the id density invariant the graph
// builder depends on.
func (r *Registry) Validate() error {
	if len(r.Nodes) == 0 {
		return ErrEmpty
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("registry validation: %w", err)
	}

	seen := make(map[int]bool, len(r.Nodes))
	for _, n := range r.Nodes {
		if seen[n.ID] {
			return fmt.Errorf("node id %d: %w", n.ID, ErrDuplicateID)
		}
		seen[n.ID] = true
	}
	for i := range r.Nodes {
		if !seen[i] {
			return fmt.Errorf("missing node id %d: %w", i, ErrSparseIDs)
		}
	}
	return nil
}

// ByID returns the node with the given id.
func (r *Registry) ByID(id int) (Node, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Families returns the distinct family labels in first-appearance order.
func (r *Registry) Families() []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range r.Nodes {
		if !seen[n.Family] {
			seen[n.Family] = true
			out = append(out, n.Family)
		}
	}
	return out
}
