package registry

import (
	"errors"
	"strings"
	"testing"
)

const sampleYAML = `
nodes:
  - id: 0
    family: core
  - id: 1
    family: core
    attributes:
      zone: us-east
  - id: 2
    family: service
`

func TestLoad(t *testing.T) {
	reg, err := Load(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(reg.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(reg.Nodes))
	}
	if reg.Nodes[1].Attributes["zone"] != "us-east" {
		t.Errorf("attributes not decoded: %+v", reg.Nodes[1])
	}

	n, ok := reg.ByID(2)
	if !ok || n.Family != "service" {
		t.Errorf("ByID(2) = %+v,%v", n, ok)
	}
	if _, ok := reg.ByID(7); ok {
		t.Error("ByID(7) found nonexistent node")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	if _, err := Load(strings.NewReader("nodes:\n  - id: 0\n    family: core\n    trust: 0.5\n")); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestValidateDuplicateID(t *testing.T) {
	reg := &Registry{Nodes: []Node{
		{ID: 0, Family: "core"},
		{ID: 0, Family: "core"},
	}}
	if err := reg.Validate(); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("error = %v, want ErrDuplicateID", err)
	}
}

func TestValidateSparseIDs(t *testing.T) {
	reg := &Registry{Nodes: []Node{
		{ID: 0, Family: "core"},
		{ID: 2, Family: "core"},
	}}
	if err := reg.Validate(); !errors.Is(err, ErrSparseIDs) {
		t.Errorf("error = %v, want ErrSparseIDs", err)
	}
}

func TestValidateEmpty(t *testing.T) {
	reg := &Registry{}
	if err := reg.Validate(); !errors.Is(err, ErrEmpty) {
		t.Errorf("error = %v, want ErrEmpty", err)
	}
}

func TestValidateMissingFamily(t *testing.T) {
	reg := &Registry{Nodes: []Node{{ID: 0, Family: ""}}}
	if err := reg.Validate(); err == nil {
		t.Error("empty family accepted")
	}
}

func TestFamilies(t *testing.T) {
	reg := &Registry{Nodes: []Node{
		{ID: 0, Family: "core"},
		{ID: 1, Family: "service"},
		{ID: 2, Family: "core"},
	}}
	fams := reg.Families()
	if len(fams) != 2 || fams[0] != "core" || fams[1] != "service" {
		t.Errorf("Families = %v, want [core service]", fams)
	}
}
