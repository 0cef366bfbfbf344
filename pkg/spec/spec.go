package spec

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/orrery/pkg/layout"
)

// document is the on-disk form of one problem. Field names follow the
// serialized schema; see the package documentation for the full format.
type document struct {
	Title string         `yaml:"title"`
	Meta  map[string]any `yaml:"meta"`

	Nodes  []node  `yaml:"nodes"`
	Edges  []edge  `yaml:"edges"`
	Groups []group `yaml:"groups"`

	Constraints []constraintGroup `yaml:"constraints"`
	Cycles      []cycle           `yaml:"cycles"`
	Hidden      []string          `yaml:"hidden"`

	Solve *solveOptions `yaml:"solve"`
}

type node struct {
	ID    string         `yaml:"id"`
	Label string         `yaml:"label"`
	Meta  map[string]any `yaml:"meta"`
}

type edge struct {
	From string         `yaml:"from"`
	To   string         `yaml:"to"`
	Meta map[string]any `yaml:"meta"`
}

type group struct {
	Name    string   `yaml:"name"`
	Padding float64  `yaml:"padding"`
	Members []string `yaml:"members"`
}

type constraintGroup struct {
	Source  string  `yaml:"source"`
	Entries []entry `yaml:"entries"`
}

// entry is a discriminated union - Kind selects which fields are read.
type entry struct {
	Kind string `yaml:"kind"`

	// orientation
	Direction string  `yaml:"direction"`
	A         string  `yaml:"a"`
	B         string  `yaml:"b"`
	Gap       float64 `yaml:"gap"`

	// alignment
	Axis  string   `yaml:"axis"`
	Nodes []string `yaml:"nodes"`

	// bounding_box
	Node string  `yaml:"node"`
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`

	// group
	Name    string   `yaml:"name"`
	Padding float64  `yaml:"padding"`
	Members []string `yaml:"members"`
}

type cycle struct {
	Direction string     `yaml:"direction"`
	Fragments [][]string `yaml:"fragments"`
}

type solveOptions struct {
	SepX   float64 `yaml:"sep_x"`
	SepY   float64 `yaml:"sep_y"`
	Radius float64 `yaml:"radius"`
	Budget int     `yaml:"budget"`
}

// Read decodes a problem document from r into a layout problem.
//
// The input is YAML (JSON, being a YAML subset, also works):
//
//	nodes:
//	  - id: api
//	    label: API Gateway
//	  - id: db
//	edges:
//	  - from: api
//	    to: db
//	constraints:
//	  - source: api feeds db
//	    entries:
//	      - kind: orientation
//	        direction: left
//	        a: api
//	        b: db
//	        gap: 60
//
// Unknown document fields, unknown entry kinds, duplicate or reserved node
// ids, edges or hidden entries naming unknown nodes, and malformed cycles
// are all errors. Errors are wrapped with the offending node, edge, or
// entry for context; use errors.Is or errors.As to check for specific
// validation errors.
//
// Read does not close r and consumes only the first document in a
// multi-document stream.
func Read(r io.Reader) (layout.Problem, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return layout.Problem{}, fmt.Errorf("decode: %w", err)
	}
	return build(doc)
}

// ReadFile reads a problem document from the file at path.
//
// ReadFile opens the file, decodes it using [Read], and closes the file.
// Errors wrap the underlying cause with the file path for context.
func ReadFile(path string) (layout.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return layout.Problem{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	p, err := Read(f)
	if err != nil {
		return layout.Problem{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}
