package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// =============================================================================
// Layout - Solved Diagram Serialization Format
// =============================================================================

// Layout is the serialization format for one solved diagram. It is the
// canonical artifact shared by the CLI, the HTTP API, the store, and the
// cache: a solve produces exactly one Layout regardless of outcome.
//
// Which fields are populated depends on Outcome:
//
//	"satisfied":
//	  - Nodes: every visible node with its coordinates
//	  - Edges: visible edges of the diagram
//	  - Groups: one box per group boundary, read from the solved corners
//	  - Chosen: committed alternative index per disjunction
//
//	"unsatisfiable":
//	  - Conflicts: a minimal set of constraint sources that cannot coexist
//
//	"budget exhausted":
//	  - neither placements nor a conflict proof; only Stats
//
// Shared fields (all outcomes):
//   - Hidden: node ids removed before solving
//   - Conflicts: rows with Dropped set, recording constraints removed for
//     hidden nodes
//   - Stats: search effort and wall-clock duration
//   - ProblemHash: content hash of the problem that produced this layout
type Layout struct {
	Outcome string `json:"outcome" bson:"outcome"`

	// Placements (satisfied only)
	Nodes  []Node     `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Edges  []Edge     `json:"edges,omitempty" bson:"edges,omitempty"`
	Groups []GroupBox `json:"groups,omitempty" bson:"groups,omitempty"`
	Chosen []int      `json:"chosen,omitempty" bson:"chosen,omitempty"`

	// Explanation
	Conflicts []Conflict `json:"conflicts,omitempty" bson:"conflicts,omitempty"`
	Hidden    []string   `json:"hidden,omitempty" bson:"hidden,omitempty"`

	Stats       Stats  `json:"stats" bson:"stats"`
	ProblemHash string `json:"problem_hash,omitempty" bson:"problem_hash,omitempty"`
}

// Satisfied returns true if the layout carries placements.
func (l *Layout) Satisfied() bool { return l.Outcome == OutcomeSatisfied }

// Node returns the placement for the given node id.
func (l *Layout) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Bounds returns the extent of all placed nodes and group boxes. ok is
// false for a layout with nothing placed.
func (l *Layout) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	grow := func(x0, y0, x1, y1 float64) {
		if !ok {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			ok = true
			return
		}
		minX, minY = min(minX, x0), min(minY, y0)
		maxX, maxY = max(maxX, x1), max(maxY, y1)
	}
	for _, n := range l.Nodes {
		grow(n.X, n.Y, n.X, n.Y)
	}
	for _, g := range l.Groups {
		grow(g.MinX, g.MinY, g.MaxX, g.MaxY)
	}
	return minX, minY, maxX, maxY, ok
}

// Outcome values carried by a Layout. These are the string forms of the
// solver outcomes and are stable across serialization.
const (
	OutcomeSatisfied     = "satisfied"
	OutcomeUnsatisfiable = "unsatisfiable"
	OutcomeBudget        = "budget exhausted"
)

// =============================================================================
// Node, Edge, GroupBox - Placement Elements
// =============================================================================

// Node is one placed node with its solved coordinates.
type Node struct {
	ID    string  `json:"id" bson:"id"`
	Label string  `json:"label,omitempty" bson:"label,omitempty"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`

	Meta map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a drawn connection between two placed nodes. Edges carry no
// positional meaning; they are retained for rendering.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`

	Meta map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// GroupBox is the solved bounding box of one group boundary.
type GroupBox struct {
	Name string  `json:"name" bson:"name"`
	MinX float64 `json:"min_x" bson:"min_x"`
	MinY float64 `json:"min_y" bson:"min_y"`
	MaxX float64 `json:"max_x" bson:"max_x"`
	MaxY float64 `json:"max_y" bson:"max_y"`
}

// =============================================================================
// Conflict, Stats - Explanation Elements
// =============================================================================

// Conflict is one row of the explanation table: a constraint source together
// with its rendered constraints. Rows with Dropped set record constraints
// removed because they touched a hidden node; the remaining rows form a
// minimal set of sources that cannot coexist.
type Conflict struct {
	Source      string   `json:"source" bson:"source"`
	Constraints []string `json:"constraints,omitempty" bson:"constraints,omitempty"`
	Dropped     bool     `json:"dropped,omitempty" bson:"dropped,omitempty"`
}

// Stats describes the search effort behind a layout.
type Stats struct {
	Explored int           `json:"explored" bson:"explored"`
	Pruned   int           `json:"pruned" bson:"pruned"`
	Probes   int           `json:"probes" bson:"probes"`
	Duration time.Duration `json:"duration_ns" bson:"duration_ns"`
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout.
// Validates that the outcome is one of the known values.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	switch l.Outcome {
	case OutcomeSatisfied, OutcomeUnsatisfiable, OutcomeBudget:
	case "":
		return Layout{}, fmt.Errorf("layout missing outcome")
	default:
		return Layout{}, fmt.Errorf("unknown layout outcome %q", l.Outcome)
	}

	return l, nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
