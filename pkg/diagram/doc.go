// Package diagram holds the source data model on the input side of the
// layout engine: nodes, the edges drawn between them, and named groups.
//
// # Overview
//
// A [Model] is a registry of uniquely identified nodes plus the edges and
// groups that reference them. It carries no geometry; coordinates are
// produced later by solving. Unlike a layered graph model there is no row
// or layer structure, and cycles between nodes are perfectly legal: rings
// are first-class input, not a defect.
//
// # Basic Usage
//
//	m := diagram.New(nil)
//	m.AddNode(diagram.Node{ID: "login"})
//	m.AddNode(diagram.Node{ID: "dashboard"})
//	m.AddEdge(diagram.Edge{From: "login", To: "dashboard"})
//	if err := m.Validate(); err != nil {
//		// ...
//	}
//
// Structural defects are reported through sentinel errors such as
// [ErrDuplicateNodeID] and [ErrUnknownSourceNode] so callers can test for
// specific conditions with errors.Is.
package diagram
