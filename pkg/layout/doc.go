// Package layout orchestrates diagram solves and defines the serialized
// layout artifact.
//
// # Overview
//
// An [Engine] turns one [Problem] (a diagram plus its constraint groups,
// ring requirements, hidden nodes, and solve options) into one [Layout].
// The engine hashes the problem, consults its cache, runs the solver on a
// miss, and assembles the placements, conflict table, and statistics into a
// single JSON- and BSON-serializable value. Every caller surface (CLI, HTTP
// API, store) exchanges this one artifact.
//
// # Caching
//
// Layouts are cached under a key derived from the problem content hash and
// the solve options, prefixed with a schema version so a format change
// invalidates old entries. Solving is deterministic, so a cached layout is
// indistinguishable from a fresh one. Caching is best-effort: backend
// failures degrade to cache misses.
//
// # Outcomes
//
// A layout always records its outcome. Satisfied layouts carry node
// coordinates, edges, solved group boxes, and the chosen alternative per
// disjunction. Unsatisfiable layouts carry a minimal set of conflicting
// constraint sources instead. Budget-exhausted layouts carry neither, only
// the search statistics. Constraints dropped for hidden nodes are reported
// on every outcome.
//
// # Basic Usage
//
//	model := diagram.New(nil)
//	_ = model.AddNode(diagram.Node{ID: "a"})
//	_ = model.AddNode(diagram.Node{ID: "b"})
//
//	eng := layout.New(nil, nil)
//	l, err := eng.Solve(ctx, layout.Problem{
//		Diagram: model,
//		Groups: []constraint.SourceGroup{{
//			Label:       "flow",
//			Constraints: []constraint.Positional{constraint.Left("a", "b", 40)},
//		}},
//	})
package layout
