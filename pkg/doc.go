// Package pkg provides the core libraries for Orrery diagram layout solving.
//
// # Overview
//
// Orrery turns declarative diagram descriptions into solved coordinate
// layouts. Authors state spatial relations ("a left of b", "these nodes
// share a row", "these four form a ring") and the solver either finds
// positions satisfying all of them or reports a minimal set of rules that
// cannot hold together. The pkg directory is organized into four main
// areas:
//
//  1. [solver] - Search core (backtracking, LP probes, conflict diagnosis)
//  2. [layout] - Orchestration (hash, cache, solve, assemble)
//  3. [spec] / [render] - Input documents and output artifacts
//  4. [cache] / [store] - Infrastructure (caching, persistence, hooks)
//
// # Architecture
//
// The typical data flow through Orrery:
//
//	YAML problem document
//	         ↓
//	    [spec] package (parse + validate)
//	         ↓
//	    [layout] package (cache lookup + engine)
//	         ↓
//	    [solver] package (backtracking over disjunctions)
//	         ↓
//	    [arith] package (incremental LP feasibility probes)
//	         ↓
//	    SVG/DOT/PDF/PNG/JSON output
//
// # Quick Start
//
// Parse a problem document, solve it, and render the layout:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/charmbracelet/log"
//	    "github.com/matzehuels/orrery/pkg/cache"
//	    "github.com/matzehuels/orrery/pkg/layout"
//	    "github.com/matzehuels/orrery/pkg/render"
//	    "github.com/matzehuels/orrery/pkg/spec"
//	)
//
//	// 1. Parse the document
//	problem, _ := spec.ReadFile("diagram.yaml")
//
//	// 2. Solve it through the engine
//	eng := layout.New(cache.NewNullCache(), log.New(os.Stderr))
//	defer eng.Close()
//	l, _ := eng.Solve(context.Background(), problem)
//
//	// 3. Render to SVG
//	svg, _ := render.SVG(l)
//	os.WriteFile("diagram.svg", svg, 0o644)
//
// # Main Packages
//
// ## Solving Core
//
// [constraint] - Positional relations between node coordinates: directional
// separations, axis alignments, bounding boxes, and group boundaries,
// batched into labeled source groups. Disjunctions express "exactly one of
// these conjunctive sets".
//
// [arith] - Conjunctive linear-arithmetic core. Constraint sets compile to
// linear programs solved with gonum's simplex; a fingerprint-keyed solution
// cache makes the solver's repeated feasibility probes cheap.
//
// [solver] - Depth-first search over disjunction alternatives with each
// candidate prefix probed against the arithmetic core before recursing.
// Exposes search budgets, tracing and progress hooks, deletion-filter
// conflict diagnosis, and hidden-node constraint drops.
//
// [cyclic] - Expands ring fragments into the disjunction of their
// rotational arrangements so cyclic requirements fit the positional
// vocabulary.
//
// ## Orchestration
//
// [layout] - The Problem and Layout types plus the caching solve Engine:
// hash the problem, consult the cache, run the solver, assemble the placed
// diagram with conflicts and stats, write the result back. Layouts
// round-trip through JSON for files, caches, and the API.
//
// ## Input and Output
//
// [spec] - YAML problem documents: nodes, edges, groups, constraint entries
// (orientation, alignment, bounding_box, group), cyclic fragments, hidden
// nodes, and per-document solve overrides.
//
// [diagram] - The validated node/edge/group model problem documents build
// against.
//
// [render] - Output artifacts: a native SVG renderer, Graphviz DOT export,
// and PDF/PNG conversion via rsvg-convert.
//
// ## Infrastructure
//
// [cache] - Byte cache behind a Get/Set/Delete interface: FileCache for the
// CLI, RedisCache for shared deployments, NullCache to disable caching.
// Keyers derive stable cache keys from problem hashes and solve options.
//
// [store] - Persisted layouts addressed by id: MongoStore for the API
// server, MemStore for tests.
//
// [observability] - Process-wide hook registry the engine, caches, and
// renderers report into.
//
// [errors] - Structured error codes shared by the CLI and API.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Common Workflows
//
// Solve a hand-built problem without an engine:
//
//	p := solver.Problem{
//	    Nodes: []string{"a", "b"},
//	    Groups: []constraint.SourceGroup{{
//	        Label:       "ordering",
//	        Constraints: []constraint.Positional{constraint.Left("a", "b", 40)},
//	    }},
//	}
//	res, _ := solver.Solve(p, solver.Options{})
//	bx := res.Assignment[constraint.Var{Node: "b", Axis: constraint.X}]
//
// Expand a ring fragment into its rotational alternatives:
//
//	dis := cyclic.Expand(cyclic.Fragment{"a", "b", "c"}, cyclic.Clockwise, 120, 40, 40)
//
// Diagnose why required rules cannot hold together:
//
//	entries, _ := solver.Diagnose(p.Nodes, p.Groups)
//	for _, e := range entries {
//	    fmt.Println(e)
//	}
//
// Convert a rendered SVG:
//
//	png, _ := render.ToPNG(svg, 2.0)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/solver/...    # Specific package
//	go test -run Example        # Examples only
//
// [solver]: https://pkg.go.dev/github.com/matzehuels/orrery/pkg/solver
// [layout]: https://pkg.go.dev/github.com/matzehuels/orrery/pkg/layout
// [spec]: https://pkg.go.dev/github.com/matzehuels/orrery/pkg/spec
// [render]: https://pkg.go.dev/github.com/matzehuels/orrery/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/orrery/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/orrery/pkg/store
// [constraint]: https://pkg.go.dev/github.com/matzehuels/orrery/pkg/constraint
// [arith]: https://pkg.go.dev/github.com/matzehuels/orrery/pkg/arith
// [cyclic]: https://pkg.go.dev/github.com/matzehuels/orrery/pkg/cyclic
// [diagram]: https://pkg.go.dev/github.com/matzehuels/orrery/pkg/diagram
// [observability]: https://pkg.go.dev/github.com/matzehuels/orrery/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/orrery/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/orrery/pkg/buildinfo
package pkg
