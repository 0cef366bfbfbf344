// Package arith provides the conjunctive linear-arithmetic core that
// positional constraints are solved against.
//
// # Overview
//
// Orrery reduces diagram layout to linear arithmetic: every positional
// constraint lowers to one or more linear equalities and inequalities over
// node coordinates. This package owns that lowering and the feasibility
// check. A [System] accumulates constraints over registered variables and
// [System.Solve] reports whether the conjunction is satisfiable, along with
// one satisfying assignment.
//
// Satisfiability is decided with the simplex method from
// gonum.org/v1/gonum/optimize/convex/lp under a zero objective: any basic
// feasible solution proves the system satisfiable, and its vertex doubles as
// the returned coordinate assignment.
//
// # Basic Usage
//
// Create a session cache with [NewCache], a system with [NewSystem], register
// the variables in play, and add constraints:
//
//	cache := arith.NewCache()
//	sys := arith.NewSystem(cache)
//	sys.AddVar(constraint.Var{Node: "a", Axis: constraint.X})
//	sys.AddVar(constraint.Var{Node: "b", Axis: constraint.X})
//	sys.Add(constraint.Left("a", "b", 40))
//	sol, err := sys.Solve()
//
// Adding a constraint whose nodes were never registered fails with
// [ErrUnknownVariable]; dropping constraints on hidden nodes is the caller's
// job, before submission. Group boundaries are the one exception: their
// synthetic corner variables are registered on first use.
//
// # Expression Cache
//
// Constraint lowering produces many structurally identical derived terms of
// the form variable ± constant (a cycle of n nodes alone yields n·(n−1)
// pairwise separations sharing a handful of terms). A [Cache] interns these
// by (variable, operation, constant) so each distinct term is allocated
// once per solve session. The cache is passed in explicitly, is owned by
// exactly one session, and is discarded with it; nothing persists across
// solves.
//
// # Solver Reuse
//
// Backtracking search performs many short-lived feasibility probes. A [Pool]
// keeps up to ten reset [System] instances for reuse so deep searches do not
// reallocate rows and registries at every node. Pools share the session
// cache and, like it, must not be shared between concurrent sessions.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent use. A cache, the systems
// built on it, and the pool that recycles them belong to a single
// synchronous solve session.
package arith
