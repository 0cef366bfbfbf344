// Package solver searches for a satisfiable combination of constraint
// alternatives and explains failures.
//
// # Overview
//
// A layout problem is one always-required batch of constraints plus zero or
// more disjunctions, each offering alternative conjunctive sets (typically
// the rotations of a ring, expanded by package cyclic). [Solve] walks the
// disjunctions depth-first, committing to one alternative per level, and
// returns the first combination whose union with the required constraints
// is satisfiable.
//
// # Search
//
// At each level every alternative is tried in list order. Before recursing,
// the partial combination is probed for feasibility against the arithmetic
// core; an infeasible prefix is abandoned immediately, which keeps the
// worst-case exponential search tractable on real diagrams. The first
// feasible full combination wins. This makes layouts order-sensitive and
// reproducible: identical inputs yield identical results, chosen
// alternatives included.
//
// Probes draw reset systems from a bounded pool and share one expression
// cache, both owned by the running solve and discarded with it. The search
// is synchronous and single-threaded; callers needing bounded latency set
// [Options.Budget], and a search that exhausts its budget reports
// [OutcomeBudget] rather than claiming unsatisfiability it has not proven.
//
// # Failure Reporting
//
// When the required constraints alone are unsatisfiable, [Diagnose] runs a
// deletion filter over the source groups: each group is tentatively removed
// and the remainder re-checked, so the surviving groups form a minimal
// conflicting set. The resulting [ConflictEntry] values pair each source
// label with the derived constraints implicated, ready for tabular display.
//
// Hidden nodes never fail a solve. [DropHidden] removes every constraint
// touching a hidden node before solving and surfaces each removal as a
// conflict entry on the hiding directive, so the caller always learns what
// was dropped even when the remainder lays out cleanly.
//
// # Tracing
//
// A [Tracer] observes dead ends during the search. [LoggingTracer] writes
// each backtrack point to an io.Writer; the default tracer does nothing.
package solver
