package constraint

import "errors"

// ErrEmptyDisjunction is returned by [NewDisjunction] when no alternatives
// are supplied. A disjunction with zero alternatives has no satisfiable
// reading and is treated as a structural error, not an unsatisfiable solve.
var ErrEmptyDisjunction = errors.New("disjunction needs at least one alternative")

// Set is an ordered conjunction of positional constraints. All members must
// hold simultaneously. Order is preserved from construction; it carries no
// semantic weight within a set but keeps derived systems and diagnostics
// deterministic.
type Set []Positional

// Vars returns the union of variables across the set, in first-seen order.
func (s Set) Vars() []Var {
	seen := make(map[Var]struct{})
	var out []Var
	for _, p := range s {
		for _, v := range p.Vars() {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// Disjunction is an ordered list of alternative sets, exactly one of which
// must be chosen. Alternative order is significant: the solver commits to
// the first alternative that extends to a feasible total combination.
type Disjunction []Set

// NewDisjunction builds a disjunction from its alternatives, rejecting the
// empty case with [ErrEmptyDisjunction].
func NewDisjunction(alternatives ...Set) (Disjunction, error) {
	if len(alternatives) == 0 {
		return nil, ErrEmptyDisjunction
	}
	return Disjunction(alternatives), nil
}

// SourceGroup is a labeled batch of required constraints that share an
// origin, such as one edge of the diagram or one user rule. Conflict
// diagnosis reports at source-group granularity so that an infeasible
// problem points back at inputs rather than individual inequalities.
type SourceGroup struct {
	Label       string
	Constraints []Positional
}

// Vars returns the union of variables across the group, in first-seen order.
func (g SourceGroup) Vars() []Var {
	return Set(g.Constraints).Vars()
}

// Touches reports whether any constraint in the group references the node.
func (g SourceGroup) Touches(node string) bool {
	for _, p := range g.Constraints {
		if p.Touches(node) {
			return true
		}
	}
	return false
}
