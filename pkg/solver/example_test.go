package solver_test

import (
	"fmt"

	"github.com/matzehuels/orrery/pkg/constraint"
	"github.com/matzehuels/orrery/pkg/solver"
)

func ExampleSolve() {
	p := solver.Problem{
		Nodes: []string{"login", "dashboard"},
		Groups: []constraint.SourceGroup{{
			Label:       "flow",
			Constraints: []constraint.Positional{constraint.Left("login", "dashboard", 40)},
		}},
	}

	res, err := solver.Solve(p, solver.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	gap := res.Assignment[constraint.Var{Node: "dashboard", Axis: constraint.X}] -
		res.Assignment[constraint.Var{Node: "login", Axis: constraint.X}]
	fmt.Println("outcome:", res.Outcome)
	fmt.Println("gap respected:", gap >= 40)
	// Output:
	// outcome: satisfied
	// gap respected: true
}

func ExampleSolve_alternatives() {
	// Two candidate spots for the panel; the first feasible one wins.
	p := solver.Problem{
		Nodes: []string{"panel"},
		Disjunctions: []constraint.Disjunction{{
			constraint.Set{constraint.InBox("panel", constraint.Rect{MinX: 200, MinY: 250, MaxX: 200, MaxY: 250})},
			constraint.Set{constraint.InBox("panel", constraint.Rect{MinX: 250, MinY: 200, MaxX: 250, MaxY: 200})},
		}},
	}

	res, err := solver.Solve(p, solver.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("outcome:", res.Outcome)
	fmt.Println("chosen:", res.Chosen)
	// Output:
	// outcome: satisfied
	// chosen: [0]
}

func ExampleSolve_conflict() {
	p := solver.Problem{
		Nodes: []string{"a", "b"},
		Groups: []constraint.SourceGroup{
			{Label: "a before b", Constraints: []constraint.Positional{constraint.Left("a", "b", 10)}},
			{Label: "b before a", Constraints: []constraint.Positional{constraint.Left("b", "a", 10)}},
		},
	}

	res, err := solver.Solve(p, solver.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("outcome:", res.Outcome)
	for _, e := range res.Conflicts {
		fmt.Println(e)
	}
	// Output:
	// outcome: unsatisfiable
	// a before b: a left of b (gap 10)
	// b before a: b left of a (gap 10)
}
