package layout_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orrery/pkg/constraint"
	"github.com/matzehuels/orrery/pkg/diagram"
	"github.com/matzehuels/orrery/pkg/layout"
)

// ExampleEngine_Solve lays out a two-node flow and reads back the
// placements.
func ExampleEngine_Solve() {
	model := diagram.New(nil)
	_ = model.AddNode(diagram.Node{ID: "a", Label: "Anchor"})
	_ = model.AddNode(diagram.Node{ID: "b", Label: "Follower"})
	_ = model.AddEdge(diagram.Edge{From: "a", To: "b"})

	eng := layout.New(nil, log.New(io.Discard))
	defer eng.Close()

	l, err := eng.Solve(context.Background(), layout.Problem{
		Diagram: model,
		Groups: []constraint.SourceGroup{{
			Label:       "flow",
			Constraints: []constraint.Positional{constraint.Left("a", "b", 40)},
		}},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	a, _ := l.Node("a")
	b, _ := l.Node("b")
	fmt.Println("outcome:", l.Outcome)
	fmt.Println("edges:", len(l.Edges))
	fmt.Println("gap respected:", b.X-a.X >= 40)
	// Output:
	// outcome: satisfied
	// edges: 1
	// gap respected: true
}

// ExampleEngine_Solve_hidden hides a node and shows how the removal is
// reported alongside the successful layout.
func ExampleEngine_Solve_hidden() {
	model := diagram.New(nil)
	for _, id := range []string{"a", "b", "c"} {
		_ = model.AddNode(diagram.Node{ID: id})
	}

	eng := layout.New(nil, log.New(io.Discard))
	defer eng.Close()

	l, err := eng.Solve(context.Background(), layout.Problem{
		Diagram: model,
		Groups: []constraint.SourceGroup{{
			Label: "chain",
			Constraints: []constraint.Positional{
				constraint.Left("a", "b", 40),
				constraint.Left("b", "c", 40),
			},
		}},
		Hidden: []string{"b"},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("outcome:", l.Outcome)
	fmt.Println("placed:", len(l.Nodes))
	for _, row := range l.Conflicts {
		fmt.Printf("%s: %d constraints removed\n", row.Source, len(row.Constraints))
	}
	// Output:
	// outcome: satisfied
	// placed: 2
	// hide node "b": 2 constraints removed
}
