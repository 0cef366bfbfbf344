package arith

import (
	"errors"
	"math"
	"testing"

	"github.com/matzehuels/orrery/pkg/constraint"
)

func vx(node string) constraint.Var { return constraint.Var{Node: node, Axis: constraint.X} }
func vy(node string) constraint.Var { return constraint.Var{Node: node, Axis: constraint.Y} }

// pin confines both coordinates of a node to a single point.
func pin(node string, x, y float64) constraint.Positional {
	return constraint.InBox(node, constraint.Rect{MinX: x, MinY: y, MaxX: x, MaxY: y})
}

func TestSystemSolve(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []string
		cs      []constraint.Positional
		wantSat bool
		check   func(t *testing.T, vals map[constraint.Var]float64)
	}{
		{
			name:    "Empty",
			nodes:   []string{"a"},
			wantSat: true,
			check: func(t *testing.T, vals map[constraint.Var]float64) {
				if vals[vx("a")] != 0 || vals[vy("a")] != 0 {
					t.Errorf("unconstrained node = (%g,%g), want origin", vals[vx("a")], vals[vy("a")])
				}
			},
		},
		{
			name:    "LeftGap",
			nodes:   []string{"a", "b"},
			cs:      []constraint.Positional{constraint.Left("a", "b", 40)},
			wantSat: true,
			check: func(t *testing.T, vals map[constraint.Var]float64) {
				if gap := vals[vx("b")] - vals[vx("a")]; gap < 40-1e-6 {
					t.Errorf("x gap = %g, want >= 40", gap)
				}
			},
		},
		{
			name:    "TopGap",
			nodes:   []string{"a", "b"},
			cs:      []constraint.Positional{constraint.Top("a", "b", 25)},
			wantSat: true,
			check: func(t *testing.T, vals map[constraint.Var]float64) {
				if gap := vals[vy("b")] - vals[vy("a")]; gap < 25-1e-6 {
					t.Errorf("y gap = %g, want >= 25", gap)
				}
			},
		},
		{
			name:  "AlignPinned",
			nodes: []string{"a", "b"},
			cs: []constraint.Positional{
				pin("a", 10, 70),
				constraint.Align(constraint.Y, "a", "b"),
			},
			wantSat: true,
			check: func(t *testing.T, vals map[constraint.Var]float64) {
				if diff := math.Abs(vals[vy("a")] - vals[vy("b")]); diff > 1e-6 {
					t.Errorf("aligned ys differ by %g", diff)
				}
			},
		},
		{
			name:    "PinExact",
			nodes:   []string{"n"},
			cs:      []constraint.Positional{pin("n", 100, 250)},
			wantSat: true,
			check: func(t *testing.T, vals map[constraint.Var]float64) {
				if math.Abs(vals[vx("n")]-100) > 1e-6 {
					t.Errorf("x = %g, want 100", vals[vx("n")])
				}
				if math.Abs(vals[vy("n")]-250) > 1e-6 {
					t.Errorf("y = %g, want 250", vals[vy("n")])
				}
			},
		},
		{
			name:  "OppositeOrdersConflict",
			nodes: []string{"a", "b"},
			cs: []constraint.Positional{
				constraint.Left("a", "b", 10),
				constraint.Left("b", "a", 10),
			},
			wantSat: false,
		},
		{
			name:  "ChainThroughAlignment",
			nodes: []string{"a", "b", "c"},
			cs: []constraint.Positional{
				constraint.Left("a", "b", 10),
				constraint.Align(constraint.X, "b", "c"),
				constraint.Left("c", "a", 10),
			},
			wantSat: false,
		},
		{
			name:  "BoxTooSmallForGap",
			nodes: []string{"a", "b"},
			cs: []constraint.Positional{
				constraint.InBox("a", constraint.Rect{MinX: 0, MinY: 0, MaxX: 30, MaxY: 30}),
				constraint.InBox("b", constraint.Rect{MinX: 0, MinY: 0, MaxX: 30, MaxY: 30}),
				constraint.Left("a", "b", 50),
			},
			wantSat: false,
		},
		{
			name:  "GroupContainsMembers",
			nodes: []string{"m1", "m2"},
			cs: []constraint.Positional{
				pin("m1", 10, 10),
				pin("m2", 90, 40),
				constraint.Boundary("g", 5, "m1", "m2"),
			},
			wantSat: true,
			check: func(t *testing.T, vals map[constraint.Var]float64) {
				minX := vals[vx(constraint.GroupMin("g"))]
				maxX := vals[vx(constraint.GroupMax("g"))]
				if minX > 10-5+1e-6 {
					t.Errorf("group min x = %g, want <= 5", minX)
				}
				if maxX < 90+5-1e-6 {
					t.Errorf("group max x = %g, want >= 95", maxX)
				}
			},
		},
		{
			name:  "GroupBoxCannotFit",
			nodes: []string{"m1", "m2"},
			cs: []constraint.Positional{
				pin("m1", 0, 0),
				pin("m2", 100, 0),
				constraint.Boundary("g", 0, "m1", "m2"),
				constraint.InBox(constraint.GroupMax("g"), constraint.Rect{MinX: -1000, MinY: -1000, MaxX: 50, MaxY: 1000}),
			},
			wantSat: false,
		},
		{
			name:  "DuplicateRowsCollapse",
			nodes: []string{"a", "b"},
			cs: []constraint.Positional{
				constraint.Left("a", "b", 40),
				constraint.Left("a", "b", 40),
				constraint.Align(constraint.Y, "a", "b"),
				constraint.Align(constraint.Y, "a", "b"),
			},
			wantSat: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewSystem(NewCache())
			for _, n := range tt.nodes {
				sys.AddNode(n)
			}
			for _, p := range tt.cs {
				if err := sys.Add(p); err != nil {
					t.Fatalf("Add(%s): %v", p, err)
				}
			}

			sol, err := sys.Solve()
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}
			if sol.Satisfiable != tt.wantSat {
				t.Fatalf("Satisfiable = %v, want %v", sol.Satisfiable, tt.wantSat)
			}
			if !tt.wantSat {
				if sol.Values != nil {
					t.Error("unsatisfiable solution should carry no values")
				}
				return
			}
			if tt.check != nil {
				tt.check(t, sol.Values)
			}
		})
	}
}

func TestSystemUnknownVariable(t *testing.T) {
	sys := NewSystem(NewCache())
	sys.AddNode("a")

	err := sys.Add(constraint.Left("a", "ghost", 10))
	if !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("error = %v, want ErrUnknownVariable", err)
	}

	err = sys.Add(constraint.Boundary("g", 0, "ghost"))
	if !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("boundary error = %v, want ErrUnknownVariable", err)
	}
}

func TestSystemRejectsMalformed(t *testing.T) {
	sys := NewSystem(NewCache())
	sys.AddNode("a")

	err := sys.Add(constraint.Left("a", "a", 10))
	if !errors.Is(err, constraint.ErrBadConstraint) {
		t.Errorf("error = %v, want ErrBadConstraint", err)
	}
}

func TestSystemSharedTerms(t *testing.T) {
	cache := NewCache()
	sys := NewSystem(cache)
	sys.AddNode("a")
	sys.AddNode("b")
	sys.AddNode("c")

	// Both separations derive the same a.x + 40 term.
	if err := sys.Add(constraint.Left("a", "b", 40)); err != nil {
		t.Fatal(err)
	}
	if err := sys.Add(constraint.Left("a", "c", 40)); err != nil {
		t.Fatal(err)
	}

	// a.x+40, b.x, c.x: three distinct terms despite four expression uses.
	if got := cache.Len(); got != 3 {
		t.Errorf("cache Len() = %d, want 3", got)
	}
}

func TestSystemReset(t *testing.T) {
	cache := NewCache()
	sys := NewSystem(cache)
	sys.AddNode("a")
	sys.AddNode("b")
	if err := sys.Add(constraint.Left("a", "b", 10)); err != nil {
		t.Fatal(err)
	}

	sys.Reset()

	if got := sys.Rows(); got != 0 {
		t.Errorf("Rows() = %d, want 0", got)
	}
	if got := len(sys.Vars()); got != 0 {
		t.Errorf("Vars() = %d, want 0", got)
	}
	if sys.Cache() != cache {
		t.Error("Reset should keep the session cache")
	}
	if sys.HasVar(vx("a")) {
		t.Error("reset system should not remember variables")
	}
}

func TestSystemSolveIdempotent(t *testing.T) {
	build := func() *System {
		sys := NewSystem(NewCache())
		sys.AddNode("a")
		sys.AddNode("b")
		_ = sys.Add(pin("a", 0, 0))
		_ = sys.Add(constraint.Left("a", "b", 30))
		_ = sys.Add(constraint.Align(constraint.Y, "a", "b"))
		return sys
	}

	s1, err := build().Solve()
	if err != nil {
		t.Fatal(err)
	}
	s2, err := build().Solve()
	if err != nil {
		t.Fatal(err)
	}

	if s1.Satisfiable != s2.Satisfiable {
		t.Fatal("satisfiability differs between identical solves")
	}
	for v, x := range s1.Values {
		if math.Abs(s2.Values[v]-x) > 1e-9 {
			t.Errorf("%s = %g then %g", v, x, s2.Values[v])
		}
	}
}
