package arith

import (
	"testing"

	"github.com/matzehuels/orrery/pkg/constraint"
)

func TestCacheInterning(t *testing.T) {
	c := NewCache()
	ax := constraint.Var{Node: "a", Axis: constraint.X}
	bx := constraint.Var{Node: "b", Axis: constraint.X}

	e1 := c.Expr(ax, OpAdd, 10)
	e2 := c.Expr(ax, OpAdd, 10)
	if e1 != e2 {
		t.Error("structurally identical terms should intern to one pointer")
	}

	tests := []struct {
		name  string
		other *Expr
	}{
		{"DifferentConstant", c.Expr(ax, OpAdd, 11)},
		{"DifferentOp", c.Expr(ax, OpSub, 10)},
		{"DifferentVar", c.Expr(bx, OpAdd, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.other == e1 {
				t.Error("distinct terms should not share a pointer")
			}
		})
	}

	if got := c.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
}

func TestCacheReset(t *testing.T) {
	c := NewCache()
	v := constraint.Var{Node: "a", Axis: constraint.Y}

	before := c.Expr(v, OpAdd, 5)
	c.Reset()

	if got := c.Len(); got != 0 {
		t.Errorf("Len() after reset = %d, want 0", got)
	}
	if after := c.Expr(v, OpAdd, 5); after == before {
		t.Error("reset cache should not hand out pre-reset pointers")
	}
}

func TestExprValue(t *testing.T) {
	c := NewCache()
	v := constraint.Var{Node: "n", Axis: constraint.X}

	tests := []struct {
		name string
		e    *Expr
		x    float64
		want float64
	}{
		{"Add", c.Expr(v, OpAdd, 12), 30, 42},
		{"Sub", c.Expr(v, OpSub, 12), 30, 18},
		{"Zero", c.Expr(v, OpAdd, 0), 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Value(tt.x); got != tt.want {
				t.Errorf("Value(%g) = %g, want %g", tt.x, got, tt.want)
			}
		})
	}
}

func TestExprString(t *testing.T) {
	c := NewCache()
	v := constraint.Var{Node: "n", Axis: constraint.X}

	tests := []struct {
		name string
		e    *Expr
		want string
	}{
		{"Add", c.Expr(v, OpAdd, 12), "n.x + 12"},
		{"Sub", c.Expr(v, OpSub, 3), "n.x - 3"},
		{"Bare", c.Expr(v, OpAdd, 0), "n.x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
