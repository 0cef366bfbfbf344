package arith

import (
	"fmt"

	"github.com/matzehuels/orrery/pkg/constraint"
)

// Op is the arithmetic operation of a derived term.
type Op int

const (
	// OpAdd derives variable + constant.
	OpAdd Op = iota
	// OpSub derives variable - constant.
	OpSub
)

// String returns "+" or "-".
func (o Op) String() string {
	if o == OpSub {
		return "-"
	}
	return "+"
}

// Expr is a derived affine term over a single variable: v + c or v - c.
// Exprs are interned by a [Cache]; within one session, structurally equal
// terms are the same pointer.
type Expr struct {
	Var      constraint.Var
	Op       Op
	Constant float64
}

// Offset returns the term's signed constant part.
func (e *Expr) Offset() float64 {
	if e.Op == OpSub {
		return -e.Constant
	}
	return e.Constant
}

// Value evaluates the term given the variable's value.
func (e *Expr) Value(x float64) float64 {
	return x + e.Offset()
}

// String returns the "v + c" form, omitting a zero constant.
func (e *Expr) String() string {
	if e.Constant == 0 {
		return e.Var.String()
	}
	return fmt.Sprintf("%s %s %g", e.Var, e.Op, e.Constant)
}

type exprKey struct {
	v  constraint.Var
	op Op
	c  float64
}

// Cache interns derived terms for one solve session. Structurally identical
// terms generated by different constraints share one allocation; callers may
// rely on pointer identity for terms obtained from the same cache.
//
// A Cache belongs to exactly one session and is not safe for concurrent use.
type Cache struct {
	exprs map[exprKey]*Expr
}

// NewCache returns an empty session cache.
func NewCache() *Cache {
	return &Cache{exprs: make(map[exprKey]*Expr)}
}

// Expr returns the interned term v op c, allocating it on first use.
func (c *Cache) Expr(v constraint.Var, op Op, k float64) *Expr {
	key := exprKey{v: v, op: op, c: k}
	if e, ok := c.exprs[key]; ok {
		return e
	}
	e := &Expr{Var: v, Op: op, Constant: k}
	c.exprs[key] = e
	return e
}

// Len reports the number of distinct interned terms.
func (c *Cache) Len() int {
	return len(c.exprs)
}

// Reset discards all interned terms. Sessions call this on disposal so that
// no expression outlives its solve.
func (c *Cache) Reset() {
	c.exprs = make(map[exprKey]*Expr)
}
