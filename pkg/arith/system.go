package arith

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/matzehuels/orrery/pkg/constraint"
)

// ErrUnknownVariable is returned by [System.Add] when a constraint references
// a node whose variables were never registered. Constraints on hidden or
// removed nodes must be dropped before submission, not submitted and caught.
var ErrUnknownVariable = errors.New("constraint references unregistered variable")

// zeroTol bounds the residual of an all-constant row before it is treated as
// violated during assembly.
const zeroTol = 1e-9

type rel int

const (
	relLE rel = iota
	relEQ
)

type term struct {
	v     constraint.Var
	coeff float64
}

type row struct {
	terms []term
	rel   rel
	rhs   float64
}

// Solution is the outcome of a conjunctive solve. When Satisfiable is true,
// Values holds one coordinate per registered variable; variables no
// constraint touches stay at zero. When false, Values is nil.
type Solution struct {
	Satisfiable bool
	Values      map[constraint.Var]float64
}

// System is one conjunctive linear-arithmetic problem: a variable registry
// plus the rows lowered from positional constraints. Systems are built, and
// solved, within a single session; use [System.Reset] to recycle one.
type System struct {
	cache *Cache
	index map[constraint.Var]int
	order []constraint.Var
	rows  []row
}

// NewSystem returns an empty system using the given session cache for
// derived terms. A nil cache gets a private one.
func NewSystem(cache *Cache) *System {
	if cache == nil {
		cache = NewCache()
	}
	return &System{
		cache: cache,
		index: make(map[constraint.Var]int),
	}
}

// Cache returns the session cache the system lowers terms through.
func (s *System) Cache() *Cache {
	return s.cache
}

// AddVar registers a variable. Registering the same variable again is a
// no-op; registration order fixes the assembly order of the final matrix.
func (s *System) AddVar(v constraint.Var) {
	if _, ok := s.index[v]; ok {
		return
	}
	s.index[v] = len(s.order)
	s.order = append(s.order, v)
}

// AddNode registers both coordinates of a node.
func (s *System) AddNode(node string) {
	s.AddVar(constraint.Var{Node: node, Axis: constraint.X})
	s.AddVar(constraint.Var{Node: node, Axis: constraint.Y})
}

// HasVar reports whether the variable is registered.
func (s *System) HasVar(v constraint.Var) bool {
	_, ok := s.index[v]
	return ok
}

// Vars returns the registered variables in registration order.
func (s *System) Vars() []constraint.Var {
	out := make([]constraint.Var, len(s.order))
	copy(out, s.order)
	return out
}

// Rows reports how many linear rows have been lowered so far.
func (s *System) Rows() int {
	return len(s.rows)
}

// Add lowers one positional constraint into linear rows. Node variables must
// already be registered; only the synthetic corner variables of a group
// boundary are registered on first use. Structural defects surface as
// [constraint.ErrBadConstraint], missing registrations as
// [ErrUnknownVariable].
func (s *System) Add(p constraint.Positional) error {
	if err := p.Validate(); err != nil {
		return err
	}

	switch p.Kind {
	case constraint.KindLeft:
		ax := constraint.Var{Node: p.A, Axis: constraint.X}
		bx := constraint.Var{Node: p.B, Axis: constraint.X}
		if err := s.need(ax, bx); err != nil {
			return err
		}
		s.pair(s.cache.Expr(ax, OpAdd, p.MinGap), relLE, s.cache.Expr(bx, OpAdd, 0))

	case constraint.KindTop:
		ay := constraint.Var{Node: p.A, Axis: constraint.Y}
		by := constraint.Var{Node: p.B, Axis: constraint.Y}
		if err := s.need(ay, by); err != nil {
			return err
		}
		s.pair(s.cache.Expr(ay, OpAdd, p.MinGap), relLE, s.cache.Expr(by, OpAdd, 0))

	case constraint.KindAlign:
		av := constraint.Var{Node: p.A, Axis: p.Axis}
		bv := constraint.Var{Node: p.B, Axis: p.Axis}
		if err := s.need(av, bv); err != nil {
			return err
		}
		s.pair(s.cache.Expr(av, OpAdd, 0), relEQ, s.cache.Expr(bv, OpAdd, 0))

	case constraint.KindBoundingBox:
		nx := constraint.Var{Node: p.Node, Axis: constraint.X}
		ny := constraint.Var{Node: p.Node, Axis: constraint.Y}
		if err := s.need(nx, ny); err != nil {
			return err
		}
		s.lower(nx, p.Rect.MinX)
		s.upper(nx, p.Rect.MaxX)
		s.lower(ny, p.Rect.MinY)
		s.upper(ny, p.Rect.MaxY)

	case constraint.KindGroupBoundary:
		minX := constraint.Var{Node: constraint.GroupMin(p.Group), Axis: constraint.X}
		minY := constraint.Var{Node: constraint.GroupMin(p.Group), Axis: constraint.Y}
		maxX := constraint.Var{Node: constraint.GroupMax(p.Group), Axis: constraint.X}
		maxY := constraint.Var{Node: constraint.GroupMax(p.Group), Axis: constraint.Y}
		s.AddVar(minX)
		s.AddVar(minY)
		s.AddVar(maxX)
		s.AddVar(maxY)

		// Box validity holds even for an empty group.
		s.pair(s.cache.Expr(minX, OpAdd, 0), relLE, s.cache.Expr(maxX, OpAdd, 0))
		s.pair(s.cache.Expr(minY, OpAdd, 0), relLE, s.cache.Expr(maxY, OpAdd, 0))

		for _, id := range p.Inner {
			mx := constraint.Var{Node: id, Axis: constraint.X}
			my := constraint.Var{Node: id, Axis: constraint.Y}
			if err := s.need(mx, my); err != nil {
				return err
			}
			s.pair(s.cache.Expr(minX, OpAdd, p.Padding), relLE, s.cache.Expr(mx, OpAdd, 0))
			s.pair(s.cache.Expr(mx, OpAdd, p.Padding), relLE, s.cache.Expr(maxX, OpAdd, 0))
			s.pair(s.cache.Expr(minY, OpAdd, p.Padding), relLE, s.cache.Expr(my, OpAdd, 0))
			s.pair(s.cache.Expr(my, OpAdd, p.Padding), relLE, s.cache.Expr(maxY, OpAdd, 0))
		}
	}

	return nil
}

// AddSet lowers every constraint of a conjunctive set, stopping at the first
// failure.
func (s *System) AddSet(set constraint.Set) error {
	for _, p := range set {
		if err := s.Add(p); err != nil {
			return err
		}
	}
	return nil
}

// Reset clears the rows and the variable registry so the system can be
// reused. The session cache is retained.
func (s *System) Reset() {
	s.index = make(map[constraint.Var]int)
	s.order = s.order[:0]
	s.rows = s.rows[:0]
}

func (s *System) need(vars ...constraint.Var) error {
	for _, v := range vars {
		if _, ok := s.index[v]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownVariable, v)
		}
	}
	return nil
}

// pair lowers lhs rel rhs into a two-term row. Both sides are derived terms
// over one variable each, so the row is c_lhs·v_lhs − c_rhs·v_rhs ≤/= offset
// difference.
func (s *System) pair(lhs *Expr, rl rel, rhs *Expr) {
	s.rows = append(s.rows, row{
		terms: []term{{lhs.Var, 1}, {rhs.Var, -1}},
		rel:   rl,
		rhs:   rhs.Offset() - lhs.Offset(),
	})
}

// lower appends v ≥ c, stored in ≤ normal form.
func (s *System) lower(v constraint.Var, c float64) {
	s.rows = append(s.rows, row{terms: []term{{v, -1}}, rel: relLE, rhs: -c})
}

// upper appends v ≤ c.
func (s *System) upper(v constraint.Var, c float64) {
	s.rows = append(s.rows, row{terms: []term{{v, 1}}, rel: relLE, rhs: c})
}

type flatRow struct {
	coeff map[int]float64
	eq    bool
	rhs   float64
}

func (f flatRow) key() string {
	idx := make([]int, 0, len(f.coeff))
	for i := range f.coeff {
		idx = append(idx, i)
	}
	sort.Ints(idx)

	var b strings.Builder
	if f.eq {
		b.WriteString("=|")
	} else {
		b.WriteString("<|")
	}
	for _, i := range idx {
		fmt.Fprintf(&b, "%d:%g|", i, f.coeff[i])
	}
	fmt.Fprintf(&b, "%g", f.rhs)
	return b.String()
}

// Solve decides whether the accumulated conjunction is satisfiable. The rows
// are assembled into simplex standard form (free variables split into
// nonnegative pairs, one slack per inequality) and fed to lp.Simplex with a
// zero objective, so any feasible vertex both proves satisfiability and
// provides the assignment. Unsatisfiability is a normal outcome, not an
// error; only solver breakdowns surface as errors.
func (s *System) Solve() (Solution, error) {
	vals := make(map[constraint.Var]float64, len(s.order))
	for _, v := range s.order {
		vals[v] = 0
	}

	// Flatten rows to per-column coefficients. Rows whose variables cancel
	// become pure constant checks and are settled here; duplicates are
	// merged so redundant constraints do not inflate the matrix.
	flats := make([]flatRow, 0, len(s.rows))
	seen := make(map[string]bool, len(s.rows))
	referenced := make(map[int]bool)
	for _, r := range s.rows {
		coeff := make(map[int]float64, len(r.terms))
		for _, t := range r.terms {
			coeff[s.index[t.v]] += t.coeff
		}
		for i, c := range coeff {
			if c == 0 {
				delete(coeff, i)
			}
		}

		if len(coeff) == 0 {
			if r.rel == relEQ && math.Abs(r.rhs) > zeroTol {
				return Solution{}, nil
			}
			if r.rel == relLE && r.rhs < -zeroTol {
				return Solution{}, nil
			}
			continue
		}

		f := flatRow{coeff: coeff, eq: r.rel == relEQ, rhs: r.rhs}
		if k := f.key(); !seen[k] {
			seen[k] = true
			flats = append(flats, f)
			for i := range coeff {
				referenced[i] = true
			}
		}
	}

	if len(flats) == 0 {
		return Solution{Satisfiable: true, Values: vals}, nil
	}

	// Compact columns to referenced variables so the matrix has no all-zero
	// column; unreferenced variables keep their zero default.
	usedIdx := make([]int, 0, len(referenced))
	for i := range referenced {
		usedIdx = append(usedIdx, i)
	}
	sort.Ints(usedIdx)
	col := make(map[int]int, len(usedIdx))
	for j, i := range usedIdx {
		col[i] = j
	}

	n := len(usedIdx)
	slacks := 0
	for _, f := range flats {
		if !f.eq {
			slacks++
		}
	}

	cols := 2*n + slacks
	data := make([]float64, len(flats)*cols)
	b := make([]float64, len(flats))
	slack := 0
	for i, f := range flats {
		base := i * cols
		for idx, c := range f.coeff {
			j := col[idx]
			data[base+j] = c
			data[base+n+j] = -c
		}
		if !f.eq {
			data[base+2*n+slack] = 1
			slack++
		}
		b[i] = f.rhs
	}

	// Phase one wants componentwise nonnegative b; flip offending rows.
	for i := range b {
		if b[i] < 0 {
			b[i] = -b[i]
			base := i * cols
			for j := base; j < base+cols; j++ {
				data[j] = -data[j]
			}
		}
	}

	a := mat.NewDense(len(flats), cols, data)
	obj := make([]float64, cols)

	_, x, err := lp.Simplex(obj, a, b, 0, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return Solution{}, nil
		}
		return Solution{}, fmt.Errorf("simplex: %w", err)
	}

	for j, i := range usedIdx {
		vals[s.order[i]] = x[j] - x[n+j]
	}
	return Solution{Satisfiable: true, Values: vals}, nil
}
