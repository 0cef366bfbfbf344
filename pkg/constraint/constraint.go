package constraint

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadConstraint is returned by [Positional.Validate] when a constraint
	// is missing operands for its kind, names the same node twice where two
	// distinct nodes are required, or carries an inverted rectangle.
	ErrBadConstraint = errors.New("malformed constraint")

	// ErrUnknownNode is returned by [Validate] when a constraint references a
	// node id that is not present in the registry of known nodes.
	ErrUnknownNode = errors.New("constraint references unknown node")
)

// Axis selects one of the two coordinate axes.
type Axis int

const (
	// X is the horizontal axis; values grow rightward.
	X Axis = iota
	// Y is the vertical axis; values grow downward.
	Y
)

// String returns "x" or "y".
func (a Axis) String() string {
	if a == Y {
		return "y"
	}
	return "x"
}

// Var identifies a scalar unknown: one coordinate of one node. Identity is
// the (node, axis) pair; two Vars with equal fields are the same variable.
type Var struct {
	Node string
	Axis Axis
}

// String returns the "node.axis" form used in diagnostics and traces.
func (v Var) String() string {
	return v.Node + "." + v.Axis.String()
}

// Kind discriminates the positional constraint variants. The set is closed;
// consumers switch over it exhaustively.
type Kind int

const (
	// KindLeft orders two nodes horizontally with a minimum gap.
	KindLeft Kind = iota
	// KindTop orders two nodes vertically with a minimum gap.
	KindTop
	// KindAlign equates one coordinate of two nodes.
	KindAlign
	// KindBoundingBox confines a node to an absolute rectangle.
	KindBoundingBox
	// KindGroupBoundary makes a group's box contain its member nodes.
	KindGroupBoundary
)

// String returns the lowercase kind name used in serialized problems.
func (k Kind) String() string {
	switch k {
	case KindLeft:
		return "left"
	case KindTop:
		return "top"
	case KindAlign:
		return "align"
	case KindBoundingBox:
		return "bounding_box"
	case KindGroupBoundary:
		return "group_boundary"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Rect is an axis-aligned rectangle in diagram coordinates.
// Valid rectangles satisfy MinX <= MaxX and MinY <= MaxY.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Positional is one spatial requirement between diagram elements. Which
// fields are meaningful depends on Kind; use the constructors so that only
// the relevant fields are populated.
//
// Positional values are immutable once constructed. The solver never copies
// or rewrites them; sets and disjunctions reference the same underlying
// values throughout a solve.
type Positional struct {
	Kind Kind

	// A and B are the operand node ids for KindLeft, KindTop, and KindAlign.
	A, B string

	// MinGap is the minimum separation for KindLeft and KindTop.
	MinGap float64

	// Axis selects the aligned coordinate for KindAlign.
	Axis Axis

	// Node and Rect describe a KindBoundingBox confinement.
	Node string
	Rect Rect

	// Group, Padding, and Inner describe a KindGroupBoundary: the named
	// group's box must contain every inner node with at least Padding
	// between a node and the box edge.
	Group   string
	Padding float64
	Inner   []string
}

// Left returns a constraint placing a strictly left of b with at least
// minGap between their x coordinates.
func Left(a, b string, minGap float64) Positional {
	return Positional{Kind: KindLeft, A: a, B: b, MinGap: minGap}
}

// Top returns a constraint placing a strictly above b with at least minGap
// between their y coordinates.
func Top(a, b string, minGap float64) Positional {
	return Positional{Kind: KindTop, A: a, B: b, MinGap: minGap}
}

// Align returns a constraint equating the given coordinate of a and b.
func Align(axis Axis, a, b string) Positional {
	return Positional{Kind: KindAlign, Axis: axis, A: a, B: b}
}

// InBox returns a constraint confining node to the rectangle r.
func InBox(node string, r Rect) Positional {
	return Positional{Kind: KindBoundingBox, Node: node, Rect: r}
}

// Boundary returns a constraint requiring the named group's box to contain
// every inner node, keeping at least padding between each node and the box
// edges. The group's corners become synthetic variables (see [GroupMin] and
// [GroupMax]); a boundary with no inner nodes still constrains the box to be
// non-degenerate.
func Boundary(group string, padding float64, inner ...string) Positional {
	return Positional{Kind: KindGroupBoundary, Group: group, Padding: padding, Inner: inner}
}

// GroupMin returns the synthetic node id carrying a group's minimum corner
// (left edge on x, top edge on y). Synthetic ids use a reserved "__...__"
// form that node validation rejects for ordinary nodes.
func GroupMin(group string) string {
	return "__" + group + "_min__"
}

// GroupMax returns the synthetic node id carrying a group's maximum corner
// (right edge on x, bottom edge on y).
func GroupMax(group string) string {
	return "__" + group + "_max__"
}

// String renders the human-readable form used in conflict tables and traces.
func (p Positional) String() string {
	switch p.Kind {
	case KindLeft:
		return fmt.Sprintf("%s left of %s (gap %g)", p.A, p.B, p.MinGap)
	case KindTop:
		return fmt.Sprintf("%s above %s (gap %g)", p.A, p.B, p.MinGap)
	case KindAlign:
		return fmt.Sprintf("%s aligned with %s on %s", p.A, p.B, p.Axis)
	case KindBoundingBox:
		return fmt.Sprintf("%s within [%g,%g %g,%g]", p.Node, p.Rect.MinX, p.Rect.MinY, p.Rect.MaxX, p.Rect.MaxY)
	case KindGroupBoundary:
		return fmt.Sprintf("group %s contains %s (pad %g)", p.Group, strings.Join(p.Inner, ", "), p.Padding)
	}
	return "unknown constraint"
}

// Vars returns every variable the constraint ranges over, including the
// synthetic corner variables of a group boundary. The order is fixed per
// kind so that derived systems are deterministic.
func (p Positional) Vars() []Var {
	switch p.Kind {
	case KindLeft:
		return []Var{{p.A, X}, {p.B, X}}
	case KindTop:
		return []Var{{p.A, Y}, {p.B, Y}}
	case KindAlign:
		return []Var{{p.A, p.Axis}, {p.B, p.Axis}}
	case KindBoundingBox:
		return []Var{{p.Node, X}, {p.Node, Y}}
	case KindGroupBoundary:
		vars := []Var{
			{GroupMin(p.Group), X}, {GroupMin(p.Group), Y},
			{GroupMax(p.Group), X}, {GroupMax(p.Group), Y},
		}
		for _, id := range p.Inner {
			vars = append(vars, Var{id, X}, Var{id, Y})
		}
		return vars
	}
	return nil
}

// Refs returns the element ids the constraint references. Synthetic group
// corners are excluded; the group name itself is included so that hiding a
// group drops its boundary.
func (p Positional) Refs() []string {
	switch p.Kind {
	case KindLeft, KindTop, KindAlign:
		return []string{p.A, p.B}
	case KindBoundingBox:
		return []string{p.Node}
	case KindGroupBoundary:
		refs := make([]string, 0, len(p.Inner)+1)
		refs = append(refs, p.Group)
		refs = append(refs, p.Inner...)
		return refs
	}
	return nil
}

// NodeRefs returns only the ids that must exist as diagram nodes. Unlike
// [Positional.Refs] it omits a boundary's group name, since the boundary
// itself declares the group's box.
func (p Positional) NodeRefs() []string {
	if p.Kind == KindGroupBoundary {
		return p.Inner
	}
	return p.Refs()
}

// Touches reports whether the constraint references the given diagram node,
// directly or as a group member.
func (p Positional) Touches(node string) bool {
	for _, id := range p.Refs() {
		if id == node {
			return true
		}
	}
	return false
}

// Validate checks the constraint's internal structure: operands present for
// its kind, distinct nodes where the relation needs two, and a well-formed
// rectangle for bounding boxes. It does not check node existence; pass the
// result through [Validate] for that.
func (p Positional) Validate() error {
	switch p.Kind {
	case KindLeft, KindTop, KindAlign:
		if p.A == "" || p.B == "" {
			return fmt.Errorf("%w: %s needs two operands", ErrBadConstraint, p.Kind)
		}
		if p.A == p.B {
			return fmt.Errorf("%w: %s relates node %q to itself", ErrBadConstraint, p.Kind, p.A)
		}
	case KindBoundingBox:
		if p.Node == "" {
			return fmt.Errorf("%w: bounding box needs a node", ErrBadConstraint)
		}
		if p.Rect.MinX > p.Rect.MaxX || p.Rect.MinY > p.Rect.MaxY {
			return fmt.Errorf("%w: bounding box for %q has inverted bounds", ErrBadConstraint, p.Node)
		}
	case KindGroupBoundary:
		if p.Group == "" {
			return fmt.Errorf("%w: group boundary needs a group name", ErrBadConstraint)
		}
		if p.Padding < 0 {
			return fmt.Errorf("%w: group %q has negative padding", ErrBadConstraint, p.Group)
		}
		for _, id := range p.Inner {
			if id == "" {
				return fmt.Errorf("%w: group %q lists an empty member id", ErrBadConstraint, p.Group)
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrBadConstraint, int(p.Kind))
	}
	return nil
}

// Validate checks a batch of constraints structurally and, when known is
// non-nil, verifies that every referenced node id exists. The first failure
// is returned with the offending constraint's rendered form.
func Validate(cs []Positional, known func(string) bool) error {
	for _, p := range cs {
		if err := p.Validate(); err != nil {
			return err
		}
		if known == nil {
			continue
		}
		for _, id := range p.NodeRefs() {
			if !known(id) {
				return fmt.Errorf("%w: %q in %q", ErrUnknownNode, id, p.String())
			}
		}
	}
	return nil
}
