package cyclic

import (
	"fmt"
	"math"

	"github.com/matzehuels/orrery/pkg/constraint"
)

// alignTol is the coordinate distance under which two ring positions are
// treated as aligned rather than ordered.
const alignTol = 1e-6

// Direction is the rotation sense of a ring.
type Direction int

const (
	// Clockwise lays fragment members out in list order.
	Clockwise Direction = iota
	// Counterclockwise reverses the fragment before placement.
	Counterclockwise
)

// String returns the serialized direction name.
func (d Direction) String() string {
	if d == Counterclockwise {
		return "counterclockwise"
	}
	return "clockwise"
}

// ParseDirection maps a serialized name to its Direction. The empty string
// defaults to clockwise.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "clockwise", "cw":
		return Clockwise, nil
	case "counterclockwise", "ccw":
		return Counterclockwise, nil
	}
	return Clockwise, fmt.Errorf("unknown direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Fragment is an ordered list of node ids forming one ring.
type Fragment []string

// Descriptor is one cyclic requirement: a set of fragments sharing a
// rotation direction. The requirement holds when any fragment settles into
// any of its rotations.
type Descriptor struct {
	Fragments []Fragment
	Direction Direction
}

// Expand produces the disjunction of all rotational arrangements of one
// fragment. Nodes are placed on a circle of the given radius; for each of
// the n perturbations, every unordered node pair yields one horizontal and
// one vertical relation (separation by sepX/sepY toward the greater
// coordinate, or alignment when the pair lands within tolerance). Fragments
// of two or fewer nodes yield n empty sets.
//
// Expansion is pure and deterministic; the alternative for perturbation p
// is always at index p.
func Expand(fragment Fragment, direction Direction, radius, sepX, sepY float64) constraint.Disjunction {
	n := len(fragment)

	ordered := fragment
	if direction == Counterclockwise {
		ordered = make(Fragment, n)
		for i, id := range fragment {
			ordered[n-1-i] = id
		}
	}

	alternatives := make(constraint.Disjunction, 0, n)
	for p := 0; p < n; p++ {
		alternatives = append(alternatives, arrangement(ordered, p, radius, sepX, sepY))
	}
	return alternatives
}

// arrangement builds the conjunctive set for one perturbation.
func arrangement(ordered Fragment, p int, radius, sepX, sepY float64) constraint.Set {
	n := len(ordered)
	if n <= 2 {
		return constraint.Set{}
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range ordered {
		theta := float64(i+p) * 2 * math.Pi / float64(n)
		xs[i] = radius * math.Cos(theta)
		ys[i] = radius * math.Sin(theta)
	}

	set := make(constraint.Set, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			u, v := ordered[i], ordered[j]

			switch {
			case math.Abs(xs[i]-xs[j]) <= alignTol:
				set = append(set, constraint.Align(constraint.X, u, v))
			case xs[i] < xs[j]:
				set = append(set, constraint.Left(u, v, sepX))
			default:
				set = append(set, constraint.Left(v, u, sepX))
			}

			switch {
			case math.Abs(ys[i]-ys[j]) <= alignTol:
				set = append(set, constraint.Align(constraint.Y, u, v))
			case ys[i] < ys[j]:
				set = append(set, constraint.Top(u, v, sepY))
			default:
				set = append(set, constraint.Top(v, u, sepY))
			}
		}
	}
	return set
}

// ExpandDescriptor expands every fragment of a descriptor and concatenates
// the results into one flat disjunction. A descriptor whose fragments
// produce no alternatives at all is a construction error, reported as
// [constraint.ErrEmptyDisjunction].
func ExpandDescriptor(desc Descriptor, radius, sepX, sepY float64) (constraint.Disjunction, error) {
	var flat constraint.Disjunction
	for _, frag := range desc.Fragments {
		flat = append(flat, Expand(frag, desc.Direction, radius, sepX, sepY)...)
	}
	if len(flat) == 0 {
		return nil, constraint.ErrEmptyDisjunction
	}
	return flat, nil
}
