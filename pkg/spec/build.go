package spec

import (
	"fmt"

	"github.com/matzehuels/orrery/pkg/constraint"
	"github.com/matzehuels/orrery/pkg/cyclic"
	"github.com/matzehuels/orrery/pkg/diagram"
	"github.com/matzehuels/orrery/pkg/errors"
	"github.com/matzehuels/orrery/pkg/layout"
	"github.com/matzehuels/orrery/pkg/solver"
)

// build lowers a decoded document onto the layout problem shape. Top-level
// groups register diagram membership and contribute one boundary source
// group each, so a declared group both clusters its members visually and
// constrains the solve.
func build(doc document) (layout.Problem, error) {
	meta := diagram.Metadata{}
	for k, v := range doc.Meta {
		meta[k] = v
	}
	if doc.Title != "" {
		meta["title"] = doc.Title
	}

	model := diagram.New(meta)
	for _, n := range doc.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return layout.Problem{}, fmt.Errorf("node %q: %w", n.ID, err)
		}
		if err := model.AddNode(diagram.Node{ID: n.ID, Label: n.Label, Meta: n.Meta}); err != nil {
			return layout.Problem{}, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, e := range doc.Edges {
		if err := model.AddEdge(diagram.Edge{From: e.From, To: e.To, Meta: e.Meta}); err != nil {
			return layout.Problem{}, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	p := layout.Problem{Diagram: model}

	for _, g := range doc.Groups {
		if err := errors.ValidateGroupName(g.Name); err != nil {
			return layout.Problem{}, fmt.Errorf("group %q: %w", g.Name, err)
		}
		if err := model.AddGroup(diagram.Group{Name: g.Name, Padding: g.Padding, Members: g.Members}); err != nil {
			return layout.Problem{}, fmt.Errorf("group %q: %w", g.Name, err)
		}
		p.Groups = append(p.Groups, constraint.SourceGroup{
			Label:       fmt.Sprintf("group %q", g.Name),
			Constraints: []constraint.Positional{constraint.Boundary(g.Name, g.Padding, g.Members...)},
		})
	}

	for i, cg := range doc.Constraints {
		sg, err := buildGroup(cg)
		if err != nil {
			return layout.Problem{}, fmt.Errorf("constraints[%d]: %w", i, err)
		}
		p.Groups = append(p.Groups, sg)
	}

	for i, c := range doc.Cycles {
		desc, err := buildCycle(c)
		if err != nil {
			return layout.Problem{}, fmt.Errorf("cycles[%d]: %w", i, err)
		}
		p.Cycles = append(p.Cycles, desc)
	}

	for _, id := range doc.Hidden {
		if !model.HasNode(id) {
			return layout.Problem{}, fmt.Errorf("hidden: unknown node %q", id)
		}
	}
	p.Hidden = doc.Hidden

	if doc.Solve != nil {
		p.Options = solver.Options{
			SepX:   doc.Solve.SepX,
			SepY:   doc.Solve.SepY,
			Radius: doc.Solve.Radius,
			Budget: doc.Solve.Budget,
		}
	}

	return p, nil
}

func buildGroup(cg constraintGroup) (constraint.SourceGroup, error) {
	if cg.Source == "" {
		return constraint.SourceGroup{}, fmt.Errorf("missing source label")
	}
	if len(cg.Entries) == 0 {
		return constraint.SourceGroup{}, fmt.Errorf("source %q: no entries", cg.Source)
	}

	sg := constraint.SourceGroup{Label: cg.Source}
	for i, e := range cg.Entries {
		cs, err := buildEntry(e)
		if err != nil {
			return constraint.SourceGroup{}, fmt.Errorf("source %q: entry %d: %w", cg.Source, i, err)
		}
		sg.Constraints = append(sg.Constraints, cs...)
	}
	return sg, nil
}

func buildEntry(e entry) ([]constraint.Positional, error) {
	switch e.Kind {
	case "orientation":
		return orientationConstraint(e)
	case "alignment":
		return alignmentConstraints(e)
	case "bounding_box":
		if e.Node == "" {
			return nil, fmt.Errorf("bounding_box needs a node")
		}
		return []constraint.Positional{constraint.InBox(e.Node, constraint.Rect{
			MinX: e.MinX, MinY: e.MinY,
			MaxX: e.MaxX, MaxY: e.MaxY,
		})}, nil
	case "group":
		if err := errors.ValidateGroupName(e.Name); err != nil {
			return nil, err
		}
		return []constraint.Positional{constraint.Boundary(e.Name, e.Padding, e.Members...)}, nil
	case "":
		return nil, fmt.Errorf("missing kind")
	}
	return nil, fmt.Errorf("unknown kind %q", e.Kind)
}

// orientationConstraint maps a direction word onto the ordered pair the
// solver understands: "right" and "below" swap operands rather than being
// kinds of their own.
func orientationConstraint(e entry) ([]constraint.Positional, error) {
	if e.A == "" || e.B == "" {
		return nil, fmt.Errorf("orientation needs both a and b")
	}
	var c constraint.Positional
	switch e.Direction {
	case "left":
		c = constraint.Left(e.A, e.B, e.Gap)
	case "right":
		c = constraint.Left(e.B, e.A, e.Gap)
	case "above":
		c = constraint.Top(e.A, e.B, e.Gap)
	case "below":
		c = constraint.Top(e.B, e.A, e.Gap)
	default:
		return nil, fmt.Errorf("unknown direction %q", e.Direction)
	}
	return []constraint.Positional{c}, nil
}

// alignmentConstraints expands a node list into consecutive pairwise
// alignments; equality is transitive, so chaining pins the whole list.
func alignmentConstraints(e entry) ([]constraint.Positional, error) {
	var axis constraint.Axis
	switch e.Axis {
	case "x":
		axis = constraint.X
	case "y":
		axis = constraint.Y
	default:
		return nil, fmt.Errorf("unknown axis %q", e.Axis)
	}
	if len(e.Nodes) < 2 {
		return nil, fmt.Errorf("alignment needs at least two nodes")
	}

	out := make([]constraint.Positional, 0, len(e.Nodes)-1)
	for i := 1; i < len(e.Nodes); i++ {
		out = append(out, constraint.Align(axis, e.Nodes[i-1], e.Nodes[i]))
	}
	return out, nil
}

func buildCycle(c cycle) (cyclic.Descriptor, error) {
	dir, err := cyclic.ParseDirection(c.Direction)
	if err != nil {
		return cyclic.Descriptor{}, err
	}
	if len(c.Fragments) == 0 {
		return cyclic.Descriptor{}, fmt.Errorf("no fragments")
	}

	desc := cyclic.Descriptor{Direction: dir}
	for i, f := range c.Fragments {
		if len(f) == 0 {
			return cyclic.Descriptor{}, fmt.Errorf("fragment %d is empty", i)
		}
		desc.Fragments = append(desc.Fragments, cyclic.Fragment(f))
	}
	return desc, nil
}
