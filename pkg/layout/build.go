package layout

import (
	"slices"

	"github.com/matzehuels/orrery/pkg/constraint"
	"github.com/matzehuels/orrery/pkg/solver"
)

// build assembles the serialization layout from a solve result. Placements
// appear only for a satisfied outcome; the explanation fields carry over
// regardless.
func build(p Problem, hash string, res solver.Result) *Layout {
	l := &Layout{
		Outcome:     res.Outcome.String(),
		ProblemHash: hash,
		Stats: Stats{
			Explored: res.Stats.Explored,
			Pruned:   res.Stats.Pruned,
			Probes:   res.Stats.Probes,
			Duration: res.Stats.Duration,
		},
	}
	// Empty slices stay nil so a layout read back from cache compares
	// equal to the one that was stored.
	if len(p.Hidden) > 0 {
		l.Hidden = slices.Clone(p.Hidden)
	}

	for _, c := range res.Conflicts {
		row := Conflict{Source: c.Source, Dropped: c.Dropped}
		for _, pc := range c.Constraints {
			row.Constraints = append(row.Constraints, pc.String())
		}
		l.Conflicts = append(l.Conflicts, row)
	}

	if res.Outcome != solver.OutcomeSatisfied {
		return l
	}

	hidden := make(map[string]bool, len(p.Hidden))
	for _, id := range p.Hidden {
		hidden[id] = true
	}

	at := func(node string, axis constraint.Axis) float64 {
		return res.Assignment[constraint.Var{Node: node, Axis: axis}]
	}

	for _, n := range p.Diagram.Nodes() {
		if hidden[n.ID] {
			continue
		}
		// Nodes outside every constraint default to the origin.
		node := Node{
			ID:    n.ID,
			Label: n.Label,
			X:     at(n.ID, constraint.X),
			Y:     at(n.ID, constraint.Y),
		}
		if len(n.Meta) > 0 {
			node.Meta = n.Meta
		}
		l.Nodes = append(l.Nodes, node)
	}

	for _, e := range p.Diagram.Edges() {
		if hidden[e.From] || hidden[e.To] {
			continue
		}
		edge := Edge{From: e.From, To: e.To}
		if len(e.Meta) > 0 {
			edge.Meta = e.Meta
		}
		l.Edges = append(l.Edges, edge)
	}

	if len(res.Chosen) > 0 {
		l.Chosen = slices.Clone(res.Chosen)
	}

	for _, name := range boundaryGroups(p.Groups) {
		minCorner := constraint.GroupMin(name)
		// A boundary dropped for a hidden member leaves no solved corners.
		if _, ok := res.Assignment[constraint.Var{Node: minCorner, Axis: constraint.X}]; !ok {
			continue
		}
		l.Groups = append(l.Groups, GroupBox{
			Name: name,
			MinX: at(minCorner, constraint.X),
			MinY: at(minCorner, constraint.Y),
			MaxX: at(constraint.GroupMax(name), constraint.X),
			MaxY: at(constraint.GroupMax(name), constraint.Y),
		})
	}

	return l
}

// boundaryGroups lists group names carrying at least one boundary
// constraint, in first-seen order.
func boundaryGroups(groups []constraint.SourceGroup) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, g := range groups {
		for _, c := range g.Constraints {
			if c.Kind != constraint.KindGroupBoundary {
				continue
			}
			if _, ok := seen[c.Group]; ok {
				continue
			}
			seen[c.Group] = struct{}{}
			out = append(out, c.Group)
		}
	}
	return out
}
