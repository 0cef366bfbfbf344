package layout

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/matzehuels/orrery/pkg/cache"
	"github.com/matzehuels/orrery/pkg/constraint"
	"github.com/matzehuels/orrery/pkg/cyclic"
	"github.com/matzehuels/orrery/pkg/diagram"
	"github.com/matzehuels/orrery/pkg/solver"
)

// ErrNilDiagram is returned when a problem carries no diagram.
var ErrNilDiagram = errors.New("problem has no diagram")

// Problem is one full layout request: the diagram, the required constraint
// groups, the cyclic requirements, the node ids to hide, and the solve
// options.
//
// Constraint groups may reference group boundary corners and diagram nodes;
// the solver validates the references against the diagram's node set.
type Problem struct {
	Diagram *diagram.Model
	Groups  []constraint.SourceGroup
	Cycles  []cyclic.Descriptor
	Hidden  []string
	Options solver.Options
}

// Validate checks the problem's diagram for structural defects. Constraint
// validation happens inside the solve, where the full node universe is
// known.
func (p Problem) Validate() error {
	if p.Diagram == nil {
		return ErrNilDiagram
	}
	if err := p.Diagram.Validate(); err != nil {
		return fmt.Errorf("invalid diagram: %w", err)
	}
	return nil
}

// problemDigest is the canonical form hashed for cache keys. It covers
// everything a solve reads and everything the built layout copies from the
// diagram, so two problems share a hash exactly when they produce the same
// layout under the same options.
type problemDigest struct {
	Meta   diagram.Metadata         `json:"meta,omitempty"`
	Nodes  []*diagram.Node          `json:"nodes"`
	Edges  []diagram.Edge           `json:"edges,omitempty"`
	Defs   []*diagram.Group         `json:"defs,omitempty"`
	Groups []constraint.SourceGroup `json:"groups,omitempty"`
	Cycles []cyclic.Descriptor      `json:"cycles,omitempty"`
	Hidden []string                 `json:"hidden,omitempty"`
}

// Hash returns the content hash identifying this problem for caching.
// Node order is the diagram's insertion order, so the hash is stable across
// runs. Solve options are not part of the hash; they enter the cache key
// separately.
func (p Problem) Hash() (string, error) {
	if p.Diagram == nil {
		return "", ErrNilDiagram
	}
	digest := problemDigest{
		Meta:   p.Diagram.Meta(),
		Nodes:  p.Diagram.Nodes(),
		Edges:  p.Diagram.Edges(),
		Defs:   p.Diagram.Groups(),
		Groups: p.Groups,
		Cycles: p.Cycles,
		Hidden: p.Hidden,
	}
	data, err := json.Marshal(digest)
	if err != nil {
		return "", fmt.Errorf("hash problem: %w", err)
	}
	return cache.Hash(data), nil
}

// keyOpts maps the solve options onto the cache key fields. The tracer and
// progress callback do not affect the result, so they stay out of the key.
func (p Problem) keyOpts() cache.SolveKeyOpts {
	return cache.SolveKeyOpts{
		SepX:   p.Options.SepX,
		SepY:   p.Options.SepY,
		Radius: p.Options.Radius,
		Budget: p.Options.Budget,
	}
}

// solverProblem lowers the request onto the solver's input shape.
func (p Problem) solverProblem() solver.Problem {
	return solver.Problem{
		Nodes:  p.Diagram.NodeIDs(),
		Groups: p.Groups,
		Cycles: p.Cycles,
		Hidden: p.Hidden,
	}
}
