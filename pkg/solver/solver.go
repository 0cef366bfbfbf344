package solver

import (
	"fmt"
	"time"

	"github.com/matzehuels/orrery/pkg/arith"
	"github.com/matzehuels/orrery/pkg/constraint"
	"github.com/matzehuels/orrery/pkg/cyclic"
)

// Default geometry applied when the corresponding option is zero.
const (
	DefaultSepX   = 40.0
	DefaultSepY   = 40.0
	DefaultRadius = 120.0
)

// Outcome classifies a finished solve.
type Outcome int

const (
	// OutcomeSatisfied means a satisfying assignment was found.
	OutcomeSatisfied Outcome = iota
	// OutcomeUnsatisfiable means the search proved that no combination of
	// alternatives is jointly satisfiable with the required constraints.
	OutcomeUnsatisfiable
	// OutcomeBudget means the search hit its node budget before reaching a
	// proof either way. Not equivalent to unsatisfiable.
	OutcomeBudget
)

// String returns the outcome name used in logs and the CLI.
func (o Outcome) String() string {
	switch o {
	case OutcomeSatisfied:
		return "satisfied"
	case OutcomeUnsatisfiable:
		return "unsatisfiable"
	case OutcomeBudget:
		return "budget exhausted"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Stats describes the work one solve performed.
type Stats struct {
	// Explored counts alternatives that passed their feasibility probe and
	// were committed into the search.
	Explored int
	// Pruned counts alternatives rejected by a probe before recursion.
	Pruned int
	// Probes counts conjunctive feasibility checks, terminal solves
	// included.
	Probes int
	// Duration is wall-clock time for the whole solve.
	Duration time.Duration
}

// Options tunes one solve. The zero value uses default geometry, no budget,
// no tracer, and no progress reporting.
type Options struct {
	// SepX and SepY are the minimum separations used when expanding ring
	// arrangements into pairwise constraints.
	SepX float64
	SepY float64
	// Radius is the circle radius rings are laid out on during expansion.
	Radius float64
	// Budget caps the number of search nodes (alternatives tried across the
	// whole search). Zero means unlimited.
	Budget int
	// Tracer observes backtrack points. Nil disables tracing.
	Tracer Tracer
	// Progress, when set, is called after every tried alternative with the
	// running statistics.
	Progress func(Stats)
}

func (o Options) withDefaults() Options {
	if o.SepX == 0 {
		o.SepX = DefaultSepX
	}
	if o.SepY == 0 {
		o.SepY = DefaultSepY
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.Tracer == nil {
		o.Tracer = DefaultTracer{}
	}
	return o
}

// Problem is one disjunctive solve: the node universe, labeled batches of
// required constraints, pre-built disjunctions, ring requirements to be
// expanded, and the ids hidden by hide directives.
type Problem struct {
	Nodes        []string
	Groups       []constraint.SourceGroup
	Disjunctions []constraint.Disjunction
	Cycles       []cyclic.Descriptor
	Hidden       []string
}

// Result is the outcome of [Solve]. Assignment is populated only for
// [OutcomeSatisfied]; minimal-conflict entries appear only for a required
// set proven unsatisfiable. Entries with Dropped set record constraints
// removed for hidden nodes and accompany any outcome, so the removal is
// never silent.
type Result struct {
	Outcome    Outcome
	Assignment map[constraint.Var]float64
	// Chosen holds the committed alternative index per disjunction, in
	// problem order (explicit disjunctions first, then expanded cycles).
	Chosen    []int
	Conflicts []ConflictEntry
	Stats     Stats
}

// Solve finds coordinates satisfying the problem's constraints, or explains
// why none exist. The required groups are checked first: if they are
// unsatisfiable on their own the result carries a minimal conflicting set
// and no search is attempted. Otherwise the disjunctions are searched
// depth-first in order, alternatives tried in list order, each candidate
// prefix probed for feasibility before recursing; the first feasible full
// combination wins.
//
// Structural defects (malformed constraints, unknown nodes, empty
// disjunctions) are errors. Unsatisfiability is not: it is a normal outcome
// carried in the result.
func Solve(p Problem, opts Options) (Result, error) {
	start := time.Now()
	opts = opts.withDefaults()

	if err := validateProblem(p); err != nil {
		return Result{}, err
	}

	visible := visibleNodes(p.Nodes, p.Hidden)
	keptGroups, entries := DropHidden(p.Groups, p.Hidden)

	disjunctions, altDrops, err := assembleDisjunctions(p, opts)
	if err != nil {
		return Result{}, err
	}
	entries = mergeDrops(entries, p.Hidden, altDrops)

	cache := arith.NewCache()
	defer cache.Reset()

	s := &search{
		nodes:        visible,
		required:     flatten(keptGroups),
		disjunctions: disjunctions,
		pool:         arith.NewPool(cache),
		budget:       opts.Budget,
		tracer:       opts.Tracer,
		progress:     opts.Progress,
		start:        start,
	}

	// Required-only feasibility first: an unsatisfiable base is diagnosed,
	// never searched.
	base, err := s.check(-1, -1)
	if err != nil {
		return Result{}, err
	}
	if !base.Satisfiable {
		core, derr := diagnose(visible, keptGroups, cache)
		if derr != nil {
			return Result{}, derr
		}
		return Result{
			Outcome:   OutcomeUnsatisfiable,
			Conflicts: append(entries, core...),
			Stats:     s.finish(),
		}, nil
	}

	if len(s.disjunctions) == 0 {
		return Result{
			Outcome:    OutcomeSatisfied,
			Assignment: base.Values,
			Chosen:     []int{},
			Conflicts:  entries,
			Stats:      s.finish(),
		}, nil
	}

	ok, err := s.run(0)
	if err != nil {
		return Result{}, err
	}

	stats := s.finish()
	switch {
	case ok:
		chosen := make([]int, len(s.chosen))
		copy(chosen, s.chosen)
		return Result{
			Outcome:    OutcomeSatisfied,
			Assignment: s.values,
			Chosen:     chosen,
			Conflicts:  entries,
			Stats:      stats,
		}, nil
	case s.exhausted:
		return Result{Outcome: OutcomeBudget, Conflicts: entries, Stats: stats}, nil
	default:
		return Result{Outcome: OutcomeUnsatisfiable, Conflicts: entries, Stats: stats}, nil
	}
}

// search carries the state of one depth-first walk over the disjunctions.
type search struct {
	nodes        []string
	required     constraint.Set
	disjunctions []constraint.Disjunction
	pool         *arith.Pool
	budget       int
	tracer       Tracer
	progress     func(Stats)
	start        time.Time

	chosen    []int
	stats     Stats
	exhausted bool
	values    map[constraint.Var]float64
}

// run tries every alternative of the disjunction at level, in list order,
// recursing on the first feasible prefix. It returns true as soon as a full
// combination solves, leaving the winning choices in s.chosen.
func (s *search) run(level int) (bool, error) {
	if level == len(s.disjunctions) {
		sol, err := s.check(-1, -1)
		if err != nil {
			return false, err
		}
		if sol.Satisfiable {
			s.values = sol.Values
			return true, nil
		}
		s.tracer.Trace(snapshot(level, s.chosen))
		return false, nil
	}

	for alt := range s.disjunctions[level] {
		if s.spent() {
			s.exhausted = true
			return false, nil
		}

		sol, err := s.check(level, alt)
		if err != nil {
			return false, err
		}
		if !sol.Satisfiable {
			s.stats.Pruned++
			s.report()
			continue
		}

		s.stats.Explored++
		s.report()

		s.chosen = append(s.chosen, alt)
		ok, err := s.run(level + 1)
		if ok || err != nil {
			return ok, err
		}
		s.chosen = s.chosen[:len(s.chosen)-1]
		if s.exhausted {
			return false, nil
		}
	}

	s.tracer.Trace(snapshot(level, s.chosen))
	return false, nil
}

// check solves required ∪ committed alternatives, plus one candidate when
// extraLevel is non-negative, on a pooled system.
func (s *search) check(extraLevel, extraAlt int) (arith.Solution, error) {
	sys := s.pool.Get()
	defer s.pool.Put(sys)

	for _, n := range s.nodes {
		sys.AddNode(n)
	}
	if err := sys.AddSet(s.required); err != nil {
		return arith.Solution{}, err
	}
	for level, alt := range s.chosen {
		if err := sys.AddSet(s.disjunctions[level][alt]); err != nil {
			return arith.Solution{}, err
		}
	}
	if extraLevel >= 0 {
		if err := sys.AddSet(s.disjunctions[extraLevel][extraAlt]); err != nil {
			return arith.Solution{}, err
		}
	}

	s.stats.Probes++
	return sys.Solve()
}

func (s *search) spent() bool {
	return s.budget > 0 && s.stats.Explored+s.stats.Pruned >= s.budget
}

func (s *search) report() {
	if s.progress == nil {
		return
	}
	st := s.stats
	st.Duration = time.Since(s.start)
	s.progress(st)
}

func (s *search) finish() Stats {
	st := s.stats
	st.Duration = time.Since(s.start)
	return st
}

func validateProblem(p Problem) error {
	known := make(map[string]bool, len(p.Nodes))
	for _, id := range p.Nodes {
		known[id] = true
	}
	exists := func(id string) bool { return known[id] }

	for _, g := range p.Groups {
		if err := constraint.Validate(g.Constraints, exists); err != nil {
			return fmt.Errorf("group %q: %w", g.Label, err)
		}
	}
	for i, d := range p.Disjunctions {
		if len(d) == 0 {
			return fmt.Errorf("disjunction %d: %w", i, constraint.ErrEmptyDisjunction)
		}
		for _, alt := range d {
			if err := constraint.Validate(alt, exists); err != nil {
				return fmt.Errorf("disjunction %d: %w", i, err)
			}
		}
	}
	for i, desc := range p.Cycles {
		if len(desc.Fragments) == 0 {
			return fmt.Errorf("cycle %d: %w", i, constraint.ErrEmptyDisjunction)
		}
		for _, frag := range desc.Fragments {
			for _, id := range frag {
				if !known[id] {
					return fmt.Errorf("cycle %d: %w: %q", i, constraint.ErrUnknownNode, id)
				}
			}
		}
	}
	return nil
}

func visibleNodes(nodes, hidden []string) []string {
	if len(hidden) == 0 {
		return nodes
	}
	drop := make(map[string]bool, len(hidden))
	for _, id := range hidden {
		drop[id] = true
	}
	out := make([]string, 0, len(nodes))
	for _, id := range nodes {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}

// assembleDisjunctions filters explicit disjunctions against the hidden set
// and expands ring descriptors, explicit ones first. Hiding removes members
// from fragments before expansion; a ring whose members are all hidden
// vanishes. Per-alternative drops are returned keyed by hidden node so they
// can be surfaced.
func assembleDisjunctions(p Problem, opts Options) ([]constraint.Disjunction, map[string][]constraint.Positional, error) {
	hidden := p.Hidden
	drops := make(map[string][]constraint.Positional)

	out := make([]constraint.Disjunction, 0, len(p.Disjunctions)+len(p.Cycles))
	for _, d := range p.Disjunctions {
		if len(hidden) == 0 {
			out = append(out, d)
			continue
		}
		filtered := make(constraint.Disjunction, len(d))
		for i, alt := range d {
			kept := make(constraint.Set, 0, len(alt))
			for _, c := range alt {
				if id, hit := firstHidden(c, hidden); hit {
					drops[id] = append(drops[id], c)
					continue
				}
				kept = append(kept, c)
			}
			filtered[i] = kept
		}
		out = append(out, filtered)
	}

	hide := make(map[string]bool, len(hidden))
	for _, id := range hidden {
		hide[id] = true
	}
	for _, desc := range p.Cycles {
		trimmed := cyclic.Descriptor{Direction: desc.Direction}
		for _, frag := range desc.Fragments {
			kept := make(cyclic.Fragment, 0, len(frag))
			for _, id := range frag {
				if !hide[id] {
					kept = append(kept, id)
				}
			}
			if len(kept) > 0 {
				trimmed.Fragments = append(trimmed.Fragments, kept)
			}
		}
		if len(trimmed.Fragments) == 0 {
			// Hiding consumed the whole ring; nothing is left to arrange.
			continue
		}
		d, err := cyclic.ExpandDescriptor(trimmed, opts.Radius, opts.SepX, opts.SepY)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, d)
	}

	return out, drops, nil
}

func flatten(groups []constraint.SourceGroup) constraint.Set {
	var set constraint.Set
	for _, g := range groups {
		set = append(set, g.Constraints...)
	}
	return set
}
