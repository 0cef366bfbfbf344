package solver

import (
	"fmt"
	"strings"

	"github.com/matzehuels/orrery/pkg/arith"
	"github.com/matzehuels/orrery/pkg/constraint"
)

// ConflictEntry pairs a human-readable source description with the derived
// constraints implicated. Entries with Dropped set record removals for
// hidden nodes; the rest form a minimal conflicting set.
type ConflictEntry struct {
	Source      string
	Constraints []constraint.Positional
	Dropped     bool
}

// String renders the entry as one line of the conflict correspondence
// table.
func (e ConflictEntry) String() string {
	label := e.Source
	if e.Dropped {
		label += " (dropped)"
	}
	if len(e.Constraints) == 0 {
		return label
	}
	forms := make([]string, len(e.Constraints))
	for i, c := range e.Constraints {
		forms[i] = c.String()
	}
	return label + ": " + strings.Join(forms, "; ")
}

// Diagnose computes a minimal conflicting subset of source groups by
// deletion filtering: each group is tentatively removed and the remainder
// re-checked, so a group survives only if the conflict cannot exist without
// it. Groups must not share constraints; each derived constraint belongs to
// exactly one source group.
//
// If the groups are jointly satisfiable there is nothing to explain and the
// result is empty.
func Diagnose(nodes []string, groups []constraint.SourceGroup) ([]ConflictEntry, error) {
	cache := arith.NewCache()
	defer cache.Reset()
	return diagnose(nodes, groups, cache)
}

func diagnose(nodes []string, groups []constraint.SourceGroup, cache *arith.Cache) ([]ConflictEntry, error) {
	pool := arith.NewPool(cache)

	unsat := func(gs []constraint.SourceGroup) (bool, error) {
		sys := pool.Get()
		defer pool.Put(sys)
		for _, n := range nodes {
			sys.AddNode(n)
		}
		for _, g := range gs {
			if err := sys.AddSet(constraint.Set(g.Constraints)); err != nil {
				return false, err
			}
		}
		sol, err := sys.Solve()
		if err != nil {
			return false, err
		}
		return !sol.Satisfiable, nil
	}

	bad, err := unsat(groups)
	if err != nil {
		return nil, err
	}
	if !bad {
		return nil, nil
	}

	// Deletion filter: the working set stays unsatisfiable throughout.
	// Removing a group and staying unsatisfiable proves it redundant;
	// otherwise it is necessary and advances.
	core := make([]constraint.SourceGroup, len(groups))
	copy(core, groups)
	for i := 0; i < len(core); {
		rest := make([]constraint.SourceGroup, 0, len(core)-1)
		rest = append(rest, core[:i]...)
		rest = append(rest, core[i+1:]...)

		stillBad, err := unsat(rest)
		if err != nil {
			return nil, err
		}
		if stillBad {
			core = rest
		} else {
			i++
		}
	}

	entries := make([]ConflictEntry, len(core))
	for i, g := range core {
		entries[i] = ConflictEntry{Source: g.Label, Constraints: g.Constraints}
	}
	return entries, nil
}

// DropHidden removes every constraint touching a hidden node and reports
// each removal. The returned groups keep their labels and order with only
// surviving constraints; the entries carry one record per hidden node, in
// hide order, listing the constraints it claimed. A constraint touching
// several hidden nodes is attributed to the first in hide order.
//
// Solving proceeds on the remainder; the entries make the drop visible to
// the caller regardless of the eventual outcome.
func DropHidden(groups []constraint.SourceGroup, hidden []string) ([]constraint.SourceGroup, []ConflictEntry) {
	if len(hidden) == 0 {
		return groups, nil
	}

	order := dedupe(hidden)
	drops := make(map[string][]constraint.Positional, len(order))

	kept := make([]constraint.SourceGroup, 0, len(groups))
	for _, g := range groups {
		surviving := make([]constraint.Positional, 0, len(g.Constraints))
		for _, c := range g.Constraints {
			if id, hit := firstHidden(c, order); hit {
				drops[id] = append(drops[id], c)
				continue
			}
			surviving = append(surviving, c)
		}
		kept = append(kept, constraint.SourceGroup{Label: g.Label, Constraints: surviving})
	}

	entries := make([]ConflictEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, ConflictEntry{
			Source:      hiddenSource(id),
			Constraints: drops[id],
			Dropped:     true,
		})
	}
	return kept, entries
}

func hiddenSource(id string) string {
	return fmt.Sprintf("hide node %q", id)
}

func firstHidden(c constraint.Positional, hidden []string) (string, bool) {
	for _, id := range hidden {
		if c.Touches(id) {
			return id, true
		}
	}
	return "", false
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// mergeDrops folds per-alternative drops from disjunction filtering into the
// hidden-node entries, skipping constraints already recorded.
func mergeDrops(entries []ConflictEntry, hidden []string, drops map[string][]constraint.Positional) []ConflictEntry {
	if len(drops) == 0 {
		return entries
	}
	for i := range entries {
		var id string
		for _, h := range dedupe(hidden) {
			if entries[i].Source == hiddenSource(h) {
				id = h
				break
			}
		}
		if id == "" {
			continue
		}
		seen := make(map[string]bool, len(entries[i].Constraints))
		for _, c := range entries[i].Constraints {
			seen[c.String()] = true
		}
		for _, c := range drops[id] {
			if !seen[c.String()] {
				seen[c.String()] = true
				entries[i].Constraints = append(entries[i].Constraints, c)
			}
		}
	}
	return entries
}
