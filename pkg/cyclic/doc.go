// Package cyclic expands ring arrangements into disjunctions of positional
// constraints.
//
// # Overview
//
// A cyclic requirement ("these nodes form a ring, in this rotation
// direction") is not linear: no single conjunction of separations captures
// every rotation the ring may settle into. This package turns one
// [Fragment] into the disjunction of all its rotational arrangements. Each
// perturbation places the nodes on a circle, reads off their relative
// positions, and emits the pairwise separations and alignments that pin that
// arrangement; the solver then picks whichever rotation coexists with the
// rest of the diagram.
//
// # Expansion
//
// [Expand] produces one conjunctive set per perturbation, n sets for a
// fragment of n nodes. Every unordered node pair contributes one horizontal
// relation (a separation toward the greater x, or an alignment when the
// ring geometry puts the pair within tolerance) and one vertical relation
// likewise, so each set carries n·(n−1) constraints. Fragments of one or
// two nodes expand to empty sets: two points alone admit no meaningful
// ring ordering.
//
// [ExpandDescriptor] expands a multi-fragment descriptor into one flat
// disjunction; the requirement is met when any fragment's any rotation
// holds.
//
// Expansion is a pure function of its inputs. Identical calls produce
// identical disjunctions, alternative order included, which downstream
// diagnostics rely on.
package cyclic
