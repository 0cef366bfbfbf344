// Package constraint defines the positional constraint model that the orrery
// solver operates on.
//
// # Overview
//
// Orrery places diagram nodes by solving a system of spatial relationships.
// This package provides the vocabulary for those relationships: scalar
// variables (one per node per axis), the closed set of positional constraint
// kinds, and the grouping structures the solver consumes (conjunctive sets,
// disjunctions of alternative sets, and labeled source groups).
//
// # Variables
//
// A [Var] identifies one unknown coordinate: the pair of a node id and an
// [Axis]. Constraints never hold coordinates directly; they reference nodes,
// and the arithmetic layer derives the variables from the constraint kind.
// Group boundaries introduce synthetic corner nodes (see [GroupMin] and
// [GroupMax]) so that a group's box participates in the same variable space
// as ordinary nodes.
//
// # Constraint Kinds
//
// [Positional] is a tagged union over five kinds, matched exhaustively by
// consumers:
//
//   - [KindLeft]: a's x precedes b's x by at least a gap
//   - [KindTop]: a's y precedes b's y by at least a gap
//   - [KindAlign]: a and b share a coordinate on one axis
//   - [KindBoundingBox]: a node is confined to an absolute rectangle
//   - [KindGroupBoundary]: a group's box contains its member nodes
//
// Construct values with [Left], [Top], [Align], [InBox], and [Boundary]
// rather than struct literals; the constructors fill exactly the fields the
// kind uses.
//
// # Sets and Disjunctions
//
// A [Set] is a conjunction: every constraint in it must hold. A
// [Disjunction] is a non-empty list of alternative sets, exactly one of
// which must hold; build one with [NewDisjunction], which rejects the empty
// list as a construction error. A [SourceGroup] ties a batch of derived
// constraints back to the human-readable source construct that produced
// them, which is what conflict diagnostics report against.
//
// # Validation
//
// Structural problems, such as malformed variants or references to nodes
// that do not exist, are detected by [Positional.Validate] and [Validate]
// before any solving happens. A constraint that references a hidden or removed node is
// not an error at this level; dropping such constraints is a solver policy
// (see the solver package).
package constraint
