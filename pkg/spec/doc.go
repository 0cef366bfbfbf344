// Package spec decodes problem documents into layout problems.
//
// # Overview
//
// A problem document is the serialized form of one diagram and its
// constraints: the nodes and edges to draw, labeled batches of positional
// requirements, ring requirements, the nodes to hide, and solve options.
// The document format carries already-typed constraints; it is the boundary
// where external tooling hands a problem to this module, not a constraint
// language of its own.
//
// # Document Format
//
// Documents are YAML (JSON, being a YAML subset, also works):
//
//	title: Service map
//	nodes:
//	  - id: api
//	    label: API Gateway
//	  - id: db
//	  - id: cache
//	edges:
//	  - from: api
//	    to: db
//	groups:
//	  - name: backend
//	    padding: 12
//	    members: [db, cache]
//	constraints:
//	  - source: request flow
//	    entries:
//	      - kind: orientation
//	        direction: left
//	        a: api
//	        b: db
//	        gap: 60
//	      - kind: alignment
//	        axis: y
//	        nodes: [db, cache]
//	cycles:
//	  - direction: clockwise
//	    fragments:
//	      - [api, db, cache]
//	hidden: [cache]
//	solve:
//	  sep_x: 40
//	  sep_y: 40
//	  radius: 120
//	  budget: 500
//
// # Constraint Entries
//
// Each constraints item names its source (the label conflict tables report)
// and lists entries. The entry kind selects the remaining fields:
//
//   - orientation: a relates to b by direction ("left", "right", "above",
//     "below") with an optional minimum gap. Right and below swap operands;
//     every orientation lowers onto a left-of or above relation.
//   - alignment: all listed nodes share one coordinate on the given axis
//     ("x" or "y").
//   - bounding_box: node is confined to the rectangle [min_x, max_x] x
//     [min_y, max_y].
//   - group: the named group's box contains the member nodes with at least
//     padding between each node and the box edge.
//
// Top-level groups both register diagram membership and contribute one
// group boundary constraint, so a declared group clusters its members
// visually and spatially. The group entry kind exists for boundaries over
// ad-hoc node sets without diagram registration.
//
// # Cycles and Hidden Nodes
//
// Each cycles item is one ring requirement: a rotation direction
// ("clockwise" or "counterclockwise", defaulting to clockwise) and one or
// more fragments of node ids. Hidden lists node ids whose constraints are
// dropped before solving; hiding is reported in the resulting layout, never
// silent.
//
// # Validation
//
// Decoding is strict. Unknown document fields, unknown entry kinds,
// duplicate or reserved node ids, edges or hidden entries referencing
// unknown nodes, and empty cycle fragments are all errors. Constraint
// operands are validated against the full node universe by the solver,
// which knows the synthetic group corner variables too.
//
// Use [ReadFile] to decode a file path, or [Read] for any io.Reader.
package spec
