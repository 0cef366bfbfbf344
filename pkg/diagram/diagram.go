package diagram

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [Model.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrReservedNodeID is returned by [Model.AddNode] for IDs of the form
	// "__...__". That shape is claimed by synthetic variables (group
	// boundary corners) and may not be used for user nodes.
	ErrReservedNodeID = errors.New("node ID form is reserved")

	// ErrDuplicateNodeID is returned by [Model.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Model.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Model.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidGroupName is returned by [Model.AddGroup] when the group
	// name is empty.
	ErrInvalidGroupName = errors.New("group name must not be empty")

	// ErrDuplicateGroup is returned by [Model.AddGroup] when a group with
	// the same name already exists.
	ErrDuplicateGroup = errors.New("duplicate group name")

	// ErrEmptyGroup is returned by [Model.AddGroup] when the group has no
	// members.
	ErrEmptyGroup = errors.New("group has no members")

	// ErrUnknownGroupMember is returned by [Model.AddGroup] when a member ID
	// does not exist.
	ErrUnknownGroupMember = errors.New("unknown group member")

	// ErrInvalidEdgeEndpoint is returned by [Model.Validate] when an edge
	// references a node that doesn't exist. This indicates model corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")
)

// Metadata stores arbitrary key-value pairs attached to nodes, edges, or the
// model. Metadata maps are never nil after Add; they are initialized to
// empty maps when needed.
type Metadata map[string]any

// Node is a diagram element identified by a unique ID. Label, when set, is
// the display text; the ID is used otherwise.
//
// The zero value is not usable - ID must be set before adding to a Model.
type Node struct {
	ID    string
	Label string
	Meta  Metadata
}

// Display returns the label to render: Label if set, otherwise ID.
func (n Node) Display() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed connection between two nodes, carried through to the
// rendered output. Edges impose no positional constraints by themselves.
type Edge struct {
	From string
	To   string
	Meta Metadata
}

// Group names a set of member nodes that a boundary should enclose with the
// given padding.
type Group struct {
	Name    string
	Padding float64
	Members []string
}

// Model is the registry of nodes, edges, and groups making up one diagram.
//
// The zero value is not usable - use New. Model is not safe for concurrent
// use without external synchronization. Iteration order over nodes and
// groups is insertion order, so downstream consumers see a stable view.
type Model struct {
	nodes      map[string]*Node
	order      []string
	edges      []Edge
	groups     map[string]*Group
	groupOrder []string
	meta       Metadata
}

// New creates an empty Model with optional model-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *Model {
	if meta == nil {
		meta = Metadata{}
	}
	return &Model{
		nodes:  make(map[string]*Node),
		groups: make(map[string]*Group),
		meta:   meta,
	}
}

// Meta returns the model-level metadata map.
// The returned map is never nil and can be safely modified.
func (m *Model) Meta() Metadata { return m.meta }

// AddNode adds a node to the model. Returns ErrInvalidNodeID if the ID is
// empty, ErrReservedNodeID if it uses the reserved "__...__" form, or
// ErrDuplicateNodeID if the ID is already taken. The node's Meta field is
// initialized to an empty map if nil.
func (m *Model) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if reservedID(n.ID) {
		return ErrReservedNodeID
	}
	if _, exists := m.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	m.nodes[node.ID] = node
	m.order = append(m.order, node.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode if the From node doesn't exist, or
// ErrUnknownTargetNode if the To node doesn't exist. The edge's Meta field
// is initialized to an empty map if nil. Multiple edges between the same
// nodes are allowed.
func (m *Model) AddEdge(e Edge) error {
	if _, ok := m.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := m.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	m.edges = append(m.edges, e)
	return nil
}

// AddGroup adds a named group over existing member nodes.
// Returns ErrInvalidGroupName for an empty name, ErrDuplicateGroup when the
// name is taken, ErrEmptyGroup for an empty member list, or
// ErrUnknownGroupMember when a member does not exist.
func (m *Model) AddGroup(g Group) error {
	if g.Name == "" {
		return ErrInvalidGroupName
	}
	if _, exists := m.groups[g.Name]; exists {
		return ErrDuplicateGroup
	}
	if len(g.Members) == 0 {
		return ErrEmptyGroup
	}
	for _, id := range g.Members {
		if _, ok := m.nodes[id]; !ok {
			return ErrUnknownGroupMember
		}
	}
	grp := &g
	m.groups[grp.Name] = grp
	m.groupOrder = append(m.groupOrder, grp.Name)
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers to the actual node in the model, so
// modifications affect the model.
func (m *Model) Node(id string) (*Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// HasNode reports whether a node with the given ID exists.
func (m *Model) HasNode(id string) bool {
	_, ok := m.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order.
// The returned slice contains pointers to the actual node structs.
func (m *Model) Nodes() []*Node {
	nodes := make([]*Node, 0, len(m.order))
	for _, id := range m.order {
		nodes = append(nodes, m.nodes[id])
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (m *Model) NodeIDs() []string { return slices.Clone(m.order) }

// Edges returns a copy of all edges in insertion order.
// Modifications to the returned slice do not affect the model.
func (m *Model) Edges() []Edge { return slices.Clone(m.edges) }

// Group returns the group with the given name and true, or nil and false if
// not found.
func (m *Model) Group(name string) (*Group, bool) {
	g, ok := m.groups[name]
	return g, ok
}

// Groups returns all groups in insertion order.
func (m *Model) Groups() []*Group {
	groups := make([]*Group, 0, len(m.groupOrder))
	for _, name := range m.groupOrder {
		groups = append(groups, m.groups[name])
	}
	return groups
}

// NodeCount returns the number of nodes in the model.
func (m *Model) NodeCount() int { return len(m.nodes) }

// EdgeCount returns the number of edges in the model.
func (m *Model) EdgeCount() int { return len(m.edges) }

// GroupCount returns the number of groups in the model.
func (m *Model) GroupCount() int { return len(m.groups) }

// Validate checks model integrity and returns nil if valid. It verifies
// that every edge endpoint and every group member references an existing
// node. Mutating node IDs after insertion can break these invariants; use
// this before handing the model to the layout engine.
func (m *Model) Validate() error {
	for _, e := range m.edges {
		if _, ok := m.nodes[e.From]; !ok {
			return ErrInvalidEdgeEndpoint
		}
		if _, ok := m.nodes[e.To]; !ok {
			return ErrInvalidEdgeEndpoint
		}
	}
	for _, name := range m.groupOrder {
		for _, id := range m.groups[name].Members {
			if _, ok := m.nodes[id]; !ok {
				return ErrUnknownGroupMember
			}
		}
	}
	return nil
}

// reservedID reports whether the ID uses the "__...__" shape claimed by
// synthetic boundary variables.
func reservedID(id string) bool {
	return len(id) > 4 && strings.HasPrefix(id, "__") && strings.HasSuffix(id, "__")
}
