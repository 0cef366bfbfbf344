package diagram

import (
	"errors"
	"testing"
)

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr error
	}{
		{name: "Valid", node: Node{ID: "login"}},
		{name: "EmptyID", node: Node{}, wantErr: ErrInvalidNodeID},
		{name: "ReservedID", node: Node{ID: "__core_min__"}, wantErr: ErrReservedNodeID},
		{name: "UnderscorePrefixOnly", node: Node{ID: "__internal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil)
			err := m.AddNode(tt.node)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddNodeDuplicate(t *testing.T) {
	m := New(nil)
	if err := m.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := m.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate AddNode error = %v, want %v", err, ErrDuplicateNodeID)
	}
}

func TestAddNodeInitializesMeta(t *testing.T) {
	m := New(nil)
	if err := m.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	n, ok := m.Node("a")
	if !ok {
		t.Fatal("node not found after AddNode")
	}
	if n.Meta == nil {
		t.Error("Meta not initialized")
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name    string
		edge    Edge
		wantErr error
	}{
		{name: "Valid", edge: Edge{From: "a", To: "b"}},
		{name: "UnknownSource", edge: Edge{From: "ghost", To: "b"}, wantErr: ErrUnknownSourceNode},
		{name: "UnknownTarget", edge: Edge{From: "a", To: "ghost"}, wantErr: ErrUnknownTargetNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil)
			for _, id := range []string{"a", "b"} {
				if err := m.AddNode(Node{ID: id}); err != nil {
					t.Fatalf("AddNode(%s): %v", id, err)
				}
			}
			err := m.AddEdge(tt.edge)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddEdge() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddGroup(t *testing.T) {
	tests := []struct {
		name    string
		grp     Group
		wantErr error
	}{
		{name: "Valid", grp: Group{Name: "core", Members: []string{"a", "b"}}},
		{name: "EmptyName", grp: Group{Members: []string{"a"}}, wantErr: ErrInvalidGroupName},
		{name: "NoMembers", grp: Group{Name: "core"}, wantErr: ErrEmptyGroup},
		{name: "UnknownMember", grp: Group{Name: "core", Members: []string{"ghost"}}, wantErr: ErrUnknownGroupMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil)
			for _, id := range []string{"a", "b"} {
				if err := m.AddNode(Node{ID: id}); err != nil {
					t.Fatalf("AddNode(%s): %v", id, err)
				}
			}
			err := m.AddGroup(tt.grp)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddGroup() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddGroupDuplicate(t *testing.T) {
	m := New(nil)
	if err := m.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := m.AddGroup(Group{Name: "core", Members: []string{"a"}}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	err := m.AddGroup(Group{Name: "core", Members: []string{"a"}})
	if !errors.Is(err, ErrDuplicateGroup) {
		t.Errorf("duplicate AddGroup error = %v, want %v", err, ErrDuplicateGroup)
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	m := New(nil)
	ids := []string{"zeta", "alpha", "mid"}
	for _, id := range ids {
		if err := m.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}

	got := m.NodeIDs()
	if len(got) != len(ids) {
		t.Fatalf("NodeIDs() = %v, want %v", got, ids)
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Errorf("NodeIDs()[%d] = %s, want %s", i, got[i], ids[i])
		}
	}

	nodes := m.Nodes()
	for i := range ids {
		if nodes[i].ID != ids[i] {
			t.Errorf("Nodes()[%d].ID = %s, want %s", i, nodes[i].ID, ids[i])
		}
	}
}

func TestGroupsInsertionOrder(t *testing.T) {
	m := New(nil)
	for _, id := range []string{"a", "b"} {
		if err := m.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, name := range []string{"outer", "inner"} {
		if err := m.AddGroup(Group{Name: name, Members: []string{"a"}}); err != nil {
			t.Fatalf("AddGroup(%s): %v", name, err)
		}
	}

	groups := m.Groups()
	if len(groups) != 2 || groups[0].Name != "outer" || groups[1].Name != "inner" {
		t.Errorf("Groups() order = [%s, %s], want [outer, inner]", groups[0].Name, groups[1].Name)
	}
}

func TestCounts(t *testing.T) {
	m := New(nil)
	for _, id := range []string{"a", "b", "c"} {
		if err := m.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	if err := m.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := m.AddGroup(Group{Name: "core", Members: []string{"a", "b"}}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}

	if m.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", m.NodeCount())
	}
	if m.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", m.EdgeCount())
	}
	if m.GroupCount() != 1 {
		t.Errorf("GroupCount() = %d, want 1", m.GroupCount())
	}
}

func TestDisplay(t *testing.T) {
	if got := (Node{ID: "a", Label: "Login Page"}).Display(); got != "Login Page" {
		t.Errorf("Display() = %q, want label", got)
	}
	if got := (Node{ID: "a"}).Display(); got != "a" {
		t.Errorf("Display() = %q, want ID", got)
	}
}

func TestValidate(t *testing.T) {
	m := New(nil)
	for _, id := range []string{"a", "b"} {
		if err := m.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	if err := m.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := m.AddGroup(Group{Name: "core", Members: []string{"a"}}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}

	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	// Mutating a group through its pointer can break referential integrity;
	// Validate catches it.
	g, _ := m.Group("core")
	g.Members = append(g.Members, "ghost")
	if err := m.Validate(); !errors.Is(err, ErrUnknownGroupMember) {
		t.Errorf("Validate() after mutation = %v, want %v", err, ErrUnknownGroupMember)
	}
}

func TestEdgesReturnsCopy(t *testing.T) {
	m := New(nil)
	for _, id := range []string{"a", "b"} {
		if err := m.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	if err := m.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	edges := m.Edges()
	edges[0].From = "mutated"
	if m.Edges()[0].From != "a" {
		t.Error("Edges() exposes internal storage")
	}
}

func TestMetaDefault(t *testing.T) {
	m := New(nil)
	if m.Meta() == nil {
		t.Fatal("Meta() = nil, want empty map")
	}
	m.Meta()["style"] = "dark"
	if m.Meta()["style"] != "dark" {
		t.Error("model metadata not retained")
	}
}
