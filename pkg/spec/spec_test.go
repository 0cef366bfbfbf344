package spec

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/orrery/pkg/constraint"
	"github.com/matzehuels/orrery/pkg/cyclic"
	"github.com/matzehuels/orrery/pkg/diagram"
	"github.com/matzehuels/orrery/pkg/layout"
)

func read(t *testing.T, doc string) layout.Problem {
	t.Helper()
	p, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return p
}

func TestReadFullDocument(t *testing.T) {
	p := read(t, `
title: Service map
meta:
  owner: infra
nodes:
  - id: api
    label: API Gateway
    meta:
      tier: edge
  - id: db
  - id: cache
edges:
  - from: api
    to: db
groups:
  - name: backend
    padding: 12
    members: [db, cache]
constraints:
  - source: request flow
    entries:
      - kind: orientation
        direction: left
        a: api
        b: db
        gap: 60
      - kind: alignment
        axis: y
        nodes: [db, cache]
cycles:
  - direction: counterclockwise
    fragments:
      - [api, db, cache]
hidden: [cache]
solve:
  sep_x: 50
  sep_y: 45
  radius: 150
  budget: 500
`)

	m := p.Diagram
	if m.NodeCount() != 3 || m.EdgeCount() != 1 || m.GroupCount() != 1 {
		t.Fatalf("model counts = (%d, %d, %d), want (3, 1, 1)",
			m.NodeCount(), m.EdgeCount(), m.GroupCount())
	}
	if m.Meta()["title"] != "Service map" || m.Meta()["owner"] != "infra" {
		t.Errorf("model meta = %v, want title and owner", m.Meta())
	}
	api, _ := m.Node("api")
	if api.Label != "API Gateway" || api.Meta["tier"] != "edge" {
		t.Errorf("api = %+v, want label and meta decoded", api)
	}

	if len(p.Groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(p.Groups))
	}
	if p.Groups[0].Label != `group "backend"` {
		t.Errorf("Groups[0].Label = %q, want boundary group first", p.Groups[0].Label)
	}
	wantBoundary := constraint.Boundary("backend", 12, "db", "cache")
	if !reflect.DeepEqual(p.Groups[0].Constraints, []constraint.Positional{wantBoundary}) {
		t.Errorf("Groups[0].Constraints = %v, want [%v]", p.Groups[0].Constraints, wantBoundary)
	}

	flow := p.Groups[1]
	if flow.Label != "request flow" {
		t.Fatalf("Groups[1].Label = %q, want %q", flow.Label, "request flow")
	}
	want := []constraint.Positional{
		constraint.Left("api", "db", 60),
		constraint.Align(constraint.Y, "db", "cache"),
	}
	if !reflect.DeepEqual(flow.Constraints, want) {
		t.Errorf("flow constraints = %v, want %v", flow.Constraints, want)
	}

	if len(p.Cycles) != 1 {
		t.Fatalf("len(Cycles) = %d, want 1", len(p.Cycles))
	}
	cyc := p.Cycles[0]
	if cyc.Direction != cyclic.Counterclockwise {
		t.Errorf("cycle direction = %v, want counterclockwise", cyc.Direction)
	}
	if !reflect.DeepEqual(cyc.Fragments, []cyclic.Fragment{{"api", "db", "cache"}}) {
		t.Errorf("fragments = %v", cyc.Fragments)
	}

	if !reflect.DeepEqual(p.Hidden, []string{"cache"}) {
		t.Errorf("Hidden = %v, want [cache]", p.Hidden)
	}
	if p.Options.SepX != 50 || p.Options.SepY != 45 || p.Options.Radius != 150 || p.Options.Budget != 500 {
		t.Errorf("Options = %+v, want decoded solve block", p.Options)
	}
}

func TestReadJSONDocument(t *testing.T) {
	p := read(t, `{"nodes":[{"id":"a"},{"id":"b"}],`+
		`"constraints":[{"source":"flow","entries":[`+
		`{"kind":"orientation","direction":"left","a":"a","b":"b","gap":40}]}]}`)

	if p.Diagram.NodeCount() != 2 {
		t.Fatalf("NodeCount = %d, want 2", p.Diagram.NodeCount())
	}
	want := constraint.Left("a", "b", 40)
	if !reflect.DeepEqual(p.Groups[0].Constraints, []constraint.Positional{want}) {
		t.Errorf("constraints = %v, want [%v]", p.Groups[0].Constraints, want)
	}
}

func TestOrientationDirections(t *testing.T) {
	tests := []struct {
		direction string
		want      constraint.Positional
	}{
		{"left", constraint.Left("a", "b", 10)},
		{"right", constraint.Left("b", "a", 10)},
		{"above", constraint.Top("a", "b", 10)},
		{"below", constraint.Top("b", "a", 10)},
	}
	for _, tt := range tests {
		t.Run(tt.direction, func(t *testing.T) {
			p := read(t, `
nodes: [{id: a}, {id: b}]
constraints:
  - source: s
    entries:
      - {kind: orientation, direction: `+tt.direction+`, a: a, b: b, gap: 10}
`)
			got := p.Groups[0].Constraints[0]
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("constraint = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlignmentPairs(t *testing.T) {
	p := read(t, `
nodes: [{id: a}, {id: b}, {id: c}]
constraints:
  - source: lane
    entries:
      - {kind: alignment, axis: x, nodes: [a, b, c]}
`)
	want := []constraint.Positional{
		constraint.Align(constraint.X, "a", "b"),
		constraint.Align(constraint.X, "b", "c"),
	}
	if !reflect.DeepEqual(p.Groups[0].Constraints, want) {
		t.Errorf("constraints = %v, want %v", p.Groups[0].Constraints, want)
	}
}

func TestBoundingBoxEntry(t *testing.T) {
	p := read(t, `
nodes: [{id: a}]
constraints:
  - source: frame
    entries:
      - {kind: bounding_box, node: a, min_x: -10, min_y: 0, max_x: 200, max_y: 100}
`)
	want := constraint.InBox("a", constraint.Rect{MinX: -10, MinY: 0, MaxX: 200, MaxY: 100})
	if !reflect.DeepEqual(p.Groups[0].Constraints, []constraint.Positional{want}) {
		t.Errorf("constraints = %v, want [%v]", p.Groups[0].Constraints, want)
	}
}

func TestGroupEntryWithoutRegistration(t *testing.T) {
	p := read(t, `
nodes: [{id: a}, {id: b}]
constraints:
  - source: pen
    entries:
      - {kind: group, name: pen, padding: 8, members: [a, b]}
`)
	if p.Diagram.GroupCount() != 0 {
		t.Errorf("GroupCount = %d, want 0 for entry-form boundary", p.Diagram.GroupCount())
	}
	want := constraint.Boundary("pen", 8, "a", "b")
	if !reflect.DeepEqual(p.Groups[0].Constraints, []constraint.Positional{want}) {
		t.Errorf("constraints = %v, want [%v]", p.Groups[0].Constraints, want)
	}
}

func TestCycleDirectionDefault(t *testing.T) {
	p := read(t, `
nodes: [{id: a}, {id: b}, {id: c}]
cycles:
  - fragments: [[a, b, c]]
`)
	if p.Cycles[0].Direction != cyclic.Clockwise {
		t.Errorf("direction = %v, want clockwise default", p.Cycles[0].Direction)
	}
}

func TestTitleOverridesMetaTitle(t *testing.T) {
	p := read(t, `
title: Outer
meta:
  title: Inner
nodes: [{id: a}]
`)
	if got := p.Diagram.Meta()["title"]; got != "Outer" {
		t.Errorf(`meta["title"] = %v, want "Outer"`, got)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantIs  error
		wantErr string
	}{
		{
			name:   "DuplicateNode",
			doc:    `{nodes: [{id: a}, {id: a}]}`,
			wantIs: diagram.ErrDuplicateNodeID,
		},
		{
			name:    "ReservedNode",
			doc:     `{nodes: [{id: __x__}]}`,
			wantErr: "reserved form",
		},
		{
			name:   "UnknownEdgeTarget",
			doc:    `{nodes: [{id: a}], edges: [{from: a, to: zz}]}`,
			wantIs: diagram.ErrUnknownTargetNode,
		},
		{
			name:   "UnknownGroupMember",
			doc:    `{nodes: [{id: a}], groups: [{name: g, members: [zz]}]}`,
			wantIs: diagram.ErrUnknownGroupMember,
		},
		{
			name:    "MissingSource",
			doc:     `{nodes: [{id: a}], constraints: [{entries: [{kind: orientation, direction: left, a: a, b: a}]}]}`,
			wantErr: "missing source label",
		},
		{
			name:    "NoEntries",
			doc:     `{nodes: [{id: a}], constraints: [{source: s}]}`,
			wantErr: "no entries",
		},
		{
			name:    "UnknownKind",
			doc:     `{nodes: [{id: a}], constraints: [{source: s, entries: [{kind: skew}]}]}`,
			wantErr: `unknown kind "skew"`,
		},
		{
			name:    "MissingKind",
			doc:     `{nodes: [{id: a}], constraints: [{source: s, entries: [{direction: left}]}]}`,
			wantErr: "missing kind",
		},
		{
			name:    "UnknownDirection",
			doc:     `{nodes: [{id: a}, {id: b}], constraints: [{source: s, entries: [{kind: orientation, direction: diagonal, a: a, b: b}]}]}`,
			wantErr: `unknown direction "diagonal"`,
		},
		{
			name:    "MissingOperand",
			doc:     `{nodes: [{id: a}], constraints: [{source: s, entries: [{kind: orientation, direction: left, a: a}]}]}`,
			wantErr: "needs both a and b",
		},
		{
			name:    "BadAxis",
			doc:     `{nodes: [{id: a}, {id: b}], constraints: [{source: s, entries: [{kind: alignment, axis: z, nodes: [a, b]}]}]}`,
			wantErr: `unknown axis "z"`,
		},
		{
			name:    "OneNodeAlignment",
			doc:     `{nodes: [{id: a}], constraints: [{source: s, entries: [{kind: alignment, axis: x, nodes: [a]}]}]}`,
			wantErr: "at least two nodes",
		},
		{
			name:    "BoundingBoxWithoutNode",
			doc:     `{nodes: [{id: a}], constraints: [{source: s, entries: [{kind: bounding_box, min_x: 0}]}]}`,
			wantErr: "bounding_box needs a node",
		},
		{
			name:    "GroupEntryWithoutName",
			doc:     `{nodes: [{id: a}], constraints: [{source: s, entries: [{kind: group, members: [a]}]}]}`,
			wantErr: "group name cannot be empty",
		},
		{
			name:    "UnknownHidden",
			doc:     `{nodes: [{id: a}], hidden: [zz]}`,
			wantErr: `hidden: unknown node "zz"`,
		},
		{
			name:    "CycleWithoutFragments",
			doc:     `{nodes: [{id: a}], cycles: [{direction: clockwise}]}`,
			wantErr: "no fragments",
		},
		{
			name:    "EmptyFragment",
			doc:     `{nodes: [{id: a}], cycles: [{fragments: [[]]}]}`,
			wantErr: "fragment 0 is empty",
		},
		{
			name:    "BadCycleDirection",
			doc:     `{nodes: [{id: a}], cycles: [{direction: widdershins, fragments: [[a]]}]}`,
			wantErr: `unknown direction "widdershins"`,
		},
		{
			name:    "UnknownField",
			doc:     `{nodez: []}`,
			wantErr: "not found in type",
		},
		{
			name:    "Malformed",
			doc:     "nodes: [",
			wantErr: "decode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("Read should fail")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("Read error = %v, want errors.Is(%v)", err, tt.wantIs)
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Read error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.yaml")
	doc := `
nodes: [{id: a}, {id: b}]
constraints:
  - source: flow
    entries:
      - {kind: orientation, direction: left, a: a, b: b, gap: 40}
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if p.Diagram.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", p.Diagram.NodeCount())
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "open") {
		t.Fatalf("ReadFile error = %v, want open failure", err)
	}
}
