package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/orrery/pkg/layout"
)

func sampleLayout() *layout.Layout {
	return &layout.Layout{
		Outcome: layout.OutcomeSatisfied,
		Nodes: []layout.Node{
			{ID: "a", Label: "Anchor", X: 10, Y: 20},
			{ID: "b", X: 90, Y: 20},
		},
		Edges:       []layout.Edge{{From: "a", To: "b"}},
		Stats:       layout.Stats{Explored: 1, Probes: 1, Duration: 2 * time.Millisecond},
		ProblemHash: "abc123",
	}
}

func TestMemStoreRoundTrip(t *testing.T) {
	st := NewMemStore()
	ctx := context.Background()

	id, err := st.Save(ctx, sampleLayout())
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if id == "" {
		t.Fatal("Save() returned an empty id")
	}

	got, err := st.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !reflect.DeepEqual(got, sampleLayout()) {
		t.Errorf("Get() = %+v, want %+v", got, sampleLayout())
	}
}

func TestMemStoreMissing(t *testing.T) {
	st := NewMemStore()

	_, err := st.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestMemStoreDistinctIDs(t *testing.T) {
	st := NewMemStore()
	ctx := context.Background()

	first, err := st.Save(ctx, sampleLayout())
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	second, err := st.Save(ctx, sampleLayout())
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if first == second {
		t.Errorf("Save() reused id %q", first)
	}
}

func TestMemStoreClose(t *testing.T) {
	st := NewMemStore()
	if err := st.Close(context.Background()); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}
