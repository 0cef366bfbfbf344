package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/orrery/pkg/layout"
)

func TestConflictTable(t *testing.T) {
	conflicts := []layout.Conflict{
		{
			Source:      "api feeds db",
			Constraints: []string{"api left of db (gap 60)"},
		},
		{
			Source:      "db feeds api",
			Constraints: []string{"db left of api (gap 60)", "db aligned with api on y"},
		},
		{
			Source:      "hidden node legacy",
			Constraints: []string{"legacy left of db (gap 40)"},
			Dropped:     true,
		},
	}

	got := conflictTable(conflicts)
	wants := []string{
		"api feeds db",
		"api left of db (gap 60)",
		"db feeds api",
		"db left of api (gap 60)",
		"db aligned with api on y",
		"hidden node legacy",
		"legacy left of db (gap 40)",
		"conflicting",
		"dropped",
		"Source",
		"Constraints",
		"Status",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("conflictTable() missing %q\n%s", want, got)
		}
	}
}

func TestConflictTableEmpty(t *testing.T) {
	// The command never renders an empty table, but the renderer should not
	// panic on one.
	if got := conflictTable(nil); got == "" {
		t.Error("conflictTable(nil) = empty, want at least the header row")
	}
}
