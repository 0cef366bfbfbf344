package solver

import (
	"strings"
	"testing"
)

func TestLoggingTracer(t *testing.T) {
	var buf strings.Builder
	tr := LoggingTracer{Writer: &buf}

	tr.Trace(snapshot(2, []int{0, 3}))

	want := "---\n" +
		"Dead end at disjunction 2\n" +
		"Committed:\n" +
		"- disjunction 0 alternative 0\n" +
		"- disjunction 1 alternative 3\n"
	if buf.String() != want {
		t.Errorf("trace output = %q, want %q", buf.String(), want)
	}
}

func TestLoggingTracerNoCommits(t *testing.T) {
	var buf strings.Builder
	tr := LoggingTracer{Writer: &buf}

	tr.Trace(snapshot(0, nil))

	want := "---\nDead end at disjunction 0\nCommitted:\n"
	if buf.String() != want {
		t.Errorf("trace output = %q, want %q", buf.String(), want)
	}
}

func TestSnapshotCopiesChosen(t *testing.T) {
	chosen := []int{1, 2}
	p := snapshot(2, chosen)

	chosen[0] = 9
	if p.Chosen()[0] != 1 {
		t.Error("snapshot shares the live chosen slice")
	}
}

func TestDefaultTracerIsSilent(t *testing.T) {
	// Must not panic without a writer.
	DefaultTracer{}.Trace(snapshot(0, []int{1}))
}
