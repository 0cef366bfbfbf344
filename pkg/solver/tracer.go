package solver

import (
	"fmt"
	"io"
)

// SearchPosition describes where the search stood when a branch died.
type SearchPosition interface {
	// Level is the disjunction index at which the branch failed; it equals
	// the disjunction count when a full combination failed its final check.
	Level() int
	// Chosen returns the alternative indices committed before the failure,
	// one per decided disjunction.
	Chosen() []int
}

// Tracer observes backtrack points during the search.
type Tracer interface {
	Trace(p SearchPosition)
}

// DefaultTracer ignores every position.
type DefaultTracer struct{}

// Trace implements Tracer.
func (DefaultTracer) Trace(_ SearchPosition) {
}

// LoggingTracer writes each backtrack point to Writer.
type LoggingTracer struct {
	Writer io.Writer
}

// Trace implements Tracer.
func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nDead end at disjunction %d\nCommitted:\n", p.Level())
	for level, alt := range p.Chosen() {
		fmt.Fprintf(t.Writer, "- disjunction %d alternative %d\n", level, alt)
	}
}

type position struct {
	level  int
	chosen []int
}

func (p position) Level() int {
	return p.level
}

func (p position) Chosen() []int {
	return p.chosen
}

// snapshot captures the current choice vector for a trace call.
func snapshot(level int, chosen []int) position {
	c := make([]int, len(chosen))
	copy(c, chosen)
	return position{level: level, chosen: c}
}
