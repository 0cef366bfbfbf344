package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/orrery/pkg/layout"
)

// SVGOption configures SVG rendering via [SVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	nodeRadius float64
	padding    float64
	title      string
}

// WithNodeRadius sets the circle radius used for nodes (default 16).
func WithNodeRadius(r float64) SVGOption {
	return func(s *svgRenderer) { s.nodeRadius = r }
}

// WithPadding sets the margin between the outermost placement and the frame
// edge (default 40).
func WithPadding(p float64) SVGOption {
	return func(s *svgRenderer) { s.padding = p }
}

// WithTitle draws the given text in the top-left corner of the frame.
func WithTitle(t string) SVGOption {
	return func(s *svgRenderer) { s.title = t }
}

// SVG renders a solved layout as a standalone SVG document. Group boundaries
// are drawn as dashed boxes behind their members, edges as dashed lines, and
// nodes as labelled circles. The document's viewBox is fitted to the layout's
// placements plus padding, so solved coordinates appear unchanged in the SVG
// coordinate space.
//
// SVG returns [ErrNotSatisfied] when the layout's outcome is not satisfied.
func SVG(l *layout.Layout, opts ...SVGOption) ([]byte, error) {
	if !l.Satisfied() {
		return nil, fmt.Errorf("%w: outcome %q", ErrNotSatisfied, l.Outcome)
	}
	r := newSVGRenderer(opts...)

	minX, minY, maxX, maxY, ok := l.Bounds()
	if !ok {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}
	pad := r.padding + r.nodeRadius
	left := minX - pad
	top := minY - pad
	width := (maxX - minX) + 2*pad
	height := (maxY - minY) + 2*pad

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		left, top, width, height, width, height)

	for _, g := range l.Groups {
		renderGroupBox(&buf, g)
	}
	for _, e := range l.Edges {
		renderEdge(&buf, l, e)
	}
	for i := range l.Nodes {
		renderNode(&buf, &l.Nodes[i], r.nodeRadius)
	}
	for i := range l.Nodes {
		renderLabel(&buf, &l.Nodes[i], r.nodeRadius)
	}

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="%.2f" y="%.2f" font-family="Times,serif" font-size="14" font-weight="bold">%s</text>`+"\n",
			left+10, top+18, esc(r.title))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{nodeRadius: 16, padding: 40}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderGroupBox(buf *bytes.Buffer, g layout.GroupBox) {
	fmt.Fprintf(buf, `  <rect class="group" id="group-%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" ry="6" fill="none" stroke="#999" stroke-width="1" stroke-dasharray="4,3"/>`+"\n",
		esc(g.Name), g.MinX, g.MinY, g.MaxX-g.MinX, g.MaxY-g.MinY)
	fmt.Fprintf(buf, `  <text class="group-label" x="%.2f" y="%.2f" font-family="Times,serif" font-size="11" fill="#999">%s</text>`+"\n",
		g.MinX+4, g.MinY-4, esc(g.Name))
}

func renderEdge(buf *bytes.Buffer, l *layout.Layout, e layout.Edge) {
	from, okF := l.Node(e.From)
	to, okT := l.Node(e.To)
	if !okF || !okT {
		return
	}
	fmt.Fprintf(buf, `  <line class="edge" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#333" stroke-width="1.5" stroke-dasharray="6,4"/>`+"\n",
		from.X, from.Y, to.X, to.Y)
}

func renderNode(buf *bytes.Buffer, n *layout.Node, radius float64) {
	fmt.Fprintf(buf, `  <circle class="node" id="node-%s" cx="%.2f" cy="%.2f" r="%.2f" fill="white" stroke="#333" stroke-width="1.5"/>`+"\n",
		esc(n.ID), n.X, n.Y, radius)
}

func renderLabel(buf *bytes.Buffer, n *layout.Node, radius float64) {
	fmt.Fprintf(buf, `  <text class="node-label" x="%.2f" y="%.2f" text-anchor="middle" font-family="Times,serif" font-size="12">%s</text>`+"\n",
		n.X, n.Y+radius+12, esc(n.DisplayLabel()))
}

func esc(s string) string { return html.EscapeString(s) }
