package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/orrery/pkg/layout"
)

// Options configures DOT emission.
type Options struct {
	// Detailed includes solved coordinates and metadata in node labels.
	// When false, only the display label is shown.
	Detailed bool

	// Scale multiplies solved coordinates before emission. Graphviz sizes
	// node boxes independently of the coordinate grid, so layouts with small
	// gaps read better scaled up. Zero means 1.
	Scale float64
}

// DOT converts a solved layout to Graphviz DOT with every node pinned at its
// solved position. Pins use neato's "x,y!" form, so the DOT must be laid out
// with the neato engine; [RenderSVG], [RenderPDF], and [RenderPNG] do this.
// Graphviz grows y upward while layouts grow y downward, so emitted positions
// carry a negated y.
//
// Group boundaries are not emitted. Graphviz clusters are ignored by neato;
// the [SVG] sink draws them instead.
//
// DOT returns [ErrNotSatisfied] when the layout's outcome is not satisfied.
func DOT(l *layout.Layout, opts Options) (string, error) {
	if !l.Satisfied() {
		return "", fmt.Errorf("%w: outcome %q", ErrNotSatisfied, l.Outcome)
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph diagram {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.1,0.05\"];\n")
	buf.WriteString("  edge [color=\"#333333\"];\n")
	buf.WriteString("\n")

	for i := range l.Nodes {
		n := &l.Nodes[i]
		attrs := nodeAttrs(n, opts.Detailed, scale)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeAttrs(n *layout.Node, detailed bool, scale float64) []string {
	label := n.DisplayLabel()
	if detailed {
		parts := []string{fmt.Sprintf("x: %.1f", n.X), fmt.Sprintf("y: %.1f", n.Y)}
		for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
			parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
		}
		label = label + "\n" + strings.Join(parts, "\n")
	}
	py := -n.Y * scale
	if py == 0 {
		// fmt prints IEEE negative zero as "-0.00"
		py = 0
	}
	return []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf(`pos="%.2f,%.2f!"`, n.X*scale, py),
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine, which
// honors the position pins emitted by [DOT]. Returns the SVG bytes ready for
// display or further conversion with [ToPDF] or [ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}
