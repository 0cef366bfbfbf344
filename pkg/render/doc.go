// Package render turns solved layouts into visual outputs.
//
// # Overview
//
// This package contains the sinks that transform a [layout.Layout] into a
// drawable artifact. It provides:
//
//   - Hand-built SVG documents ([SVG])
//   - Graphviz DOT with pinned positions ([DOT], [RenderSVG], [RenderPNG])
//   - Generic format conversion (SVG to PDF/PNG via [ToPDF] and [ToPNG])
//
// All sinks draw placements only; a layout whose outcome is unsatisfiable or
// budget exhausted has nothing to draw and yields [ErrNotSatisfied]. Conflict
// explanation is a presentation concern of the CLI, not of this package.
//
// # SVG Output
//
// [SVG] writes a standalone SVG document directly from the solved
// coordinates: dashed group boxes behind their members, dashed edges, and
// labelled node circles. No external tooling is involved.
//
//	svg, err := render.SVG(l, render.WithTitle("services"))
//
// # DOT Output
//
// [DOT] emits a Graphviz digraph in which every node is pinned at its solved
// position using neato's "x,y!" syntax. [RenderSVG] lays the DOT out with the
// neato engine, which honors the pins, so Graphviz contributes node shapes,
// edge routing, and arrowheads while the solver keeps control of positions.
//
//	dot, err := render.DOT(l, render.Options{})
//	svg, err := render.RenderSVG(dot)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They serve both the
// hand-built and the Graphviz-rendered SVG:
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
package render
