package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	oerrors "github.com/matzehuels/orrery/pkg/errors"
	"github.com/matzehuels/orrery/pkg/layout"
	"github.com/matzehuels/orrery/pkg/observability"
	"github.com/matzehuels/orrery/pkg/render"
	"github.com/matzehuels/orrery/pkg/solver"
)

const (
	formatJSON = "json"
	formatSVG  = "svg"
	formatPNG  = "png"
	formatPDF  = "pdf"
	formatDOT  = "dot"

	// defaultPNGScale is the raster scale factor for PNG export.
	defaultPNGScale = 2.0
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple formats)
	formats  []string // output formats: svg, json, png, pdf, dot
	detailed bool     // include coordinates and metadata in DOT labels
	dotScale float64  // coordinate multiplier for DOT output
	pngScale float64  // raster scale factor for PNG output
	title    string   // title text for SVG output
	noCache  bool     // disable the solve cache
}

// renderCommand creates the render command for generating artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{dotScale: 1, pngScale: defaultPNGScale}
	solveOpts := c.cfg.solverOptions()

	cmd := &cobra.Command{
		Use:   "render [problem.yaml|layout.json]",
		Short: "Render a layout to SVG, JSON, PNG, PDF, or DOT",
		Long: `Render a layout to one or more artifact formats.

Inputs ending in .layout.json are read as computed layouts (produced by
'solve'); anything else is read as a problem document and solved first.
SVG output is drawn directly from the solved coordinates. PNG and PDF
are produced by pinning the coordinates in a DOT graph and rasterizing
the result, which requires rsvg-convert.

Only satisfied layouts have placements to draw; 'explain' shows why a
layout has none. The json format works for any outcome.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.formats) > 1 {
				return fmt.Errorf("stdout output supports a single format")
			}
			return c.runRender(cmd, args[0], opts, solveOpts)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include coordinates and metadata in DOT labels")
	cmd.Flags().Float64Var(&opts.dotScale, "dot-scale", opts.dotScale, "coordinate multiplier for DOT output")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", opts.pngScale, "raster scale factor for PNG output")
	cmd.Flags().StringVar(&opts.title, "title", "", "title text for SVG output")

	// Solver flags, used when the input is a problem document
	addSolveFlags(cmd, &solveOpts)

	return cmd
}

// runRender loads or solves the input and writes the requested artifacts.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts, solveOpts solver.Options) error {
	ctx := cmd.Context()

	l, cacheHit, err := c.loadOrSolve(ctx, cmd, input, solveOpts, opts.noCache)
	if err != nil {
		return err
	}

	base := basePath(opts.output, input)
	var written []string
	for _, format := range opts.formats {
		data, err := c.renderArtifact(ctx, l, format, opts)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}

		path := artifactPath(base, opts.output, format, len(opts.formats))
		if err := writeArtifact(path, data); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if path != "-" {
			written = append(written, path)
		}
	}

	// Stdout output gets no decorations; the artifact is the output.
	if len(written) == 0 {
		return nil
	}

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(len(l.Nodes), len(l.Edges), l.Stats.Duration, cacheHit)

	return nil
}

// loadOrSolve reads a computed layout or solves a problem document,
// depending on the input's suffix.
func (c *CLI) loadOrSolve(ctx context.Context, cmd *cobra.Command, input string, opts solver.Options, noCache bool) (*layout.Layout, bool, error) {
	if strings.HasSuffix(input, layoutSuffix) {
		l, err := layout.ReadFile(input)
		if err != nil {
			return nil, false, fmt.Errorf("load layout %s: %w", input, err)
		}
		return &l, true, nil
	}
	return c.solveFile(ctx, cmd, input, opts, noCache)
}

// renderArtifact produces one artifact, reporting timing through the
// engine hooks.
func (c *CLI) renderArtifact(ctx context.Context, l *layout.Layout, format string, opts renderOpts) ([]byte, error) {
	start := time.Now()
	observability.Engine().OnRenderStart(ctx, format)
	data, err := buildArtifact(l, format, opts)
	observability.Engine().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	c.Logger.Debugf("Generated %s: %d bytes", format, len(data))
	return data, nil
}

// buildArtifact dispatches to the renderer for one format.
func buildArtifact(l *layout.Layout, format string, opts renderOpts) ([]byte, error) {
	switch format {
	case formatJSON:
		return layout.Marshal(*l)
	case formatSVG:
		var svgOpts []render.SVGOption
		if opts.title != "" {
			svgOpts = append(svgOpts, render.WithTitle(opts.title))
		}
		return render.SVG(l, svgOpts...)
	case formatDOT:
		dot, err := render.DOT(l, render.Options{Detailed: opts.detailed, Scale: opts.dotScale})
		if err != nil {
			return nil, err
		}
		return []byte(dot), nil
	case formatPNG:
		dot, err := render.DOT(l, render.Options{Detailed: opts.detailed, Scale: opts.dotScale})
		if err != nil {
			return nil, err
		}
		return render.RenderPNG(dot, opts.pngScale)
	case formatPDF:
		dot, err := render.DOT(l, render.Options{Detailed: opts.detailed, Scale: opts.dotScale})
		if err != nil {
			return nil, err
		}
		return render.RenderPDF(dot)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{
	formatJSON: true,
	formatSVG:  true,
	formatPNG:  true,
	formatPDF:  true,
	formatDOT:  true,
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if err := oerrors.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output has a
// format extension (.svg, .pdf, etc.), it strips that extension. This is
// used when generating multiple files (e.g., diagram.svg, diagram.png).
func basePath(output, input string) string {
	if output == "" || output == "-" {
		return strings.TrimSuffix(strings.TrimSuffix(input, layoutSuffix), filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactPath builds the output path for one format.
func artifactPath(base, output, format string, nformats int) string {
	if nformats == 1 && output != "" {
		return output
	}
	return base + "." + format
}

// writeArtifact writes data to path, or to stdout when path is "-".
func writeArtifact(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
