// Package cli implements the orrery command-line interface.
//
// This package provides commands for solving declarative diagram problems
// into concrete coordinates, rendering the results, and explaining
// conflicts when a problem cannot be satisfied. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - solve: Compute a layout for a problem document
//   - render: Generate JSON, SVG, PNG, PDF, or DOT artifacts
//   - explain: Show why a problem cannot be satisfied
//   - expand: Debug tool for cyclic ring expansions
//   - serve: Run the HTTP layout service
//   - cache: Manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
//
// # Example
//
//	import "github.com/matzehuels/orrery/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orrery/pkg/buildinfo"
	"github.com/matzehuels/orrery/pkg/cache"
	oerrors "github.com/matzehuels/orrery/pkg/errors"
	"github.com/matzehuels/orrery/pkg/layout"
	"github.com/matzehuels/orrery/pkg/solver"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "orrery"

	// layoutSuffix is appended to an input's base name when no output path
	// is given.
	layoutSuffix = ".layout.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg    Config
	cfgErr error
}

// New creates a new CLI instance with a default logger. Configuration is
// loaded eagerly so flag defaults can reflect it; a load failure is held
// and reported when the first command runs.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	c.cfg, c.cfgErr = loadConfig()
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "orrery",
		Short:        "Orrery solves declarative diagram layouts",
		Long:         `Orrery turns a declarative description of a diagram - nodes, edges, groups, and spatial constraints - into concrete coordinates, explaining itself when the constraints cannot all hold.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.cfgErr
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.explainCommand())
	root.AddCommand(c.expandCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Engine Factory
// =============================================================================

// newEngine creates a layout engine for CLI use, with the cache backend
// chosen by configuration.
func (c *CLI) newEngine(ctx context.Context, noCache bool) (*layout.Engine, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	eng := layout.New(backend, c.Logger)
	eng.TTL = c.cfg.cacheTTL()
	return eng, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.cfg.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if c.cfg.Cache.Backend == "redis" {
		backend, err := cache.NewRedisCache(ctx, c.cfg.redisAddr())
		if err != nil {
			return nil, oerrors.Wrap(oerrors.ErrCodeCacheUnavailable, err, "redis cache at %s", c.cfg.redisAddr())
		}
		return backend, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the XDG
// standard (~/.cache/orrery/).
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// defaultOutputPath derives <input>.layout.json from the input path.
func defaultOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + layoutSuffix
}

// =============================================================================
// Options Helpers
// =============================================================================

// addSolveFlags registers the solver option flags shared by solve, render,
// and explain. Defaults come from configuration; zero means the solver's
// built-in default.
func addSolveFlags(cmd *cobra.Command, opts *solver.Options) {
	cmd.Flags().Float64Var(&opts.SepX, "sep-x", opts.SepX, "minimum horizontal separation in ring expansions (0 = default)")
	cmd.Flags().Float64Var(&opts.SepY, "sep-y", opts.SepY, "minimum vertical separation in ring expansions (0 = default)")
	cmd.Flags().Float64Var(&opts.Radius, "radius", opts.Radius, "ring expansion radius (0 = default)")
	cmd.Flags().IntVar(&opts.Budget, "budget", opts.Budget, "search budget in explored alternatives (0 = unlimited)")
}

// mergeSolveOptions resolves the precedence between a document's solve
// section and the CLI: an explicitly set flag wins, then the document's
// non-zero fields, then the flag defaults (configuration).
func mergeSolveOptions(cmd *cobra.Command, flag, doc solver.Options) solver.Options {
	out := doc
	if cmd.Flags().Changed("sep-x") || out.SepX == 0 {
		out.SepX = flag.SepX
	}
	if cmd.Flags().Changed("sep-y") || out.SepY == 0 {
		out.SepY = flag.SepY
	}
	if cmd.Flags().Changed("radius") || out.Radius == 0 {
		out.Radius = flag.Radius
	}
	if cmd.Flags().Changed("budget") || out.Budget == 0 {
		out.Budget = flag.Budget
	}
	return out
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}
