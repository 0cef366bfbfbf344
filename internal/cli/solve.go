package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	oerrors "github.com/matzehuels/orrery/pkg/errors"
	"github.com/matzehuels/orrery/pkg/layout"
	"github.com/matzehuels/orrery/pkg/solver"
	"github.com/matzehuels/orrery/pkg/spec"
)

// solveCommand creates the solve command for computing layouts.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := c.cfg.solverOptions()

	cmd := &cobra.Command{
		Use:   "solve [problem.yaml]",
		Short: "Compute a layout for a problem document",
		Long: `Compute a layout for a problem document.

The solve command reads a problem document (YAML or JSON) describing nodes,
edges, groups, and constraints, searches for coordinates that satisfy every
constraint, and writes the result as a layout.json file. An unsatisfiable
problem still produces a layout file; its outcome field records why no
placement exists, and 'explain' shows the conflicting sources.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Solver flags
	addSolveFlags(cmd, &opts)

	return cmd
}

// runSolve loads the problem, solves it, and writes the layout.
func (c *CLI) runSolve(cmd *cobra.Command, input string, opts solver.Options, output string, noCache bool) error {
	ctx := cmd.Context()

	l, cacheHit, err := c.solveFile(ctx, cmd, input, opts, noCache)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutputPath(input)
	}

	if err := layout.WriteFile(*l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	switch l.Outcome {
	case layout.OutcomeSatisfied:
		printSuccess("Layout solved")
	case layout.OutcomeUnsatisfiable:
		printWarning("Problem is unsatisfiable")
	case layout.OutcomeBudget:
		printWarning("Search budget exhausted")
	}
	printFile(outputPath)
	printStats(len(l.Nodes), len(l.Edges), l.Stats.Duration, cacheHit)
	printNewline()
	if l.Satisfied() {
		printNextStep("Render", "orrery render "+outputPath)
		return nil
	}
	printNextStep("Explain", "orrery explain "+input)

	return outcomeErr(l.Outcome)
}

// outcomeErr maps a non-satisfied outcome onto its coded error so callers
// and scripts see a non-zero exit. The layout file is written either way;
// explain deliberately exits zero because reporting the outcome is its job.
func outcomeErr(outcome string) error {
	switch outcome {
	case layout.OutcomeUnsatisfiable:
		return oerrors.New(oerrors.ErrCodeUnsatisfiable, "problem is unsatisfiable")
	case layout.OutcomeBudget:
		return oerrors.New(oerrors.ErrCodeBudgetExhausted, "search budget exhausted")
	}
	return nil
}

// solveFile reads a problem document and solves it with a spinner. The
// document's own solve section is merged with the command's flags before
// the solve. Shared by solve, render, and explain.
func (c *CLI) solveFile(ctx context.Context, cmd *cobra.Command, input string, opts solver.Options, noCache bool) (*layout.Layout, bool, error) {
	problem, err := spec.ReadFile(input)
	if err != nil {
		return nil, false, err
	}
	problem.Options = mergeSolveOptions(cmd, opts, problem.Options)

	eng, err := c.newEngine(ctx, noCache)
	if err != nil {
		return nil, false, fmt.Errorf("initialize engine: %w", err)
	}
	defer eng.Close()

	spinner := newSpinnerWithContext(ctx, "Solving constraints...")
	spinner.Start()

	l, cacheHit, err := eng.SolveWithCacheInfo(ctx, problem)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return nil, false, fmt.Errorf("%s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return nil, false, ctx.Err()
	}
	return l, cacheHit, nil
}
