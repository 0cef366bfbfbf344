package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orrery/pkg/layout"
	"github.com/matzehuels/orrery/pkg/solver"
)

// explainCommand creates the explain command for conflict diagnosis.
func (c *CLI) explainCommand() *cobra.Command {
	var (
		noCache     bool
		interactive bool
	)
	opts := c.cfg.solverOptions()

	cmd := &cobra.Command{
		Use:   "explain [problem.yaml]",
		Short: "Show why a problem cannot be satisfied",
		Long: `Show why a problem cannot be satisfied.

The explain command solves the problem and reports a minimal set of
constraint sources that cannot coexist: removing any one of them makes
the remaining ones satisfiable together. Constraints dropped because
they reference hidden nodes are listed separately.

A satisfiable problem reports its search statistics instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplain(cmd, args[0], opts, noCache, interactive)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse conflicts interactively")
	addSolveFlags(cmd, &opts)

	return cmd
}

// runExplain solves the problem and reports its conflicts.
func (c *CLI) runExplain(cmd *cobra.Command, input string, opts solver.Options, noCache, interactive bool) error {
	ctx := cmd.Context()

	l, cacheHit, err := c.solveFile(ctx, cmd, input, opts, noCache)
	if err != nil {
		return err
	}

	switch l.Outcome {
	case layout.OutcomeSatisfied:
		printSuccess("Problem is satisfiable")
	case layout.OutcomeUnsatisfiable:
		printWarning("Problem is unsatisfiable")
	case layout.OutcomeBudget:
		printWarning("Search budget exhausted before a verdict")
		printDetail("retry with a larger --budget")
	}
	printStats(len(l.Nodes), len(l.Edges), l.Stats.Duration, cacheHit)
	printDetail("%d explored · %d pruned · %d probes", l.Stats.Explored, l.Stats.Pruned, l.Stats.Probes)

	if len(l.Conflicts) == 0 {
		return nil
	}

	if interactive {
		if _, err := tea.NewProgram(NewConflictBrowserModel(l.Conflicts)).Run(); err != nil {
			return fmt.Errorf("interactive browser: %w", err)
		}
		return nil
	}

	printNewline()
	fmt.Println(conflictTable(l.Conflicts))
	return nil
}

// conflictTable renders the explanation rows as a static table. Dropped
// rows are dimmed; the remaining rows form the minimal conflict set.
func conflictTable(conflicts []layout.Conflict) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(conflicts))
	for i, cf := range conflicts {
		status := "conflicting"
		if cf.Dropped {
			status = "dropped"
		}
		rows[i] = []string{cf.Source, strings.Join(cf.Constraints, "\n"), status}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Source", "Constraints", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= len(conflicts) {
				return lipgloss.NewStyle()
			}
			if conflicts[row].Dropped {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}
