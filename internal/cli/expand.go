package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orrery/pkg/cyclic"
	oerrors "github.com/matzehuels/orrery/pkg/errors"
	"github.com/matzehuels/orrery/pkg/solver"
)

// expandCommand creates the expand command for inspecting ring expansions.
func (c *CLI) expandCommand() *cobra.Command {
	var (
		direction string
		all       bool
	)
	opts := c.cfg.solverOptions()

	cmd := &cobra.Command{
		Use:   "expand [node...]",
		Short: "Show the ring arrangements of a cyclic fragment (debug tool)",
		Long: `Show the constraint sets a cyclic fragment expands into.

A fragment of nodes arranged in a ring has no single fixed shape: each
rotation of the fragment around the circle is a valid arrangement, and
the solver tries them as alternatives. This command prints those
alternatives exactly as the solver sees them. Counterclockwise rings
reverse the fragment before placement; fragments of fewer than three
nodes have nothing to rotate.`,
		Example: `  # The arrangements of a three-node ring
  orrery expand a b c

  # Counterclockwise, with a wider circle
  orrery expand a b c --direction ccw --radius 200`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(args, direction, opts, all)
		},
	}

	cmd.Flags().StringVar(&direction, "direction", "clockwise", "rotation sense: clockwise (cw), counterclockwise (ccw)")
	cmd.Flags().BoolVar(&all, "all", false, "print every alternative in full")
	cmd.Flags().Float64Var(&opts.SepX, "sep-x", opts.SepX, "minimum horizontal separation (0 = default)")
	cmd.Flags().Float64Var(&opts.SepY, "sep-y", opts.SepY, "minimum vertical separation (0 = default)")
	cmd.Flags().Float64Var(&opts.Radius, "radius", opts.Radius, "ring radius (0 = default)")

	return cmd
}

// maxShownAlternatives bounds the default output; --all lifts it.
const maxShownAlternatives = 3

// runExpand expands the fragment and prints each alternative.
func runExpand(fragment []string, direction string, opts solver.Options, all bool) error {
	dir, err := cyclic.ParseDirection(direction)
	if err != nil {
		return err
	}
	for _, id := range fragment {
		if err := oerrors.ValidateNodeID(id); err != nil {
			return err
		}
	}

	radius := opts.Radius
	if radius <= 0 {
		radius = solver.DefaultRadius
	}
	sepX := opts.SepX
	if sepX <= 0 {
		sepX = solver.DefaultSepX
	}
	sepY := opts.SepY
	if sepY <= 0 {
		sepY = solver.DefaultSepY
	}

	disj := cyclic.Expand(cyclic.Fragment(fragment), dir, radius, sepX, sepY)

	printSuccess("Fragment expands to %d alternative(s)", len(disj))
	printKeyValue("Fragment", strings.Join(fragment, ", "))
	printKeyValue("Direction", dir.String())
	printKeyValue("Radius", fmt.Sprintf("%g", radius))
	printNewline()

	shown := len(disj)
	if !all && shown > maxShownAlternatives {
		shown = maxShownAlternatives
	}
	for i := 0; i < shown; i++ {
		printInfo("Alternative %d: %d constraints", i+1, len(disj[i]))
		for _, p := range disj[i] {
			printDetail("%s", p)
		}
	}
	if shown < len(disj) {
		printDetail("%d more; use --all to print every alternative", len(disj)-shown)
	}

	return nil
}
