package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xnode/pkg/crossing"
	"github.com/OpenTraceLab/xnode/pkg/jvm"
)

var crCmd = &cobra.Command{
	Use:   "cr <dcp_path> [<num_col> <num_row>]",
	Short: "Count nodes crossing clock-region boundaries",
	Long: `Count the routing nodes crossing each boundary of the device's clock
regions.

With only a checkpoint, every clock region is counted and the result maps
column -> row -> direction -> count. With a column and row, only that clock
region is counted. Regions on the device edge have no entry for the
directions that face off the device.

Examples:
  xnode cr design.dcp
  xnode cr design.dcp 0 0
  xnode cr --format table design.dcp

Flags go before the checkpoint path; everything after it is positional.`,
	Args: usageArgs(func(args []string) error {
		switch len(args) {
		case 1:
			return nil
		case 3:
			_, _, err := parseGridArgs(args[1], args[2])
			return err
		}
		return fmt.Errorf("cr takes 1 or 3 arguments, got %d", len(args))
	}),
	RunE: runCR,
}

func init() {
	rootCmd.AddCommand(crCmd)

	// Coordinates may be negative; stop flag parsing at the checkpoint path
	// so "-1" reaches the toolkit instead of being read as a flag.
	crCmd.Flags().SetInterspersed(false)
}

func runCR(cmd *cobra.Command, args []string) error {
	dcp := args[0]
	out := cmd.OutOrStdout()

	return withRuntime(cmd, func(ctx context.Context, inv jvm.Invoker) error {
		counter := crossing.NewCounter(inv)

		if len(args) == 1 {
			grid, err := counter.AllClockRegions(ctx, dcp)
			if err != nil {
				return err
			}
			return printGrid(out, settings.Output.Format, grid)
		}

		col, row, _ := parseGridArgs(args[1], args[2])
		counts, err := counter.ClockRegion(ctx, dcp, col, row)
		if err != nil {
			return err
		}
		return printDirections(out, settings.Output.Format, counts)
	})
}
