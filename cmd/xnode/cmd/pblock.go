package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xnode/pkg/crossing"
	"github.com/OpenTraceLab/xnode/pkg/jvm"
)

var pblockCmd = &cobra.Command{
	Use:   "pblock <dcp_path> <num_col> <num_row>",
	Short: "Count nodes crossing the boundaries of a pblock grid",
	Long: `Count the routing nodes crossing each boundary of the pblocks of a
num_col x num_row floorplan. The pblocks are read from the checkpoint's
create_pblock and resize_pblock constraints.

Examples:
  xnode pblock floorplan.dcp 2 4

Flags go before the checkpoint path; everything after it is positional.`,
	Args: usageArgs(func(args []string) error {
		if len(args) != 3 {
			return fmt.Errorf("pblock takes 3 arguments, got %d", len(args))
		}
		_, _, err := parseGridArgs(args[1], args[2])
		return err
	}),
	RunE: runPBlock,
}

func init() {
	rootCmd.AddCommand(pblockCmd)
	pblockCmd.Flags().SetInterspersed(false)
}

func runPBlock(cmd *cobra.Command, args []string) error {
	dcp := args[0]
	cols, rows, _ := parseGridArgs(args[1], args[2])

	return withRuntime(cmd, func(ctx context.Context, inv jvm.Invoker) error {
		grid, err := crossing.NewCounter(inv).AllPBlocks(ctx, dcp, cols, rows)
		if err != nil {
			return err
		}
		return printGrid(cmd.OutOrStdout(), settings.Output.Format, grid)
	})
}
