package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xnode/pkg/jvm"
	"github.com/OpenTraceLab/xnode/pkg/placement"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <dcp_path>",
	Short: "Show per-pblock placement utilization",
	Long: `Run the toolkit's placement metric extractor on a placed checkpoint and
show the resource utilization of every pblock, ordered by region.

Examples:
  xnode metrics placed.dcp
  xnode metrics --format json placed.dcp`,
	Args: usageArgs(func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("metrics takes 1 argument, got %d", len(args))
		}
		return nil
	}),
	RunE: runMetrics,
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd, func(ctx context.Context, inv jvm.Invoker) error {
		pblocks, err := placement.Extract(ctx, inv, args[0])
		if err != nil {
			return err
		}
		return printMetrics(cmd.OutOrStdout(), settings.Output.Format, pblocks)
	})
}
