package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the xnode configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the effective configuration to a YAML file",
	Long: `Write the configuration xnode would run with (defaults, environment
and flags merged) to a YAML file. The path defaults to --config.

Examples:
  xnode config init
  xnode --classpath /opt/rapidwright/bin --classpath '/opt/rapidwright/jars/*' config init ~/.xnode.yaml`,
	Args: usageArgs(func(args []string) error {
		if len(args) > 1 {
			return fmt.Errorf("config init takes at most 1 argument, got %d", len(args))
		}
		return nil
	}),
	RunE: runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := settings.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
