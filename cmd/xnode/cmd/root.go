package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/xnode/pkg/config"
	"github.com/OpenTraceLab/xnode/pkg/crossing"
	"github.com/OpenTraceLab/xnode/pkg/jvm"
)

var (
	// Global flags
	configPath   string
	verbose      bool
	javaPath     string
	classPath    []string
	assertions   bool
	runtimeMode  string
	simGrid      string
	outputFormat string

	// settings is the merged file, environment and flag configuration.
	settings *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "xnode",
	Short: "Crossing-node counts from RapidWright design checkpoints",
	Long: `xnode starts a RapidWright virtual machine, runs the toolkit's
crossing-node counters on a design checkpoint and prints the counts.

Examples:
  xnode cr design.dcp                         # All clock regions
  xnode cr design.dcp 2 5                     # Clock region X2Y5
  xnode pblock floorplan.dcp 2 4              # 2 x 4 pblock grid
  xnode metrics placed.dcp                    # Per-pblock utilization
  xnode --runtime sim --sim-grid 4x6 cr x.dcp # Simulated device`,
	Version:           "0.3.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Usage errors were already printed with the usage text.
		var ue *usageError
		if !errors.As(err, &ue) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "xnode.yaml", "configuration file (YAML)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&javaPath, "java", "", "java executable (default $JAVA_HOME/bin/java, then PATH)")
	flags.StringArrayVar(&classPath, "classpath", nil, "RapidWright classpath entry (repeatable)")
	flags.BoolVar(&assertions, "ea", true, "run the toolkit with Java assertions enabled")
	flags.StringVar(&runtimeMode, "runtime", config.RuntimeJVM, "toolkit runtime (jvm, sim)")
	flags.StringVar(&simGrid, "sim-grid", "8x16", "simulator: clock-region grid as COLSxROWS")
	flags.StringVarP(&outputFormat, "format", "o", config.FormatGo, "output format (go, json, table)")
}

// setup merges configuration sources and installs the loggers. Flags win
// over the environment, which wins over the file.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("java") {
		cfg.Java.Path = javaPath
	}
	if flags.Changed("classpath") {
		cfg.Java.ClassPath = classPath
	}
	if flags.Changed("ea") {
		cfg.Java.EnableAssertions = assertions
	}
	if flags.Changed("runtime") {
		cfg.Runtime.Mode = runtimeMode
	}
	if flags.Changed("sim-grid") {
		cfg.Runtime.SimGrid = simGrid
	}
	if flags.Changed("format") {
		cfg.Output.Format = outputFormat
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	jvm.SetLogger(logger.Named("jvm"))
	crossing.SetLogger(logger.Named("crossing"))

	settings = cfg
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = !verbose
	return zc.Build()
}

// usageError is a rejected command line. It is reported once, on stdout,
// together with the usage text.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// usageArgs prints the error and the command usage to stdout when check
// rejects the positional arguments. It runs before any VM is started.
func usageArgs(check func(args []string) error) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(args); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n%s", err, cmd.UsageString())
			return &usageError{err: err}
		}
		return nil
	}
}

func parseGridArgs(colText, rowText string) (col, row int, err error) {
	col, err = strconv.Atoi(colText)
	if err != nil {
		return 0, 0, fmt.Errorf("num_col %q is not an integer", colText)
	}
	row, err = strconv.Atoi(rowText)
	if err != nil {
		return 0, 0, fmt.Errorf("num_row %q is not an integer", rowText)
	}
	return col, row, nil
}
