// Package config loads xnode settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/xnode/pkg/jvm"
)

// Runtime modes.
const (
	RuntimeJVM = "jvm"
	RuntimeSim = "sim"
)

// Output formats.
const (
	FormatGo    = "go"
	FormatJSON  = "json"
	FormatTable = "table"
)

// Config holds all xnode configuration.
type Config struct {
	Java    JavaConfig    `yaml:"java"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// JavaConfig configures the toolkit virtual machine.
type JavaConfig struct {
	Path             string   `yaml:"path"`
	ClassPath        []string `yaml:"classpath"`
	EnableAssertions bool     `yaml:"enable_assertions"`
	Args             []string `yaml:"args"`
	StartTimeout     string   `yaml:"start_timeout"`
	CloseTimeout     string   `yaml:"close_timeout"`
}

// RuntimeConfig selects the real toolkit or the built-in simulator.
type RuntimeConfig struct {
	Mode    string `yaml:"mode"`     // jvm, sim
	SimGrid string `yaml:"sim_grid"` // columns x rows, e.g. 8x16
	SimName string `yaml:"sim_name"`
}

// OutputConfig configures how results are printed.
type OutputConfig struct {
	Format string `yaml:"format"` // go, json, table
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Java: JavaConfig{
			EnableAssertions: true,
			StartTimeout:     "2m",
			CloseTimeout:     "10s",
		},
		Runtime: RuntimeConfig{
			Mode:    RuntimeJVM,
			SimGrid: "8x16",
			SimName: "xcvu3p",
		},
		Output: OutputConfig{
			Format: FormatGo,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: failed to create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: failed to marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if java := os.Getenv("XNODE_JAVA"); java != "" {
		c.Java.Path = java
	}

	// RAPIDWRIGHT_CLASSPATH wins over the file; plain CLASSPATH only fills
	// an empty classpath, the way the JVM itself falls back to it.
	if cp := os.Getenv("RAPIDWRIGHT_CLASSPATH"); cp != "" {
		c.Java.ClassPath = splitPathList(cp)
	} else if len(c.Java.ClassPath) == 0 {
		if cp := os.Getenv("CLASSPATH"); cp != "" {
			c.Java.ClassPath = splitPathList(cp)
		}
	}

	if mode := os.Getenv("XNODE_RUNTIME"); mode != "" {
		c.Runtime.Mode = mode
	}
	if level := os.Getenv("XNODE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

func splitPathList(s string) []string {
	var out []string
	for _, p := range filepath.SplitList(s) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the configuration for values the CLI cannot use.
func (c *Config) Validate() error {
	switch c.Runtime.Mode {
	case RuntimeJVM, RuntimeSim:
	default:
		return fmt.Errorf("config: invalid runtime %q (valid: %s, %s)", c.Runtime.Mode, RuntimeJVM, RuntimeSim)
	}
	if c.Runtime.Mode == RuntimeSim {
		if _, _, err := c.SimGrid(); err != nil {
			return err
		}
	}

	switch c.Output.Format {
	case FormatGo, FormatJSON, FormatTable:
	default:
		return fmt.Errorf("config: invalid output format %q (valid: %s, %s, %s)", c.Output.Format, FormatGo, FormatJSON, FormatTable)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := parseDuration("java.start_timeout", c.Java.StartTimeout); err != nil {
		return err
	}
	if _, err := parseDuration("java.close_timeout", c.Java.CloseTimeout); err != nil {
		return err
	}
	return nil
}

// SimGrid returns the simulated device extent.
func (c *Config) SimGrid() (cols, rows int, err error) {
	colText, rowText, ok := strings.Cut(strings.ToLower(c.Runtime.SimGrid), "x")
	if ok {
		cols, err = strconv.Atoi(colText)
		if err == nil {
			rows, err = strconv.Atoi(rowText)
		}
	}
	if !ok || err != nil || cols < 1 || rows < 1 {
		return 0, 0, fmt.Errorf("config: invalid sim grid %q (want COLSxROWS, e.g. 8x16)", c.Runtime.SimGrid)
	}
	return cols, rows, nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return level, fmt.Errorf("config: invalid log level %q: %w", c.Logging.Level, err)
	}
	return level, nil
}

// JVM converts the Java section into a jvm.Config. Empty durations keep
// the jvm package defaults.
func (c *Config) JVM() (jvm.Config, error) {
	out := jvm.DefaultConfig()
	out.JavaPath = c.Java.Path
	out.ClassPath = append([]string(nil), c.Java.ClassPath...)
	out.EnableAssertions = c.Java.EnableAssertions
	out.JVMArgs = append([]string(nil), c.Java.Args...)

	start, err := parseDuration("java.start_timeout", c.Java.StartTimeout)
	if err != nil {
		return jvm.Config{}, err
	}
	if start > 0 {
		out.StartTimeout = start
	}
	closing, err := parseDuration("java.close_timeout", c.Java.CloseTimeout)
	if err != nil {
		return jvm.Config{}, err
	}
	if closing > 0 {
		out.CloseTimeout = closing
	}
	return out, nil
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("config: invalid %s %q", field, s)
	}
	return d, nil
}
