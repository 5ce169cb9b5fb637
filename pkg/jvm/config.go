package jvm

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Launcher builds the command that runs the JVM. Tests swap it for a fake
// bridge process.
type Launcher func(name string, args ...string) *exec.Cmd

// Config describes how to start the virtual machine.
type Config struct {
	// JavaPath is the java executable. Empty means $JAVA_HOME/bin/java, then
	// java on $PATH.
	JavaPath string

	// ClassPath lists the toolkit jars and directories.
	ClassPath []string

	// EnableAssertions passes -ea so toolkit assertions are checked.
	EnableAssertions bool

	// JVMArgs are extra options placed before the classpath (e.g. -Xmx32g).
	JVMArgs []string

	// StartTimeout bounds the wait for the bridge to report ready.
	StartTimeout time.Duration

	// CloseTimeout bounds the wait for a clean exit before the VM is killed.
	CloseTimeout time.Duration

	Launcher Launcher
}

// DefaultConfig returns a Config with assertions on and generous timeouts;
// loading a device database can take a while.
func DefaultConfig() Config {
	return Config{
		EnableAssertions: true,
		StartTimeout:     2 * time.Minute,
		CloseTimeout:     10 * time.Second,
	}
}

func (c *Config) javaExecutable() (string, error) {
	if c.JavaPath != "" {
		return c.JavaPath, nil
	}
	if home := os.Getenv("JAVA_HOME"); home != "" {
		candidate := filepath.Join(home, "bin", "java")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	path, err := exec.LookPath("java")
	if err != nil {
		return "", fmt.Errorf("jvm: java executable not found (set JAVA_HOME or --java): %w", err)
	}
	return path, nil
}

// arguments returns the JVM command line for running the bridge source.
func (c *Config) arguments(bridgePath string) []string {
	var args []string
	if c.EnableAssertions {
		args = append(args, "-ea")
	}
	args = append(args, c.JVMArgs...)
	if len(c.ClassPath) > 0 {
		args = append(args, "-cp", strings.Join(c.ClassPath, string(os.PathListSeparator)))
	}
	return append(args, bridgePath)
}

func (c *Config) launcher() Launcher {
	if c.Launcher != nil {
		return c.Launcher
	}
	return exec.Command
}
