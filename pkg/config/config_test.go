package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap/zapcore"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"XNODE_JAVA", "RAPIDWRIGHT_CLASSPATH", "CLASSPATH", "XNODE_RUNTIME", "XNODE_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "xnode.yaml")
	content := `java:
  path: /opt/jdk/bin/java
  classpath:
    - /opt/rapidwright/bin
    - /opt/rapidwright/jars/*
  enable_assertions: false
  args: [-Xmx32g]
  start_timeout: 5m
runtime:
  mode: sim
  sim_grid: 4x6
output:
  format: table
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	jc, err := cfg.JVM()
	if err != nil {
		t.Fatalf("JVM failed: %v", err)
	}
	if jc.JavaPath != "/opt/jdk/bin/java" || jc.EnableAssertions {
		t.Errorf("unexpected java settings: %+v", jc)
	}
	if diff := cmp.Diff([]string{"/opt/rapidwright/bin", "/opt/rapidwright/jars/*"}, jc.ClassPath); diff != "" {
		t.Errorf("classpath mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"-Xmx32g"}, jc.JVMArgs); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if jc.StartTimeout != 5*time.Minute || jc.CloseTimeout != 10*time.Second {
		t.Errorf("timeouts = %s, %s", jc.StartTimeout, jc.CloseTimeout)
	}

	cols, rows, err := cfg.SimGrid()
	if err != nil || cols != 4 || rows != 6 {
		t.Errorf("SimGrid = %d, %d, %v", cols, rows, err)
	}
	if cfg.Output.Format != FormatTable {
		t.Errorf("format = %q", cfg.Output.Format)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("java: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	sep := string(os.PathListSeparator)

	t.Setenv("CLASSPATH", "/a"+sep+"/b")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"/a", "/b"}, cfg.Java.ClassPath); diff != "" {
		t.Errorf("CLASSPATH fallback (-want +got):\n%s", diff)
	}

	t.Setenv("RAPIDWRIGHT_CLASSPATH", "/rw/bin"+sep+" "+sep+"/rw/jars/*")
	t.Setenv("XNODE_JAVA", "/usr/lib/jvm/java-17/bin/java")
	t.Setenv("XNODE_RUNTIME", "sim")
	t.Setenv("XNODE_LOG_LEVEL", "debug")
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"/rw/bin", "/rw/jars/*"}, cfg.Java.ClassPath); diff != "" {
		t.Errorf("RAPIDWRIGHT_CLASSPATH (-want +got):\n%s", diff)
	}
	if cfg.Java.Path != "/usr/lib/jvm/java-17/bin/java" || cfg.Runtime.Mode != RuntimeSim {
		t.Errorf("unexpected overrides: %+v", cfg)
	}
	if level, err := cfg.LogLevel(); err != nil || level != zapcore.DebugLevel {
		t.Errorf("LogLevel = %v, %v", level, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"bad runtime", func(c *Config) { c.Runtime.Mode = "graal" }, "invalid runtime"},
		{"bad grid", func(c *Config) { c.Runtime.Mode = RuntimeSim; c.Runtime.SimGrid = "8by16" }, "invalid sim grid"},
		{"zero grid", func(c *Config) { c.Runtime.Mode = RuntimeSim; c.Runtime.SimGrid = "0x4" }, "invalid sim grid"},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, "invalid output format"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
		{"bad timeout", func(c *Config) { c.Java.StartTimeout = "soon" }, "java.start_timeout"},
		{"negative timeout", func(c *Config) { c.Java.CloseTimeout = "-1s" }, "java.close_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q does not contain %q", err, tt.errMsg)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)

	cfg := DefaultConfig()
	cfg.Java.ClassPath = []string{"/opt/rapidwright/bin"}
	cfg.Output.Format = FormatJSON

	path := filepath.Join(t.TempDir(), "nested", "xnode.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
