package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/reactorsim/pkg/observability"
)

// isolateConfig points the XDG config and cache directories at temporary
// directories so tests never read or write the user's files.
func isolateConfig(t *testing.T) (configHome, cacheHome string) {
	t.Helper()
	configHome, cacheHome = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return configHome, cacheHome
}

// runCLI executes the root command with args and returns what it wrote to
// its output stream.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)

	var logs, out, stderr bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	want := []string{"render", "report", "play", "animate", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	for _, flag := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestSetupAppliesConfig(t *testing.T) {
	configHome, _ := isolateConfig(t)
	t.Cleanup(observability.Reset)

	dir := filepath.Join(configHome, "reactorsim")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := "log_level = \"debug\"\n[render]\nscale = 3.0\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"report", "10"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if c.Config.Render.Scale != 3.0 {
		t.Errorf("render.scale = %v, want 3", c.Config.Render.Scale)
	}
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("log level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestSetupRejectsBadConfig(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[render]\nscale = 100.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "--config", path, "report"); err == nil {
		t.Fatal("expected error for out-of-range scale")
	}
}

func TestVerboseOverridesConfigLevel(t *testing.T) {
	isolateConfig(t)
	t.Cleanup(observability.Reset)

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"-v", "report"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("log level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestCompletionCommand(t *testing.T) {
	isolateConfig(t)

	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "reactorsim") {
		t.Error("bash completion should mention the binary name")
	}

	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
