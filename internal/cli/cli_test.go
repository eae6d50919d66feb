package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ─── Test Helpers ───────────────────────────────────────────────────

// runCLI executes the root command with args and stdin, returning stdout.
// Flag state from earlier runs is reset first because the command tree is
// package-global.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FLASKGEN_HOME", filepath.Join(t.TempDir(), "home"))
	return execute(t, stdin, args...)
}

// execute runs the CLI without touching FLASKGEN_HOME, for tests that need
// config to persist between runs.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("output missing %q\n---\n%s", substr, s)
	}
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s not to exist (err=%v)", path, err)
	}
}

// ─── new ────────────────────────────────────────────────────────────

func TestNewCreatesProject(t *testing.T) {
	loc := t.TempDir()

	out, err := runCLI(t, "", "new", "My Cool App", "-l", loc, "-d", "Tracks cool things", "--port", "5050", "--git=false", "--yes")
	if err != nil {
		t.Fatalf("new failed: %v\n%s", err, out)
	}

	root := filepath.Join(loc, "my-cool-app")
	for _, rel := range []string{
		"requirements.txt",
		".gitignore",
		"README.md",
		"my-cool-app/main.py",
		"my-cool-app/static/index.html",
		"my-cool-app/static/css/.gitkeep",
		"my-cool-app/static/js/.gitkeep",
		"tests/__init__.py",
		"tests/run_tests.py",
	} {
		assertExists(t, filepath.Join(root, rel))
	}
	assertNotExists(t, filepath.Join(root, ".git"))

	mainPy, err := os.ReadFile(filepath.Join(root, "my-cool-app", "main.py"))
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, string(mainPy), "port=5050")

	assertContains(t, out, "Created project")
	assertContains(t, out, root)
	assertContains(t, out, "Next steps:")
	assertContains(t, out, "python tests/run_tests.py")
}

func TestNewWithoutTests(t *testing.T) {
	loc := t.TempDir()

	if _, err := runCLI(t, "", "new", "Demo", "-l", loc, "--tests=false", "--git=false", "--yes"); err != nil {
		t.Fatalf("new failed: %v", err)
	}

	root := filepath.Join(loc, "demo")
	assertExists(t, filepath.Join(root, "demo", "main.py"))
	assertNotExists(t, filepath.Join(root, "tests"))
}

func TestNewUsesConfigDefaults(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("FLASKGEN_HOME", home)
	loc := t.TempDir()

	if _, err := execute(t, "", "config", "set", "default_location", loc); err != nil {
		t.Fatalf("config set default_location: %v", err)
	}
	if _, err := execute(t, "", "config", "set", "include_tests", "false"); err != nil {
		t.Fatalf("config set include_tests: %v", err)
	}
	if _, err := execute(t, "", "config", "set", "init_git", "false"); err != nil {
		t.Fatalf("config set init_git: %v", err)
	}

	if _, err := execute(t, "", "new", "Configured", "--yes"); err != nil {
		t.Fatalf("new failed: %v", err)
	}

	root := filepath.Join(loc, "configured")
	assertExists(t, filepath.Join(root, "requirements.txt"))
	assertNotExists(t, filepath.Join(root, "tests"))
	assertNotExists(t, filepath.Join(root, ".git"))
}

func TestNewFlagOverridesConfig(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("FLASKGEN_HOME", home)
	loc := t.TempDir()

	if _, err := execute(t, "", "config", "set", "include_tests", "false"); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "", "new", "Override", "-l", loc, "--tests", "--git=false", "--yes"); err != nil {
		t.Fatalf("new failed: %v", err)
	}

	assertExists(t, filepath.Join(loc, "override", "tests", "run_tests.py"))
}

func TestNewPromptsForMissingValues(t *testing.T) {
	loc := t.TempDir()
	stdin := "Piped App\n" + loc + "\nFrom stdin\n"

	out, err := runCLI(t, stdin, "new", "--git=false")
	if err != nil {
		t.Fatalf("new failed: %v\n%s", err, out)
	}

	readme, err := os.ReadFile(filepath.Join(loc, "piped-app", "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, string(readme), "# Piped App")
	assertContains(t, string(readme), "From stdin")
}

func TestNewDryRun(t *testing.T) {
	loc := t.TempDir()

	out, err := runCLI(t, "", "new", "Dry", "-l", loc, "--dry-run", "--yes")
	if err != nil {
		t.Fatalf("new --dry-run failed: %v", err)
	}

	assertNotExists(t, filepath.Join(loc, "dry"))
	assertContains(t, out, "Would create")
	assertContains(t, out, "requirements.txt")
	if strings.Contains(out, "Next steps:") {
		t.Errorf("dry run should not print next steps:\n%s", out)
	}
}

func TestNewErrors(t *testing.T) {
	t.Run("missing name with --yes", func(t *testing.T) {
		_, err := runCLI(t, "", "new", "-l", t.TempDir(), "--yes")
		if err == nil || !strings.Contains(err.Error(), "project name") {
			t.Errorf("expected missing name error, got %v", err)
		}
	})

	t.Run("missing location with --yes", func(t *testing.T) {
		_, err := runCLI(t, "", "new", "Nowhere", "--yes")
		if err == nil || !strings.Contains(err.Error(), "project location") {
			t.Errorf("expected missing location error, got %v", err)
		}
	})

	t.Run("location does not exist", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "absent")
		_, err := runCLI(t, "", "new", "Demo", "-l", missing, "--git=false", "--yes")
		if err == nil {
			t.Fatal("expected error for missing location")
		}
		assertNotExists(t, filepath.Join(missing, "demo"))
	})

	t.Run("project already exists", func(t *testing.T) {
		loc := t.TempDir()
		if err := os.Mkdir(filepath.Join(loc, "demo"), 0o755); err != nil {
			t.Fatal(err)
		}
		_, err := runCLI(t, "", "new", "Demo", "-l", loc, "--git=false", "--yes")
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected already-exists error, got %v", err)
		}
	})

	t.Run("port out of range", func(t *testing.T) {
		_, err := runCLI(t, "", "new", "Demo", "-l", t.TempDir(), "--port", "70000", "--git=false", "--yes")
		if err == nil {
			t.Error("expected invalid port error")
		}
	})

	t.Run("too many args", func(t *testing.T) {
		_, err := runCLI(t, "", "new", "a", "b")
		if err == nil {
			t.Error("expected args error")
		}
	})
}

// ─── config ─────────────────────────────────────────────────────────

func TestConfigSetGetList(t *testing.T) {
	t.Setenv("FLASKGEN_HOME", filepath.Join(t.TempDir(), "home"))

	out, err := execute(t, "", "config", "set", "python_version", "3.12")
	if err != nil {
		t.Fatalf("config set: %v", err)
	}
	assertContains(t, out, "Set python_version = 3.12")

	out, err = execute(t, "", "config", "get", "python_version")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "3.12" {
		t.Errorf("config get = %q, want 3.12", out)
	}

	out, err = execute(t, "", "config", "list")
	if err != nil {
		t.Fatalf("config list: %v", err)
	}
	assertContains(t, out, "python_version = 3.12")
	assertContains(t, out, "include_tests = true")
	assertContains(t, out, "init_git = true")
}

func TestConfigUnknownKey(t *testing.T) {
	if _, err := runCLI(t, "", "config", "get", "nope"); err == nil {
		t.Error("expected error for unknown key on get")
	}
	if _, err := runCLI(t, "", "config", "set", "nope", "x"); err == nil {
		t.Error("expected error for unknown key on set")
	}
}

func TestConfigPath(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("FLASKGEN_HOME", home)

	out, err := execute(t, "", "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.Join(home, "config.yaml") {
		t.Errorf("config path = %q", out)
	}
}

func TestConfigValidate(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("FLASKGEN_HOME", home)

	out, err := execute(t, "", "config", "validate")
	if err != nil {
		t.Fatalf("validate without file: %v", err)
	}
	assertContains(t, out, "defaults apply")

	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte("init_git: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "", "config", "validate")
	if err != nil {
		t.Fatalf("validate valid file: %v", err)
	}
	assertContains(t, out, "is valid")

	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte("colour: blue\npython_version: three\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "", "config", "validate"); err == nil {
		t.Error("expected validation failure")
	}
}

// ─── version ────────────────────────────────────────────────────────

func TestVersion(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"

	out, err := runCLI(t, "", "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("version --short = %q", out)
	}

	out, err = runCLI(t, "", "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("version --json not JSON: %v\n%s", err, out)
	}
	if info["commit"] != "abc123" {
		t.Errorf("commit = %q", info["commit"])
	}

	out, err = runCLI(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, out, "flaskgen version 1.2.3")
}
