package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/k88hudson/hayaku/internal/git"
)

// execute runs the root command with the given args and returns its
// combined output. Flag values are reset afterwards so tests do not
// leak state into each other.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	resetFlags(rootCmd)
	rootCmd.SetArgs(nil)

	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Value.Type() {
		case "stringArray":
			_ = f.Value.(pflag.SliceValue).Replace(nil)
		default:
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// writeTemplate lays down a small template directory for create tests.
func writeTemplate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"hayaku.yaml": "template:\n" +
			"  name: fixture\n" +
			"env:\n" +
			"  author:\n" +
			"    type: string\n" +
			"    prompt: Author name\n" +
			"  license:\n" +
			"    type: choices\n" +
			"    choices: [MIT, Apache-2.0]\n" +
			"    default: MIT\n",
		"README.md.tmpl": "# {{.PROJECT_NAME}} by {{.AUTHOR}}\n",
		"static.txt":     "no variables here\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	sub := filepath.Join(dir, "src", "[PROJECT_NAME]")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "lib.txt"), []byte("library\n"), 0o644); err != nil {
		t.Fatalf("write lib.txt: %v", err)
	}
	return dir
}

func TestCreateCommand(t *testing.T) {
	t.Run("generates_project_from_template_dir", func(t *testing.T) {
		t.Setenv("HAYAKU_DIRECTORY", t.TempDir())
		tmplDir := writeTemplate(t)
		dest := filepath.Join(t.TempDir(), "my-app")

		out, err := execute(t,
			"create", dest,
			"--template-dir", tmplDir,
			"-e", "author=kate",
			"--non-interactive",
		)
		if err != nil {
			t.Fatalf("create failed: %v\noutput:\n%s", err, out)
		}

		readme, err := os.ReadFile(filepath.Join(dest, "README.md"))
		if err != nil {
			t.Fatalf("read README.md: %v", err)
		}
		if got := string(readme); got != "# my-app by kate\n" {
			t.Errorf("README.md = %q", got)
		}

		if _, err := os.Stat(filepath.Join(dest, "src", "my-app", "lib.txt")); err != nil {
			t.Errorf("substituted directory missing: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dest, "hayaku.yaml")); !os.IsNotExist(err) {
			t.Error("hayaku.yaml must not be copied into the project")
		}
		if !strings.Contains(out, "my-app") {
			t.Errorf("output does not mention the project:\n%s", out)
		}
	})

	t.Run("global_env_fills_missing_answers", func(t *testing.T) {
		hayakuDir := t.TempDir()
		t.Setenv("HAYAKU_DIRECTORY", hayakuDir)
		settings := "global_env:\n  AUTHOR: global-kate\n"
		if err := os.WriteFile(filepath.Join(hayakuDir, "settings.yaml"), []byte(settings), 0o644); err != nil {
			t.Fatalf("write settings: %v", err)
		}
		tmplDir := writeTemplate(t)
		dest := filepath.Join(t.TempDir(), "proj")

		out, err := execute(t,
			"create", dest,
			"--template-dir", tmplDir,
			"--non-interactive",
		)
		if err != nil {
			t.Fatalf("create failed: %v\noutput:\n%s", err, out)
		}

		readme, err := os.ReadFile(filepath.Join(dest, "README.md"))
		if err != nil {
			t.Fatalf("read README.md: %v", err)
		}
		if got := string(readme); got != "# proj by global-kate\n" {
			t.Errorf("README.md = %q", got)
		}
	})

	t.Run("unresolved_variable_fails_non_interactive", func(t *testing.T) {
		t.Setenv("HAYAKU_DIRECTORY", t.TempDir())
		tmplDir := writeTemplate(t)
		dest := filepath.Join(t.TempDir(), "proj")

		_, err := execute(t,
			"create", dest,
			"--template-dir", tmplDir,
			"--non-interactive",
		)
		if err == nil {
			t.Fatal("expected an unresolved variable error")
		}
		if !strings.Contains(err.Error(), "author") {
			t.Errorf("error does not name the variable: %v", err)
		}
		if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
			t.Error("destination should not exist after a resolution failure")
		}
	})

	t.Run("non_empty_destination_conflicts", func(t *testing.T) {
		t.Setenv("HAYAKU_DIRECTORY", t.TempDir())
		tmplDir := writeTemplate(t)
		dest := t.TempDir()
		if err := os.WriteFile(filepath.Join(dest, "existing.txt"), []byte("x"), 0o644); err != nil {
			t.Fatalf("write existing file: %v", err)
		}

		_, err := execute(t,
			"create", dest,
			"--template-dir", tmplDir,
			"-e", "author=kate",
			"--non-interactive",
		)
		if err == nil {
			t.Fatal("expected a destination conflict")
		}
		if !strings.Contains(err.Error(), "not empty") {
			t.Errorf("error = %v", err)
		}

		// The existing content must be untouched.
		if _, err := os.Stat(filepath.Join(dest, "existing.txt")); err != nil {
			t.Errorf("existing file was removed: %v", err)
		}
	})

	t.Run("force_replaces_destination", func(t *testing.T) {
		t.Setenv("HAYAKU_DIRECTORY", t.TempDir())
		tmplDir := writeTemplate(t)
		dest := filepath.Join(t.TempDir(), "my-app")
		if err := os.MkdirAll(dest, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dest, "existing.txt"), []byte("x"), 0o644); err != nil {
			t.Fatalf("write existing file: %v", err)
		}

		out, err := execute(t,
			"create", dest,
			"--template-dir", tmplDir,
			"-e", "author=kate",
			"--non-interactive",
			"--force",
		)
		if err != nil {
			t.Fatalf("create --force failed: %v\noutput:\n%s", err, out)
		}
		if _, err := os.Stat(filepath.Join(dest, "existing.txt")); !os.IsNotExist(err) {
			t.Error("--force did not remove the old destination contents")
		}
		if _, err := os.Stat(filepath.Join(dest, "README.md")); err != nil {
			t.Errorf("generated file missing: %v", err)
		}
	})

	t.Run("builtin_template_by_name", func(t *testing.T) {
		t.Setenv("HAYAKU_DIRECTORY", t.TempDir())
		dest := filepath.Join(t.TempDir(), "tiny")

		out, err := execute(t,
			"create", dest,
			"-t", "minimal",
			"--non-interactive",
		)
		if err != nil {
			t.Fatalf("create failed: %v\noutput:\n%s", err, out)
		}
		readme, err := os.ReadFile(filepath.Join(dest, "README.md"))
		if err != nil {
			t.Fatalf("read README.md: %v", err)
		}
		if got := string(readme); got != "# tiny\n" {
			t.Errorf("README.md = %q", got)
		}
	})

	t.Run("missing_template_source_fails", func(t *testing.T) {
		t.Setenv("HAYAKU_DIRECTORY", t.TempDir())
		_, err := execute(t, "create", filepath.Join(t.TempDir(), "x"), "--non-interactive")
		if err == nil || !strings.Contains(err.Error(), "no template") {
			t.Errorf("err = %v, want missing template source", err)
		}
	})

	t.Run("unknown_template_name_fails", func(t *testing.T) {
		t.Setenv("HAYAKU_DIRECTORY", t.TempDir())
		_, err := execute(t, "create", filepath.Join(t.TempDir(), "x"), "-t", "nope", "--non-interactive")
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("err = %v, want not found", err)
		}
	})
}

func TestCreateFlagValidation(t *testing.T) {
	t.Run("env_without_equals", func(t *testing.T) {
		_, err := execute(t, "create", "x", "-e", "NOVALUE", "--non-interactive")
		if err == nil || !strings.Contains(err.Error(), "KEY=VALUE") {
			t.Errorf("err = %v, want KEY=VALUE validation error", err)
		}
	})

	t.Run("invalid_github_repo", func(t *testing.T) {
		_, err := execute(t, "create", "x", "-g", "not-a-repo")
		if !errors.Is(err, git.ErrInvalidRepo) {
			t.Errorf("err = %v, want ErrInvalidRepo", err)
		}
	})

	t.Run("exclusive_template_sources", func(t *testing.T) {
		_, err := execute(t, "create", "x", "-t", "a", "--template-dir", "b")
		if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
			t.Errorf("err = %v, want mutually exclusive error", err)
		}
	})
}

func TestParseEnvAnswers(t *testing.T) {
	got := parseEnvAnswers([]string{"A=1", "B=x=y", "A=2", "=skip", "bad"})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (%v)", len(got), got)
	}
	if got["A"] != "2" {
		t.Errorf("A = %q, want later value to win", got["A"])
	}
	if got["B"] != "x=y" {
		t.Errorf("B = %q, want value to keep embedded equals", got["B"])
	}
	if parseEnvAnswers(nil) != nil {
		t.Error("nil input should produce nil map")
	}
}
