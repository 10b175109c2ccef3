package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// seedStoreDir writes result logs under a temp root and returns the root.
func seedStoreDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

// TestRunWithoutArguments verifies usage is printed and the exit code is a
// usage failure.
func TestRunWithoutArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := Run(nil, &stdout, &stderr); code != ExitUsage {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	if !strings.Contains(stdout.String(), "Usage:") {
		t.Fatalf("expected usage output, got %q", stdout.String())
	}
}

// TestRunUnknownCommand verifies unknown commands report usage on stderr.
func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"frobnicate"}, &stdout, &stderr); code != ExitUsage {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Unknown command: frobnicate") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

// TestRunHelp verifies top-level and per-command help.
func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"help"}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("expected ok exit code, got %d", code)
	}
	for _, name := range []string{"runs", "files", "report", "analyze", "export", "serve", "browse"} {
		if !strings.Contains(stdout.String(), name) {
			t.Fatalf("expected %q in usage, got %q", name, stdout.String())
		}
	}

	stdout.Reset()
	if code := Run([]string{"report", "--help"}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("expected ok exit code, got %d", code)
	}
	if !strings.Contains(stdout.String(), "riddlebench report") {
		t.Fatalf("unexpected command help: %q", stdout.String())
	}
}

// TestRunsCommand verifies run listing against a real store.
func TestRunsCommand(t *testing.T) {
	root := seedStoreDir(t, map[string]string{
		"run-b/m.jsonl": "",
		"run-a/m.jsonl": "",
	})
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"runs", "--store", root}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("expected ok, got %d (stderr: %s)", code, stderr.String())
	}
	if stdout.String() != "run-a\nrun-b\n" {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
}

// TestRunsCommandRequiresStore verifies the missing-store error path.
func TestRunsCommandRequiresStore(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	}()

	var stdout, stderr bytes.Buffer
	if code := Run([]string{"runs"}, &stdout, &stderr); code != ExitError {
		t.Fatalf("expected error exit, got %d", code)
	}
	if !strings.Contains(stderr.String(), "store root is required") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

// TestFilesCommandScopesToRun verifies the run filter.
func TestFilesCommandScopesToRun(t *testing.T) {
	root := seedStoreDir(t, map[string]string{
		"run1/m.jsonl": "",
		"run2/m.jsonl": "",
	})
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"files", "--store", root, "--run", "run2"}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("expected ok, got %d (stderr: %s)", code, stderr.String())
	}
	if stdout.String() != "run2/m.jsonl\n" {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
}

// TestReportCommand verifies the aggregate table and mode validation.
func TestReportCommand(t *testing.T) {
	root := seedStoreDir(t, map[string]string{
		"run1/m.jsonl": `{"id":1,"question":"q","model":"gpt","answer":"a","is_correct":true}
{"id":1,"question":"q","model":"gpt","answer":"b","is_correct":false}
`,
	})
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"report", "--store", root}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("expected ok, got %d (stderr: %s)", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "Mode: unique") {
		t.Fatalf("expected default mode header, got %q", out)
	}
	if !strings.Contains(out, "gpt") {
		t.Fatalf("expected model row, got %q", out)
	}

	stdout.Reset()
	stderr.Reset()
	if code := Run([]string{"report", "--store", root, "--mode", "latest"}, &stdout, &stderr); code != ExitUsage {
		t.Fatalf("expected usage exit for bad mode, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Invalid mode") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

// TestReportCommandUsesConfigDefaults verifies a config file supplies the
// store root and report mode.
func TestReportCommandUsesConfigDefaults(t *testing.T) {
	root := seedStoreDir(t, map[string]string{
		"run1/m.jsonl": `{"id":1,"question":"q","model":"gpt","answer":"a","is_correct":true}`,
	})
	configPath := filepath.Join(t.TempDir(), "config.yml")
	content := "version: 1\nstore:\n  root: " + root + "\nreport:\n  mode: all\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := Run([]string{"report", "--config", configPath}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("expected ok, got %d (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Mode: all") {
		t.Fatalf("expected configured mode, got %q", stdout.String())
	}
}

// TestAnalyzeCommand verifies the difficulty and model sections.
func TestAnalyzeCommand(t *testing.T) {
	root := seedStoreDir(t, map[string]string{
		"run1/m.jsonl": `{"id":1,"question":"hard one","answer_ref":"gold","model":"gpt","answer":"wrong","is_correct":false}
{"id":1,"question":"hard one","answer_ref":"gold","model":"claude","answer":"wrong","is_correct":false}
{"id":2,"question":"easy one","answer_ref":"gold","model":"gpt","answer":"gold","is_correct":true}
`,
	})
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"analyze", "--store", root, "--top", "1"}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("expected ok, got %d (stderr: %s)", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "TOP 1 MOST DIFFICULT QUESTIONS") {
		t.Fatalf("expected difficulty header, got %q", out)
	}
	if !strings.Contains(out, "hard one") || strings.Contains(out, "easy one") {
		t.Fatalf("expected only the hardest question, got %q", out)
	}
	if !strings.Contains(out, `"wrong" x2`) {
		t.Fatalf("expected wrong-answer tally, got %q", out)
	}
	if !strings.Contains(out, "MODEL PERFORMANCE") {
		t.Fatalf("expected model section, got %q", out)
	}
}
