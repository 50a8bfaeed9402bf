package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagtree/internal/services"
)

func writeTestConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[paths]\nlog_dir = \"" + filepath.Join(dir, "logs") + "\"\n" + extra
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootOrganizesTwoPositionalArgs(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	source := filepath.Join(t.TempDir(), "source")
	dest := filepath.Join(t.TempDir(), "dest")
	if err := os.MkdirAll(source, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(source, "o12-f3-l7-p9-a42.jpg"), []byte("bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", cfgPath, source, dest)
	if err != nil {
		t.Fatalf("execute: %v (output %q)", err, out)
	}
	if out != "" {
		t.Fatalf("expected silent success, got %q", out)
	}

	got, err := os.ReadFile(filepath.Join(dest, "o12", "f3", "l7", "p9", "a42.png"))
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(got) != "bytes" {
		t.Fatalf("content = %q", got)
	}
}

func TestRootRejectsWrongArgCount(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	_, err := runCommand(t, "--config", cfgPath, "only-one")
	if err == nil || !strings.Contains(err.Error(), "destination_folder") {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRootMalformedNameExitsWithValidationError(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	source := filepath.Join(t.TempDir(), "source")
	dest := filepath.Join(t.TempDir(), "dest")
	if err := os.MkdirAll(source, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(source, "o1-f2.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCommand(t, "--config", cfgPath, source, dest)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if services.ExitCode(err) != 2 {
		t.Fatalf("exit code = %d, want 2", services.ExitCode(err))
	}
}

func TestPlanCommandShowsCopiesWithoutWriting(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	source := filepath.Join(t.TempDir(), "source")
	dest := filepath.Join(t.TempDir(), "dest")
	if err := os.MkdirAll(source, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(source, "o12-f3-l7-p9-a42.jpg"), []byte("bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", cfgPath, "plan", source, dest)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"o12-f3-l7-p9-a42.jpg", "a42.png", "1 file(s) would be copied."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(dest); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("plan must not create the destination, stat err = %v", err)
	}
}

func TestPlanCommandEmptySource(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	source := t.TempDir()

	out, err := runCommand(t, "--config", cfgPath, "plan", source, t.TempDir())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "No files to organize.") {
		t.Fatalf("output = %q", out)
	}
}

func TestHistoryRequiresLedger(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	_, err := runCommand(t, "--config", cfgPath, "history")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestHistoryListsRecordedRuns(t *testing.T) {
	ledgerPath := filepath.Join(t.TempDir(), "history.db")
	extra := "[ledger]\nenabled = true\npath = \"" + ledgerPath + "\"\n"
	cfgPath := writeTestConfig(t, extra)

	source := filepath.Join(t.TempDir(), "source")
	dest := filepath.Join(t.TempDir(), "dest")
	if err := os.MkdirAll(source, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(source, "o1-f2-l3-p4-a5.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCommand(t, "--config", cfgPath, source, dest); err != nil {
		t.Fatalf("organize: %v", err)
	}

	out, err := runCommand(t, "--config", cfgPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "completed") {
		t.Fatalf("output missing completed run:\n%s", out)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("output = %q", out)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[organize]") {
		t.Fatalf("sample config missing [organize] section")
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigShowPrintsEffectiveConfig(t *testing.T) {
	cfgPath := writeTestConfig(t, "[organize]\noutput_extension = \".webp\"\n")
	out, err := runCommand(t, "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, ".webp") {
		t.Fatalf("output missing configured extension:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "tagtree dev") {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"1", "2"}, {"3"}})
	for _, want := range []string{"A", "B", "1", "2", "3"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
