package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between test runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	base := []string{
		"--config", filepath.Join(dir, "recall.yaml"),
		"--memory-file", filepath.Join(dir, "memory.jsonl"),
	}
	rootCmd.SetArgs(append(args, base...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_RecordAndShow(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, dir, "record", "--user", "Hi", "--assistant", "Hello!"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, dir, "record", "-u", "How are you?", "-a", "Great, thanks."); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, dir, "show")
	if err != nil {
		t.Fatal(err)
	}
	want := "User: Hi\nAssistant: Hello!\n\nUser: How are you?\nAssistant: Great, thanks.\n"
	if out != want {
		t.Errorf("unexpected output\nwant %q\ngot  %q", want, out)
	}

	out, err = run(t, dir, "show", "-n", "1")
	if err != nil {
		t.Fatal(err)
	}
	if out != "User: How are you?\nAssistant: Great, thanks.\n" {
		t.Errorf("expected only the newest exchange, got %q", out)
	}
}

func TestCLI_ShowEmpty(t *testing.T) {
	out, err := run(t, t.TempDir(), "show")
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("expected no output for empty memory, got %q", out)
	}
}

func TestCLI_RecordCap(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"A", "B", "C"} {
		if _, err := run(t, dir, "record", "-u", name, "-a", name, "-n", "2"); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "memory.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `"B"`) || !strings.Contains(lines[1], `"C"`) {
		t.Errorf("expected only B and C stored, got %q", string(data))
	}
}

func TestCLI_RecordMissingParent(t *testing.T) {
	dir := t.TempDir()
	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{
		"record", "-u", "Hi",
		"--config", filepath.Join(dir, "recall.yaml"),
		"--memory-file", filepath.Join(dir, "nope", "memory.jsonl"),
	})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error when the parent directory is missing")
	}
}

func TestCLI_Prompt(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, dir, "record", "-u", "I like tea", "-a", "Noted."); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, dir, "prompt", "--query", "What do I like?")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "User: I like tea\nAssistant: Noted.") {
		t.Errorf("expected memory block in prompt, got:\n%s", out)
	}
	if !strings.Contains(out, "### Current User Query:\nWhat do I like?") {
		t.Errorf("expected query in prompt, got:\n%s", out)
	}
}

func TestCLI_ClearRequiresConfirmation(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, "record", "-u", "x", "-a", "y")

	if _, err := run(t, dir, "clear"); err == nil {
		t.Fatal("expected clear without --yes to fail")
	}
	if out, _ := run(t, dir, "show"); out == "" {
		t.Fatal("log should be untouched without --yes")
	}

	if _, err := run(t, dir, "clear", "--yes"); err != nil {
		t.Fatal(err)
	}
	if out, _ := run(t, dir, "show"); out != "" {
		t.Errorf("expected empty log after clear, got %q", out)
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, dir, "config", "set", "memory.max_exchanges", "3"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "recall.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "max_exchanges: 3") {
		t.Errorf("expected integer value in config file, got %q", string(data))
	}

	out, err := run(t, dir, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "max_exchanges: 3") {
		t.Errorf("expected configured cap in output, got:\n%s", out)
	}
}

func TestCLI_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RECALL_MEMORY_MAX_EXCHANGES", "1")

	run(t, dir, "record", "-u", "first")
	run(t, dir, "record", "-u", "second")

	out, err := run(t, dir, "show", "-n", "5")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("expected env cap of 1 to trim on write, got %q", out)
	}
}

func TestCLI_Doctor(t *testing.T) {
	out, err := run(t, t.TempDir(), "doctor")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "All checks passed!") {
		t.Errorf("expected doctor to pass on a fresh directory, got:\n%s", out)
	}
}
