package lists

import (
	"os"
	"testing"

	"github.com/Perdyx/auto-recon/internal/exec"
	"github.com/Perdyx/auto-recon/internal/textio"
)

// stubRunner simulates dnsvalidator: when output is non-empty it writes it
// to the path after -o, otherwise it produces nothing.
type stubRunner struct {
	output string
	calls  int
}

func (s *stubRunner) Run(name string, args []string, opts *exec.Options) *exec.Result {
	s.calls++
	if s.output != "" {
		for i, a := range args {
			if a == "-o" && i+1 < len(args) {
				os.WriteFile(args[i+1], []byte(s.output), 0644)
			}
		}
	}
	return &exec.Result{}
}

func TestValidateWritesValidatedList(t *testing.T) {
	dir := t.TempDir()
	runner := &stubRunner{output: "1.1.1.1\n8.8.8.8\n"}
	v := NewValidator(runner, dir)

	// Stale output from a previous run must be replaced.
	if err := textio.WriteLines(v.ValidatedPath(), []string{"9.9.9.9"}); err != nil {
		t.Fatal(err)
	}

	out, err := v.Validate("candidates.txt", 20)
	if err != nil {
		t.Fatal(err)
	}
	if out != v.ValidatedPath() {
		t.Fatalf("validated path = %q, want %q", out, v.ValidatedPath())
	}
	lines, _ := textio.ReadLines(out)
	if len(lines) != 2 {
		t.Fatalf("validated lines = %v, want 2 entries", lines)
	}
	if runner.calls != 1 {
		t.Fatalf("runner calls = %d, want 1", runner.calls)
	}
}

func TestValidateNoOutputIsError(t *testing.T) {
	v := NewValidator(&stubRunner{}, t.TempDir())
	if _, err := v.Validate("candidates.txt", 20); err == nil {
		t.Fatal("expected error when dnsvalidator produces no output")
	}
}
