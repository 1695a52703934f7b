package lists

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Perdyx/auto-recon/internal/exec"
	"github.com/Perdyx/auto-recon/internal/textio"
)

// Validator produces a known-good resolver list by running the candidate
// list through dnsvalidator.
type Validator struct {
	runner exec.Runner
	dir    string
}

// NewValidator returns a Validator writing into the lists directory.
func NewValidator(runner exec.Runner, dir string) *Validator {
	return &Validator{runner: runner, dir: dir}
}

// ValidatedPath returns the validated resolver list location.
func (v *Validator) ValidatedPath() string {
	return filepath.Join(v.dir, "updated-resolvers.txt")
}

// Validate deletes any previously validated list, runs dnsvalidator against
// the candidate list, and returns the validated list path. An empty or
// missing output file is an error; the caller decides whether that is fatal
// (strict mode) or a fall-back to the raw list.
func (v *Validator) Validate(candidatePath string, threads int) (string, error) {
	out := v.ValidatedPath()

	// Force regeneration; stale validated lists cause silent resolution gaps.
	os.Remove(out)

	args := []string{
		"-tL", candidatePath,
		"-threads", fmt.Sprintf("%d", threads),
		"-o", out,
	}
	r := v.runner.Run("dnsvalidator", args, &exec.Options{Timeout: 30 * time.Minute})
	if r.Error != nil {
		return "", fmt.Errorf("dnsvalidator: %w", r.Error)
	}

	if textio.CountLines(out) == 0 {
		return "", fmt.Errorf("dnsvalidator produced no output at %s", out)
	}
	return out, nil
}
