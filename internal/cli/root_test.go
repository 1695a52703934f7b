package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// An unwritable config directory must not stop the run; defaults and
// flags still apply.
func TestLoadConfigSurvivesUnwritableConfigDir(t *testing.T) {
	// HOME pointing at a regular file makes ~/.auto-recon impossible to
	// create, so the template write fails.
	home := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(home, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", home)

	if err := loadConfig(&cobra.Command{}, nil); err != nil {
		t.Fatalf("loadConfig = %v, want nil", err)
	}
	if cfg == nil || cfg.Threads != 25 {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}
