package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Perdyx/auto-recon/internal/config"
	"github.com/Perdyx/auto-recon/internal/scope"
	"github.com/spf13/cobra"
)

// A scan against a scope that does not exist must fail before any
// session directory is created under scans/.
func TestScanUnknownScopeCreatesNoSession(t *testing.T) {
	cfg = &config.Config{
		BaseDir:    t.TempDir(),
		Threads:    1,
		DNSThreads: 1,
	}

	// One existing scope so the first-run prompt does not trigger.
	store := scope.NewStore(cfg.ScopeDir())
	if err := store.Create("real"); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.RootsPath("real"), []byte("example.com\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := runScan(&cobra.Command{}, []string{"missing"})
	if !errors.Is(err, scope.ErrScopeNotFound) {
		t.Fatalf("runScan(missing) = %v, want ErrScopeNotFound", err)
	}

	entries, readErr := os.ReadDir(cfg.ScansDir())
	if readErr != nil && !os.IsNotExist(readErr) {
		t.Fatal(readErr)
	}
	for _, e := range entries {
		t.Errorf("unexpected session artifact %s", filepath.Join(cfg.ScansDir(), e.Name()))
	}
}
