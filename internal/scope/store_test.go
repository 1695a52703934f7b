package scope

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadRootsUnknownScope(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.LoadRoots("missing")
	if !errors.Is(err, ErrScopeNotFound) {
		t.Fatalf("LoadRoots(missing) error = %v, want ErrScopeNotFound", err)
	}
}

func TestCreateAndLoadRoots(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Create("acme"); err != nil {
		t.Fatal(err)
	}

	roots, err := store.LoadRoots("acme")
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 0 {
		t.Fatalf("new scope roots = %v, want empty", roots)
	}

	content := "acme.com\n*.corp.acme.com\n"
	if err := os.WriteFile(store.RootsPath("acme"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	roots, err = store.LoadRoots("acme")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"acme.com", "*.corp.acme.com"}
	if !reflect.DeepEqual(roots, want) {
		t.Fatalf("LoadRoots() = %v, want %v", roots, want)
	}
}

func TestEnsureInitializedFirstRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scope")
	store := NewStore(dir)

	var out bytes.Buffer
	firstRun, err := store.EnsureInitialized(strings.NewReader("acme\n"), &out)
	if err != nil {
		t.Fatal(err)
	}
	if !firstRun {
		t.Fatal("firstRun = false, want true on empty registry")
	}
	if _, err := os.Stat(store.RootsPath("acme")); err != nil {
		t.Fatalf("roots file not created: %v", err)
	}
	if !strings.Contains(out.String(), "acme") {
		t.Fatalf("prompt output missing scope name: %q", out.String())
	}

	// Registry is populated now, no prompt on the next run.
	firstRun, err = store.EnsureInitialized(strings.NewReader(""), &out)
	if err != nil {
		t.Fatal(err)
	}
	if firstRun {
		t.Fatal("firstRun = true on populated registry")
	}
}

func TestEnsureInitializedEmptyName(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "scope"))
	var out bytes.Buffer
	if _, err := store.EnsureInitialized(strings.NewReader("\n"), &out); err == nil {
		t.Fatal("expected error for empty scope name")
	}
}

func TestList(t *testing.T) {
	store := NewStore(t.TempDir())
	for _, s := range []string{"beta", "alpha"} {
		if err := store.Create(s); err != nil {
			t.Fatal(err)
		}
	}
	got, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
}
