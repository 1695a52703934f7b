// Package scope manages the filesystem registry of named scopes. Each scope
// is a directory under scope/ holding a roots.txt with one root domain
// pattern per line. Scopes are created by the tool but only ever edited by
// the user.
package scope

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Perdyx/auto-recon/internal/textio"
)

// ErrScopeNotFound is returned when the named scope directory does not
// exist. Callers treat it as fatal (exit code 1).
var ErrScopeNotFound = errors.New("scope not found")

const rootsFile = "roots.txt"

// Store is the scope registry rooted at a single directory.
type Store struct {
	dir string
}

// NewStore returns a Store for the given registry directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the registry directory.
func (s *Store) Dir() string { return s.dir }

// EnsureInitialized creates the registry directory if absent. When the
// registry holds no scopes it prompts for a first scope name on in, creates
// an empty roots file, and returns firstRun=true: the caller should tell
// the user to populate the file and exit cleanly.
func (s *Store) EnsureInitialized(in io.Reader, out io.Writer) (firstRun bool, err error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return false, fmt.Errorf("create scope registry: %w", err)
	}

	existing, err := s.List()
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	fmt.Fprint(out, "No scopes found. Enter a name for your first scope: ")
	r := bufio.NewReader(in)
	name, err := r.ReadString('\n')
	if err != nil && name == "" {
		return false, fmt.Errorf("read scope name: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false, errors.New("scope name cannot be empty")
	}

	if err := s.Create(name); err != nil {
		return false, err
	}
	fmt.Fprintf(out, "Created scope %q. Add root domains to %s and run again.\n",
		name, s.RootsPath(name))
	return true, nil
}

// Create makes a new scope directory with an empty roots file.
func (s *Store) Create(id string) error {
	dir := filepath.Join(s.dir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create scope %s: %w", id, err)
	}
	path := filepath.Join(dir, rootsFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, nil, 0644)
}

// List returns the names of all registered scopes, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var scopes []string
	for _, e := range entries {
		if e.IsDir() {
			scopes = append(scopes, e.Name())
		}
	}
	sort.Strings(scopes)
	return scopes, nil
}

// RootsPath returns the roots file path for a scope.
func (s *Store) RootsPath(id string) string {
	return filepath.Join(s.dir, id, rootsFile)
}

// LoadRoots returns the root domain patterns for a scope, preserving file
// order. Returns ErrScopeNotFound when the scope directory is missing.
func (s *Store) LoadRoots(id string) ([]string, error) {
	if _, err := os.Stat(filepath.Join(s.dir, id)); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrScopeNotFound, id)
		}
		return nil, err
	}
	roots, err := textio.ReadLines(s.RootsPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrScopeNotFound, id)
		}
		return nil, err
	}
	return roots, nil
}
