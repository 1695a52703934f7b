// Package session manages timestamped scan working directories. A session
// owns all artifacts produced by one pipeline run and is never deleted by
// the tool outside debug mode.
package session

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Artifact file names inside a session directory, in pipeline order.
const (
	RootsFile        = "roots.txt"
	SubdomainsFile   = "subdomains.txt"
	ResolvedFile     = "resolved.txt"
	RecordsFile      = "records.json"
	IPsFile          = "ips.txt"
	FingerprintsFile = "fingerprints.txt"
)

// Session is one timestamped execution of the pipeline against a scope.
type Session struct {
	ID        string
	Scope     string
	Dir       string
	StartTime time.Time

	endTime time.Time
}

// Begin creates a session directory named {scope}-{unix-timestamp} under
// scansDir and copies the scope's roots file into it verbatim. When
// purgePrior is set (debug mode) all earlier session directories for the
// same scope are removed first.
func Begin(scansDir, scopeID, rootsPath string, purgePrior bool) (*Session, error) {
	if purgePrior {
		if err := purge(scansDir, scopeID); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	s := &Session{
		ID:        fmt.Sprintf("%s-%d", scopeID, start.Unix()),
		Scope:     scopeID,
		StartTime: start,
	}
	s.Dir = filepath.Join(scansDir, s.ID)

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	if err := copyFile(rootsPath, s.Path(RootsFile)); err != nil {
		return nil, fmt.Errorf("copy roots: %w", err)
	}
	return s, nil
}

// purge removes all prior session directories for a scope.
func purge(scansDir, scopeID string) error {
	matches, err := filepath.Glob(filepath.Join(scansDir, scopeID+"-*"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.RemoveAll(m); err != nil {
			return fmt.Errorf("purge prior session %s: %w", m, err)
		}
	}
	return nil
}

// Path returns the absolute path of an artifact inside the session.
func (s *Session) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Close records the end time and returns the elapsed duration.
func (s *Session) Close() time.Duration {
	s.endTime = time.Now()
	return s.endTime.Sub(s.StartTime)
}

// FormatElapsed renders a duration the way scan summaries report it:
// whole minutes (truncated) once past 59 seconds, plain seconds below.
func FormatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs > 59 {
		return fmt.Sprintf("%d minutes", secs/60)
	}
	return fmt.Sprintf("%d seconds", secs)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
