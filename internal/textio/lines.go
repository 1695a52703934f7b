// Package textio handles the newline-delimited lists that flow between
// pipeline stages: reading, writing, and the append-only set-union merge
// used for subdomain lists and cached resolver/wordlist files.
package textio

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ReadLines returns the non-empty, trimmed lines of a file.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for s.Scan() {
		if l := strings.TrimSpace(s.Text()); l != "" {
			lines = append(lines, l)
		}
	}
	return lines, s.Err()
}

// CountLines returns the number of non-empty lines in a file, or 0 if the
// file is missing or unreadable.
func CountLines(path string) int {
	lines, err := ReadLines(path)
	if err != nil {
		return 0
	}
	return len(lines)
}

// WriteLines writes lines to path, creating parent directories as needed.
// The write goes through a temp file and rename so a crashed run never
// leaves a half-written artifact behind.
func WriteLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Unique removes duplicates while preserving first-seen order.
func Unique(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	var out []string
	for _, l := range lines {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// AppendUnique merges lines into the file at path with set-union semantics:
// existing lines keep their position, duplicates are dropped, and new lines
// are appended in input order. The file is created if absent. Returns the
// number of lines actually added, so merging identical content twice is a
// no-op.
func AppendUnique(path string, lines []string) (int, error) {
	existing, err := ReadLines(path)
	if err != nil && !os.IsNotExist(err) {
		return 0, err
	}

	seen := make(map[string]bool, len(existing))
	for _, l := range existing {
		seen[l] = true
	}

	merged := existing
	added := 0
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		merged = append(merged, l)
		added++
	}

	if added == 0 && err == nil {
		// Nothing new and the file already exists, leave it untouched.
		return 0, nil
	}
	return added, WriteLines(path, merged)
}
