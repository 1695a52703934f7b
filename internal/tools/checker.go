package tools

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Checker probes installed external tools.
type Checker struct{}

func NewChecker() *Checker { return &Checker{} }

// IsInstalled reports whether a binary is on PATH.
func (c *Checker) IsInstalled(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// MissingRequired returns the names of required tools that are not
// installed.
func (c *Checker) MissingRequired() []string {
	var missing []string
	for _, t := range All() {
		if t.Required && !c.IsInstalled(t.Binary) {
			missing = append(missing, t.Name)
		}
	}
	return missing
}

// CheckAll probes every tool in parallel.
func (c *Checker) CheckAll() []ToolStatus {
	tools := All()
	statuses := make([]ToolStatus, len(tools))

	var wg sync.WaitGroup
	for i, t := range tools {
		wg.Add(1)
		go func(idx int, tool Tool) {
			defer wg.Done()
			statuses[idx] = c.Check(tool)
		}(i, t)
	}
	wg.Wait()
	return statuses
}

// Check probes a single tool, including a minimum-version comparison when
// the tool declares one and its version output is parseable.
func (c *Checker) Check(t Tool) ToolStatus {
	s := ToolStatus{Name: t.Name, Installed: c.IsInstalled(t.Binary)}
	if !s.Installed {
		return s
	}
	s.Version = c.version(t.Binary)
	if t.MinVersion == "" || s.Version == "" {
		return s
	}

	installed, err := semver.NewVersion(s.Version)
	if err != nil {
		return s
	}
	min, err := semver.NewVersion(t.MinVersion)
	if err != nil {
		return s
	}
	s.Outdated = installed.LessThan(min)
	return s
}

var versionRe = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`)

// version extracts a semver-looking token from the tool's version output.
// Tools disagree on flags and output shape, so this is best-effort.
func (c *Checker) version(bin string) string {
	for _, flag := range []string{"--version", "-version"} {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		cmd := exec.CommandContext(ctx, bin, flag)
		out, err := cmd.CombinedOutput()
		cancel()
		if err != nil && len(out) == 0 {
			continue
		}
		first := strings.SplitN(string(out), "\n", 2)[0]
		if m := versionRe.FindStringSubmatch(first); m != nil {
			return m[1]
		}
	}
	return ""
}
