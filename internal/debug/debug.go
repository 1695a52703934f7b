// Package debug collects per-tool timing logs. Enabled by the debug flag;
// every external invocation reports its start, duration, and output size,
// with a summary printed after the scan.
package debug

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

var (
	enabled bool
	mu      sync.Mutex
	entries []Entry
)

// Entry records one external tool execution.
type Entry struct {
	Tool     string
	Args     string
	Start    time.Time
	Duration time.Duration
	Failed   bool
}

// Enable turns on debug logging.
func Enable() {
	mu.Lock()
	enabled = true
	mu.Unlock()
}

// IsEnabled reports whether debug logging is on.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// LogStart logs the start of a tool execution and returns the start time.
func LogStart(tool string, args []string) time.Time {
	start := time.Now()
	if !IsEnabled() {
		return start
	}
	gray := color.New(color.FgHiBlack)
	gray.Printf("    [debug %s] run: %s %s\n", start.Format("15:04:05"), tool, strings.Join(args, " "))
	return start
}

// LogEnd logs the completion of a tool execution.
func LogEnd(tool string, args []string, start time.Time, err error, outputLines int) {
	if !IsEnabled() {
		return
	}
	d := time.Since(start)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    [debug %s] done: %s ", time.Now().Format("15:04:05"), tool)
	if err != nil {
		color.New(color.FgRed).Printf("error: %v", err)
	} else {
		color.New(color.FgGreen).Print("ok")
	}
	gray.Printf(" (%s, %d lines)\n", d.Round(time.Millisecond), outputLines)

	mu.Lock()
	entries = append(entries, Entry{
		Tool:     tool,
		Args:     strings.Join(args, " "),
		Start:    start,
		Duration: d,
		Failed:   err != nil,
	})
	mu.Unlock()
}

// Summary prints an end-of-run table of tool timings.
func Summary() {
	mu.Lock()
	logs := append([]Entry{}, entries...)
	mu.Unlock()

	if !IsEnabled() || len(logs) == 0 {
		return
	}

	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Println()
	cyan.Println("  Tool timing summary")
	var total time.Duration
	for _, e := range logs {
		mark := "✓"
		if e.Failed {
			mark = "✗"
		}
		fmt.Printf("  %s %-14s %10s\n", mark, e.Tool, e.Duration.Round(time.Millisecond))
		total += e.Duration
	}
	fmt.Printf("  total tool time: %s (%d invocations)\n", total.Round(time.Millisecond), len(logs))
}
