// Package exec wraps external tool invocations. Every stage of the scan
// shells out through Run so child processes share timeout handling, process
// group cleanup, and debug timing logs.
package exec

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/Perdyx/auto-recon/internal/debug"
)

// runningProcesses tracks child processes so an interrupt can clean up the
// whole tree, including anything the external tools forked themselves.
var (
	runningProcesses = make(map[int]*exec.Cmd)
	processMu        sync.Mutex
)

func trackProcess(cmd *exec.Cmd) {
	if cmd.Process != nil {
		processMu.Lock()
		runningProcesses[cmd.Process.Pid] = cmd
		processMu.Unlock()
	}
}

func untrackProcess(cmd *exec.Cmd) {
	if cmd.Process != nil {
		processMu.Lock()
		delete(runningProcesses, cmd.Process.Pid)
		processMu.Unlock()
	}
}

// KillAllProcesses terminates all tracked child processes and their process
// groups. Called from the signal handler in main.
func KillAllProcesses() {
	processMu.Lock()
	defer processMu.Unlock()

	for pid, cmd := range runningProcesses {
		if cmd.Process != nil {
			syscall.Kill(-pid, syscall.SIGKILL)
			cmd.Process.Kill()
		}
	}
	runningProcesses = make(map[int]*exec.Cmd)
}

// Result holds the outcome of one external tool invocation.
type Result struct {
	Stdout, Stderr string
	ExitCode       int
	Duration       time.Duration
	Error          error
}

// Options controls how a command is run.
type Options struct {
	Timeout time.Duration
	Stdin   io.Reader
	Dir     string
	Env     []string
	Ctx     context.Context
}

// Runner abstracts command execution so pipeline stages can be exercised in
// tests without the external binaries installed.
type Runner interface {
	Run(name string, args []string, opts *Options) *Result
}

// System is the production Runner backed by os/exec.
type System struct{}

func (System) Run(name string, args []string, opts *Options) *Result {
	return Run(name, args, opts)
}

// Run executes a command, blocking until it exits or the timeout fires.
func Run(name string, args []string, opts *Options) *Result {
	if opts == nil {
		opts = &Options{Timeout: 10 * time.Minute}
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Minute
	}

	start := debug.LogStart(name, args)

	var ctx context.Context
	var cancel context.CancelFunc
	if opts.Ctx != nil {
		ctx, cancel = context.WithTimeout(opts.Ctx, opts.Timeout)
	} else {
		ctx, cancel = context.WithTimeout(context.Background(), opts.Timeout)
	}
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)

	// New process group so KillAllProcesses can take out grandchildren too.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}

	var stdoutBuf, stderrBuf strings.Builder
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Start()
	if err == nil {
		trackProcess(cmd)
		err = cmd.Wait()
		untrackProcess(cmd)
	}

	r := &Result{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		r.Error = err
		if exitErr, ok := err.(*exec.ExitError); ok {
			r.ExitCode = exitErr.ExitCode()
		}
	}

	debug.LogEnd(name, args, start, r.Error, len(Lines(r.Stdout)))
	return r
}

// RunWithInput runs a command feeding input on stdin.
func RunWithInput(name string, args []string, input string, opts *Options) *Result {
	if opts == nil {
		opts = &Options{}
	}
	opts.Stdin = strings.NewReader(input)
	return Run(name, args, opts)
}

// Lines splits command output into trimmed non-empty lines.
func Lines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// WriteTempFile writes content to a temp file and returns its path.
func WriteTempFile(content, suffix string) (string, error) {
	f, err := os.CreateTemp("", "auto-recon-*"+suffix)
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	f.Close()
	return f.Name(), nil
}

// TempFile is WriteTempFile plus a cleanup func for deferring.
func TempFile(content, suffix string) (string, func(), error) {
	path, err := WriteTempFile(content, suffix)
	if err != nil {
		return "", nil, err
	}
	return path, func() { os.Remove(path) }, nil
}
