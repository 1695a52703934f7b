// Package pipeline runs the enumeration stages in strict order. Each stage
// consumes the previous stage's artifact file and produces its own; a
// failing stage is recorded and the run continues, so failures surface as
// empty downstream artifacts rather than an aborted scan.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/Perdyx/auto-recon/internal/session"
	"github.com/fatih/color"
)

// Stage is one step of the enumeration pipeline.
type Stage interface {
	// Name identifies the stage in console output and the history ledger.
	Name() string

	// Artifact is the session file the stage produces.
	Artifact() string

	// Run executes the stage against the session directory.
	Run(ctx context.Context, sess *session.Session) error
}

// StageError wraps a stage failure with the stage name.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageResult records the outcome of one stage for the history ledger.
type StageResult struct {
	Stage    string
	Artifact string
	Duration time.Duration
	Err      error
}

// Pipeline is an ordered sequence of stages.
type Pipeline struct {
	stages []Stage
}

// New builds a pipeline from stages in execution order.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes every stage in order. No stage is retried and no failure
// halts the run; each result carries the stage's error, if any.
func (p *Pipeline) Run(ctx context.Context, sess *session.Session) []StageResult {
	results := make([]StageResult, 0, len(p.stages))

	for _, st := range p.stages {
		color.New(color.FgCyan).Printf("[*] %s\n", st.Name())

		start := time.Now()
		err := st.Run(ctx, sess)
		if err != nil {
			err = &StageError{Stage: st.Name(), Err: err}
			color.New(color.FgYellow).Printf("    [!] %v\n", err)
		}

		results = append(results, StageResult{
			Stage:    st.Name(),
			Artifact: st.Artifact(),
			Duration: time.Since(start),
			Err:      err,
		})
	}
	return results
}
