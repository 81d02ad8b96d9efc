package progress

import (
	"fmt"
	"io"
	"os"
)

// StageTracker reports a fixed sequence of named steps, the shape of a
// synchronization run (fetch, reconcile, push).
type StageTracker struct {
	out    io.Writer
	stages []string
	index  int
	failed bool
}

// NewStageTracker creates a tracker for the given ordered stages.
func NewStageTracker(stages ...string) *StageTracker {
	return &StageTracker{out: os.Stdout, stages: stages}
}

// Next announces the next stage and returns its name. Calling Next past the
// last stage is a no-op returning "".
func (t *StageTracker) Next() string {
	if t.index >= len(t.stages) {
		return ""
	}
	stage := t.stages[t.index]
	t.index++
	fmt.Fprintf(t.out, "[%d/%d] %s\n", t.index, len(t.stages), stage)
	return stage
}

// Fail reports a failure of the current stage.
func (t *StageTracker) Fail(err error) {
	t.failed = true
	current := "start"
	if t.index > 0 && t.index <= len(t.stages) {
		current = t.stages[t.index-1]
	}
	fmt.Fprintf(t.out, "Failed at %s: %v\n", current, err)
}

// Done reports overall completion unless a stage already failed.
func (t *StageTracker) Done() {
	if t.failed {
		return
	}
	fmt.Fprintln(t.out, "Done.")
}
