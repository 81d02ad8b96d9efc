package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConsoleTracker(t *testing.T) {
	out := &bytes.Buffer{}
	tracker := &ConsoleTracker{out: out}

	op := tracker.Start("generate samples")
	if op.Status != "in_progress" {
		t.Errorf("Start() status = %q", op.Status)
	}

	tracker.Update(60, 120)
	tracker.Complete()

	output := out.String()
	if !strings.Contains(output, "Starting: generate samples") {
		t.Errorf("missing start line in output: %q", output)
	}
	if !strings.Contains(output, "50%") {
		t.Errorf("missing progress percentage in output: %q", output)
	}
	if !strings.Contains(output, "Completed: generate samples") {
		t.Errorf("missing completion line in output: %q", output)
	}
	if op.Status != "completed" {
		t.Errorf("status after Complete() = %q", op.Status)
	}
}

func TestConsoleTracker_Error(t *testing.T) {
	out := &bytes.Buffer{}
	tracker := &ConsoleTracker{out: out}

	op := tracker.Start("push")
	tracker.Error(errors.New("remote rejected"))

	if op.Status != "failed" {
		t.Errorf("status after Error() = %q", op.Status)
	}
	if !strings.Contains(out.String(), "remote rejected") {
		t.Errorf("missing error text in output: %q", out.String())
	}

	// Update and Complete after the operation ended are no-ops.
	tracker.Update(1, 2)
	tracker.Complete()
}

func TestStageTracker(t *testing.T) {
	out := &bytes.Buffer{}
	tracker := &StageTracker{out: out, stages: []string{"fetch", "merge", "push"}}

	if got := tracker.Next(); got != "fetch" {
		t.Errorf("Next() = %q, want fetch", got)
	}
	if got := tracker.Next(); got != "merge" {
		t.Errorf("Next() = %q, want merge", got)
	}

	tracker.Next()
	if got := tracker.Next(); got != "" {
		t.Errorf("Next() past end = %q, want empty", got)
	}

	tracker.Done()
	output := out.String()
	if !strings.Contains(output, "[1/3] fetch") || !strings.Contains(output, "[3/3] push") {
		t.Errorf("unexpected stage output: %q", output)
	}
	if !strings.Contains(output, "Done.") {
		t.Errorf("missing completion line: %q", output)
	}
}

func TestStageTracker_Fail(t *testing.T) {
	out := &bytes.Buffer{}
	tracker := &StageTracker{out: out, stages: []string{"fetch", "merge"}}

	tracker.Next()
	tracker.Next()
	tracker.Fail(errors.New("conflict"))
	tracker.Done()

	output := out.String()
	if !strings.Contains(output, "Failed at merge: conflict") {
		t.Errorf("missing failure line: %q", output)
	}
	if strings.Contains(output, "Done.") {
		t.Errorf("Done printed after failure: %q", output)
	}
}
