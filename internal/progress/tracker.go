// Package progress reports the state of long-running operations to the
// console. Synchronization runs are tracked as a fixed sequence of named
// steps; data generation reports item counts.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Tracker interface defines methods for tracking operation progress
type Tracker interface {
	Start(operation string) *Operation
	Update(current, total int64)
	Complete()
	Error(err error)
}

// Operation represents a tracked operation
type Operation struct {
	Name        string
	StartTime   time.Time
	Status      string
	LastCurrent int64
	LastTotal   int64
}

// ConsoleTracker implements Tracker for console output
type ConsoleTracker struct {
	out              io.Writer
	currentOperation *Operation
}

// NewConsoleTracker creates a new console-based progress tracker
func NewConsoleTracker() *ConsoleTracker {
	return &ConsoleTracker{out: os.Stdout}
}

// Start begins tracking a new operation
func (t *ConsoleTracker) Start(operation string) *Operation {
	t.currentOperation = &Operation{
		Name:      operation,
		StartTime: time.Now(),
		Status:    "in_progress",
	}
	fmt.Fprintf(t.out, "Starting: %s\n", operation)
	return t.currentOperation
}

// Update updates the progress of the current operation
func (t *ConsoleTracker) Update(current, total int64) {
	if t.currentOperation == nil {
		return
	}
	t.currentOperation.LastCurrent = current
	t.currentOperation.LastTotal = total

	if total > 0 {
		fmt.Fprintf(t.out, "\r%s: %.0f%% (%d/%d)",
			t.currentOperation.Name,
			float64(current)/float64(total)*100,
			current, total)
	}
}

// Complete marks the current operation as completed
func (t *ConsoleTracker) Complete() {
	if t.currentOperation == nil {
		return
	}
	duration := time.Since(t.currentOperation.StartTime).Round(time.Millisecond)
	t.currentOperation.Status = "completed"
	fmt.Fprintf(t.out, "\nCompleted: %s (took %v)\n", t.currentOperation.Name, duration)
	t.currentOperation = nil
}

// Error marks the current operation as failed
func (t *ConsoleTracker) Error(err error) {
	if t.currentOperation == nil {
		return
	}
	t.currentOperation.Status = "failed"
	fmt.Fprintf(t.out, "\nError: %s - %v\n", t.currentOperation.Name, err)
	t.currentOperation = nil
}
