package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/avatardemo/go-demotools/internal/errors"
)

const defaultTimeout = 10 * time.Minute

// Git runs git commands in a fixed working directory.
type Git struct {
	// Dir is the repository working directory.
	Dir string

	// Timeout bounds a single git invocation. Zero means defaultTimeout.
	Timeout time.Duration
}

// New creates a Git runner for the given working directory.
func New(dir string) *Git {
	return &Git{Dir: dir}
}

// execCommand is a variable so it can be swapped in tests.
var execCommand = exec.CommandContext

// Run executes git with the given arguments and returns its combined output.
// Interactive credential prompting is disabled so a missing credential fails
// instead of hanging.
func (g *Git) Run(ctx context.Context, args ...string) (string, error) {
	timeout := g.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := execCommand(ctx, "git", args...)
	cmd.Dir = g.Dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "GIT_ASKPASS=")

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	output := buf.String()
	if err != nil {
		return output, classify(args, output, err)
	}
	return output, nil
}

// classify maps a failed git invocation onto the error model.
func classify(args []string, output string, err error) error {
	op := "git"
	if len(args) > 0 {
		op = "git-" + args[0]
	}

	switch {
	case IsConflictOutput(output):
		return errors.NewSetupError(op,
			"resolve the conflicted files, then run 'git add' and complete the merge or rebase manually",
			fmt.Errorf("%w: %s", errors.ErrConflict, firstLine(output)))
	case isAuthFailure(output):
		return errors.NewSetupError(op,
			"verify the remote URL and credential, then run the command again",
			fmt.Errorf("%w: %s", errors.ErrConnectivity, firstLine(output)))
	default:
		return errors.NewSetupError(op, "", fmt.Errorf("%v: %s", err, strings.TrimSpace(output)))
	}
}

// IsConflictOutput reports whether git output indicates a halted
// merge/rebase conflict.
func IsConflictOutput(output string) bool {
	for _, marker := range []string{
		"CONFLICT (",
		"Automatic merge failed",
		"could not apply",
		"Merge conflict in",
	} {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}

func isAuthFailure(output string) bool {
	for _, marker := range []string{
		"Authentication failed",
		"could not read Username",
		"Permission denied",
		"Could not resolve host",
		"fatal: unable to access",
	} {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// IsRepo reports whether Dir is inside a git working tree.
func (g *Git) IsRepo(ctx context.Context) bool {
	out, err := g.Run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// CurrentBranch returns the checked-out branch name.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	out, err := g.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsDirty reports whether the working tree has uncommitted changes.
func (g *Git) IsDirty(ctx context.Context) (bool, error) {
	out, err := g.Run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// AheadBehind returns how many commits HEAD is ahead of and behind the given
// upstream ref. The upstream must already be fetched.
func (g *Git) AheadBehind(ctx context.Context, upstream string) (ahead, behind int, err error) {
	out, err := g.Run(ctx, "rev-list", "--left-right", "--count", "HEAD..."+upstream)
	if err != nil {
		return 0, 0, err
	}

	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output: %q", out)
	}
	ahead, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected rev-list output: %q", out)
	}
	behind, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected rev-list output: %q", out)
	}
	return ahead, behind, nil
}
