// Package sync reconciles a local repository with its origin remote under
// one of four explicit policies: merge, rebase, force-push, or
// reset-and-replay. A run terminates when the push succeeds or when it
// halts with an error that needs a human (conflicts, rejected credentials,
// declined confirmations). Policies are never retried or escalated
// automatically.
package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avatardemo/go-demotools/internal/errors"
)

// Runner abstracts git command execution. *git.Git satisfies it.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// Confirmer supplies the typed double confirmation guarding destructive
// operations. *prompt.Prompter satisfies it.
type Confirmer interface {
	ConfirmDestructive(warning, phrase string) error
}

// Options configures a synchronization run.
type Options struct {
	// Dir is the local repository path.
	Dir string

	// Branch is the branch reconciled with origin.
	Branch string

	// AllowList names the paths restored from the backup after a
	// reset-and-replay run.
	AllowList []string

	// BackupPrefix names the backup directory prefix for reset runs.
	BackupPrefix string

	// RetryAttempts bounds push attempts for transient failures. One
	// attempt, the default, means a failed push is reported and never
	// re-run. Conflicts and rejected credentials are never retried.
	RetryAttempts int

	// RetryDelay is the pause between push retries.
	RetryDelay time.Duration

	// OnStage, when set, is called as each stage of a run begins.
	OnStage func(stage string)
}

// Synchronizer runs reconciliation policies against one repository.
type Synchronizer struct {
	git     Runner
	confirm Confirmer
	opts    Options

	// now is a hook for deterministic backup names in tests.
	now func() time.Time

	// sleep is a hook so retry tests do not wait.
	sleep func(time.Duration)
}

// New creates a Synchronizer. confirm may be nil when no destructive policy
// will be run.
func New(git Runner, confirm Confirmer, opts Options) *Synchronizer {
	if opts.Branch == "" {
		opts.Branch = "main"
	}
	if opts.BackupPrefix == "" {
		opts.BackupPrefix = "backup"
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = 1
	}
	return &Synchronizer{
		git:     git,
		confirm: confirm,
		opts:    opts,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// Run executes the chosen policy to its terminal condition.
func (s *Synchronizer) Run(ctx context.Context, policy Policy) error {
	switch policy {
	case PolicyMerge:
		return s.merge(ctx)
	case PolicyRebase:
		return s.rebase(ctx)
	case PolicyForcePush:
		return s.forcePush(ctx)
	case PolicyResetAndReplay:
		return s.resetAndReplay(ctx)
	default:
		return fmt.Errorf("unknown policy %q", policy)
	}
}

// stage reports the stage now starting to the caller's progress hook.
func (s *Synchronizer) stage(name string) {
	if s.opts.OnStage != nil {
		s.opts.OnStage(name)
	}
}

func (s *Synchronizer) merge(ctx context.Context) error {
	if err := s.fetch(ctx); err != nil {
		return err
	}

	s.stage("merge")
	if out, err := s.git.Run(ctx, "merge", "--allow-unrelated-histories", "origin/"+s.opts.Branch); err != nil {
		if errors.IsConflict(err) {
			return err
		}
		return fmt.Errorf("merge failed: %w (%s)", err, firstLine(out))
	}

	return s.push(ctx, "push", "-u", "origin", s.opts.Branch)
}

func (s *Synchronizer) rebase(ctx context.Context) error {
	if err := s.fetch(ctx); err != nil {
		return err
	}

	s.stage("rebase")
	if out, err := s.git.Run(ctx, "rebase", "origin/"+s.opts.Branch); err != nil {
		if errors.IsConflict(err) {
			// Leave the repository in the conflicted rebase state for
			// the user; aborting would discard their position.
			return err
		}
		return fmt.Errorf("rebase failed: %w (%s)", err, firstLine(out))
	}

	return s.push(ctx, "push", "-u", "origin", s.opts.Branch)
}

func (s *Synchronizer) forcePush(ctx context.Context) error {
	s.stage("confirm")
	if s.confirm == nil {
		return fmt.Errorf("force push requires interactive confirmation: %w", errors.ErrAborted)
	}

	warning := fmt.Sprintf("This will overwrite the remote history of %q. Commits on the remote that are not local will be lost.", s.opts.Branch)
	if err := s.confirm.ConfirmDestructive(warning, "force push"); err != nil {
		return err
	}

	return s.push(ctx, "push", "--force", "-u", "origin", s.opts.Branch)
}

func (s *Synchronizer) resetAndReplay(ctx context.Context) error {
	s.stage("backup")
	backupDir, err := s.backupWorkingTree()
	if err != nil {
		return fmt.Errorf("backup failed, aborting before reset: %w", err)
	}

	if err := s.fetch(ctx); err != nil {
		return err
	}

	s.stage("reset")
	if out, err := s.git.Run(ctx, "reset", "--hard", "origin/"+s.opts.Branch); err != nil {
		return fmt.Errorf("reset failed: %w (%s)", err, firstLine(out))
	}

	s.stage("replay")
	restored, err := s.restoreAllowList(backupDir)
	if err != nil {
		return fmt.Errorf("restore from backup failed: %w", err)
	}
	if restored == 0 {
		// Nothing local to replay; the reset alone brought us to the
		// remote tip.
		return nil
	}

	if out, err := s.git.Run(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("staging restored paths failed: %w (%s)", err, firstLine(out))
	}

	out, err := s.git.Run(ctx, "commit", "-m", "Restore local work after remote reset")
	if err != nil && !strings.Contains(out, "nothing to commit") {
		return fmt.Errorf("commit of restored paths failed: %w (%s)", err, firstLine(out))
	}

	return s.push(ctx, "push", "-u", "origin", s.opts.Branch)
}

func (s *Synchronizer) fetch(ctx context.Context) error {
	s.stage("fetch")
	if out, err := s.git.Run(ctx, "fetch", "origin"); err != nil {
		return fmt.Errorf("fetch failed: %w (%s)", err, firstLine(out))
	}
	return nil
}

// push runs the given push command with a bounded retry on transient
// failures.
func (s *Synchronizer) push(ctx context.Context, args ...string) error {
	s.stage("push")
	var lastErr error
	for attempt := 1; attempt <= s.opts.RetryAttempts; attempt++ {
		_, err := s.git.Run(ctx, args...)
		if err == nil {
			return nil
		}
		lastErr = err

		if !errors.IsRetryable(err) || attempt == s.opts.RetryAttempts {
			break
		}
		s.sleep(s.opts.RetryDelay)
	}
	return fmt.Errorf("push failed: %w", lastErr)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
