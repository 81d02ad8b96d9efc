package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/avatardemo/go-demotools/internal/config"
	"github.com/avatardemo/go-demotools/internal/errors"
	"github.com/avatardemo/go-demotools/internal/git"
	"github.com/avatardemo/go-demotools/internal/progress"
	"github.com/avatardemo/go-demotools/internal/prompt"
	"github.com/avatardemo/go-demotools/internal/remote"
	"github.com/avatardemo/go-demotools/internal/sync"
	"github.com/spf13/cobra"
)

type runOptions struct {
	dir    string
	policy string
	branch string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile local history with origin",
		Long: `Reconcile the local branch with origin under an explicit policy:
merge, rebase, force, or reset. The run ends when the push succeeds or
when it halts with an error that needs a human. Conflicts are never
resolved or retried automatically.`,
		Example: `  gitsync run --policy merge
  gitsync run --policy rebase --branch develop
  gitsync run --policy force
  gitsync run --policy reset`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPolicy(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Local repository path")
	cmd.Flags().StringVar(&opts.policy, "policy", "", "Reconciliation policy (merge, rebase, force, reset)")
	cmd.Flags().StringVar(&opts.branch, "branch", "", "Branch to reconcile (defaults to configured branch)")

	return cmd
}

func runPolicy(ctx context.Context, opts *runOptions) error {
	cfg, err := config.LoadConfig(filepath.Join(opts.dir, config.DefaultFileName))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	policyName := opts.policy
	if policyName == "" {
		policyName = cfg.Policy
	}
	policy, err := sync.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	branch := opts.branch
	if branch == "" {
		branch = cfg.DefaultBranch
	}

	g := git.New(opts.dir)
	if !g.IsRepo(ctx) {
		return fmt.Errorf("%s is not a git repository", opts.dir)
	}

	binding, err := remote.Current(opts.dir)
	if err != nil {
		return err
	}
	if binding == nil {
		return fmt.Errorf("no origin remote configured; run 'gitsync bind' first")
	}

	tracker := progress.NewStageTracker(stagesFor(policy)...)
	s := sync.New(g, prompt.New(), sync.Options{
		Dir:           opts.dir,
		Branch:        branch,
		AllowList:     cfg.ResetAllowList,
		BackupPrefix:  cfg.BackupPrefix,
		RetryAttempts: cfg.PushRetry.Attempts,
		RetryDelay:    cfg.RetryDelay(),
		OnStage:       func(string) { tracker.Next() },
	})

	fmt.Printf("Reconciling %s with origin/%s (%s policy)\n", opts.dir, branch, policy)

	if err := s.Run(ctx, policy); err != nil {
		tracker.Fail(err)
		if hint := errors.HintOf(err); hint != "" {
			fmt.Printf("Hint: %s\n", hint)
		}
		return err
	}

	tracker.Done()
	return nil
}

func stagesFor(policy sync.Policy) []string {
	switch policy {
	case sync.PolicyMerge:
		return []string{"fetch", "merge", "push"}
	case sync.PolicyRebase:
		return []string{"fetch", "rebase", "push"}
	case sync.PolicyForcePush:
		return []string{"confirm", "push"}
	case sync.PolicyResetAndReplay:
		return []string{"backup", "fetch", "reset", "replay", "push"}
	default:
		return nil
	}
}
