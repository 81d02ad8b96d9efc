package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/avatardemo/go-demotools/internal/config"
	"github.com/avatardemo/go-demotools/internal/git"
	"github.com/avatardemo/go-demotools/internal/remote"
	"github.com/spf13/cobra"
)

type statusOptions struct {
	dir    string
	branch string
}

func newStatusCmd() *cobra.Command {
	opts := &statusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show binding and divergence from origin",
		Long: `Show the repository's remote binding, working tree state, and how far
the local branch has diverged from origin. Read-only: nothing is fetched
or mutated.`,
		Example: `  gitsync status
  gitsync status --dir ~/work/avatar-demo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStatus(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Local repository path")
	cmd.Flags().StringVar(&opts.branch, "branch", "", "Branch to compare (defaults to configured branch)")

	return cmd
}

func showStatus(ctx context.Context, opts *statusOptions) error {
	g := git.New(opts.dir)
	if !g.IsRepo(ctx) {
		return fmt.Errorf("%s is not a git repository", opts.dir)
	}

	binding, err := remote.Current(opts.dir)
	if err != nil {
		return err
	}
	if binding == nil {
		fmt.Println("Binding:   none (run 'gitsync bind')")
	} else {
		fmt.Printf("Binding:   %s (%s transport)\n", binding.URL, binding.Transport)
	}

	branch, err := g.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Branch:    %s\n", branch)

	dirty, err := g.IsDirty(ctx)
	if err != nil {
		return err
	}
	if dirty {
		fmt.Println("Worktree:  dirty (uncommitted changes)")
	} else {
		fmt.Println("Worktree:  clean")
	}

	if binding == nil {
		return nil
	}

	compare := opts.branch
	if compare == "" {
		cfg, err := config.LoadConfig(filepath.Join(opts.dir, config.DefaultFileName))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		compare = cfg.DefaultBranch
	}

	ahead, behind, err := g.AheadBehind(ctx, "origin/"+compare)
	if err != nil {
		// The remote branch may not be fetched yet; divergence is simply
		// unknown, not an error worth failing status over.
		fmt.Printf("Divergence: unknown (origin/%s not available locally)\n", compare)
		return nil
	}
	fmt.Printf("Divergence: %d ahead, %d behind origin/%s\n", ahead, behind, compare)
	return nil
}
