package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/avatardemo/go-demotools/internal/config"
	"github.com/spf13/cobra"
)

type configureOptions struct {
	dir           string
	repo          string
	branch        string
	policy        string
	allowList     []string
	backupPrefix  string
	retryAttempts int
	retryDelay    string
}

func newConfigureCmd() *cobra.Command {
	opts := &configureOptions{}

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Update sync settings",
		Long: `Update the repository's synchronization settings. Settings include the
default branch and policy, the reset allow-list, the backup directory
prefix, and push retry behavior. Stored in ` + config.DefaultFileName + `
at the repository root.`,
		Example: `  gitsync configure --repo owner/repo --branch main
  gitsync configure --policy rebase
  gitsync configure --allow src,data/samples,README.md
  gitsync configure --retry-attempts 5 --retry-delay 10s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Local repository path")
	cmd.Flags().StringVar(&opts.repo, "repo", "", "Remote repository (owner/repo)")
	cmd.Flags().StringVar(&opts.branch, "branch", "", "Default branch to synchronize")
	cmd.Flags().StringVar(&opts.policy, "policy", "", "Default reconciliation policy (merge, rebase, force, reset)")
	cmd.Flags().StringSliceVar(&opts.allowList, "allow", nil, "Paths restored after a reset run")
	cmd.Flags().StringVar(&opts.backupPrefix, "backup-prefix", "", "Prefix for working-tree backup directories")
	cmd.Flags().IntVar(&opts.retryAttempts, "retry-attempts", 0, "Push attempts for transient failures (1-10; 1 means no retry)")
	cmd.Flags().StringVar(&opts.retryDelay, "retry-delay", "", "Delay between push retries (e.g. 5s, 1m)")

	return cmd
}

func updateConfig(opts *configureOptions) error {
	path := filepath.Join(opts.dir, config.DefaultFileName)
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.repo != "" {
		if err := config.ValidateRepoFormat(opts.repo); err != nil {
			return fmt.Errorf("invalid repository: %w", err)
		}
		cfg.Repo = opts.repo
	}
	if opts.branch != "" {
		cfg.DefaultBranch = opts.branch
	}
	if opts.policy != "" {
		cfg.Policy = opts.policy
	}
	if len(opts.allowList) > 0 {
		cfg.ResetAllowList = opts.allowList
	}
	if opts.backupPrefix != "" {
		cfg.BackupPrefix = opts.backupPrefix
	}
	if opts.retryAttempts > 0 {
		if opts.retryAttempts > 10 {
			return fmt.Errorf("retry attempts cannot exceed 10")
		}
		cfg.PushRetry.Attempts = opts.retryAttempts
	}
	if opts.retryDelay != "" {
		if _, err := time.ParseDuration(opts.retryDelay); err != nil {
			return fmt.Errorf("invalid retry delay: %w", err)
		}
		cfg.PushRetry.Delay = opts.retryDelay
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SaveConfig(cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Configuration updated:\n")
	if cfg.Repo != "" {
		fmt.Printf("  Repository: %s\n", cfg.Repo)
	}
	fmt.Printf("  Default branch: %s\n", cfg.DefaultBranch)
	fmt.Printf("  Policy: %s\n", cfg.Policy)
	fmt.Printf("  Reset allow-list: %v\n", cfg.ResetAllowList)
	fmt.Printf("  Backup prefix: %s\n", cfg.BackupPrefix)
	fmt.Printf("  Push retry: %d attempts, %s delay\n", cfg.PushRetry.Attempts, cfg.PushRetry.Delay)

	return nil
}
