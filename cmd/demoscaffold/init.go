package main

import (
	"fmt"

	"github.com/avatardemo/go-demotools/internal/scaffold"
	"github.com/spf13/cobra"
)

type initOptions struct {
	dir  string
	name string
	user string
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Materialize the demo project tree",
		Long: `Create the demo project skeleton: source and data directories plus the
starter files (.gitignore, README, LICENSE, requirements, runner stub,
CI workflow). Re-running is safe: files you have edited are moved into a
timestamped backup directory before being regenerated.`,
		Example: `  demoscaffold init --name avatar-demo --user octocat
  demoscaffold init --dir ~/work/avatar-demo --name avatar-demo --user octocat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Project root directory")
	cmd.Flags().StringVar(&opts.name, "name", "", "Project name (defaults to the directory name)")
	cmd.Flags().StringVar(&opts.user, "user", "", "GitHub username substituted into the templates")
	cmd.MarkFlagRequired("user")

	return cmd
}

func runInit(opts *initOptions) error {
	gen := scaffold.NewGenerator(opts.dir, opts.name, opts.user)
	report, err := gen.Apply()
	if err != nil {
		return err
	}

	fmt.Printf("Scaffolded %s\n", gen.Data.Project)
	if len(report.DirsCreated) > 0 {
		fmt.Printf("  Directories created: %d\n", len(report.DirsCreated))
	}
	if len(report.Written) > 0 {
		fmt.Printf("  Files written: %d\n", len(report.Written))
	}
	if len(report.BackedUp) > 0 {
		fmt.Printf("  Existing files backed up to %s:\n", report.BackupDir)
		for _, rel := range report.BackedUp {
			fmt.Printf("    %s\n", rel)
		}
	}
	return nil
}
