package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitsync",
		Short: "Bind and synchronize a repository with its GitHub remote",
		Long: `A CLI tool for binding a local repository to its GitHub remote and
reconciling their histories under an explicit policy (merge, rebase,
force, or reset). Policies never escalate automatically; conflicts halt
for manual resolution.`,
	}

	// Add subcommands
	cmd.AddCommand(
		newBindCmd(),
		newRunCmd(),
		newStatusCmd(),
		newConfigureCmd(),
	)

	return cmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
