package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demoscaffold",
		Short: "Scaffold the demo project and its sample data",
		Long: `A tool for materializing the emotional avatar demo project: the
directory skeleton with its starter files, and the synthetic emotional
time-series the demo replays.`,
	}

	cmd.AddCommand(
		newInitCmd(),
		newDataCmd(),
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
