package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var osExit = os.Exit // For testing purposes

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitauth",
		Short: "Provision a verified GitHub credential",
		Long: `A tool for provisioning GitHub credentials for the demo bootstrap:
personal access tokens, SSH keypairs, or an OAuth device flow. Every path
ends with the credential verified against GitHub and stored for the other
tools to pick up.`,
	}

	cmd.AddCommand(
		newTokenCmd(),
		newSSHCmd(),
		newOAuthCmd(),
		newStatusCmd(),
	)

	return cmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		osExit(1)
	}
}
