package main

import (
	"context"
	"fmt"

	"github.com/avatardemo/go-demotools/internal/sshkey"
	"github.com/avatardemo/go-demotools/internal/token"
	"github.com/spf13/cobra"
)

type authStatusOptions struct {
	keyPath string
}

func newStatusCmd() *cobra.Command {
	opts := &authStatusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report which credentials are present",
		Long: `Report the stored token, the SSH key on disk, and whether an ssh-agent
answers. Read-only: nothing is verified against GitHub and nothing is
mutated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthStatus(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.keyPath, "key", "", "Private key path (default ~/.ssh/id_ed25519)")

	return cmd
}

func runAuthStatus(ctx context.Context, opts *authStatusOptions) error {
	storage := token.NewEnvStorage()
	if t, err := storage.Retrieve(ctx, token.StorageKey); err == nil {
		kind := token.DetectKind(t.Value)
		if kind == "" {
			kind = "unrecognized format"
		}
		fmt.Printf("Token:     stored (%s)\n", kind)
		if !t.ExpiresAt.IsZero() {
			fmt.Printf("           expires %s\n", t.ExpiresAt.Format("January 2, 2006"))
		}
	} else {
		fmt.Println("Token:     not stored (run 'gitauth token' or 'gitauth oauth')")
	}

	keypair := &sshkey.Keypair{PrivatePath: opts.keyPath}
	if opts.keyPath == "" {
		kp, err := sshkey.Default()
		if err != nil {
			return err
		}
		keypair = kp
	}
	if keypair.Exists() {
		fmt.Printf("SSH key:   %s\n", keypair.PrivatePath)
	} else {
		fmt.Printf("SSH key:   none at %s (run 'gitauth ssh')\n", keypair.PrivatePath)
	}

	if sshkey.AgentReachable(ctx) {
		fmt.Println("ssh-agent: reachable")
	} else {
		fmt.Println("ssh-agent: not reachable")
	}

	return nil
}
