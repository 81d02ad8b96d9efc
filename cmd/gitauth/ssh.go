package main

import (
	"context"
	"fmt"

	"github.com/avatardemo/go-demotools/internal/git"
	"github.com/avatardemo/go-demotools/internal/prompt"
	"github.com/avatardemo/go-demotools/internal/remote"
	"github.com/avatardemo/go-demotools/internal/sshkey"
	"github.com/spf13/cobra"
)

type sshOptions struct {
	keyPath string
	comment string
	bind    bool
	dir     string
}

func newSSHCmd() *cobra.Command {
	opts := &sshOptions{}

	cmd := &cobra.Command{
		Use:   "ssh",
		Short: "Set up SSH key authentication",
		Long: `Check for an SSH keypair at its fixed path, generating one when absent,
load it into the agent, and verify the handshake against GitHub. The
command waits while you register the public key in your GitHub settings;
that wait has no timeout.`,
		Example: `  gitauth ssh
  gitauth ssh --comment you@example.com
  gitauth ssh --key ~/.ssh/id_ed25519_work --bind --dir ~/work/avatar-demo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSSH(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.keyPath, "key", "", "Private key path (default ~/.ssh/id_ed25519)")
	cmd.Flags().StringVar(&opts.comment, "comment", "", "Comment embedded in a generated key, typically an email")
	cmd.Flags().BoolVar(&opts.bind, "bind", false, "Rewrite the repository's origin to the SSH form")
	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Local repository path (with --bind)")

	return cmd
}

func runSSH(ctx context.Context, opts *sshOptions) error {
	keypair, err := resolveKeypair(opts)
	if err != nil {
		return err
	}

	if keypair.Exists() {
		fmt.Printf("Using existing key at %s\n", keypair.PrivatePath)
	} else {
		fmt.Printf("Generating new ed25519 key at %s\n", keypair.PrivatePath)
		if err := keypair.Generate(ctx); err != nil {
			return err
		}
	}

	// A dead agent is not fatal; ssh reads the key file directly.
	if err := keypair.AddToAgent(ctx); err != nil {
		fmt.Printf("Warning: could not load key into ssh-agent: %v\n", err)
	}

	publicKey, err := keypair.PublicKey()
	if err != nil {
		return err
	}
	fmt.Printf("\nAdd this public key to your GitHub account\n")
	fmt.Printf("(https://github.com/settings/ssh/new):\n\n%s\n\n", publicKey)

	// Registration happens in the browser; there is nothing to do but wait
	// for the human.
	p := prompt.New()
	if _, err := p.Input("Press Enter once the key is registered", 0); err != nil {
		return err
	}

	if err := keypair.Verify(ctx, ""); err != nil {
		return err
	}
	fmt.Println("SSH handshake with GitHub succeeded.")

	if opts.bind {
		return bindSSHRemote(ctx, opts.dir)
	}
	return nil
}

func resolveKeypair(opts *sshOptions) (*sshkey.Keypair, error) {
	if opts.keyPath != "" {
		return &sshkey.Keypair{PrivatePath: opts.keyPath, Comment: opts.comment}, nil
	}
	keypair, err := sshkey.Default()
	if err != nil {
		return nil, err
	}
	keypair.Comment = opts.comment
	return keypair, nil
}

func bindSSHRemote(ctx context.Context, dir string) error {
	binding, err := remote.Current(dir)
	if err != nil {
		return err
	}
	if binding == nil {
		return fmt.Errorf("no origin remote to rewrite in %s (run 'gitsync bind' first)", dir)
	}

	binding.Transport = remote.TransportSSH
	if err := binding.Apply(ctx, git.New(dir), ""); err != nil {
		return err
	}
	fmt.Println("Rewrote origin to the SSH form.")
	return nil
}
