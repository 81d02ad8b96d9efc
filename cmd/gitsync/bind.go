package main

import (
	"context"
	"fmt"

	"github.com/avatardemo/go-demotools/internal/git"
	"github.com/avatardemo/go-demotools/internal/github"
	"github.com/avatardemo/go-demotools/internal/remote"
	"github.com/avatardemo/go-demotools/internal/token"
	"github.com/avatardemo/go-demotools/internal/urlutils"
	"github.com/spf13/cobra"
)

type bindOptions struct {
	dir       string
	url       string
	transport string
	create    bool
	private   bool
}

func newBindCmd() *cobra.Command {
	opts := &bindOptions{}

	cmd := &cobra.Command{
		Use:   "bind",
		Short: "Bind the repository to its remote",
		Long: `Set the origin remote to the given URL in the chosen transport.
An existing origin is overwritten in place; the repository always ends up
with exactly one origin URL. With --create the remote repository is
created first using the stored token.`,
		Example: `  gitsync bind --url https://github.com/owner/repo
  gitsync bind --url https://github.com/owner/repo --transport ssh
  gitsync bind --url https://github.com/owner/repo --create --private`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBind(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Local repository path")
	cmd.Flags().StringVar(&opts.url, "url", "", "Remote repository URL")
	cmd.Flags().StringVar(&opts.transport, "transport", "oauth", "Remote transport (token, ssh, oauth)")
	cmd.Flags().BoolVar(&opts.create, "create", false, "Create the remote repository before binding")
	cmd.Flags().BoolVar(&opts.private, "private", false, "Create the remote repository as private (with --create)")
	cmd.MarkFlagRequired("url")

	return cmd
}

func runBind(ctx context.Context, opts *bindOptions) error {
	transport := remote.Transport(opts.transport)
	switch transport {
	case remote.TransportToken, remote.TransportSSH, remote.TransportOAuth:
	default:
		return fmt.Errorf("unknown transport %q (expected token, ssh, or oauth)", opts.transport)
	}

	g := git.New(opts.dir)
	if !g.IsRepo(ctx) {
		return fmt.Errorf("%s is not a git repository", opts.dir)
	}

	// Creating the remote and the token transport both need the stored
	// credential.
	var credential string
	if opts.create || transport == remote.TransportToken {
		storage := token.NewEnvStorage()
		t, err := storage.Retrieve(ctx, token.StorageKey)
		if err != nil {
			return fmt.Errorf("a stored token is required (run 'gitauth token' first): %w", err)
		}
		credential = t.Value

		if opts.create {
			if err := createRemoteRepo(ctx, &t, opts); err != nil {
				return err
			}
		}
	}

	binding := &remote.Binding{Dir: opts.dir, URL: opts.url, Transport: transport}
	if err := binding.Apply(ctx, g, credential); err != nil {
		return err
	}

	fmt.Printf("Bound origin to %s (%s transport)\n", opts.url, transport)
	return nil
}

func createRemoteRepo(ctx context.Context, t *token.Token, opts *bindOptions) error {
	_, repo, err := urlutils.OwnerRepo(opts.url)
	if err != nil {
		return fmt.Errorf("cannot derive repository name from URL: %w", err)
	}

	client, err := github.NewClient(ctx, t)
	if err != nil {
		return err
	}
	if err := client.CreateRepository(ctx, github.RepoOptions{
		Name:    repo,
		Private: opts.private,
	}); err != nil {
		return fmt.Errorf("failed to create remote repository: %w", err)
	}

	fmt.Printf("Created repository %s/%s\n", client.GetUsername(), repo)
	return nil
}
