package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/avatardemo/go-demotools/internal/errors"
	"github.com/avatardemo/go-demotools/internal/git"
	"github.com/avatardemo/go-demotools/internal/github"
	"github.com/avatardemo/go-demotools/internal/prompt"
	"github.com/avatardemo/go-demotools/internal/remote"
	"github.com/avatardemo/go-demotools/internal/token"
	"github.com/spf13/cobra"
)

// EnvTokenValue lets CI pass the token without a flag or prompt.
const EnvTokenValue = "GIT_TOKEN_VALUE"

// promptTimeout bounds interactive token entry.
const promptTimeout = 30 * time.Second

type tokenOptions struct {
	value     string
	tokenFile string
	bind      bool
	dir       string
}

func newTokenCmd() *cobra.Command {
	opts := &tokenOptions{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Set up a personal access token",
		Long: `Accept a GitHub token from a flag, file, environment variable, or an
interactive prompt, verify it against the API, and store it for the other
tools. An empty token is rejected before any network call.`,
		Example: `  gitauth token
  gitauth token --token ghp_xxxx
  gitauth token --token-file ~/.secrets/github
  gitauth token --bind --dir ~/work/avatar-demo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.value, "token", "t", "", "Token value")
	cmd.Flags().StringVarP(&opts.tokenFile, "token-file", "f", "", "File containing the token value")
	cmd.Flags().BoolVar(&opts.bind, "bind", false, "Rewrite the repository's origin to the token-embedded form")
	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Local repository path (with --bind)")

	return cmd
}

func runToken(ctx context.Context, opts *tokenOptions) error {
	value, err := resolveTokenValue(opts)
	if err != nil {
		return err
	}
	if err := provisionToken(ctx, value); err != nil {
		return err
	}
	if opts.bind {
		return bindTokenRemote(ctx, opts.dir, value)
	}
	return nil
}

// resolveTokenValue picks the token source: flag, file, environment, then
// an interactive prompt with a timeout.
func resolveTokenValue(opts *tokenOptions) (string, error) {
	if opts.value != "" {
		return opts.value, nil
	}

	if opts.tokenFile != "" {
		if err := checkFilePermissions(opts.tokenFile); err != nil {
			fmt.Printf("Warning: %v\n", err)
		}
		data, err := os.ReadFile(opts.tokenFile)
		if err != nil {
			return "", fmt.Errorf("failed to read token file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if envToken := os.Getenv(EnvTokenValue); envToken != "" {
		return envToken, nil
	}

	return promptForToken()
}

// promptForToken asks for the token interactively. Entry is hidden on a
// terminal and bounded by a timeout either way.
func promptForToken() (string, error) {
	p := prompt.New()

	type answer struct {
		value string
		err   error
	}
	ch := make(chan answer, 1)
	go func() {
		value, err := p.Secret("Enter your GitHub token")
		ch <- answer{value, err}
	}()

	select {
	case a := <-ch:
		return a.value, a.err
	case <-time.After(promptTimeout):
		fmt.Println()
		return "", fmt.Errorf("no token provided within %s", promptTimeout)
	}
}

// provisionToken validates, verifies, and stores a token value. It is the
// shared tail of the token command and the oauth fallback.
func provisionToken(ctx context.Context, value string) error {
	if value == "" {
		return errors.NewSetupError("token-entry",
			"create a token at https://github.com/settings/tokens and run again",
			errors.ErrInvalidCredential)
	}

	kind := token.DetectKind(value)
	if kind == "" {
		return errors.NewSetupError("token-entry",
			"expected a GitHub token (ghp_, github_pat_, gho_, or ghu_ prefix)",
			errors.ErrInvalidCredential)
	}
	fmt.Printf("Detected %s token\n", kind)

	newToken, err := token.NewToken(value, time.Time{}, "")
	if err != nil {
		return errors.NewSetupError("token-entry", "", errors.ErrInvalidCredential)
	}

	validator := github.NewTokenValidator()
	if err := validator.Validate(ctx, newToken); err != nil {
		var scopeErr *token.ScopeError
		if stderrors.As(err, &scopeErr) {
			fmt.Println("\nRequired GitHub token scopes:")
			for scope, present := range scopeErr.Status {
				status := "missing"
				if present {
					status = "ok"
				}
				fmt.Printf("  %-10s %s\n", scope, status)
			}
			return fmt.Errorf("token is missing required scopes: %w", err)
		}
		if stderrors.Is(err, token.ErrTokenExpired) {
			return fmt.Errorf("token has expired, provide a new one: %w", err)
		}
		return err
	}

	// A cheap authenticated call proves the token can actually reach the
	// API, not just that it parses.
	client, err := github.NewClient(ctx, newToken)
	if err != nil {
		return err
	}
	if err := client.VerifyAccess(ctx); err != nil {
		return err
	}

	storage := token.NewEnvStorage()
	if err := storage.Store(ctx, token.StorageKey, *newToken); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	fmt.Printf("\nToken verified for %s and stored.\n", client.GetUsername())
	if newToken.Scope != "" {
		fmt.Printf("Scopes: %s\n", newToken.Scope)
	}
	if !newToken.ExpiresAt.IsZero() {
		fmt.Printf("Expires: %s\n", newToken.ExpiresAt.Format("January 2, 2006"))
	}
	fmt.Printf("Environment variable set: GIT_TOKEN_%s\n", token.StorageKey)
	return nil
}

// bindTokenRemote rewrites the repository's origin to the token-embedded
// HTTPS form.
func bindTokenRemote(ctx context.Context, dir, credential string) error {
	binding, err := remote.Current(dir)
	if err != nil {
		return err
	}
	if binding == nil {
		return fmt.Errorf("no origin remote to rewrite in %s (run 'gitsync bind' first)", dir)
	}

	binding.Transport = remote.TransportToken
	if err := binding.Apply(ctx, git.New(dir), credential); err != nil {
		return err
	}
	fmt.Println("Rewrote origin to the token-embedded HTTPS form.")
	return nil
}

// checkFilePermissions verifies that the token file has secure permissions
func checkFilePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to check file permissions: %w", err)
	}

	mode := info.Mode()
	if mode&0077 != 0 {
		return fmt.Errorf("token file has insecure permissions. Please run: chmod 600 %s", path)
	}

	return nil
}
