package main

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/avatardemo/go-demotools/internal/oauth"
	"github.com/spf13/cobra"
)

// defaultClientID is the OAuth app the device flow authorizes against.
const defaultClientID = "178c6fc778ccc68e1d6a"

type oauthOptions struct {
	clientID string
}

func newOAuthCmd() *cobra.Command {
	opts := &oauthOptions{}

	cmd := &cobra.Command{
		Use:   "oauth",
		Short: "Set up a token via the OAuth device flow",
		Long: `Mint a GitHub token through the browser or device-code authorization
flow. If the flow fails for any reason, the command falls back to manual
token entry; that is the only fallback, it does not loop.`,
		Example: `  gitauth oauth
  gitauth oauth --client-id <oauth-app-client-id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOAuth(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.clientID, "client-id", defaultClientID, "OAuth app client ID")

	return cmd
}

func runOAuth(ctx context.Context, opts *oauthOptions) error {
	flow := oauth.NewFlow(opts.clientID)
	flow.OnDeviceCode = func(code, verificationURL string) {
		fmt.Printf("Open %s and enter code: %s\n", verificationURL, code)
	}

	result, err := flow.Run(ctx)
	if err != nil {
		if stderrors.Is(err, oauth.ErrFlowFailed) {
			fmt.Printf("Authorization flow failed (%v), falling back to manual token entry.\n", err)
			value, perr := promptForToken()
			if perr != nil {
				return perr
			}
			return provisionToken(ctx, value)
		}
		return err
	}

	fmt.Printf("Authorized as %s\n", result.Username)
	return provisionToken(ctx, result.Token)
}
