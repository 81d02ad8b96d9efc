// Package oauth wraps the GitHub device/web authorization flow used by the
// CLI-delegated transport. The flow opens a browser when one is available
// and falls back to a device-code prompt otherwise; callers fall back to
// manual token entry when the whole flow fails.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cli/oauth"
)

// Scopes requested for the bootstrap workflow.
var defaultScopes = []string{"repo", "workflow"}

// ErrFlowFailed is returned when the authorization flow did not produce a
// token, whatever the underlying reason.
var ErrFlowFailed = errors.New("authorization flow failed")

// Result contains the outcome of a completed flow.
type Result struct {
	Token    string
	Username string
	Scopes   []string
}

// Flow runs the GitHub device/web authorization flow.
type Flow struct {
	host     string
	clientID string
	scopes   []string

	// OnDeviceCode is called with the user code and verification URL when
	// the flow degrades to device-code entry.
	OnDeviceCode func(code, verificationURL string)
}

// NewFlow creates a flow against github.com with the given OAuth app client
// ID and the default scopes.
func NewFlow(clientID string) *Flow {
	return &Flow{
		host:     "github.com",
		clientID: clientID,
		scopes:   defaultScopes,
	}
}

// Run executes the flow and returns the minted token with the authenticated
// username. Any failure is wrapped in ErrFlowFailed so callers can trigger
// the token-entry fallback with a single check.
func (f *Flow) Run(ctx context.Context) (*Result, error) {
	host, err := oauth.NewGitHubHost("https://" + f.host)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid host: %v", ErrFlowFailed, err)
	}

	flow := &oauth.Flow{
		Host:     host,
		ClientID: f.clientID,
		Scopes:   f.scopes,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if f.OnDeviceCode != nil {
		flow.DisplayCode = func(code, verificationURL string) error {
			f.OnDeviceCode(code, verificationURL)
			return nil
		}
	}

	accessToken, err := flow.DetectFlow()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFlowFailed, err)
	}

	username, err := f.fetchUsername(ctx, accessToken.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFlowFailed, err)
	}

	return &Result{
		Token:    accessToken.Token,
		Username: username,
		Scopes:   f.scopes,
	}, nil
}

// userEndpoint is a variable so tests can point it at a local server.
var userEndpoint = "https://api.github.com/user"

// fetchUsername resolves the login of the token's owner.
func (f *Flow) fetchUsername(ctx context.Context, tokenValue string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", userEndpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+tokenValue)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from user endpoint", resp.StatusCode)
	}

	var user struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", err
	}
	return user.Login, nil
}
