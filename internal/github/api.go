// Package github implements the small slice of the GitHub REST API the
// bootstrap tools need: credential verification, user identity, and
// repository creation. The client is hand-rolled on net/http; the surface
// is too small to justify a full API binding.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avatardemo/go-demotools/internal/errors"
	"github.com/avatardemo/go-demotools/internal/token"
)

const (
	apiBaseURL = "https://api.github.com"
	userAgent  = "go-demotools/1.0"
)

// UserInfo represents GitHub user information
type UserInfo struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RepoOptions represents options for repository creation
type RepoOptions struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Private     bool   `json:"private,omitempty"`
	AutoInit    bool   `json:"auto_init,omitempty"`
}

// Client handles GitHub API operations
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string // Allow custom base URL for testing
	username   string // Cached username after validation
}

// NewClient creates a new GitHub API client. The token is validated against
// the API before the client is returned, so a non-nil Client is always
// usable.
func NewClient(ctx context.Context, t *token.Token) (*Client, error) {
	client := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		token:      t.Value,
		baseURL:    apiBaseURL,
	}

	validator := &TokenValidator{baseURL: client.baseURL}
	if err := validator.Validate(ctx, t); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	userInfo, err := client.GetUserInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	client.username = userInfo.Login

	return client, nil
}

// GetUserInfo retrieves authenticated user information
func (c *Client) GetUserInfo(ctx context.Context) (*UserInfo, error) {
	url := fmt.Sprintf("%s/user", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	var userInfo UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &userInfo, nil
}

// GetUsername returns the cached username
func (c *Client) GetUsername() string {
	return c.username
}

// VerifyAccess performs the lightweight remote listing call used to confirm
// a credential actually works: a single-item repository listing. Network
// failures surface as ErrConnectivity; there is no retry.
func (c *Client) VerifyAccess(ctx context.Context) error {
	url := fmt.Sprintf("%s/user/repos?per_page=1", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return errors.NewSetupError("token-verify",
			"check network connectivity and token permissions, then re-enter the token",
			fmt.Errorf("%w: %v", errors.ErrConnectivity, err))
	}
	resp.Body.Close()

	return nil
}

// CreateRepository creates a new repository for the authenticated user
func (c *Client) CreateRepository(ctx context.Context, opts RepoOptions) error {
	url := fmt.Sprintf("%s/user/repos", c.baseURL)
	jsonBody, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if _, err = c.sendRequest(req); err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}

	return nil
}

// sendRequest sends an HTTP request with the necessary headers
func (c *Client) sendRequest(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("GitHub API error: %s: %s", resp.Status, string(body))
	}

	return resp, nil
}

// ParseRepo parses an owner/repo string into separate owner and repo parts
func ParseRepo(repoString string) (owner, repo string, err error) {
	parts := strings.Split(repoString, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format: %s (expected owner/repo)", repoString)
	}
	return parts[0], parts[1], nil
}
