// Package config persists the per-repository settings shared by the
// bootstrap tools in a JSON file at the repository root.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultFileName is where a repository's settings live.
const DefaultFileName = ".demotools.json"

// RetryConfig controls the bounded retry applied to transient push failures.
// Retry is opt-in: the default of one attempt means a failed push is reported
// to the user, never re-run.
type RetryConfig struct {
	Attempts int    `json:"attempts"`
	Delay    string `json:"delay"`
}

// SetupConfig represents the settings for repository synchronization and
// scaffolding.
type SetupConfig struct {
	// Repo is the remote repository in owner/repo form.
	Repo string `json:"repo,omitempty"`

	// DefaultBranch is the branch synchronized with origin.
	DefaultBranch string `json:"default_branch,omitempty"`

	// Policy is the default reconciliation policy for gitsync run.
	Policy string `json:"policy,omitempty"`

	// ResetAllowList names the paths copied back from the backup after a
	// reset-and-replay run.
	ResetAllowList []string `json:"reset_allow_list,omitempty"`

	// BackupPrefix names the directory prefix for working-tree backups.
	BackupPrefix string `json:"backup_prefix,omitempty"`

	// PushRetry bounds retries of transient push failures.
	PushRetry RetryConfig `json:"push_retry"`
}

// DefaultConfig provides default configuration values.
func DefaultConfig() *SetupConfig {
	return &SetupConfig{
		DefaultBranch: "main",
		Policy:        "merge",
		ResetAllowList: []string{
			"src",
			"data/samples",
			"docs",
			"README.md",
		},
		BackupPrefix: "backup",
		PushRetry: RetryConfig{
			Attempts: 1,
			Delay:    "5s",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// defaults.
func LoadConfig(path string) (*SetupConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &SetupConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.MergeDefaults()
	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *SetupConfig, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeDefaults merges default values for unset fields.
func (c *SetupConfig) MergeDefaults() {
	defaults := DefaultConfig()
	if c.DefaultBranch == "" {
		c.DefaultBranch = defaults.DefaultBranch
	}
	if c.Policy == "" {
		c.Policy = defaults.Policy
	}
	if len(c.ResetAllowList) == 0 {
		c.ResetAllowList = defaults.ResetAllowList
	}
	if c.BackupPrefix == "" {
		c.BackupPrefix = defaults.BackupPrefix
	}
	if c.PushRetry.Attempts == 0 {
		c.PushRetry.Attempts = defaults.PushRetry.Attempts
	}
	if c.PushRetry.Delay == "" {
		c.PushRetry.Delay = defaults.PushRetry.Delay
	}
}

// Validate checks if the configuration is valid.
func (c *SetupConfig) Validate() error {
	if c.Repo != "" {
		if err := ValidateRepoFormat(c.Repo); err != nil {
			return fmt.Errorf("invalid repository: %w", err)
		}
	}
	switch c.Policy {
	case "merge", "rebase", "force", "reset":
	default:
		return fmt.Errorf("invalid policy %q (expected merge, rebase, force, or reset)", c.Policy)
	}
	if c.PushRetry.Attempts < 0 {
		return fmt.Errorf("retry attempts cannot be negative")
	}
	if c.PushRetry.Delay != "" {
		if _, err := time.ParseDuration(c.PushRetry.Delay); err != nil {
			return fmt.Errorf("invalid retry delay: %w", err)
		}
	}
	return nil
}

// RetryDelay returns the parsed push retry delay.
func (c *SetupConfig) RetryDelay() time.Duration {
	d, err := time.ParseDuration(c.PushRetry.Delay)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// ValidateRepoFormat validates the owner/repo format.
func ValidateRepoFormat(repo string) error {
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}

	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid repository format, expected 'owner/repo'")
	}
	return nil
}
