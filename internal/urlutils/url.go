// Package urlutils provides utilities for handling GitHub repository URLs.
// It supports parsing and validation of HTTPS URLs, embedding tokens for
// authenticated HTTPS transport, and converting between the HTTPS and SSH
// forms of the same repository.
package urlutils

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// ErrInvalidURL indicates that the provided URL is not valid
	ErrInvalidURL = errors.New("invalid URL format")

	// ErrInvalidHost indicates that the host is not a valid GitHub instance
	ErrInvalidHost = errors.New("invalid GitHub host")

	// ErrInvalidPath indicates that the URL path is not a valid repository path
	ErrInvalidPath = errors.New("invalid repository path")

	// ErrEmptyToken indicates that an empty token was provided
	ErrEmptyToken = errors.New("empty token provided")

	// ErrNotHTTPS indicates that the URL does not use HTTPS protocol
	ErrNotHTTPS = errors.New("URL must use HTTPS protocol")

	ownerRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,35}$`)
	repoRegex  = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,100}$`)

	// Matches git@github.com:owner/repo(.git)
	sshURLRegex = regexp.MustCompile(`^git@([a-zA-Z0-9.-]+):([^/]+)/(.+?)(?:\.git)?$`)
)

// ParseHTTPSURL parses and validates a GitHub HTTPS URL.
// It accepts URLs in the following formats:
//   - https://github.com/owner/repo
//   - https://github.com/owner/repo.git
//   - https://token@github.com/owner/repo.git (credentials are stripped)
func ParseHTTPSURL(rawURL string) (*url.URL, error) {
	if strings.HasPrefix(rawURL, "git@") {
		return nil, ErrNotHTTPS
	}
	if !strings.HasPrefix(rawURL, "https://") {
		return nil, ErrInvalidURL
	}

	rawURL = sanitizeURL(strings.TrimSuffix(rawURL, ".git"))

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if !isValidGitHubHost(parsedURL.Host) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHost, parsedURL.Host)
	}

	owner, repo, err := splitRepoPath(parsedURL.Path)
	if err != nil {
		return nil, err
	}

	if !ownerRegex.MatchString(owner) {
		return nil, fmt.Errorf("%w: invalid owner name format", ErrInvalidPath)
	}
	if !repoRegex.MatchString(repo) {
		return nil, fmt.Errorf("%w: invalid repository name format", ErrInvalidPath)
	}

	return parsedURL, nil
}

// FormatTokenURL formats a GitHub URL with the provided token embedded as the
// user info component. The original URL is not modified.
func FormatTokenURL(parsedURL *url.URL, token string) (*url.URL, error) {
	if parsedURL == nil {
		return nil, fmt.Errorf("%w: nil URL provided", ErrInvalidURL)
	}

	if token == "" {
		return nil, ErrEmptyToken
	}

	tokenURL := *parsedURL
	tokenURL.User = url.User(token)

	return &tokenURL, nil
}

// ValidateURL checks if the provided URL is a valid GitHub repository URL
// in either HTTPS or SSH form.
func ValidateURL(rawURL string) error {
	if strings.HasPrefix(rawURL, "git@") {
		_, _, err := ParseSSHURL(rawURL)
		return err
	}
	_, err := ParseHTTPSURL(rawURL)
	return err
}

// ParseSSHURL parses a git SSH URL (git@github.com:owner/repo.git) and
// returns the owner and repository name.
func ParseSSHURL(rawURL string) (owner, repo string, err error) {
	matches := sshURLRegex.FindStringSubmatch(rawURL)
	if matches == nil {
		return "", "", fmt.Errorf("%w: expected git@host:owner/repo", ErrInvalidURL)
	}

	if !isValidGitHubHost(matches[1]) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidHost, matches[1])
	}

	owner, repo = matches[2], matches[3]
	if !ownerRegex.MatchString(owner) || !repoRegex.MatchString(repo) {
		return "", "", fmt.Errorf("%w: invalid owner or repository name", ErrInvalidPath)
	}

	return owner, repo, nil
}

// OwnerRepo extracts the owner and repository name from a URL in either form.
func OwnerRepo(rawURL string) (owner, repo string, err error) {
	if strings.HasPrefix(rawURL, "git@") {
		return ParseSSHURL(rawURL)
	}

	parsedURL, err := ParseHTTPSURL(rawURL)
	if err != nil {
		return "", "", err
	}
	return splitRepoPath(parsedURL.Path)
}

// ToSSH converts a repository URL to its SSH form. SSH input is returned
// unchanged (normalized with the .git suffix).
func ToSSH(rawURL string) (string, error) {
	owner, repo, err := OwnerRepo(rawURL)
	if err != nil {
		return "", err
	}
	host := "github.com"
	if !strings.HasPrefix(rawURL, "git@") {
		if u, err := ParseHTTPSURL(rawURL); err == nil {
			host = u.Host
		}
	} else if m := sshURLRegex.FindStringSubmatch(rawURL); m != nil {
		host = m[1]
	}
	return fmt.Sprintf("git@%s:%s/%s.git", host, owner, repo), nil
}

// ToHTTPS converts a repository URL to its HTTPS form without credentials.
func ToHTTPS(rawURL string) (string, error) {
	if strings.HasPrefix(rawURL, "git@") {
		m := sshURLRegex.FindStringSubmatch(rawURL)
		if m == nil {
			return "", fmt.Errorf("%w: expected git@host:owner/repo", ErrInvalidURL)
		}
		owner, repo, err := ParseSSHURL(rawURL)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("https://%s/%s/%s.git", m[1], owner, repo), nil
	}

	parsedURL, err := ParseHTTPSURL(rawURL)
	if err != nil {
		return "", err
	}
	owner, repo, err := splitRepoPath(parsedURL.Path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s/%s/%s.git", parsedURL.Host, owner, repo), nil
}

// splitRepoPath splits a URL path into owner and repository components.
// A trailing .git is always the clone suffix, never part of the name;
// GitHub rejects repository names ending in .git.
func splitRepoPath(path string) (owner, repo string, err error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: URL must include owner and repository", ErrInvalidPath)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// isValidGitHubHost checks if the host is github.com or a GitHub Enterprise
// Cloud subdomain.
func isValidGitHubHost(host string) bool {
	return host == "github.com" || strings.HasSuffix(host, ".github.com")
}

// sanitizeURL removes any embedded credentials from the URL
func sanitizeURL(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		u.User = nil
		return u.String()
	}
	return rawURL
}
