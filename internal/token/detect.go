package token

import (
	"fmt"
	"strings"
)

// Kind classifies a GitHub token by how it was issued.
type Kind string

const (
	// KindPersonal covers classic (ghp_) and fine-grained (github_pat_)
	// personal access tokens.
	KindPersonal Kind = "personal"

	// KindOAuth covers access tokens minted by the device/web OAuth flow.
	KindOAuth Kind = "oauth"
)

// DetectKind determines the token kind from its prefix. An empty Kind means
// the value does not look like any known GitHub token format.
func DetectKind(value string) Kind {
	switch {
	case strings.HasPrefix(value, "ghp_"),
		strings.HasPrefix(value, "github_pat_"):
		return KindPersonal
	case strings.HasPrefix(value, "gho_"),
		strings.HasPrefix(value, "ghu_"):
		return KindOAuth
	default:
		return ""
	}
}

// ScopeError represents a token scope validation error with detailed status
type ScopeError struct {
	Missing []string        // List of missing required scopes
	Status  map[string]bool // Status of all required scopes (present/missing)
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("missing required scopes: %s", strings.Join(e.Missing, ", "))
}
