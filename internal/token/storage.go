// Package token manages the GitHub credentials used by the demo bootstrap
// tools.
//
// Storage Strategy
//
// Two storage mechanisms are provided:
//
// 1. Environment Variables (Primary):
//   - Tokens live in GIT_TOKEN_* prefixed environment variables
//   - No system dependencies or user interaction required
//   - Works the same in CI, containers, and local shells
//
// 2. Memory Storage (Testing/Ephemeral Use):
//   - No persistence between program restarts
//   - Used by tests and short-lived flows
//
// System keychain integration is intentionally not implemented so the tools
// behave identically in headless environments.
package token

import (
	"context"
	"errors"
	"time"
)

// StorageKey is the key under which the GitHub credential is stored.
const StorageKey = "GITHUB"

// Common errors that may be returned by token operations
var (
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTokenExpired       = errors.New("token has expired")
	ErrStorageUnavailable = errors.New("token storage is unavailable")
)

// Token represents an authentication token with metadata
type Token struct {
	// Value is the actual token string
	Value string `json:"Value"`

	// ExpiresAt indicates when the token will expire.
	// Zero value means the token does not expire.
	ExpiresAt time.Time `json:"ExpiresAt"`

	// Scope defines the permissions granted to this token
	Scope string `json:"Scope"`

	// CreatedAt indicates when the token was created/stored
	CreatedAt time.Time `json:"CreatedAt"`
}

// NewToken creates a new token with validation
func NewToken(value string, expiresAt time.Time, scope string) (*Token, error) {
	if value == "" {
		return nil, ErrTokenInvalid
	}

	return &Token{
		Value:     value,
		ExpiresAt: expiresAt,
		Scope:     scope,
		CreatedAt: time.Now(),
	}, nil
}

// Storage defines the interface for token storage implementations
type Storage interface {
	// Store saves a token with the given key.
	// If a token already exists for the key, it is overwritten.
	Store(ctx context.Context, key string, token Token) error

	// Retrieve gets a token by its key.
	// Returns ErrTokenNotFound if the token doesn't exist.
	Retrieve(ctx context.Context, key string) (Token, error)

	// Delete removes a token by its key.
	// Returns nil if the token was deleted or didn't exist.
	Delete(ctx context.Context, key string) error

	// List returns all stored token keys.
	List(ctx context.Context) ([]string, error)

	// Close performs any necessary cleanup
	Close(ctx context.Context) error
}

// Validator provides methods to validate tokens
type Validator interface {
	// Validate checks if a token is valid.
	// Returns nil if the token is valid, otherwise an error explaining
	// why it is not.
	Validate(ctx context.Context, token *Token) error
}

// IsExpired checks if a token has expired
func IsExpired(token Token) bool {
	if token.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(token.ExpiresAt)
}

// IsValid performs basic validation of a token
func IsValid(token Token) bool {
	return token.Value != ""
}
