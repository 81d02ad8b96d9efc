package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSetupError_Error(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		err      error
		expected string
	}{
		{
			name:     "with underlying error",
			op:       "token-verify",
			err:      ErrConnectivity,
			expected: "token-verify: connectivity or authentication failure",
		},
		{
			name:     "without underlying error",
			op:       "ssh-handshake",
			err:      nil,
			expected: "ssh-handshake",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := &SetupError{Op: tt.op, Err: tt.err}
			if got := se.Error(); got != tt.expected {
				t.Errorf("SetupError.Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSetupError_Unwrap(t *testing.T) {
	se := NewSetupError("key-generate", "install openssh-client", ErrKeyGeneration)
	if !errors.Is(se, ErrKeyGeneration) {
		t.Error("expected errors.Is to match ErrKeyGeneration through SetupError")
	}
}

func TestHintOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "direct setup error",
			err:      NewSetupError("token-verify", "check token scopes", ErrConnectivity),
			expected: "check token scopes",
		},
		{
			name:     "wrapped setup error",
			err:      fmt.Errorf("run failed: %w", NewSetupError("merge", "resolve conflicts and re-run", ErrConflict)),
			expected: "resolve conflicts and re-run",
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HintOf(tt.err); got != tt.expected {
				t.Errorf("HintOf() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsConflict(t *testing.T) {
	wrapped := fmt.Errorf("merge halted: %w", ErrConflict)
	if !IsConflict(wrapped) {
		t.Error("expected IsConflict to match wrapped ErrConflict")
	}
	if IsConflict(ErrConnectivity) {
		t.Error("did not expect IsConflict to match ErrConnectivity")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "connectivity", err: fmt.Errorf("push: %w", ErrConnectivity), expected: true},
		{name: "conflict", err: ErrConflict, expected: false},
		{name: "invalid credential", err: ErrInvalidCredential, expected: false},
		{name: "user abort", err: ErrAborted, expected: false},
		{name: "unknown error", err: errors.New("boom"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.expected {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.expected)
			}
		})
	}
}
