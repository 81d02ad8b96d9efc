package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for credential provisioning and remote synchronization.
// Commands match on these with errors.Is to print remediation text; nearly
// everything is fatal to the run, so the set stays small.
var (
	// ErrInvalidCredential indicates an empty or malformed credential was
	// supplied before any network call was attempted.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrConnectivity indicates the remote could not be reached or refused
	// the credential. There is no automated recovery; the user re-enters.
	ErrConnectivity = errors.New("connectivity or authentication failure")

	// ErrKeyGeneration indicates an SSH keypair could not be produced,
	// typically because ssh-keygen is not installed.
	ErrKeyGeneration = errors.New("ssh key generation failed")

	// ErrConflict indicates a merge or rebase stopped on conflicting hunks.
	// Resolution is manual; the synchronizer never retries across policies.
	ErrConflict = errors.New("merge conflict requires manual resolution")

	// ErrAborted indicates the user declined a confirmation prompt.
	ErrAborted = errors.New("aborted by user")
)

// SetupError represents a failure in the bootstrap workflow with enough
// context to print a remediation hint alongside the error itself.
type SetupError struct {
	Op   string // Operation that failed (e.g. "token-verify", "force-push")
	Hint string // Remediation text shown to the user, may be empty
	Err  error  // Underlying error, usually one of the sentinels above
}

func (e *SetupError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// NewSetupError creates a new SetupError.
func NewSetupError(op, hint string, err error) *SetupError {
	return &SetupError{
		Op:   op,
		Hint: hint,
		Err:  err,
	}
}

// HintOf extracts the remediation hint from an error chain, if any.
func HintOf(err error) string {
	var se *SetupError
	if errors.As(err, &se) {
		return se.Hint
	}
	return ""
}

// IsConflict reports whether the error chain contains a halted
// merge/rebase conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsRetryable reports whether a push failure is worth a bounded retry.
// Conflicts and rejected credentials never are; transient transport
// failures are.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrInvalidCredential) || errors.Is(err, ErrAborted) {
		return false
	}
	return errors.Is(err, ErrConnectivity)
}
