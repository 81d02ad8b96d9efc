package sync

import "fmt"

// Policy selects how local and remote history are reconciled. The policy is
// always chosen explicitly by the user; there is no automatic selection and
// no escalation from one policy to another.
type Policy string

const (
	// PolicyMerge fetches and merges the remote branch, allowing
	// unrelated histories, then pushes.
	PolicyMerge Policy = "merge"

	// PolicyRebase replays local commits on top of the remote tip, then
	// pushes.
	PolicyRebase Policy = "rebase"

	// PolicyForcePush overwrites remote history unconditionally. It is
	// destructive and guarded by a typed double confirmation.
	PolicyForcePush Policy = "force"

	// PolicyResetAndReplay backs up the working tree, hard-resets to the
	// remote tip, then restores an allow-list of paths and recommits.
	PolicyResetAndReplay Policy = "reset"
)

// ParsePolicy converts a user-supplied policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyMerge, PolicyRebase, PolicyForcePush, PolicyResetAndReplay:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown policy %q (expected merge, rebase, force, or reset)", s)
	}
}

// Destructive reports whether the policy can lose history on the remote or
// locally without a backup.
func (p Policy) Destructive() bool {
	return p == PolicyForcePush
}
