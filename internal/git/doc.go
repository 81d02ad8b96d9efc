// Package git wraps the git command line for the bootstrap tools.
//
// Every operation shells out to the local git binary with interactive
// prompting disabled, captures combined output, and classifies failures the
// callers care about (merge/rebase conflicts, remote connectivity). Higher
// level packages compose these primitives into the synchronization policies.
//
// Git operations are not thread-safe; callers must not run two operations
// against the same working directory concurrently.
package git
