// Package sshkey manages the SSH keypair used for the git-over-SSH
// transport: checking for an existing key at its fixed path, generating one
// with ssh-keygen, loading it into the agent, and verifying the handshake
// against GitHub.
package sshkey

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/avatardemo/go-demotools/internal/errors"
)

// DefaultKeyName is the keypair filename under ~/.ssh.
const DefaultKeyName = "id_ed25519"

// successMarker is the text GitHub returns on an authenticated handshake.
const successMarker = "successfully authenticated"

// execCommand is a variable so it can be swapped in tests.
var execCommand = exec.CommandContext

// lookPath is a variable so tool detection can be faked in tests.
var lookPath = exec.LookPath

// Keypair locates an SSH keypair on disk.
type Keypair struct {
	// PrivatePath is the private key location. The public key sits next
	// to it with a .pub suffix.
	PrivatePath string

	// Comment is embedded in generated keys, typically an email address.
	Comment string
}

// Default returns the keypair at the conventional fixed path.
func Default() (*Keypair, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}
	return &Keypair{PrivatePath: filepath.Join(home, ".ssh", DefaultKeyName)}, nil
}

// PublicPath returns the public key path.
func (k *Keypair) PublicPath() string {
	return k.PrivatePath + ".pub"
}

// Exists reports whether the private key is already on disk.
func (k *Keypair) Exists() bool {
	_, err := os.Stat(k.PrivatePath)
	return err == nil
}

// Generate creates a new ed25519 keypair at PrivatePath without a
// passphrase. Generation is irreversible from the caller's perspective:
// an existing key is never overwritten.
func (k *Keypair) Generate(ctx context.Context) error {
	if k.Exists() {
		return fmt.Errorf("key already exists at %s", k.PrivatePath)
	}

	if _, err := lookPath("ssh-keygen"); err != nil {
		return errors.NewSetupError("key-generate",
			"install the OpenSSH client (ssh-keygen) and run again",
			fmt.Errorf("%w: ssh-keygen not found", errors.ErrKeyGeneration))
	}

	if err := os.MkdirAll(filepath.Dir(k.PrivatePath), 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	args := []string{"-t", "ed25519", "-f", k.PrivatePath, "-N", ""}
	if k.Comment != "" {
		args = append(args, "-C", k.Comment)
	}

	cmd := execCommand(ctx, "ssh-keygen", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.NewSetupError("key-generate", "",
			fmt.Errorf("%w: %s", errors.ErrKeyGeneration, strings.TrimSpace(string(out))))
	}
	return nil
}

// PublicKey reads the public key text for the user to register with GitHub.
func (k *Keypair) PublicKey() (string, error) {
	data, err := os.ReadFile(k.PublicPath())
	if err != nil {
		return "", fmt.Errorf("failed to read public key: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// AddToAgent loads the private key into the running ssh-agent. A missing or
// unreachable agent is reported but is not fatal to the transport: ssh will
// fall back to reading the key file directly.
func (k *Keypair) AddToAgent(ctx context.Context) error {
	if _, err := lookPath("ssh-add"); err != nil {
		return fmt.Errorf("ssh-add not found: %w", err)
	}

	cmd := execCommand(ctx, "ssh-add", k.PrivatePath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ssh-add failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

// AgentReachable reports whether a running ssh-agent answers. ssh-add -l
// exits 1 when the agent holds no identities, which still counts as
// reachable; only exit 2 (or a missing binary) means no agent.
func AgentReachable(ctx context.Context) bool {
	if _, err := lookPath("ssh-add"); err != nil {
		return false
	}
	cmd := execCommand(ctx, "ssh-add", "-l")
	err := cmd.Run()
	if err == nil {
		return true
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode() == 1
	}
	return false
}

// Verify requests an authenticated handshake from GitHub and pattern-matches
// the response for the success marker. GitHub closes the connection with a
// non-zero exit even on success, so only the output text is authoritative.
func (k *Keypair) Verify(ctx context.Context, host string) error {
	if host == "" {
		host = "git@github.com"
	}

	cmd := execCommand(ctx, "ssh", "-T", "-o", "StrictHostKeyChecking=accept-new", host)
	out, _ := cmd.CombinedOutput()

	if strings.Contains(strings.ToLower(string(out)), successMarker) {
		return nil
	}
	return errors.NewSetupError("ssh-handshake",
		"confirm the public key is registered in your GitHub SSH settings",
		fmt.Errorf("%w: %s", errors.ErrConnectivity, firstLine(string(out))))
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
