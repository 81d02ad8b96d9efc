package main

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/avatardemo/go-demotools/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.NotNil(t, cmd)
	assert.Equal(t, "gitauth", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	commandNames := make(map[string]bool)
	for _, subcmd := range cmd.Commands() {
		commandNames[subcmd.Name()] = true
	}
	for _, expected := range []string{"token", "ssh", "oauth", "status"} {
		assert.True(t, commandNames[expected], "Expected command %s not found", expected)
	}
}

func TestProvisionToken_EmptyRejectedBeforeNetwork(t *testing.T) {
	err := provisionToken(context.Background(), "")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidCredential))
	assert.NotEmpty(t, errors.HintOf(err))
}

func TestProvisionToken_UnknownFormatRejected(t *testing.T) {
	err := provisionToken(context.Background(), "not-a-github-token")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidCredential))
	assert.Contains(t, errors.HintOf(err), "ghp_")
}

func TestResolveTokenValue_FlagWins(t *testing.T) {
	t.Setenv(EnvTokenValue, "ghp_from_env")

	value, err := resolveTokenValue(&tokenOptions{value: "ghp_from_flag"})
	require.NoError(t, err)
	assert.Equal(t, "ghp_from_flag", value)
}

func TestResolveTokenValue_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("ghp_from_file\n"), 0o600))

	value, err := resolveTokenValue(&tokenOptions{tokenFile: path})
	require.NoError(t, err)
	assert.Equal(t, "ghp_from_file", value)
}

func TestResolveTokenValue_FromEnv(t *testing.T) {
	t.Setenv(EnvTokenValue, "ghp_from_env")

	value, err := resolveTokenValue(&tokenOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ghp_from_env", value)
}

func TestResolveTokenValue_MissingFile(t *testing.T) {
	_, err := resolveTokenValue(&tokenOptions{tokenFile: "/nonexistent/token"})
	assert.Error(t, err)
}

func TestCheckFilePermissions(t *testing.T) {
	dir := t.TempDir()

	secure := filepath.Join(dir, "secure")
	require.NoError(t, os.WriteFile(secure, []byte("x"), 0o600))
	assert.NoError(t, checkFilePermissions(secure))

	loose := filepath.Join(dir, "loose")
	require.NoError(t, os.WriteFile(loose, []byte("x"), 0o644))
	err := checkFilePermissions(loose)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chmod 600")
}

func TestResolveKeypair_CustomPath(t *testing.T) {
	kp, err := resolveKeypair(&sshOptions{keyPath: "/tmp/key", comment: "me@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/key", kp.PrivatePath)
	assert.Equal(t, "me@example.com", kp.Comment)
}

func TestResolveKeypair_DefaultPath(t *testing.T) {
	kp, err := resolveKeypair(&sshOptions{comment: "me@example.com"})
	require.NoError(t, err)
	assert.Contains(t, kp.PrivatePath, "id_ed25519")
	assert.Equal(t, "me@example.com", kp.Comment)
}

func TestStatusCommand_ReadOnly(t *testing.T) {
	t.Setenv("GIT_TOKEN_GITHUB", "ghp_stored_token")

	cmd := newStatusCmd()
	assert.NotNil(t, cmd)
	assert.NoError(t, runAuthStatus(context.Background(), &authStatusOptions{
		keyPath: filepath.Join(t.TempDir(), "no-such-key"),
	}))
}
