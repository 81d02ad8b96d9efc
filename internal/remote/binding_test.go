package remote

import (
	"context"
	"os/exec"
	"testing"

	"github.com/avatardemo/go-demotools/internal/git"
)

func initRepo(t *testing.T) (*git.Git, string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	dir := t.TempDir()
	g := git.New(dir)
	if out, err := g.Run(context.Background(), "init", "-b", "main"); err != nil {
		t.Fatalf("git init failed: %v\n%s", err, out)
	}
	return g, dir
}

func TestBinding_RemoteURL(t *testing.T) {
	tests := []struct {
		name       string
		binding    Binding
		credential string
		expected   string
		wantErr    bool
	}{
		{
			name:       "token transport embeds credential",
			binding:    Binding{URL: "https://github.com/demo-user/avatar.git", Transport: TransportToken},
			credential: "ghp_secret",
			expected:   "https://ghp_secret@github.com/demo-user/avatar.git",
		},
		{
			name:     "ssh transport converts form",
			binding:  Binding{URL: "https://github.com/demo-user/avatar.git", Transport: TransportSSH},
			expected: "git@github.com:demo-user/avatar.git",
		},
		{
			name:     "oauth transport uses clean https",
			binding:  Binding{URL: "git@github.com:demo-user/avatar.git", Transport: TransportOAuth},
			expected: "https://github.com/demo-user/avatar.git",
		},
		{
			name:    "token transport requires credential",
			binding: Binding{URL: "https://github.com/demo-user/avatar.git", Transport: TransportToken},
			wantErr: true,
		},
		{
			name:    "unknown transport",
			binding: Binding{URL: "https://github.com/demo-user/avatar.git", Transport: "carrier-pigeon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.binding.RemoteURL(tt.credential)
			if tt.wantErr {
				if err == nil {
					t.Fatal("RemoteURL() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("RemoteURL() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("RemoteURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBinding_Apply(t *testing.T) {
	g, dir := initRepo(t)
	ctx := context.Background()

	b := &Binding{
		Dir:       dir,
		URL:       "https://github.com/demo-user/avatar.git",
		Transport: TransportSSH,
	}
	if err := b.Apply(ctx, g, ""); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	urls, err := OriginURLs(dir)
	if err != nil {
		t.Fatalf("OriginURLs() error = %v", err)
	}
	if len(urls) != 1 || urls[0] != "git@github.com:demo-user/avatar.git" {
		t.Fatalf("after Apply, origin URLs = %v", urls)
	}

	// Re-binding with a different transport must overwrite, never add.
	b.Transport = TransportToken
	if err := b.Apply(ctx, g, "ghp_secret"); err != nil {
		t.Fatalf("Apply() on rebind error = %v", err)
	}

	urls, err = OriginURLs(dir)
	if err != nil {
		t.Fatalf("OriginURLs() error = %v", err)
	}
	if len(urls) != 1 {
		t.Fatalf("after rebind, found %d origin URLs, want exactly 1", len(urls))
	}
	if urls[0] != "https://ghp_secret@github.com/demo-user/avatar.git" {
		t.Errorf("after rebind, origin URL = %q", urls[0])
	}
}

func TestBinding_ApplyRejectsInvalidURL(t *testing.T) {
	g, dir := initRepo(t)
	b := &Binding{Dir: dir, URL: "ftp://example.com/repo", Transport: TransportSSH}
	if err := b.Apply(context.Background(), g, ""); err == nil {
		t.Fatal("Apply() expected error for invalid URL")
	}
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		transport Transport
	}{
		{name: "ssh url", url: "git@github.com:demo-user/avatar.git", transport: TransportSSH},
		{name: "token url", url: "https://ghp_x@github.com/demo-user/avatar.git", transport: TransportToken},
		{name: "plain https url", url: "https://github.com/demo-user/avatar.git", transport: TransportOAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeGitConfig(t, `[remote "origin"]
	url = `+tt.url+`
	fetch = +refs/heads/*:refs/remotes/origin/*
`)
			b, err := Current(dir)
			if err != nil {
				t.Fatalf("Current() error = %v", err)
			}
			if b == nil {
				t.Fatal("Current() = nil for bound repository")
			}
			if b.Transport != tt.transport {
				t.Errorf("Current() transport = %q, want %q", b.Transport, tt.transport)
			}
		})
	}

	t.Run("unbound repository", func(t *testing.T) {
		dir := writeGitConfig(t, "[core]\n\tbare = false\n")
		b, err := Current(dir)
		if err != nil {
			t.Fatalf("Current() error = %v", err)
		}
		if b != nil {
			t.Errorf("Current() = %+v, want nil", b)
		}
	})
}
