package urlutils

import (
	"errors"
	"testing"
)

func TestParseHTTPSURL(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		wantErr error
	}{
		{
			name:   "valid URL",
			rawURL: "https://github.com/owner/repo",
		},
		{
			name:   "valid URL with .git suffix",
			rawURL: "https://github.com/owner/repo.git",
		},
		{
			name:   "embedded credentials are stripped",
			rawURL: "https://ghp_token@github.com/owner/repo.git",
		},
		{
			name:    "ssh URL rejected",
			rawURL:  "git@github.com:owner/repo.git",
			wantErr: ErrNotHTTPS,
		},
		{
			name:    "http rejected",
			rawURL:  "http://github.com/owner/repo",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "non-github host rejected",
			rawURL:  "https://gitlab.com/owner/repo",
			wantErr: ErrInvalidHost,
		},
		{
			name:    "missing repository",
			rawURL:  "https://github.com/owner",
			wantErr: ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := ParseHTTPSURL(tt.rawURL)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseHTTPSURL() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHTTPSURL() unexpected error = %v", err)
			}
			if u.User != nil {
				t.Errorf("ParseHTTPSURL() kept credentials: %v", u.User)
			}
		})
	}
}

func TestFormatTokenURL(t *testing.T) {
	u, err := ParseHTTPSURL("https://github.com/owner/repo")
	if err != nil {
		t.Fatalf("ParseHTTPSURL() error = %v", err)
	}

	tokenURL, err := FormatTokenURL(u, "ghp_secret")
	if err != nil {
		t.Fatalf("FormatTokenURL() error = %v", err)
	}
	if got := tokenURL.String(); got != "https://ghp_secret@github.com/owner/repo" {
		t.Errorf("FormatTokenURL() = %q", got)
	}

	// Original URL must not be modified.
	if u.User != nil {
		t.Error("FormatTokenURL() mutated the input URL")
	}

	if _, err := FormatTokenURL(u, ""); !errors.Is(err, ErrEmptyToken) {
		t.Errorf("FormatTokenURL() with empty token error = %v, want ErrEmptyToken", err)
	}
}

func TestParseSSHURL(t *testing.T) {
	tests := []struct {
		name      string
		rawURL    string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			name:      "with .git suffix",
			rawURL:    "git@github.com:owner/repo.git",
			wantOwner: "owner",
			wantRepo:  "repo",
		},
		{
			name:      "without .git suffix",
			rawURL:    "git@github.com:owner/repo",
			wantOwner: "owner",
			wantRepo:  "repo",
		},
		{
			// GitHub forbids names ending in .git, so a trailing .git is
			// always the clone suffix.
			name:      "dotted name keeps everything before the suffix",
			rawURL:    "git@github.com:owner/my.repo.git",
			wantOwner: "owner",
			wantRepo:  "my.repo",
		},
		{
			name:    "https URL rejected",
			rawURL:  "https://github.com/owner/repo",
			wantErr: true,
		},
		{
			name:    "non-github host rejected",
			rawURL:  "git@bitbucket.org:owner/repo.git",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseSSHURL(tt.rawURL)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseSSHURL() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSSHURL() error = %v", err)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("ParseSSHURL() = %q/%q, want %q/%q", owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestToSSH(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		expected string
	}{
		{
			name:     "from https",
			rawURL:   "https://github.com/owner/repo.git",
			expected: "git@github.com:owner/repo.git",
		},
		{
			name:     "already ssh",
			rawURL:   "git@github.com:owner/repo",
			expected: "git@github.com:owner/repo.git",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToSSH(tt.rawURL)
			if err != nil {
				t.Fatalf("ToSSH() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("ToSSH() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestToHTTPS(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		expected string
	}{
		{
			name:     "from ssh",
			rawURL:   "git@github.com:owner/repo.git",
			expected: "https://github.com/owner/repo.git",
		},
		{
			name:     "already https",
			rawURL:   "https://github.com/owner/repo",
			expected: "https://github.com/owner/repo.git",
		},
		{
			name:     "credentials stripped",
			rawURL:   "https://ghp_token@github.com/owner/repo.git",
			expected: "https://github.com/owner/repo.git",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTTPS(tt.rawURL)
			if err != nil {
				t.Fatalf("ToHTTPS() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("ToHTTPS() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOwnerRepo(t *testing.T) {
	for _, rawURL := range []string{
		"https://github.com/demo-user/emotional-avatar.git",
		"git@github.com:demo-user/emotional-avatar.git",
	} {
		owner, repo, err := OwnerRepo(rawURL)
		if err != nil {
			t.Fatalf("OwnerRepo(%q) error = %v", rawURL, err)
		}
		if owner != "demo-user" || repo != "emotional-avatar" {
			t.Errorf("OwnerRepo(%q) = %q/%q", rawURL, owner, repo)
		}
	}
}
