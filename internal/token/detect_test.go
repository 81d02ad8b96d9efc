package token

import "testing"

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected Kind
	}{
		{name: "classic PAT", value: "ghp_1234567890abcdef", expected: KindPersonal},
		{name: "fine-grained PAT", value: "github_pat_11ABCDEF_xyz", expected: KindPersonal},
		{name: "oauth access token", value: "gho_1234567890abcdef", expected: KindOAuth},
		{name: "oauth user token", value: "ghu_1234567890abcdef", expected: KindOAuth},
		{name: "unknown format", value: "glpat-1234567890", expected: ""},
		{name: "empty value", value: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectKind(tt.value); got != tt.expected {
				t.Errorf("DetectKind(%q) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestScopeError_Error(t *testing.T) {
	err := &ScopeError{
		Missing: []string{"repo", "workflow"},
		Status:  map[string]bool{"repo": false, "workflow": false},
	}
	expected := "missing required scopes: repo, workflow"
	if got := err.Error(); got != expected {
		t.Errorf("ScopeError.Error() = %q, want %q", got, expected)
	}
}
