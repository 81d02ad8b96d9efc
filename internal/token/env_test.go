package token

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEnvStorage_StoreRetrieve(t *testing.T) {
	storage := NewEnvStorage()
	ctx := context.Background()

	tok := Token{
		Value:     "ghp_envtest",
		Scope:     "repo,workflow",
		CreatedAt: time.Now(),
	}

	t.Setenv(storage.FormatEnvKey("GITHUB"), "")

	if err := storage.Store(ctx, "GITHUB", tok); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	got, err := storage.Retrieve(ctx, "GITHUB")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if got.Value != tok.Value || got.Scope != tok.Scope {
		t.Errorf("Retrieve() = %+v, want value %q scope %q", got, tok.Value, tok.Scope)
	}
}

func TestEnvStorage_RetrieveBareValue(t *testing.T) {
	storage := NewEnvStorage()

	// A plain token exported without the JSON envelope must still work.
	t.Setenv(storage.FormatEnvKey("GITHUB"), "ghp_barevalue")

	got, err := storage.Retrieve(context.Background(), "GITHUB")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if got.Value != "ghp_barevalue" {
		t.Errorf("Retrieve() value = %q, want %q", got.Value, "ghp_barevalue")
	}
}

func TestEnvStorage_RetrieveMissing(t *testing.T) {
	storage := NewEnvStorage()
	t.Setenv(storage.FormatEnvKey("GITHUB"), "")

	_, err := storage.Retrieve(context.Background(), "GITHUB")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Retrieve() error = %v, want ErrTokenNotFound", err)
	}
}

func TestEnvStorage_RetrieveExpired(t *testing.T) {
	storage := NewEnvStorage()
	ctx := context.Background()

	tok := Token{
		Value:     "ghp_expired",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	t.Setenv(storage.FormatEnvKey("GITHUB"), "")
	if err := storage.Store(ctx, "GITHUB", tok); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	_, err := storage.Retrieve(ctx, "GITHUB")
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Retrieve() error = %v, want ErrTokenExpired", err)
	}
}

func TestEnvStorage_StoreInvalid(t *testing.T) {
	storage := NewEnvStorage()
	err := storage.Store(context.Background(), "GITHUB", Token{})
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Store() error = %v, want ErrTokenInvalid", err)
	}
}

func TestEnvStorage_Delete(t *testing.T) {
	storage := NewEnvStorage()
	ctx := context.Background()

	t.Setenv(storage.FormatEnvKey("GITHUB"), "")
	if err := storage.Store(ctx, "GITHUB", Token{Value: "ghp_del"}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := storage.Delete(ctx, "GITHUB"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := storage.Retrieve(ctx, "GITHUB"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Retrieve() after Delete error = %v, want ErrTokenNotFound", err)
	}
}

func TestEnvStorage_FormatEnvKey(t *testing.T) {
	storage := NewEnvStorage()
	tests := []struct {
		key      string
		expected string
	}{
		{key: "GITHUB", expected: "GIT_TOKEN_GITHUB"},
		{key: "github", expected: "GIT_TOKEN_GITHUB"},
		{key: "my-provider", expected: "GIT_TOKEN_MY_PROVIDER"},
	}

	for _, tt := range tests {
		if got := storage.FormatEnvKey(tt.key); got != tt.expected {
			t.Errorf("FormatEnvKey(%q) = %q, want %q", tt.key, got, tt.expected)
		}
	}
}
