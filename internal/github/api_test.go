package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gerrors "github.com/avatardemo/go-demotools/internal/errors"
	"github.com/avatardemo/go-demotools/internal/token"
)

// newTestServer returns a server that answers /user and /user/repos for the
// given token value and rejects everything else with 401.
func newTestServer(t *testing.T, validToken string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
			return
		}

		switch r.URL.Path {
		case "/user":
			w.Header().Set("X-OAuth-Scopes", "repo, workflow")
			json.NewEncoder(w).Encode(UserInfo{Login: "demo-user", Name: "Demo User"})
		case "/user/repos":
			switch r.Method {
			case http.MethodGet:
				json.NewEncoder(w).Encode([]map[string]string{{"name": "emotional-avatar"}})
			case http.MethodPost:
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(map[string]string{"name": "created"})
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestClient(srv *httptest.Server, tokenValue string) *Client {
	return &Client{
		httpClient: srv.Client(),
		token:      tokenValue,
		baseURL:    srv.URL,
	}
}

func TestNewClient(t *testing.T) {
	srv := newTestServer(t, "ghp_valid")
	defer srv.Close()

	t.Run("valid token", func(t *testing.T) {
		tok, err := token.NewToken("ghp_valid", time.Time{}, "")
		if err != nil {
			t.Fatalf("NewToken() error = %v", err)
		}

		client := newTestClient(srv, tok.Value)
		validator := &TokenValidator{baseURL: srv.URL}
		if err := validator.Validate(context.Background(), tok); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}

		info, err := client.GetUserInfo(context.Background())
		if err != nil {
			t.Fatalf("GetUserInfo() error = %v", err)
		}
		if info.Login != "demo-user" {
			t.Errorf("GetUserInfo() login = %q, want %q", info.Login, "demo-user")
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		tok, _ := token.NewToken("ghp_wrong", time.Time{}, "")
		validator := &TokenValidator{baseURL: srv.URL}
		if err := validator.Validate(context.Background(), tok); err == nil {
			t.Fatal("Validate() expected error for rejected token")
		}
	})
}

func TestClient_VerifyAccess(t *testing.T) {
	srv := newTestServer(t, "ghp_valid")
	defer srv.Close()

	t.Run("success", func(t *testing.T) {
		client := newTestClient(srv, "ghp_valid")
		if err := client.VerifyAccess(context.Background()); err != nil {
			t.Fatalf("VerifyAccess() error = %v", err)
		}
	})

	t.Run("unreachable host maps to connectivity error", func(t *testing.T) {
		client := newTestClient(srv, "ghp_valid")
		client.baseURL = "http://127.0.0.1:1"
		client.httpClient = &http.Client{Timeout: 200 * time.Millisecond}

		err := client.VerifyAccess(context.Background())
		if !errors.Is(err, gerrors.ErrConnectivity) {
			t.Fatalf("VerifyAccess() error = %v, want ErrConnectivity", err)
		}
		if gerrors.HintOf(err) == "" {
			t.Error("VerifyAccess() connectivity error carries no remediation hint")
		}
	})
}

func TestClient_CreateRepository(t *testing.T) {
	srv := newTestServer(t, "ghp_valid")
	defer srv.Close()

	client := newTestClient(srv, "ghp_valid")
	err := client.CreateRepository(context.Background(), RepoOptions{
		Name:    "emotional-avatar",
		Private: true,
	})
	if err != nil {
		t.Fatalf("CreateRepository() error = %v", err)
	}
}

func TestParseRepo(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{name: "valid", input: "owner/repo", wantOwner: "owner", wantRepo: "repo"},
		{name: "missing repo", input: "owner", wantErr: true},
		{name: "empty owner", input: "/repo", wantErr: true},
		{name: "too many parts", input: "a/b/c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRepo(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseRepo() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepo() error = %v", err)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("ParseRepo() = %q/%q, want %q/%q", owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}
