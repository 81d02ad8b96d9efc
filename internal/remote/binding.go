// Package remote manages the binding between a local repository and its
// hosted counterpart: one "origin" remote, one URL, one transport.
package remote

import (
	"context"
	"fmt"

	"github.com/avatardemo/go-demotools/internal/git"
	"github.com/avatardemo/go-demotools/internal/urlutils"
)

// Transport identifies how the remote is reached and authenticated.
type Transport string

const (
	// TransportToken is HTTPS with a personal access token embedded in
	// the remote URL.
	TransportToken Transport = "token"

	// TransportSSH is the git-over-SSH form using the user's keypair.
	TransportSSH Transport = "ssh"

	// TransportOAuth is plain HTTPS with credentials supplied by an
	// OAuth-managed helper rather than the URL itself.
	TransportOAuth Transport = "oauth"
)

// Binding pairs a local repository with a remote URL under a transport.
// At most one binding is active per repository: it always materializes as
// the "origin" remote.
type Binding struct {
	Dir       string    // Local repository path
	URL       string    // Remote URL as the user supplied it
	Transport Transport // Transport to materialize
}

// RemoteURL returns the URL that should be written to git config for the
// binding's transport. For the token transport the credential is embedded;
// for SSH the URL is converted to its git@ form; for OAuth the clean HTTPS
// form is used.
func (b *Binding) RemoteURL(credential string) (string, error) {
	switch b.Transport {
	case TransportSSH:
		return urlutils.ToSSH(b.URL)
	case TransportToken:
		httpsURL, err := urlutils.ToHTTPS(b.URL)
		if err != nil {
			return "", err
		}
		parsed, err := urlutils.ParseHTTPSURL(httpsURL)
		if err != nil {
			return "", err
		}
		tokenURL, err := urlutils.FormatTokenURL(parsed, credential)
		if err != nil {
			return "", err
		}
		return tokenURL.String() + ".git", nil
	case TransportOAuth:
		return urlutils.ToHTTPS(b.URL)
	default:
		return "", fmt.Errorf("unknown transport %q", b.Transport)
	}
}

// Apply materializes the binding as the repository's origin remote,
// overwriting any previous URL. After applying it re-reads .git/config and
// verifies exactly one origin URL is configured.
func (b *Binding) Apply(ctx context.Context, g *git.Git, credential string) error {
	if err := urlutils.ValidateURL(b.URL); err != nil {
		return fmt.Errorf("invalid remote URL: %w", err)
	}

	remoteURL, err := b.RemoteURL(credential)
	if err != nil {
		return err
	}

	urls, err := OriginURLs(b.Dir)
	if err != nil {
		return err
	}

	if len(urls) == 0 {
		if out, err := g.Run(ctx, "remote", "add", "origin", remoteURL); err != nil {
			return fmt.Errorf("failed to add origin: %w (%s)", err, out)
		}
	} else {
		if out, err := g.Run(ctx, "remote", "set-url", "origin", remoteURL); err != nil {
			return fmt.Errorf("failed to update origin: %w (%s)", err, out)
		}
	}

	// Re-read the config: the binding invariant is exactly one origin URL.
	urls, err = OriginURLs(b.Dir)
	if err != nil {
		return err
	}
	if len(urls) != 1 {
		return fmt.Errorf("expected exactly one origin URL after binding, found %d", len(urls))
	}
	if urls[0] != remoteURL {
		return fmt.Errorf("origin URL mismatch after binding: %s", urls[0])
	}

	return nil
}

// Current reads the active binding from the repository's git config.
// The transport is inferred from the URL form. Returns nil if no origin
// remote is configured.
func Current(dir string) (*Binding, error) {
	urls, err := OriginURLs(dir)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, nil
	}

	url := urls[0]
	b := &Binding{Dir: dir, URL: url}
	switch {
	case len(url) > 4 && url[:4] == "git@":
		b.Transport = TransportSSH
	case hasEmbeddedCredential(url):
		b.Transport = TransportToken
	default:
		b.Transport = TransportOAuth
	}
	return b, nil
}

func hasEmbeddedCredential(url string) bool {
	for i := 0; i < len(url); i++ {
		if url[i] == '@' {
			return true
		}
		if url[i] == '/' && i > 7 { // past "https://"
			return false
		}
	}
	return false
}
