package remote

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Entry is a named remote read back from .git/config.
type Entry struct {
	Name string
	URL  string
}

// Remotes parses the repository's .git/config and returns all configured
// remotes. Parsing the file directly (rather than shelling out) lets the
// binding invariant be checked even when the git binary is unavailable.
func Remotes(dir string) ([]Entry, error) {
	path := filepath.Join(dir, ".git", "config")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("not a git repository: %s", dir)
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse git config: %w", err)
	}

	var entries []Entry
	for _, sec := range cfg.Sections() {
		name, ok := remoteName(sec.Name())
		if !ok {
			continue
		}
		if !sec.HasKey("url") {
			continue
		}
		for _, url := range sec.Key("url").ValueWithShadows() {
			entries = append(entries, Entry{Name: name, URL: url})
		}
	}
	return entries, nil
}

// OriginURLs returns every URL configured for the origin remote. A correctly
// bound repository yields exactly one.
func OriginURLs(dir string) ([]string, error) {
	entries, err := Remotes(dir)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, e := range entries {
		if e.Name == "origin" {
			urls = append(urls, e.URL)
		}
	}
	return urls, nil
}

// remoteName extracts the remote name from a section header like
// `remote "origin"`.
func remoteName(section string) (string, bool) {
	const prefix = `remote "`
	if !strings.HasPrefix(section, prefix) || !strings.HasSuffix(section, `"`) {
		return "", false
	}
	return section[len(prefix) : len(section)-1], true
}
