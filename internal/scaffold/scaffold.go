// Package scaffold materializes the demo project layout: source and data
// directories plus the starter files (README, license, CI descriptor,
// runner stub). Existing files are backed up to a timestamped directory
// before being rewritten, never silently overwritten.
package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"
)

// Dirs is the directory skeleton of a demo project, relative to its root.
var Dirs = []string{
	"src/acquisition",
	"src/processing",
	"src/avatar",
	"src/ui",
	"data/raw",
	"data/samples",
	"docs",
	"tests",
}

// Data supplies the placeholder values substituted into the file templates.
type Data struct {
	Project string
	User    string
	Year    int
}

// Report lists what a generator run did, for the command to print.
type Report struct {
	DirsCreated []string
	Written     []string
	BackedUp    []string
	BackupDir   string
}

// Generator writes the project skeleton under Root.
type Generator struct {
	Root string
	Data Data

	// now is a hook for deterministic backup names in tests.
	now func() time.Time
}

// NewGenerator creates a Generator for the given project root. An empty
// project name defaults to the root's base name.
func NewGenerator(root, project, user string) *Generator {
	if project == "" {
		project = filepath.Base(root)
	}
	return &Generator{
		Root: root,
		Data: Data{Project: project, User: user, Year: time.Now().Year()},
		now:  time.Now,
	}
}

// Apply creates the directory skeleton and renders every starter file.
// Files that already exist are moved into a timestamped backup directory
// first, so a re-run never destroys local edits.
func (g *Generator) Apply() (*Report, error) {
	report := &Report{}

	for _, dir := range Dirs {
		path := filepath.Join(g.Root, filepath.FromSlash(dir))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			report.DirsCreated = append(report.DirsCreated, dir)
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	for _, file := range Files {
		content, err := render(file.Template, g.Data)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", file.Path, err)
		}

		path := filepath.Join(g.Root, filepath.FromSlash(file.Path))
		if existing, err := os.ReadFile(path); err == nil {
			if bytes.Equal(existing, content) {
				continue
			}
			if err := g.backup(report, file.Path, path); err != nil {
				return nil, err
			}
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating parent of %s: %w", file.Path, err)
		}
		if err := os.WriteFile(path, content, file.Mode); err != nil {
			return nil, fmt.Errorf("writing %s: %w", file.Path, err)
		}
		report.Written = append(report.Written, file.Path)
	}

	return report, nil
}

// backup moves an existing file into the run's backup directory, creating
// the directory on first use.
func (g *Generator) backup(report *Report, rel, path string) error {
	if report.BackupDir == "" {
		name := fmt.Sprintf(".scaffold-backup-%s", g.now().Format("20060102-150405"))
		report.BackupDir = filepath.Join(g.Root, name)
	}
	dst := filepath.Join(report.BackupDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating backup dir: %w", err)
	}
	if err := os.Rename(path, dst); err != nil {
		return fmt.Errorf("backing up %s: %w", rel, err)
	}
	report.BackedUp = append(report.BackedUp, rel)
	return nil
}

func render(tmpl string, data Data) ([]byte, error) {
	t, err := template.New("file").Parse(tmpl)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
