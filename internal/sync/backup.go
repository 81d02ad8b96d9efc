package sync

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// backupWorkingTree snapshots the working tree (minus .git) into a
// timestamped sibling directory and returns its path. The backup lives
// outside the repository so a later hard reset cannot touch it.
func (s *Synchronizer) backupWorkingTree() (string, error) {
	parent := filepath.Dir(s.opts.Dir)
	name := fmt.Sprintf("%s-%s", s.opts.BackupPrefix, s.now().Format("20060102-150405"))
	backupDir := filepath.Join(parent, name)

	if _, err := os.Stat(backupDir); err == nil {
		return "", fmt.Errorf("backup directory %s already exists", backupDir)
	}
	if err := copyTree(s.opts.Dir, backupDir, ".git"); err != nil {
		return "", err
	}
	return backupDir, nil
}

// restoreAllowList copies the allow-listed paths from the backup back into
// the working tree and returns how many were restored. Paths missing from
// the backup are skipped, not errors; the allow list describes what may
// come back, not what must exist.
func (s *Synchronizer) restoreAllowList(backupDir string) (int, error) {
	restored := 0
	for _, rel := range s.opts.AllowList {
		src := filepath.Join(backupDir, filepath.FromSlash(rel))
		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return restored, err
		}

		dst := filepath.Join(s.opts.Dir, filepath.FromSlash(rel))
		if info.IsDir() {
			err = copyTree(src, dst)
		} else {
			err = copyFile(src, dst, info.Mode())
		}
		if err != nil {
			return restored, err
		}
		restored++
	}
	return restored, nil
}

// copyTree recursively copies src into dst, skipping any top-level entries
// named in skip. Symlinks are not followed.
func copyTree(src, dst string, skip ...string) error {
	skipSet := make(map[string]bool, len(skip))
	for _, name := range skip {
		skipSet[name] = true
	}

	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return os.MkdirAll(dst, info.Mode())
		}
		if skipSet[firstComponent(rel)] {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, info.Mode())
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		return copyFile(path, target, info.Mode())
	})
}

func copyFile(src, dst string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func firstComponent(rel string) string {
	for i := 0; i < len(rel); i++ {
		if os.IsPathSeparator(rel[i]) {
			return rel[:i]
		}
	}
	return rel
}
