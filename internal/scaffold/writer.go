package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)

// FileWriter materialises paths relative to a project root.
type FileWriter interface {
	// Mkdir creates rel and any missing parents under root.
	Mkdir(root, rel string) error
	// Write creates or truncates root/rel with content, creating parents.
	Write(root, rel, content string) error
}

// Writer writes rendered files to disk. In dry-run mode nothing is written
// but paths are still validated.
type Writer struct {
	DryRun bool
}

// Mkdir creates rel and any missing parents under root.
func (w Writer) Mkdir(root, rel string) error {
	full, err := containedPath(root, rel)
	if err != nil {
		return err
	}
	if w.DryRun {
		return nil
	}
	if err := os.MkdirAll(full, dirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", full, err)
	}
	return nil
}

// Write writes content as the full contents of root/rel. Missing parent
// directories are created; an existing file is truncated.
func (w Writer) Write(root, rel, content string) error {
	full, err := containedPath(root, rel)
	if err != nil {
		return err
	}
	if w.DryRun {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(full), dirPerm); err != nil {
		return fmt.Errorf("creating parent directory for %s: %w", full, err)
	}
	if err := os.WriteFile(full, []byte(content), filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", full, err)
	}
	return nil
}

// containedPath joins root and rel, rejecting rel when it is absolute or
// climbs out of root.
func containedPath(root, rel string) (string, error) {
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrPathEscape, rel)
	}
	return filepath.Join(root, rel), nil
}
