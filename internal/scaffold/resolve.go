package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading "~" or "~/" to the current user's home
// directory. Other paths are returned cleaned but otherwise unchanged.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return filepath.Clean(path), nil
}

// Check performs every Resolve validation without touching the filesystem
// and returns the project root Resolve would create.
func Check(parentDirRaw, slug string) (string, error) {
	if err := ValidateSlug(slug); err != nil {
		return "", err
	}

	parent, err := ExpandPath(parentDirRaw)
	if err != nil {
		return "", &PathError{Kind: ErrLocationNotFound, Path: parentDirRaw, Err: err}
	}

	info, err := os.Stat(parent)
	if err != nil {
		return "", &PathError{Kind: ErrLocationNotFound, Path: parent, Err: err}
	}
	if !info.IsDir() {
		return "", &PathError{Kind: ErrLocationNotFound, Path: parent, Err: errors.New("not a directory")}
	}

	rootDir := filepath.Join(parent, slug)
	if _, err := os.Lstat(rootDir); err == nil {
		return "", &PathError{Kind: ErrAlreadyExists, Path: rootDir}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", &PathError{Kind: ErrLocationNotFound, Path: parent, Err: err}
	}

	return rootDir, nil
}

// Resolve validates the parent directory and the project directory name, then
// creates the empty project root and returns it. The parent must exist and
// the root must not. Creating the root is the only side effect.
//
// Two concurrent calls for the same root race between the existence check
// and the mkdir; the loser gets ErrAlreadyExists from the mkdir itself.
func Resolve(parentDirRaw, slug string) (string, error) {
	rootDir, err := Check(parentDirRaw, slug)
	if err != nil {
		return "", err
	}

	if err := os.Mkdir(rootDir, dirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", &PathError{Kind: ErrAlreadyExists, Path: rootDir}
		}
		return "", &WriteError{Step: "resolve", Path: rootDir, Err: err}
	}
	return rootDir, nil
}
