package scaffold

import (
	"errors"
	"fmt"
)

// Sentinel errors for the generation failure kinds. Match them with errors.Is.
var (
	// ErrLocationNotFound indicates the parent directory does not exist.
	ErrLocationNotFound = errors.New("location not found")

	// ErrAlreadyExists indicates the project directory is already present.
	ErrAlreadyExists = errors.New("project directory already exists")

	// ErrWriteFailure indicates a filesystem error while building the tree.
	ErrWriteFailure = errors.New("write failure")

	// ErrInvalidName indicates a project name whose slug is unusable as a
	// directory name.
	ErrInvalidName = errors.New("invalid project name")

	// ErrPathEscape indicates a relative path that leaves the project root.
	ErrPathEscape = errors.New("path escapes project root")

	// ErrInvalidPythonVersion indicates an unparsable or unsupported version.
	ErrInvalidPythonVersion = errors.New("invalid python version")

	// ErrInvalidPort indicates a port outside 1-65535.
	ErrInvalidPort = errors.New("invalid port")

	// ErrUnknownTemplate indicates a template ID missing from the registry.
	ErrUnknownTemplate = errors.New("unknown template")
)

// PathError reports a resolver failure for a specific path.
type PathError struct {
	Kind error // ErrLocationNotFound or ErrAlreadyExists
	Path string
	Err  error // underlying cause, may be nil
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

// Is matches the error's kind.
func (e *PathError) Is(target error) bool { return target == e.Kind }

// Unwrap returns the underlying cause.
func (e *PathError) Unwrap() error { return e.Err }

// WriteError reports a filesystem failure during a named assembly step.
// It always matches ErrWriteFailure.
type WriteError struct {
	Step string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s in step %q at %s: %v", ErrWriteFailure, e.Step, e.Path, e.Err)
}

// Is reports whether target is ErrWriteFailure.
func (e *WriteError) Is(target error) bool { return target == ErrWriteFailure }

// Unwrap returns the underlying filesystem error.
func (e *WriteError) Unwrap() error { return e.Err }
