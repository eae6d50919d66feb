package scaffold

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Port range for generated applications: [MinPort, MaxPort).
const (
	MinPort = 1024
	MaxPort = 9999
)

// DefaultPythonVersion is advertised in the readme when none is configured.
const DefaultPythonVersion = "3"

// minPython is the oldest Python a generated project may advertise.
var minPython = mustConstraint(">= 3.0")

// ProjectSpec describes one project to generate. Build it once, before any
// template is rendered, and never modify it afterwards.
type ProjectSpec struct {
	Name          string // e.g., "My Cool App"
	Slug          string // Derived: "my-cool-app"
	Description   string // May be empty
	Port          int    // Display only, not checked for availability
	RootDir       string // <parent>/<slug>
	SourceDir     string // <root>/<slug>
	PythonVersion string // e.g., "3", "3.11"
	IncludeTests  bool   // Adds the tests/ tree and its requirements
}

// Slugify lower-cases name and replaces every space with one hyphen.
// Runs of spaces are not collapsed: "a  b" becomes "a--b".
func Slugify(name string) string {
	return strings.ReplaceAll(cases.Lower(language.Und).String(name), " ", "-")
}

// ValidateSlug rejects slugs that cannot be used verbatim as a single
// directory or file name.
func ValidateSlug(slug string) error {
	switch {
	case slug == "":
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	case slug == "." || slug == "..":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, slug)
	case strings.ContainsAny(slug, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, slug)
	}
	return nil
}

// ValidatePythonVersion checks that v is a version like "3" or "3.11" and is
// at least 3.0.
func ValidatePythonVersion(v string) error {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidPythonVersion, v, err)
	}
	if !minPython.Check(parsed) {
		return fmt.Errorf("%w %q: must satisfy %s", ErrInvalidPythonVersion, v, minPython)
	}
	return nil
}

// RandomPort draws a port uniformly from [MinPort, MaxPort).
func RandomPort() int {
	return MinPort + rand.Intn(MaxPort-MinPort)
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}
	return nil
}

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}
