package scaffold

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Params holds the user-supplied inputs for one project.
type Params struct {
	Name          string // Project name, non-empty
	Description   string // May be empty
	Location      string // Parent directory; "~" is expanded
	Port          int    // 0 draws a random port
	PythonVersion string // "" means DefaultPythonVersion
}

// Bootstrapper initialises version control in a freshly generated tree.
type Bootstrapper interface {
	Bootstrap(ctx context.Context, rootDir string) error
}

// Result holds the outcome of a generation.
type Result struct {
	Spec           ProjectSpec
	Files          []string // Relative to Spec.RootDir, in write order
	Warnings       []string
	VCSInitialised bool
	DryRun         bool
}

// Generator wires the resolver, assembler, and optional bootstrapper.
type Generator struct {
	Writer FileWriter   // nil uses Writer{DryRun: opts.DryRun}
	VCS    Bootstrapper // nil skips the VCS stage
	Logger *log.Logger  // nil discards
}

// NewSpec derives a ProjectSpec from p and a resolved project root.
func NewSpec(p Params, rootDir string, includeTests bool) ProjectSpec {
	slug := Slugify(p.Name)
	return ProjectSpec{
		Name:          p.Name,
		Slug:          slug,
		Description:   p.Description,
		Port:          p.Port,
		RootDir:       rootDir,
		SourceDir:     filepath.Join(rootDir, slug),
		PythonVersion: p.PythonVersion,
		IncludeTests:  includeTests,
	}
}

// Generate creates a new project from p. Input validation and path
// resolution happen before any write. Once the project root exists, a
// failure returns an ErrWriteFailure error and leaves the partial tree.
// VCS failures never fail the run; they become warnings on the result.
func (g *Generator) Generate(ctx context.Context, p Params, opts Options) (*Result, error) {
	logger := g.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	slug := Slugify(p.Name)
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	if p.PythonVersion == "" {
		p.PythonVersion = DefaultPythonVersion
	}
	if err := ValidatePythonVersion(p.PythonVersion); err != nil {
		return nil, err
	}
	if p.Port == 0 {
		p.Port = RandomPort()
	} else if err := validatePort(p.Port); err != nil {
		return nil, err
	}

	var rootDir string
	var err error
	if opts.DryRun {
		rootDir, err = Check(p.Location, slug)
	} else {
		rootDir, err = Resolve(p.Location, slug)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("creating project directory", "path", rootDir, "dry_run", opts.DryRun)

	spec := NewSpec(p, rootDir, opts.IncludeTests)

	w := g.Writer
	if w == nil {
		w = Writer{DryRun: opts.DryRun}
	}
	files, err := NewAssembler(w, logger).Assemble(spec, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("created project", "name", spec.Name, "files", len(files), "port", spec.Port)

	result := &Result{
		Spec:   spec,
		Files:  files,
		DryRun: opts.DryRun,
	}

	if opts.InitGit && !opts.DryRun && g.VCS != nil {
		// Advisory stage: the error is reported, never returned.
		if vcsErr := g.VCS.Bootstrap(ctx, rootDir); vcsErr != nil {
			logger.Warn("version control bootstrap failed", "path", rootDir, "err", vcsErr)
			result.Warnings = append(result.Warnings, fmt.Sprintf("git repository not initialised: %v", vcsErr))
		} else {
			result.VCSInitialised = true
		}
	}

	return result, nil
}
