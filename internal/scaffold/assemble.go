package scaffold

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options selects the optional generation stages.
type Options struct {
	IncludeTests bool // Write the tests/ harness
	InitGit      bool // Run the VCS bootstrapper after assembly
	DryRun       bool // Validate and list files without writing anything
}

// Step is one stage of assembly: create Dirs, then write Templates, in order.
type Step struct {
	Name      string
	Dirs      func(spec ProjectSpec) []string
	Templates []string
	// Enabled reports whether the step runs; nil means always.
	Enabled func(opts Options) bool
}

// DefaultSteps is the fixed assembly order. Each step assumes the
// directories and files of the steps before it exist.
func DefaultSteps() []Step {
	return []Step{
		{
			Name:      "root-files",
			Templates: []string{TmplRequirements, TmplGitignore},
		},
		{
			Name:      "readme",
			Templates: []string{TmplReadme},
		},
		{
			Name: "source",
			Dirs: func(spec ProjectSpec) []string {
				return []string{spec.Slug}
			},
			Templates: []string{TmplMain},
		},
		{
			Name: "static",
			Dirs: func(spec ProjectSpec) []string {
				static := filepath.Join(spec.Slug, "static")
				return []string{
					static,
					filepath.Join(static, "css"),
					filepath.Join(static, "js"),
				}
			},
			Templates: []string{TmplCSSKeep, TmplJSKeep, TmplIndex},
		},
		{
			Name: "tests",
			Dirs: func(ProjectSpec) []string {
				return []string{"tests"}
			},
			Templates: []string{TmplTestsInit, TmplRunTests},
			Enabled:   func(opts Options) bool { return opts.IncludeTests },
		},
	}
}

// Assembler drives a Registry and a FileWriter through a list of steps.
type Assembler struct {
	Registry *Registry
	Writer   FileWriter
	Steps    []Step
	Logger   *log.Logger
}

// NewAssembler returns an Assembler over the default registry and steps.
func NewAssembler(w FileWriter, logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Assembler{
		Registry: DefaultRegistry(),
		Writer:   w,
		Steps:    DefaultSteps(),
		Logger:   logger,
	}
}

// Assemble runs every enabled step against spec.RootDir and returns the
// relative paths of the files written, in write order. The first error
// stops assembly; files from earlier steps are left in place.
func (a *Assembler) Assemble(spec ProjectSpec, opts Options) ([]string, error) {
	var files []string

	for _, step := range a.Steps {
		if step.Enabled != nil && !step.Enabled(opts) {
			a.Logger.Debug("skipping step", "step", step.Name)
			continue
		}
		a.Logger.Debug("running step", "step", step.Name)

		if step.Dirs != nil {
			for _, dir := range step.Dirs(spec) {
				if err := a.Writer.Mkdir(spec.RootDir, dir); err != nil {
					return files, stepError(step.Name, filepath.Join(spec.RootDir, dir), err)
				}
			}
		}

		for _, id := range step.Templates {
			rel, err := a.Registry.Destination(id, spec)
			if err != nil {
				return files, fmt.Errorf("step %q: %w", step.Name, err)
			}
			content, err := a.Registry.Render(id, spec)
			if err != nil {
				return files, fmt.Errorf("step %q: %w", step.Name, err)
			}
			if err := a.Writer.Write(spec.RootDir, rel, content); err != nil {
				return files, stepError(step.Name, filepath.Join(spec.RootDir, rel), err)
			}
			files = append(files, rel)
		}
	}

	return files, nil
}

// stepError wraps a writer failure as a WriteError unless it is a
// containment violation, which is a programming error in the step list.
func stepError(step, path string, err error) error {
	if errors.Is(err, ErrPathEscape) {
		return fmt.Errorf("step %q: %w", step, err)
	}
	return &WriteError{Step: step, Path: path, Err: err}
}
