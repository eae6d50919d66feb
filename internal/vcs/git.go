package vcs

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommitMessage is the message of the first commit.
const CommitMessage = "Initial Commit"

// Runner runs one external command inside dir.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs commands with os/exec. Stdout and stderr are left unset,
// so both go to the null device.
type ExecRunner struct{}

// Run executes name with args in dir and waits for it to exit.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Run()
}

// Git bootstraps a repository with the git binary.
type Git struct {
	Runner Runner
	Binary string
}

// New returns a Git that shells out to "git" on PATH.
func New() *Git {
	return &Git{Runner: ExecRunner{}, Binary: "git"}
}

// Bootstrap runs "git init", "git add -A", and "git commit" in rootDir,
// stopping at the first command that fails. The commands run with rootDir as
// their working directory; the caller's working directory never changes.
func (g *Git) Bootstrap(ctx context.Context, rootDir string) error {
	steps := [][]string{
		{"init"},
		{"add", "-A"},
		{"commit", "-m", CommitMessage},
	}

	for _, args := range steps {
		if err := g.Runner.Run(ctx, rootDir, g.Binary, args...); err != nil {
			return fmt.Errorf("%s %s: %w", g.Binary, strings.Join(args[:1], " "), err)
		}
	}
	return nil
}
