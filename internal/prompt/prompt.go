// Package prompt collects the project name, location, and description from
// the user. On a terminal it shows a huh form; otherwise it reads one answer
// per line from the input stream.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JohnBarton27/flask-generator/internal/scaffold"
	"github.com/mattn/go-isatty"
)

// Question titles, shared by the form and the line reader.
const (
	TitleName        = "Project name"
	TitleLocation    = "Where do you want to put the project folder?"
	TitleDescription = "Project description"
)

var (
	// ErrCancelled is returned when the user aborts the form.
	ErrCancelled = errors.New("prompt cancelled")

	// ErrMissingValue is returned when a required answer is absent and
	// cannot be asked for.
	ErrMissingValue = errors.New("missing required value")
)

// Answers holds the collected values. Empty Name or Location means "ask".
// Description is asked for unless HasDescription is set, since an empty
// description is a legitimate answer.
type Answers struct {
	Name           string
	Location       string
	Description    string
	HasDescription bool
}

// Prompter asks for whatever Answers is missing.
type Prompter struct {
	In              io.Reader
	Out             io.Writer
	Interactive     bool   // Use the huh form instead of line input
	DefaultLocation string // Offered when the location answer is blank
}

// New returns a Prompter over in/out that uses the form when in is a terminal.
func New(in io.Reader, out io.Writer, defaultLocation string) *Prompter {
	return &Prompter{
		In:              in,
		Out:             out,
		Interactive:     IsTerminal(in),
		DefaultLocation: defaultLocation,
	}
}

// IsTerminal reports whether r is a terminal file.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Fill asks for every missing answer and validates the result.
func (p *Prompter) Fill(a *Answers) error {
	if p.Interactive {
		if err := p.runForm(a); err != nil {
			return err
		}
	} else if err := p.readLines(a); err != nil {
		return err
	}
	return p.Complete(a)
}

// Complete validates a without asking anything, applying the default
// location when none was given.
func (p *Prompter) Complete(a *Answers) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Location = strings.TrimSpace(a.Location)

	if a.Name == "" {
		return fmt.Errorf("%w: project name", ErrMissingValue)
	}
	if err := ValidateName(a.Name); err != nil {
		return err
	}
	if a.Location == "" {
		a.Location = p.DefaultLocation
	}
	if a.Location == "" {
		return fmt.Errorf("%w: project location", ErrMissingValue)
	}
	a.HasDescription = true
	return nil
}

// ValidateName accepts names whose slug is a usable directory name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be empty", scaffold.ErrInvalidName)
	}
	return scaffold.ValidateSlug(scaffold.Slugify(name))
}

// readLines asks the missing questions one per line.
func (p *Prompter) readLines(a *Answers) error {
	reader := bufio.NewReader(p.In)

	if a.Name == "" {
		v, err := p.ask(reader, TitleName, "")
		if err != nil {
			return err
		}
		a.Name = v
	}
	if a.Location == "" {
		v, err := p.ask(reader, TitleLocation, p.DefaultLocation)
		if err != nil {
			return err
		}
		a.Location = v
	}
	if !a.HasDescription {
		v, err := p.ask(reader, TitleDescription, "")
		if err != nil {
			return err
		}
		a.Description = v
		a.HasDescription = true
	}
	return nil
}

func (p *Prompter) ask(reader *bufio.Reader, title, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.Out, "%s [%s]: ", title, def)
	} else {
		fmt.Fprintf(p.Out, "%s: ", title)
	}

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(title), err)
	}
	// At EOF the answer is whatever was typed, possibly blank; Complete
	// decides whether blank is acceptable.
	return strings.TrimSpace(line), nil
}
