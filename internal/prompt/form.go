package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JohnBarton27/flask-generator/internal/output"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// runForm shows one huh group holding only the questions still unanswered.
func (p *Prompter) runForm(a *Answers) error {
	var fields []huh.Field

	if a.Name == "" {
		fields = append(fields, huh.NewInput().
			Title(TitleName).
			Value(&a.Name).
			Validate(ValidateName))
	}

	if a.Location == "" {
		def := p.DefaultLocation
		inp := huh.NewInput().
			Title(TitleLocation).
			Description("An existing directory; ~ is expanded.").
			Value(&a.Location).
			Validate(func(v string) error {
				if strings.TrimSpace(v) == "" && def == "" {
					return errors.New("location is required")
				}
				return nil
			})
		if def != "" {
			inp = inp.Placeholder(def)
		}
		fields = append(fields, inp)
	}

	if !a.HasDescription {
		fields = append(fields, huh.NewInput().
			Title(TitleDescription).
			Value(&a.Description))
	}

	if len(fields) == 0 {
		return nil
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(newTheme()).
		WithInput(p.In).
		WithOutput(p.Out)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("prompt error: %w", err)
	}
	a.HasDescription = true
	return nil
}

// newTheme brands the base huh theme with the CLI palette.
func newTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = t.Focused.Title.Foreground(output.ColorCyan).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(output.ColorDimGray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(output.ColorCyan)
	t.Blurred.Title = t.Blurred.Title.Faint(true)
	return t
}
