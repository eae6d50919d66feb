package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	ColorCyan       = lipgloss.Color("14")
	ColorGreenCheck = lipgloss.Color("10")
	ColorYellow     = lipgloss.Color("220")
	ColorDimGray    = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns: project names, paths.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome such as file listings.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	// StyleWarning styles non-fatal warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(ColorYellow)

	styleCheck = lipgloss.NewStyle().Foreground(ColorGreenCheck)
)

// FormatCheckmark returns a green "✔ msg" line.
func FormatCheckmark(msg string) string {
	return styleCheck.Render("✔") + " " + msg
}

// PrintFileList writes a created-files block: a summary line naming root,
// followed by one indented line per relative path.
func PrintFileList(w io.Writer, verb, root string, files []string) {
	fmt.Fprintln(w, FormatCheckmark(fmt.Sprintf("%s %s", verb, StyleNoun.Render(root+"/"))))
	for _, f := range files {
		fmt.Fprintln(w, "  "+StyleDim.Render(f))
	}
}

// PrintWarnings writes a warnings block; nothing when warnings is empty.
func PrintWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w, "\n"+StyleWarning.Render("Warnings:"))
	for _, msg := range warnings {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
}

// PrintSteps writes a numbered "Next steps" block.
func PrintSteps(w io.Writer, steps []string) {
	if len(steps) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString("\n" + StyleSummary.Render("Next steps:") + "\n")
	for i, s := range steps {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
	}
	fmt.Fprint(w, b.String())
}
