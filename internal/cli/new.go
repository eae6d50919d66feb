package cli

import (
	"fmt"
	"path/filepath"

	"github.com/JohnBarton27/flask-generator/internal/config"
	"github.com/JohnBarton27/flask-generator/internal/output"
	"github.com/JohnBarton27/flask-generator/internal/prompt"
	"github.com/JohnBarton27/flask-generator/internal/scaffold"
	"github.com/JohnBarton27/flask-generator/internal/vcs"
	"github.com/spf13/cobra"
)

var (
	newLocation    string
	newDescription string
	newPort        int
	newTests       bool
	newGit         bool
	newDryRun      bool
	newYes         bool
)

func init() {
	newCmd.Flags().StringVarP(&newLocation, "location", "l", "", "Existing parent directory for the project (default: config default_location)")
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "Project description")
	newCmd.Flags().IntVar(&newPort, "port", 0, "Port the generated app listens on (default: random in 1024-9998)")
	newCmd.Flags().BoolVar(&newTests, "tests", true, "Add a tests/ harness (default: config include_tests)")
	newCmd.Flags().BoolVar(&newGit, "git", true, "Initialise a git repository (default: config init_git)")
	newCmd.Flags().BoolVar(&newDryRun, "dry-run", false, "List the files that would be created without writing anything")
	newCmd.Flags().BoolVarP(&newYes, "yes", "y", false, "Never prompt; fail if a required value is missing")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Scaffold a new Flask project",
	Long: `Scaffold a new Flask project in <location>/<slug>, where the slug is the
project name lower-cased with spaces replaced by hyphens.

Values not given as arguments or flags are prompted for.

Examples:
  flaskgen new "My Cool App" --location ~/git --description "Tracks cool things"
  flaskgen new Demo -l /tmp/work --tests=false --git=false
  flaskgen new`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	answers := prompt.Answers{
		Location:       newLocation,
		Description:    newDescription,
		HasDescription: cmd.Flags().Changed("description"),
	}
	if len(args) == 1 {
		answers.Name = args[0]
	}

	p := prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr(), config.DefaultLocation())
	if newYes {
		if err := p.Complete(&answers); err != nil {
			return err
		}
	} else if err := p.Fill(&answers); err != nil {
		return err
	}

	opts := scaffold.Options{
		IncludeTests: flagOrConfig(cmd, "tests", newTests, config.IncludeTests()),
		InitGit:      flagOrConfig(cmd, "git", newGit, config.InitGit()),
		DryRun:       newDryRun,
	}

	gen := &scaffold.Generator{
		VCS:    vcs.New(),
		Logger: output.Logger,
	}
	result, err := gen.Generate(cmd.Context(), scaffold.Params{
		Name:          answers.Name,
		Description:   answers.Description,
		Location:      answers.Location,
		Port:          newPort,
		PythonVersion: config.PythonVersion(),
	}, opts)
	if err != nil {
		return err
	}

	printNewResult(cmd, result)
	return nil
}

// flagOrConfig returns the flag value when the user set it, else the
// configured value.
func flagOrConfig(cmd *cobra.Command, name string, flagValue, configValue bool) bool {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

func printNewResult(cmd *cobra.Command, result *scaffold.Result) {
	w := cmd.OutOrStdout()
	spec := result.Spec

	verb := "Created"
	if result.DryRun {
		verb = "Would create"
	}
	output.PrintFileList(w, fmt.Sprintf("%s project %s at", verb, output.StyleNoun.Render(spec.Name)), spec.RootDir, result.Files)
	if result.VCSInitialised {
		fmt.Fprintln(w, output.FormatCheckmark("Initialised git repository"))
	}
	output.PrintWarnings(w, result.Warnings)

	if result.DryRun {
		return
	}
	steps := []string{
		fmt.Sprintf("cd %s", spec.RootDir),
		"pip install -r requirements.txt",
		fmt.Sprintf("cd %s; python main.py  (serves on localhost:%d)", filepath.Base(spec.SourceDir), spec.Port),
	}
	if spec.IncludeTests {
		steps = append(steps, "python tests/run_tests.py")
	}
	output.PrintSteps(w, steps)
}
