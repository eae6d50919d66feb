package cli

import (
	"github.com/JohnBarton27/flask-generator/internal/branding"
	"github.com/JohnBarton27/flask-generator/internal/config"
	"github.com/JohnBarton27/flask-generator/internal/output"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds new Flask projects: a requirements file, ignore rules,
a readme, an application entry point, a static-asset skeleton, an optional
test harness, and an optional git repository with a first commit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.SetupLogging(verbose)
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
// Errors are logged before being returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		output.Error(err.Error())
		return err
	}
	return nil
}
