package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/JohnBarton27/flask-generator/internal/config"
	"github.com/JohnBarton27/flask-generator/internal/output"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write flaskgen configuration stored at ~/.flaskgen/config.yaml.

Keys:
  default_location  Parent directory offered when prompting for a location
  include_tests     Add a tests/ harness to new projects (true/false)
  init_git          Initialise a git repository in new projects (true/false)
  python_version    Python version advertised in generated readmes`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.IsKnown(args[0]) {
			return fmt.Errorf("%w %q", config.ErrUnknownKey, args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, key := range config.Keys() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, config.Get(key))
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.FilePath())
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the config file against its schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FilePath()
		result, err := config.ValidateFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(cmd.OutOrStdout(), "No config file at %s; defaults apply.\n", path)
			return nil
		}
		if err != nil {
			return err
		}

		if result.Valid {
			fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark(path+" is valid"))
			return nil
		}
		for _, issue := range result.Issues {
			output.Warn("invalid config", "file", path, "issue", issue.String())
		}
		return fmt.Errorf("config file %s has %d issue(s)", path, len(result.Issues))
	},
}
