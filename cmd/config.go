package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage theca configuration",
	Long: `Provides commands for inspecting and creating the user config file.

Settings are resolved in this order, first match wins:
  1. command-line flags
  2. environment (THECA_PROFILE_FOLDER, THECA_DEFAULT_PROFILE, THECA_KEY)
  3. the user config file (THECA_CONFIG overrides its location)
  4. built-in defaults

Examples:
  # Show the effective configuration
  theca config show

  # Write a config file with the defaults
  theca config init`,
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}
