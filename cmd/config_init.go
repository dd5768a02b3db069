package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/theca/internal/configs"
	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/spf13/cobra"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a user config file with the defaults",
	Long: `Writes the user config file with the default settings so they can be
edited. The profile folder given by flags or environment is recorded in it.

Examples:
  theca config init
  theca config init --profiles-folder ~/notes --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config init command")

	path := settings.ConfigPath
	if _, err := os.Stat(path); err == nil && !configInitForce {
		fmt.Println(ui.Warning.Sprint("⚠") + " Config file already exists at " + ui.Path.Sprint(path))
		fmt.Println(ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--force") + " to overwrite it")
		return nil
	}

	config := configs.DefaultUserConfig()
	if settings.FolderSource == configs.SourceFlag || settings.FolderSource == configs.SourceEnv {
		config.ProfilesFolder = settings.ProfilesFolder
	}

	Logger.Debugf("Writing user config to %s", path)
	if err := configs.SaveUserConfig(path, config); err != nil {
		return Logger.ErrorfAndReturn("Failed to write config: %w", err)
	}

	fmt.Println(ui.Success.Sprint("✓") + " Wrote config file " + ui.Path.Sprint(path))
	return nil
}
