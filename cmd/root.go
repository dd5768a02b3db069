package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/theca/internal/configs"
	logger "github.com/PolarWolf314/theca/internal/logging"
	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose   bool
	debug     bool
	assumeYes bool

	profileFlag        string
	profilesFolderFlag string
	profilePathFlag    string
	keyFlag            string

	Logger   logger.Logger
	settings *configs.Settings

	RootCmd = &cobra.Command{
		Use:   "theca [id]",
		Short: "theca - a profile-based note store with optional encryption",
		Long: `theca keeps short notes in named profiles. Each profile is a single
YAML file in the profile folder and may be encrypted with a passphrase.

Run without arguments to list the notes of the current profile, or with a
note id to view that note.

Examples:
  theca add "buy milk"
  theca add "write report" --status urgent --editor
  theca list --date-sort --reverse
  theca 3
  theca -p work search deploy --body`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing theca with verbose=%t, debug=%t", verbose, debug)
			return loadSettings(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runList(cmd, nil)
			}
			return runView(cmd, args)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to every confirmation")
	RootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "profile to use")
	RootCmd.PersistentFlags().StringVar(&profilesFolderFlag, "profiles-folder", "", "folder holding the profiles")
	RootCmd.PersistentFlags().StringVar(&profilePathFlag, "profile-path", "", "explicit path of a profile file")
	RootCmd.PersistentFlags().StringVarP(&keyFlag, "key", "k", "", "passphrase of an encrypted profile")

	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(editCmd)
	RootCmd.AddCommand(delCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(viewCmd)
	RootCmd.AddCommand(searchCmd)
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(clearCmd)
	RootCmd.AddCommand(newProfileCmd)
	RootCmd.AddCommand(listProfilesCmd)
	RootCmd.AddCommand(transferCmd)
	RootCmd.AddCommand(encryptProfileCmd)
	RootCmd.AddCommand(decryptProfileCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// Execute runs the command tree and prints errors that no command has
// already shown.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil && !isReported(err) {
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" "+err.Error())
	}
	return err
}

// loadSettings resolves flags, environment and the user config file.
func loadSettings(cmd *cobra.Command) error {
	env, err := configs.LoadEnv()
	if err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	configPath, err := configs.UserConfigPath(env.Config)
	if err != nil {
		return err
	}
	Logger.Debugf("Loading user config from %s", configPath)
	userConfig, err := configs.LoadUserConfig(configPath)
	if err != nil {
		return err
	}
	for _, key := range userConfig.Unknown {
		Logger.WarnfAlways("Unknown key %s in %s", key, configPath)
	}

	settings, err = configs.Resolve(configs.Flags{
		Profile:        profileFlag,
		ProfilesFolder: profilesFolderFlag,
		ProfilePath:    profilePathFlag,
		Key:            keyFlag,
		KeySet:         cmd.Flags().Changed("key"),
	}, env, userConfig)
	if err != nil {
		return err
	}
	settings.ConfigPath = configPath

	if settings.NoColor {
		ui.DisableColor()
	}
	Logger.Debugf("Profile folder %s (from %s), profile %s", settings.ProfilesFolder, settings.FolderSource, settings.Profile)
	return nil
}

// reportedError marks an error whose message a command has already shown.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func isReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	assumeYes = false
	profileFlag = ""
	profilesFolderFlag = ""
	profilePathFlag = ""
	keyFlag = ""
	settings = nil

	resetAddCommandState()
	resetEditCommandState()
	resetListCommandState()
	resetViewCommandState()
	resetSearchCommandState()
	resetNewProfileCommandState()
	resetListProfilesCommandState()
	resetEncryptProfileCommandState()
	resetLogCommandState()
	resetConfigShowState()
	resetConfigInitState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed marks of every flag in the tree to
// prevent test pollution.
func resetCobraFlagState(cmd *cobra.Command) {
	unset := func(flag *pflag.Flag) { flag.Changed = false }
	cmd.Flags().VisitAll(unset)
	cmd.PersistentFlags().VisitAll(unset)
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}
