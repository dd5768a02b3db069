package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/theca/internal/configs"
	"github.com/PolarWolf314/theca/internal/secrets"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the settings theca would use, after flags, environment and the
user config file are combined. Passphrases are never shown.

Examples:
  theca config show
  theca config show --json
  theca --profiles-folder /tmp/notes config show`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		Logger.Debugf("Flags: json=%t", configShowJSON)

		view := newConfigView(settings)
		if configShowJSON {
			return outputConfigJSON(view)
		}
		outputConfigText(view)
		return nil
	},
}

// configView is the printable form of configs.Settings.
type configView struct {
	ConfigFile     string            `json:"config_file"`
	ConfigExists   bool              `json:"config_exists"`
	ProfilesFolder string            `json:"profiles_folder"`
	FolderSource   string            `json:"profiles_folder_source"`
	Profile        string            `json:"profile"`
	KeyProvided    bool              `json:"key_provided"`
	Editor         string            `json:"editor"`
	KDF            secrets.KDFParams `json:"kdf"`
	Condensed      bool              `json:"condensed"`
	DateSort       bool              `json:"date_sort"`
}

func newConfigView(s *configs.Settings) configView {
	_, err := os.Stat(s.ConfigPath)
	return configView{
		ConfigFile:     s.ConfigPath,
		ConfigExists:   err == nil,
		ProfilesFolder: s.ProfilesFolder,
		FolderSource:   s.FolderSource,
		Profile:        s.Profile,
		KeyProvided:    s.KeySet,
		Editor:         s.Editor,
		KDF:            s.KDF,
		Condensed:      s.Condensed,
		DateSort:       s.DateSort,
	}
}

// outputConfigJSON outputs the configuration in JSON format.
func outputConfigJSON(view configView) error {
	output, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
	}
	fmt.Println(string(output))
	return nil
}

// outputConfigText outputs the configuration in human-readable format.
func outputConfigText(view configView) {
	var b strings.Builder

	fileNote := ""
	if !view.ConfigExists {
		fileNote = " " + color.YellowString("(not created)")
	}
	fmt.Fprintf(&b, "%s (%s)%s:\n\n", color.CyanString("Configuration"), view.ConfigFile, fileNote)

	fmt.Fprintf(&b, "  %-16s %s %s\n", "Profile folder:", color.GreenString(view.ProfilesFolder), "("+view.FolderSource+")")
	fmt.Fprintf(&b, "  %-16s %s\n", "Profile:", color.GreenString(view.Profile))
	fmt.Fprintf(&b, "  %-16s %s\n", "Editor:", color.GreenString(view.Editor))
	fmt.Fprintf(&b, "  %-16s t=%d m=%dKiB p=%d\n", "Argon2id:", view.KDF.Time, view.KDF.Memory, view.KDF.Threads)
	fmt.Fprintf(&b, "  %-16s %t\n", "Condensed:", view.Condensed)
	fmt.Fprintf(&b, "  %-16s %t\n", "Date sort:", view.DateSort)
	if view.KeyProvided {
		fmt.Fprintf(&b, "  %-16s %s\n", "Passphrase:", color.YellowString("provided by flag or environment"))
	}

	fmt.Print(b.String())
}
