package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/PolarWolf314/theca/internal/workflows"
	"github.com/spf13/cobra"
)

var newProfileEncrypted bool

func init() {
	newProfileCmd.Flags().BoolVarP(&newProfileEncrypted, "encrypted", "e", false, "encrypt the profile with a passphrase")
}

// resetNewProfileCommandState resets the new-profile command's global state for testing.
func resetNewProfileCommandState() {
	newProfileEncrypted = false
}

var newProfileCmd = &cobra.Command{
	Use:   "new-profile [name]",
	Short: "Create an empty profile",
	Long: `Creates an empty profile in the profile folder, creating the folder if
needed. Without a name the current profile is created.

With --encrypted the passphrase comes from --key or THECA_KEY, or is asked
for twice.

Examples:
  theca new-profile work
  theca new-profile diary --encrypted`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNewProfile,
}

func runNewProfile(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting new-profile command")

	name := settings.Profile
	if len(args) == 1 {
		name = args[0]
	}

	spinner, cleanup := startSpinner("Creating profile...", verbose)
	defer cleanup()

	ws := newWorkspace(spinner)
	opts := workflows.NewProfileOptions{Name: name, Encrypted: newProfileEncrypted}

	if _, err := os.Stat(settings.ProfilesFolder); os.IsNotExist(err) {
		if err := confirmOrAbort(spinner, fmt.Sprintf("Profile folder %s does not exist. Create it?", settings.ProfilesFolder)); err != nil {
			return fail(spinner, err)
		}
	}

	exists, err := ws.Store.Exists(name)
	if err != nil {
		return fail(spinner, err)
	}
	if exists {
		if err := confirmOrAbort(spinner, fmt.Sprintf("Profile %s already exists. Overwrite it?", name)); err != nil {
			return fail(spinner, err)
		}
		opts.Overwrite = true
	}

	if newProfileEncrypted {
		if opts.Passphrase, err = newPassphrase(spinner, "", false); err != nil {
			return fail(spinner, err)
		}
	}

	result, err := workflows.NewProfile(context.Background(), ws, opts)
	if err != nil {
		return fail(spinner, err)
	}

	Logger.Infof("Created profile %s at %s", result.Name, result.Path)
	msg := ""
	if result.FolderCreated {
		msg = ui.Success.Sprint("✓") + " Created profile folder " + ui.Path.Sprint(settings.ProfilesFolder) + "\n"
	}
	kind := "profile"
	if newProfileEncrypted {
		kind = "encrypted profile"
	}
	spinner.FinalMSG = msg + ui.Success.Sprint("✓") + fmt.Sprintf(" Created %s %s", kind, ui.Highlight.Sprint(result.Name))
	return nil
}
