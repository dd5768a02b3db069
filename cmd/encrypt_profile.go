package cmd

import (
	"context"
	"fmt"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/PolarWolf314/theca/internal/workflows"
	"github.com/spf13/cobra"
)

var encryptProfileNewKey string

func init() {
	encryptProfileCmd.Flags().StringVar(&encryptProfileNewKey, "new-key", "", "passphrase to encrypt with; re-keys an encrypted profile")
}

// resetEncryptProfileCommandState resets the encrypt-profile command's global state for testing.
func resetEncryptProfileCommandState() {
	encryptProfileNewKey = ""
}

var encryptProfileCmd = &cobra.Command{
	Use:   "encrypt-profile",
	Short: "Encrypt the current profile",
	Long: `Rewrites the current profile encrypted with a passphrase.

The passphrase comes from --new-key, then --key or THECA_KEY, or is asked
for twice. An encrypted profile is re-keyed when --new-key is given; --key
then opens it with the old passphrase.

Examples:
  theca encrypt-profile
  theca -p diary encrypt-profile --key old --new-key new`,
	Args: cobra.NoArgs,
	RunE: runEncryptProfile,
}

var decryptProfileCmd = &cobra.Command{
	Use:   "decrypt-profile",
	Short: "Store the current profile as plaintext",
	Long: `Rewrites the current encrypted profile as plaintext YAML.

Examples:
  theca -p diary decrypt-profile`,
	Args: cobra.NoArgs,
	RunE: runDecryptProfile,
}

func runEncryptProfile(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting encrypt-profile command")

	spinner, cleanup := startSpinner("Encrypting profile...", verbose)
	defer cleanup()

	ws := newWorkspace(spinner)
	rekey := cmd.Flags().Changed("new-key")
	if !rekey && isEncryptedOnDisk(ws.Store, settings.Profile) {
		return fail(spinner, fmt.Errorf("%w: %s (use --new-key to change the passphrase)", kerrors.ErrAlreadyEncrypted, settings.Profile))
	}

	passphrase, err := newPassphrase(spinner, encryptProfileNewKey, rekey)
	if err != nil {
		return fail(spinner, err)
	}

	result, err := workflows.EncryptProfile(context.Background(), ws, workflows.EncryptProfileOptions{
		Profile:       settings.Profile,
		NewPassphrase: passphrase,
		Rekey:         rekey,
	})
	if err != nil {
		return fail(spinner, err)
	}

	if result.Rekeyed {
		Logger.Infof("Re-keyed %s", result.Profile)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Changed the passphrase of profile " + ui.Highlight.Sprint(result.Profile)
		return nil
	}
	Logger.Infof("Encrypted %s", result.Profile)
	spinner.FinalMSG = ui.Success.Sprint("✓") + " Encrypted profile " + ui.Highlight.Sprint(result.Profile)
	return nil
}

func runDecryptProfile(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting decrypt-profile command")

	spinner, cleanup := startSpinner("Decrypting profile...", verbose)
	defer cleanup()

	if err := workflows.DecryptProfile(context.Background(), newWorkspace(spinner), settings.Profile); err != nil {
		return fail(spinner, err)
	}

	Logger.Infof("Decrypted %s", settings.Profile)
	spinner.FinalMSG = ui.Success.Sprint("✓") + " Profile " + ui.Highlight.Sprint(settings.Profile) + " is now stored as plaintext"
	return nil
}
