package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PolarWolf314/theca/internal/audit"
	"github.com/PolarWolf314/theca/internal/container"
	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/PolarWolf314/theca/internal/notes"
	"github.com/PolarWolf314/theca/internal/secrets"
	"github.com/PolarWolf314/theca/internal/store"
	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/PolarWolf314/theca/internal/utils"
	"github.com/PolarWolf314/theca/internal/workflows"
	"github.com/briandowns/spinner"
)

// Interactive collaborators, replaced in tests.
var (
	readPassphrase = utils.ReadPassphrase
	readStdin      = utils.ReadStdin
	stdin          io.Reader = os.Stdin
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stderr)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// pauseSpinner stops s for an interactive prompt. The returned func
// restarts it.
func pauseSpinner(s *spinner.Spinner) func() {
	if s == nil || !s.Active() {
		return func() {}
	}
	s.Stop()
	return s.Start
}

// newStore opens the resolved profile folder with the configured KDF cost.
func newStore() *store.Store {
	return store.New(settings.ProfilesFolder, store.WithContainerOptions(
		container.WithKDFParams(settings.KDF),
		container.WithKDFLimit(secrets.KDFLimitFor(settings.KDF)),
	))
}

// newWorkspace wires the store, the operation trail and the passphrase
// source for the workflows.
func newWorkspace(s *spinner.Spinner) *workflows.Workspace {
	return &workflows.Workspace{
		Store:   newStore(),
		Trail:   audit.NewTrail(settings.ProfilesFolder),
		KeysFor: keysFor(s),
	}
}

// keysFor returns the --key / THECA_KEY passphrase when one was given and
// an interactive prompt otherwise.
func keysFor(s *spinner.Spinner) func(profile string) container.KeyProvider {
	return func(profile string) container.KeyProvider {
		if settings.KeySet {
			return container.StaticKey(settings.Key)
		}
		return container.KeyFunc(func() ([]byte, error) {
			defer pauseSpinner(s)()
			Logger.Debugf("Asking for the passphrase of %s", profile)
			return readPassphrase(fmt.Sprintf("Passphrase for %s: ", profile))
		})
	}
}

// newPassphrase returns the passphrase for a profile being encrypted: flag
// first, then the key setting, then an interactive prompt asked twice.
func newPassphrase(s *spinner.Spinner, flagValue string, flagSet bool) ([]byte, error) {
	switch {
	case flagSet:
		return []byte(flagValue), nil
	case settings.KeySet:
		return []byte(settings.Key), nil
	}
	defer pauseSpinner(s)()
	return utils.ReadNewPassphrase(readPassphrase)
}

// confirm asks a yes/no question on stdin. --yes answers it.
func confirm(s *spinner.Spinner, question string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	defer pauseSpinner(s)()

	fmt.Print(question + " [y/N]: ")
	reader := bufio.NewReader(stdin)
	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read input: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// confirmOrAbort is confirm returning ErrAborted on a no.
func confirmOrAbort(s *spinner.Spinner, question string) error {
	ok, err := confirm(s, question)
	if err != nil {
		return err
	}
	if !ok {
		return kerrors.ErrAborted
	}
	return nil
}

// isEncryptedOnDisk peeks at a profile file without decrypting it. Errors
// are left for the workflow to report.
func isEncryptedOnDisk(st *store.Store, profile string) bool {
	if store.ValidateName(profile) != nil {
		return false
	}
	data, err := os.ReadFile(st.Path(profile)) // #nosec G304 -- path is built from a validated profile name
	if err != nil {
		return false
	}
	return container.IsEncrypted(data)
}

// editor returns the configured external editor. For encrypted profiles it
// first warns that the body passes through a plaintext temporary file.
func editor(s *spinner.Spinner, profile string) utils.Editor {
	edit := utils.EditWith(settings.Editor)
	encrypted := isEncryptedOnDisk(newStore(), profile)

	return func(current string) (string, error) {
		defer pauseSpinner(s)()
		if encrypted {
			if err := confirmOrAbort(nil, "The note body will be written unencrypted to a temporary file while editing. Continue?"); err != nil {
				return "", err
			}
		}
		Logger.Debugf("Starting editor %s", settings.Editor)
		return edit(current)
	}
}

// readBody returns the body argument, or stdin when the argument is "-" or
// fromStdin is set.
func readBody(arg string, fromStdin bool) (string, error) {
	if !fromStdin && arg != "-" {
		return arg, nil
	}
	data, err := readStdin()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseStatus parses a --status value. An empty value means no filter.
func parseStatus(value string) (*notes.Status, error) {
	if value == "" {
		return nil, nil
	}
	status, err := notes.ParseStatusFlag(value)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// fail shows err as the spinner's final message and marks it reported.
func fail(s *spinner.Spinner, err error) error {
	s.FinalMSG = formatError(err)
	Logger.Debugf("Command failed: %v", err)
	return &reportedError{err: err}
}

// formatError formats an error for display to the user.
func formatError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrProfileNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("theca new-profile "+settings.Profile) + " to create it"

	case errors.Is(err, kerrors.ErrIncompatibleLegacyFormat):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Profiles written by old theca releases must be converted before use"

	case errors.Is(err, kerrors.ErrWrongKeyOrCorruptData):
		return ui.Error.Sprint("✗") + " Wrong passphrase, or the profile is corrupted"

	case errors.Is(err, kerrors.ErrNoPassphrase):
		return ui.Error.Sprint("✗") + " This profile is encrypted\n" +
			ui.Info.Sprint("→") + " Pass the passphrase with " + ui.Flag.Sprint("--key") + " or " + ui.Code.Sprint("THECA_KEY")

	case errors.Is(err, kerrors.ErrAborted):
		return ui.Warning.Sprint("⚠") + " Aborted"

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}
