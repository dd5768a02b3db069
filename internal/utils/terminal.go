package utils

import (
	"bytes"
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"golang.org/x/term"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 80

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%w: stdin is not a terminal (use --key or THECA_KEY)", kerrors.ErrNoPassphrase)
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// ReadNewPassphrase asks for a new passphrase twice using read and fails
// with ErrPassphraseMismatch when the entries differ.
func ReadNewPassphrase(read func(prompt string) ([]byte, error)) ([]byte, error) {
	first, err := read("New passphrase: ")
	if err != nil {
		return nil, err
	}
	second, err := read("Confirm passphrase: ")
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(first, second) {
		return nil, kerrors.ErrPassphraseMismatch
	}
	return first, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
