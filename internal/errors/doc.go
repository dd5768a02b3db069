// Package errors provides typed error values for the theca application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. The CLI
// layer maps each category to its own exit status with ExitCode.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Lookup errors: a profile or note is absent (ErrNotFound and its children)
//   - Format errors: the profile document is malformed or uses the legacy schema
//   - Crypto errors: wrong passphrase or tampered ciphertext, bad KDF parameters
//   - Search errors: malformed regular expressions (ErrInvalidPattern)
//   - I/O errors: filesystem failures, reported as *IOError with path and operation
//
// # Usage
//
// Return errors from internal packages:
//
//	if !ok {
//	    return fmt.Errorf("note %d: %w", id, errors.ErrNoteNotFound)
//	}
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrWrongKeyOrCorruptData) {
//	    // bad passphrase or damaged file
//	}
//
// Child errors unwrap to their category, so errors.Is(err, ErrNotFound)
// also matches ErrProfileNotFound and ErrNoteNotFound.
package errors
