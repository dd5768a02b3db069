package errors

import (
	"errors"
	"fmt"
)

// kindError is a sentinel that belongs to a broader category.
type kindError struct {
	msg    string
	parent error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.parent }

func child(parent error, msg string) error {
	return &kindError{msg: msg, parent: parent}
}

// Lookup errors indicate a profile or note does not exist.
var (
	// ErrNotFound is the category for every missing-object error.
	ErrNotFound = errors.New("not found")

	// ErrProfileNotFound indicates the profile file does not exist.
	ErrProfileNotFound = child(ErrNotFound, "profile does not exist")

	// ErrNoteNotFound indicates no note carries the requested id.
	ErrNoteNotFound = child(ErrNotFound, "note does not exist")
)

// Format errors indicate the profile document cannot be trusted.
var (
	// ErrFormat indicates a malformed profile document.
	ErrFormat = errors.New("malformed profile document")

	// ErrIncompatibleLegacyFormat indicates a document written by an old,
	// incompatible version of theca. It is never migrated automatically.
	ErrIncompatibleLegacyFormat = child(ErrFormat,
		"profile uses the legacy format which is no longer supported, migrate it manually")
)

// Cryptographic errors indicate failures while deriving keys or opening profiles.
var (
	// ErrWrongKeyOrCorruptData indicates authentication of an encrypted
	// profile failed: either the passphrase is wrong or the file was altered.
	ErrWrongKeyOrCorruptData = errors.New("wrong passphrase or corrupt data")

	// ErrKeyDerivation indicates malformed key derivation parameters.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrNoPassphrase indicates an encrypted profile was opened without a passphrase source.
	ErrNoPassphrase = errors.New("profile is encrypted but no passphrase was provided")

	// ErrPassphraseMismatch indicates the two entries of a new passphrase differ.
	ErrPassphraseMismatch = errors.New("passphrases do not match")
)

// Note errors indicate invalid note operations.
var (
	// ErrEmptyTitle indicates a note title is empty.
	ErrEmptyTitle = errors.New("note title cannot be empty")

	// ErrInvalidStatus indicates a status name is not one of None, Started, Urgent.
	ErrInvalidStatus = errors.New("invalid note status")

	// ErrIDsExhausted indicates the profile has handed out the largest possible note id.
	ErrIDsExhausted = errors.New("no note ids left in profile")

	// ErrInvalidPattern indicates a search regex fails to compile.
	ErrInvalidPattern = errors.New("invalid search pattern")
)

// Profile errors indicate invalid profile-level operations.
var (
	// ErrProfileExists indicates new-profile would overwrite an existing file.
	ErrProfileExists = errors.New("profile already exists")

	// ErrInvalidProfileName indicates a profile name cannot be used as a filename stem.
	ErrInvalidProfileName = errors.New("invalid profile name")

	// ErrNotAFile indicates the profile path exists but is not a regular file.
	ErrNotAFile = errors.New("profile path is not a file")

	// ErrSelfTransfer indicates a note transfer whose source and destination are the same profile.
	ErrSelfTransfer = errors.New("cannot transfer a note from a profile to itself")

	// ErrAlreadyEncrypted indicates encrypt-profile on an encrypted profile without a new passphrase.
	ErrAlreadyEncrypted = errors.New("profile is already encrypted")

	// ErrNotEncrypted indicates decrypt-profile on a plaintext profile.
	ErrNotEncrypted = errors.New("profile is not encrypted")
)

// ErrInvalidDateFormat indicates a log filter date is not in YYYY-MM-DD form.
var ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

// Interaction errors come from external collaborators.
var (
	// ErrAborted indicates the user declined a confirmation prompt.
	ErrAborted = errors.New("aborted")

	// ErrEditorFailed indicates the external editor exited unsuccessfully.
	ErrEditorFailed = errors.New("editor exited with an error")
)

// ErrIO is the category for filesystem failures.
var ErrIO = errors.New("i/o error")

// IOError records a filesystem failure with the path and operation involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports IOError as part of the ErrIO category.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// NewIOError wraps err with the failed operation and path.
func NewIOError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
