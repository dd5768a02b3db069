package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/theca/internal/audit"
	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/PolarWolf314/theca/internal/notes"
	"github.com/PolarWolf314/theca/internal/store"
)

// NewProfileOptions configures the new-profile workflow.
type NewProfileOptions struct {
	Name      string
	Encrypted bool

	// Passphrase is required when Encrypted is set.
	Passphrase []byte

	// Overwrite replaces an existing profile of the same name.
	Overwrite bool
}

// NewProfileResult contains the outcome of a new-profile operation.
type NewProfileResult struct {
	Name string
	Path string

	// FolderCreated is true when the profile folder did not exist before.
	FolderCreated bool
}

// NewProfile creates an empty profile, creating the profile folder if
// needed.
//
// Returns ErrProfileExists if the profile exists and Overwrite is not set.
func NewProfile(ctx context.Context, ws *Workspace, opts NewProfileOptions) (*NewProfileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := store.ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if opts.Encrypted && opts.Passphrase == nil {
		return nil, kerrors.ErrNoPassphrase
	}

	created, err := ws.Store.EnsureDir()
	if err != nil {
		return nil, err
	}

	if _, err := ws.Store.Create(opts.Name, opts.Encrypted, opts.Passphrase, opts.Overwrite); err != nil {
		return nil, err
	}

	ws.Trail.Log(audit.Entry{
		Operation: "new-profile",
		Profile:   opts.Name,
		Encrypted: audit.BoolPtr(opts.Encrypted),
	})

	return &NewProfileResult{
		Name:          opts.Name,
		Path:          ws.Store.Path(opts.Name),
		FolderCreated: created,
	}, nil
}

// EncryptProfileOptions configures the encrypt-profile workflow.
type EncryptProfileOptions struct {
	Profile string

	// NewPassphrase is the passphrase to encrypt with.
	NewPassphrase []byte

	// Rekey allows an already encrypted profile to be re-encrypted under
	// NewPassphrase.
	Rekey bool
}

// EncryptProfileResult contains the outcome of an encrypt-profile operation.
type EncryptProfileResult struct {
	Profile string

	// Rekeyed is true when the profile was already encrypted.
	Rekeyed bool
}

// EncryptProfile rewrites a profile encrypted under NewPassphrase.
//
// Returns ErrNoPassphrase if NewPassphrase is nil and ErrAlreadyEncrypted
// if the profile is encrypted and Rekey is not set.
func EncryptProfile(ctx context.Context, ws *Workspace, opts EncryptProfileOptions) (*EncryptProfileResult, error) {
	if opts.NewPassphrase == nil {
		return nil, kerrors.ErrNoPassphrase
	}

	h, err := Open(ctx, ws, opts.Profile)
	if err != nil {
		return nil, err
	}

	if h.Profile.Encrypted && !opts.Rekey {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrAlreadyEncrypted, h.Profile.Name)
	}
	result := &EncryptProfileResult{Profile: h.Profile.Name, Rekeyed: h.Profile.Encrypted}

	h.Profile.Encrypted = true
	h.passphrase = opts.NewPassphrase

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ws.Save(h); err != nil {
		return nil, err
	}

	op := "encrypt-profile"
	if result.Rekeyed {
		op = "rekey-profile"
	}
	ws.Trail.Log(audit.Entry{
		Operation: op,
		Profile:   h.Profile.Name,
		Encrypted: audit.BoolPtr(true),
	})

	return result, nil
}

// DecryptProfile rewrites an encrypted profile as plaintext.
//
// Returns ErrNotEncrypted if the profile is already plaintext.
func DecryptProfile(ctx context.Context, ws *Workspace, profile string) error {
	h, err := Open(ctx, ws, profile)
	if err != nil {
		return err
	}
	if !h.Profile.Encrypted {
		return fmt.Errorf("%w: %s", kerrors.ErrNotEncrypted, h.Profile.Name)
	}

	h.Profile.Encrypted = false
	h.passphrase = nil

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ws.Save(h); err != nil {
		return err
	}

	ws.Trail.Log(audit.Entry{
		Operation: "decrypt-profile",
		Profile:   h.Profile.Name,
		Encrypted: audit.BoolPtr(false),
	})
	return nil
}

// ListProfiles returns the profiles in the folder whose names match the
// doublestar pattern. An empty pattern matches everything.
func ListProfiles(ctx context.Context, ws *Workspace, pattern string) ([]store.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ws.Store.List(pattern)
}

// InfoResult summarises a profile.
type InfoResult struct {
	Name      string
	Path      string
	Encrypted bool
	LastID    uint64
	Stats     notes.Stats

	// Seal holds the encryption parameters of an encrypted profile.
	Seal *notes.Seal
}

// Info opens a profile and summarises it.
func Info(ctx context.Context, ws *Workspace, profile string) (*InfoResult, error) {
	h, err := Open(ctx, ws, profile)
	if err != nil {
		return nil, err
	}

	return &InfoResult{
		Name:      h.Profile.Name,
		Path:      ws.Store.Path(h.Profile.Name),
		Encrypted: h.Profile.Encrypted,
		LastID:    h.Profile.LastID,
		Stats:     h.Profile.Stats(),
		Seal:      h.Profile.Seal,
	}, nil
}
