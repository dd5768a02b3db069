package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/theca/internal/audit"
	"github.com/PolarWolf314/theca/internal/container"
	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/PolarWolf314/theca/internal/notes"
	"github.com/PolarWolf314/theca/internal/store"
)

// Workspace is a profile folder together with the collaborators workflows
// need to open and record changes to its profiles.
type Workspace struct {
	Store *store.Store

	// Trail receives an entry for every change. It may be nil.
	Trail *audit.Trail

	// KeysFor returns the passphrase source for the named profile. A nil
	// func or a nil result makes encrypted profiles fail with
	// ErrNoPassphrase.
	KeysFor func(profile string) container.KeyProvider
}

// Handle is an opened profile. It remembers the passphrase it was opened
// with so that saving does not ask again.
type Handle struct {
	Profile    *notes.Profile
	passphrase []byte
}

// Passphrase returns the passphrase the profile was opened with, or nil for
// a plaintext profile.
func (h *Handle) Passphrase() []byte {
	return h.passphrase
}

// rememberKey records the passphrase handed to the container.
type rememberKey struct {
	src   container.KeyProvider
	value []byte
}

func (k *rememberKey) Passphrase() ([]byte, error) {
	if k.src == nil {
		return nil, kerrors.ErrNoPassphrase
	}
	v, err := k.src.Passphrase()
	if err != nil {
		return nil, err
	}
	k.value = v
	return v, nil
}

func (ws *Workspace) keysFor(name string) container.KeyProvider {
	if ws.KeysFor == nil {
		return nil
	}
	return ws.KeysFor(name)
}

// Open loads the named profile, asking for its passphrase only when the
// file is encrypted.
func Open(ctx context.Context, ws *Workspace, name string) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys := &rememberKey{src: ws.keysFor(name)}
	p, err := ws.Store.Load(name, keys)
	if err != nil {
		return nil, err
	}

	h := &Handle{Profile: p}
	if p.Encrypted {
		h.passphrase = keys.value
	}
	return h, nil
}

// Save writes the handle's profile back to the store.
func (ws *Workspace) Save(h *Handle) error {
	if h.Profile.Encrypted && h.passphrase == nil {
		return fmt.Errorf("saving %s: %w", h.Profile.Name, kerrors.ErrNoPassphrase)
	}
	return ws.Store.Save(h.Profile, h.passphrase)
}
