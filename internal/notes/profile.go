package notes

import (
	"fmt"
	"math"
	"slices"
	"time"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
)

// KDFParams mirrors the Argon2id cost parameters recorded in an envelope.
type KDFParams struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// Seal describes the envelope an encrypted profile was last read from or
// written to. It is informational: a fresh salt and nonce are drawn on
// every save.
type Seal struct {
	KDF   KDFParams
	Salt  []byte
	Nonce []byte
}

// Profile is the open note collection of one profile file.
type Profile struct {
	// Name is the file stem. It is not part of the encoded document.
	Name      string
	Notes     []Note
	Encrypted bool
	// LastID is the highest identifier ever allocated in this profile.
	LastID uint64
	Seal   *Seal

	clock func() time.Time
}

// NewProfile returns an empty profile.
func NewProfile(name string, encrypted bool) *Profile {
	return &Profile{Name: name, Encrypted: encrypted}
}

// SetClock overrides the time source used to stamp mutations.
func (p *Profile) SetClock(now func() time.Time) {
	p.clock = now
}

func (p *Profile) now() time.Time {
	if p.clock != nil {
		return p.clock().Truncate(time.Second)
	}
	return time.Now().Truncate(time.Second)
}

func (p *Profile) index(id uint64) int {
	return slices.IndexFunc(p.Notes, func(n Note) bool { return n.ID == id })
}

func (p *Profile) nextID() (uint64, error) {
	last := p.LastID
	for _, n := range p.Notes {
		last = max(last, n.ID)
	}
	if last == math.MaxUint64 {
		return 0, kerrors.ErrIDsExhausted
	}
	return last + 1, nil
}

// Add appends a new note and returns its identifier.
func (p *Profile) Add(title, body string, status Status) (uint64, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return 0, err
	}
	if !status.Valid() {
		return 0, fmt.Errorf("%w: %v", kerrors.ErrInvalidStatus, status)
	}

	id, err := p.nextID()
	if err != nil {
		return 0, err
	}
	p.Notes = append(p.Notes, Note{
		ID:          id,
		Title:       title,
		Body:        body,
		Status:      status,
		LastTouched: p.now(),
	})
	p.LastID = id
	return id, nil
}

// Insert copies n into the profile under a freshly allocated identifier.
// Title, body and status are kept; the timestamp is refreshed.
func (p *Profile) Insert(n Note) (uint64, error) {
	return p.Add(n.Title, n.Body, n.Status)
}

// EditFields selects which fields Edit changes. Nil fields are left alone.
type EditFields struct {
	Title  *string
	Body   *string
	Status *Status
}

// IsEmpty reports whether no field is selected.
func (f EditFields) IsEmpty() bool {
	return f.Title == nil && f.Body == nil && f.Status == nil
}

// Edit applies a partial update to the note with the given id.
func (p *Profile) Edit(id uint64, fields EditFields) error {
	i := p.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", kerrors.ErrNoteNotFound, id)
	}
	if fields.IsEmpty() {
		return nil
	}

	n := p.Notes[i]
	if fields.Title != nil {
		title, err := normalizeTitle(*fields.Title)
		if err != nil {
			return err
		}
		n.Title = title
	}
	if fields.Body != nil {
		n.Body = *fields.Body
	}
	if fields.Status != nil {
		if !fields.Status.Valid() {
			return fmt.Errorf("%w: %v", kerrors.ErrInvalidStatus, *fields.Status)
		}
		n.Status = *fields.Status
	}
	n.LastTouched = p.now()
	p.Notes[i] = n
	return nil
}

// Delete removes every listed note that exists. Ids that match nothing are
// returned in notFound; repeated ids are handled once.
func (p *Profile) Delete(ids ...uint64) (deleted, notFound []uint64) {
	seen := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		i := p.index(id)
		if i < 0 {
			notFound = append(notFound, id)
			continue
		}
		p.Notes = slices.Delete(p.Notes, i, i+1)
		deleted = append(deleted, id)
	}
	return deleted, notFound
}

// Clear removes every note. LastID is kept.
func (p *Profile) Clear() int {
	n := len(p.Notes)
	for _, note := range p.Notes {
		p.LastID = max(p.LastID, note.ID)
	}
	p.Notes = nil
	return n
}

// Get returns a copy of the note with the given id.
func (p *Profile) Get(id uint64) (Note, error) {
	i := p.index(id)
	if i < 0 {
		return Note{}, fmt.Errorf("%w: %d", kerrors.ErrNoteNotFound, id)
	}
	return p.Notes[i], nil
}

// Len returns the number of notes.
func (p *Profile) Len() int {
	return len(p.Notes)
}
