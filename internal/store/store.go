package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/theca/internal/container"
	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/PolarWolf314/theca/internal/notes"
)

const (
	// Ext is the profile file extension.
	Ext = ".yaml"

	// LegacyExt is the extension used by old theca releases.
	LegacyExt = ".json"
)

// Store is a profile folder.
type Store struct {
	dir     string
	packing []container.Option

	// beforeRename runs after the temporary file is complete and before it
	// replaces the profile.
	beforeRename func(tmpPath string) error
}

// Option configures a Store.
type Option func(*Store)

// WithContainerOptions passes options through to container.Pack and
// container.Unpack.
func WithContainerOptions(opts ...container.Option) Option {
	return func(s *Store) { s.packing = append(s.packing, opts...) }
}

// WithBeforeRename installs a hook that runs once the temporary file of a
// write is complete and before it replaces the profile. A non-nil error
// aborts the write and leaves the profile untouched. It exists to simulate
// crashes and full disks.
func WithBeforeRename(hook func(tmpPath string) error) Option {
	return func(s *Store) { s.beforeRename = hook }
}

// New returns a Store rooted at dir. The folder need not exist yet.
func New(dir string, opts ...Option) *Store {
	s := &Store{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the profile folder.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path of the named profile.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+Ext)
}

// ValidateName rejects names that cannot be used as a file stem in the
// profile folder.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", kerrors.ErrInvalidProfileName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidProfileName, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q must not start with a dot", kerrors.ErrInvalidProfileName, name)
	case strings.ContainsAny(name, `/\`+"\x00") || strings.ContainsRune(name, os.PathSeparator):
		return fmt.Errorf("%w: %q must not contain path separators", kerrors.ErrInvalidProfileName, name)
	}
	return nil
}

// Exists reports whether the named profile file exists.
func (s *Store) Exists(name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	_, err := os.Stat(s.Path(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, kerrors.NewIOError("stat", s.Path(name), err)
	}
	return true, nil
}

// Load reads and unpacks the named profile. keys is consulted only when the
// file is encrypted.
func (s *Store) Load(name string, keys container.KeyProvider) (*notes.Profile, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	path := s.Path(name)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if _, legacyErr := os.Stat(filepath.Join(s.dir, name+LegacyExt)); legacyErr == nil {
			return nil, fmt.Errorf("%w: found %s", kerrors.ErrIncompatibleLegacyFormat, name+LegacyExt)
		}
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProfileNotFound, name)
	}
	if err != nil {
		return nil, kerrors.NewIOError("stat", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNotAFile, path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is built from a validated profile name
	if err != nil {
		return nil, kerrors.NewIOError("read", path, err)
	}

	p, err := container.Unpack(data, keys, s.packing...)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile %s: %w", name, err)
	}
	p.Name = name
	return p, nil
}

// Save packs p and atomically replaces its file.
func (s *Store) Save(p *notes.Profile, passphrase []byte) error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}

	data, err := container.Pack(p, passphrase, s.packing...)
	if err != nil {
		return err
	}
	return s.writeAtomic(s.Path(p.Name), data)
}

// Create writes a new empty profile. An existing profile is only replaced
// when overwrite is set.
func (s *Store) Create(name string, encrypted bool, passphrase []byte, overwrite bool) (*notes.Profile, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if _, err := s.EnsureDir(); err != nil {
		return nil, err
	}

	exists, err := s.Exists(name)
	if err != nil {
		return nil, err
	}
	if exists && !overwrite {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProfileExists, name)
	}

	p := notes.NewProfile(name, encrypted)
	if err := s.Save(p, passphrase); err != nil {
		return nil, err
	}
	return p, nil
}

// EnsureDir creates the profile folder if needed and reports whether it
// had to.
func (s *Store) EnsureDir() (bool, error) {
	info, err := os.Stat(s.dir)
	if err == nil {
		if !info.IsDir() {
			return false, kerrors.NewIOError("open profile folder", s.dir, fmt.Errorf("not a directory"))
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, kerrors.NewIOError("stat", s.dir, err)
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return false, kerrors.NewIOError("create profile folder", s.dir, err)
	}
	return true, nil
}
