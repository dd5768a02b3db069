package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/PolarWolf314/theca/internal/container"
	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/bmatcuk/doublestar/v4"
)

// Info describes a profile file found in the folder.
type Info struct {
	Name      string    `json:"name" yaml:"name"`
	Path      string    `json:"path" yaml:"path"`
	Encrypted bool      `json:"encrypted" yaml:"encrypted"`
	Legacy    bool      `json:"legacy,omitempty" yaml:"legacy,omitempty"`
	ModTime   time.Time `json:"modified" yaml:"modified"`
}

// List returns the profiles in the folder sorted by name. A non-empty
// pattern filters names with doublestar glob syntax. Old-format files are
// included with Legacy set. A missing folder has no profiles.
func (s *Store) List(pattern string) ([]Info, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q: %v", kerrors.ErrInvalidPattern, pattern, doublestar.ErrBadPattern)
	}

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, kerrors.NewIOError("read profile folder", s.dir, err)
	}

	var infos []Info
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		ext := filepath.Ext(e.Name())
		if ext != Ext && ext != LegacyExt {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if pattern != "" {
			if ok, _ := doublestar.Match(pattern, name); !ok {
				continue
			}
		}

		info := Info{Name: name, Path: filepath.Join(s.dir, e.Name()), Legacy: ext == LegacyExt}
		if fi, err := e.Info(); err == nil {
			info.ModTime = fi.ModTime()
		}
		if !info.Legacy {
			data, err := os.ReadFile(info.Path) // #nosec G304 -- listed from the profile folder
			if err != nil {
				return nil, kerrors.NewIOError("read", info.Path, err)
			}
			info.Encrypted = container.IsEncrypted(data)
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Name != infos[j].Name {
			return infos[i].Name < infos[j].Name
		}
		return !infos[i].Legacy
	})
	return infos, nil
}
