package configs

import (
	"fmt"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/PolarWolf314/theca/internal/secrets"
	"github.com/PolarWolf314/theca/internal/store"
)

// DefaultProfileName is used when nothing else names a profile.
const DefaultProfileName = "default"

// Sources recorded in Settings.FolderSource.
const (
	SourceFlag    = "flag"
	SourceEnv     = "environment"
	SourceConfig  = "config file"
	SourceDefault = "default"
)

// Flags are the global command-line options that feed resolution.
type Flags struct {
	Profile        string
	ProfilesFolder string
	ProfilePath    string
	Key            string
	KeySet         bool
}

// Settings are the resolved values the commands work with.
type Settings struct {
	ProfilesFolder string
	FolderSource   string
	Profile        string

	// Key is the passphrase from --key or THECA_KEY. KeySet distinguishes an
	// empty passphrase from none at all.
	Key    string
	KeySet bool

	Editor    string
	KDF       secrets.KDFParams
	Condensed bool
	DateSort  bool
	NoColor   bool

	ConfigPath string
}

// Resolve combines flags, environment and config file. It does no I/O.
func Resolve(flags Flags, e *Env, config *UserConfig) (*Settings, error) {
	if e == nil {
		e = &Env{}
	}
	if config == nil {
		config = &UserConfig{}
	}

	s := &Settings{
		Condensed: config.Display.Condensed,
		DateSort:  config.Display.DateSort,
		NoColor:   e.NoColor != "",
	}

	folder, source, err := resolveFolder(flags, e, config)
	if err != nil {
		return nil, err
	}
	s.ProfilesFolder, s.FolderSource = folder, source

	switch {
	case flags.ProfilePath != "":
		base := filepath.Base(flags.ProfilePath)
		if filepath.Ext(base) != store.Ext {
			return nil, fmt.Errorf("%w: --profile-path %s must name a %s file",
				kerrors.ErrInvalidProfileName, flags.ProfilePath, store.Ext)
		}
		s.Profile = strings.TrimSuffix(base, store.Ext)
	case flags.Profile != "":
		s.Profile = flags.Profile
	case e.DefaultProfile != "":
		s.Profile = e.DefaultProfile
	case config.DefaultProfile != "":
		s.Profile = config.DefaultProfile
	default:
		s.Profile = DefaultProfileName
	}

	switch {
	case flags.KeySet:
		s.Key, s.KeySet = flags.Key, true
	case e.Key != "":
		s.Key, s.KeySet = e.Key, true
	}

	s.Editor = firstNonEmpty(e.Visual, e.Editor, config.Editor, "vi")

	s.KDF = config.KDF
	if s.KDF == (secrets.KDFParams{}) {
		s.KDF = secrets.DefaultKDFParams()
	} else if err := s.KDF.Validate(); err != nil {
		return nil, fmt.Errorf("invalid [kdf] section in user config: %w", err)
	}

	return s, nil
}

func resolveFolder(flags Flags, e *Env, config *UserConfig) (string, string, error) {
	var folder, source string
	switch {
	case flags.ProfilePath != "":
		folder, source = filepath.Dir(flags.ProfilePath), SourceFlag
	case flags.ProfilesFolder != "":
		folder, source = flags.ProfilesFolder, SourceFlag
	case e.ProfileFolder != "":
		folder, source = e.ProfileFolder, SourceEnv
	case config.ProfilesFolder != "":
		folder, source = config.ProfilesFolder, SourceConfig
	case e.DotTheca != "":
		folder, source = e.DotTheca, SourceDefault
	default:
		if e.Home == "" {
			return "", "", fmt.Errorf("cannot locate the profile folder: no home directory")
		}
		folder, source = filepath.Join(e.Home, ".theca"), SourceDefault
	}

	expanded, err := expandHomeIn(folder, e.Home)
	if err != nil {
		return "", "", err
	}
	return filepath.Clean(expanded), source, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
