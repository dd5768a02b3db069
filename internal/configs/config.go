package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/theca/internal/secrets"
)

// UserConfig is the TOML user config file.
type UserConfig struct {
	DefaultProfile string            `toml:"default_profile,omitempty" json:"default_profile,omitempty"`
	ProfilesFolder string            `toml:"profiles_folder,omitempty" json:"profiles_folder,omitempty"`
	Editor         string            `toml:"editor,omitempty" json:"editor,omitempty"`
	KDF            secrets.KDFParams `toml:"kdf" json:"kdf"`
	Display        Display           `toml:"display" json:"display"`

	// Unknown lists keys in the file that theca does not recognise.
	Unknown []string `toml:"-" json:"-"`
}

// Display holds output defaults.
type Display struct {
	Condensed bool `toml:"condensed" json:"condensed"`
	DateSort  bool `toml:"date_sort" json:"date_sort"`
}

// DefaultUserConfig returns the config written by `theca config init`.
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		DefaultProfile: DefaultProfileName,
		KDF:            secrets.DefaultKDFParams(),
	}
}

// UserConfigPath returns the config file location. override, normally
// THECA_CONFIG, wins when set.
func UserConfigPath(override string) (string, error) {
	if override != "" {
		return expandHome(override)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error getting config directory: %w", err)
	}
	return filepath.Join(configDir, "theca", "config.toml"), nil
}

// LoadUserConfig loads the user config. A missing file yields an empty
// config.
func LoadUserConfig(path string) (*UserConfig, error) {
	config := &UserConfig{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	unknown, err := LoadTOML(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	config.Unknown = unknown

	return config, nil
}

// SaveUserConfig writes the user config to path.
func SaveUserConfig(path string, config *UserConfig) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}
