package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/theca/internal/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadUserConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theca", "config.toml")

	config := DefaultUserConfig()
	config.ProfilesFolder = "~/notes"
	config.Display.Condensed = true
	require.NoError(t, SaveUserConfig(path, config))

	loaded, err := LoadUserConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultProfileName, loaded.DefaultProfile)
	assert.Equal(t, "~/notes", loaded.ProfilesFolder)
	assert.Equal(t, secrets.DefaultKDFParams(), loaded.KDF)
	assert.True(t, loaded.Display.Condensed)
	assert.Empty(t, loaded.Unknown)
}

func TestLoadUserConfig_Missing(t *testing.T) {
	config, err := LoadUserConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, &UserConfig{}, config)
}

func TestLoadUserConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[kdf]\nthreads = 900\n"), 0600))

	_, err := LoadUserConfig(path)
	assert.Error(t, err)
}

func TestUserConfigPath_Override(t *testing.T) {
	path, err := UserConfigPath("/tmp/theca.toml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/theca.toml", path)

	path, err = UserConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("theca", "config.toml"), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}

func TestLoadEnvFrom(t *testing.T) {
	home := t.TempDir()

	e, err := LoadEnvFrom(map[string]string{
		"THECA_PROFILE_FOLDER":  "/srv/notes",
		"THECA_DEFAULT_PROFILE": "work",
		"THECA_KEY":             "s3cret",
		"EDITOR":                "nano",
	}, home)
	require.NoError(t, err)
	assert.Equal(t, "/srv/notes", e.ProfileFolder)
	assert.Equal(t, "work", e.DefaultProfile)
	assert.Equal(t, "s3cret", e.Key)
	assert.Equal(t, "nano", e.Editor)
	assert.Equal(t, home, e.Home)
	assert.Empty(t, e.DotTheca)
}

func TestLoadEnvFrom_DotThecaFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, ".theca"), []byte("  /data/theca\n"), 0600))

	e, err := LoadEnvFrom(map[string]string{}, home)
	require.NoError(t, err)
	assert.Equal(t, "/data/theca", e.DotTheca)

	s, err := Resolve(Flags{}, e, nil)
	require.NoError(t, err)
	assert.Equal(t, "/data/theca", s.ProfilesFolder)
}

func TestLoadEnvFrom_DotThecaFolderIgnored(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(home, ".theca"), 0700))

	e, err := LoadEnvFrom(map[string]string{}, home)
	require.NoError(t, err)
	assert.Empty(t, e.DotTheca)
}
