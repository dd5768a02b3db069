package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds the environment variables theca reads.
type Env struct {
	ProfileFolder  string `env:"THECA_PROFILE_FOLDER"`
	DefaultProfile string `env:"THECA_DEFAULT_PROFILE"`
	Key            string `env:"THECA_KEY"`
	Config         string `env:"THECA_CONFIG"`
	Visual         string `env:"VISUAL"`
	Editor         string `env:"EDITOR"`
	NoColor        string `env:"NO_COLOR"`

	// Home is the user's home directory.
	Home string
	// DotTheca is the folder named by ~/.theca when that path is a file.
	DotTheca string
}

// LoadEnv reads the process environment and inspects ~/.theca.
func LoadEnv() (*Env, error) {
	return loadEnv(env.Options{})
}

// LoadEnvFrom is LoadEnv over an explicit variable set.
func LoadEnvFrom(vars map[string]string, home string) (*Env, error) {
	e, err := parseEnv(env.Options{Environment: vars})
	if err != nil {
		return nil, err
	}
	e.Home = home
	if err := e.readDotTheca(); err != nil {
		return nil, err
	}
	return e, nil
}

func loadEnv(opts env.Options) (*Env, error) {
	e, err := parseEnv(opts)
	if err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error getting home directory: %w", err)
	}
	e.Home = home

	if err := e.readDotTheca(); err != nil {
		return nil, err
	}
	return e, nil
}

func parseEnv(opts env.Options) (*Env, error) {
	e := &Env{}
	if err := env.ParseWithOptions(e, opts); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}
	return e, nil
}

// readDotTheca follows ~/.theca when it is a regular file holding a path.
func (e *Env) readDotTheca() error {
	if e.Home == "" {
		return nil
	}
	path := filepath.Join(e.Home, ".theca")

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- fixed path in the home directory
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	e.DotTheca = strings.TrimSpace(string(data))
	return nil
}
