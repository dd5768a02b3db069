package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// expandHome replaces a leading ~ with the current user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}
	return expandHomeIn(path, home)
}

func expandHomeIn(path, home string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	if home == "" {
		return "", fmt.Errorf("cannot expand %q: no home directory", path)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
