package utils

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
)

// Editor turns the current text of a note body into its replacement.
type Editor func(current string) (string, error)

// EditWith returns an Editor that runs command on a private temporary file.
// command may carry arguments, for example "code --wait".
func EditWith(command string) Editor {
	return func(current string) (string, error) {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return "", fmt.Errorf("%w: no editor configured", kerrors.ErrEditorFailed)
		}

		tmp, err := os.CreateTemp("", "theca-*.md")
		if err != nil {
			return "", kerrors.NewIOError("create temporary file", os.TempDir(), err)
		}
		path := tmp.Name()
		defer os.Remove(path)

		if err := tmp.Chmod(0600); err != nil {
			_ = tmp.Close()
			return "", kerrors.NewIOError("chmod", path, err)
		}
		if _, err := tmp.WriteString(current); err != nil {
			_ = tmp.Close()
			return "", kerrors.NewIOError("write", path, err)
		}
		if err := tmp.Close(); err != nil {
			return "", kerrors.NewIOError("close", path, err)
		}

		// #nosec G204 -- the editor is chosen by the user
		cmd := exec.Command(fields[0], append(fields[1:], path)...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return "", fmt.Errorf("%w: %s exited with status %d", kerrors.ErrEditorFailed, fields[0], exitErr.ExitCode())
			}
			return "", fmt.Errorf("%w: %v", kerrors.ErrEditorFailed, err)
		}

		data, err := os.ReadFile(path) // #nosec G304 -- our own temporary file
		if err != nil {
			return "", kerrors.NewIOError("read", path, err)
		}
		return string(data), nil
	}
}
