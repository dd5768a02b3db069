package store

import (
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
)

// writeAtomic replaces path with data. The destination is not touched
// until the final rename; on any failure the temporary file is removed.
func (s *Store) writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return kerrors.NewIOError("create temporary file", dir, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return kerrors.NewIOError("write", tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return kerrors.NewIOError("sync", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return kerrors.NewIOError("close", tmpPath, err)
	}
	if err = os.Chmod(tmpPath, 0600); err != nil {
		return kerrors.NewIOError("chmod", tmpPath, err)
	}

	if s.beforeRename != nil {
		if err = s.beforeRename(tmpPath); err != nil {
			return err
		}
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return kerrors.NewIOError("rename", path, err)
	}

	syncDir(dir)
	return nil
}

// syncDir flushes the rename to disk where the platform allows it.
func syncDir(dir string) {
	d, err := os.Open(dir) // #nosec G304 -- profile folder
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
