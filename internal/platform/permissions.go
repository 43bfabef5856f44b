package platform

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// RemoveAll deletes path and everything below it. If the first attempt fails
// (typically on read-only entries) the owner write bit is restored on every
// entry and the delete is retried once.
func RemoveAll(path string) error {
	err := os.RemoveAll(path)
	if err == nil {
		return nil
	}

	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		mode := info.Mode().Perm() | 0o200
		if d.IsDir() {
			mode |= 0o700
		}
		// On Windows os.Chmod maps the owner write bit onto the read-only attribute.
		_ = os.Chmod(p, mode)
		return nil
	})

	return os.RemoveAll(path)
}
