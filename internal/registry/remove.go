package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/depot-labs/depot/internal/platform"
	"github.com/depot-labs/depot/internal/store"
)

// Remove deletes the named item's directory and its record. A record whose
// path is already gone, or lies outside the install root, is still removed
// but nothing is deleted from disk.
func (r *Registry) Remove(ctx context.Context, name string) (Entry, error) {
	var removed Entry
	err := r.withRecords(ctx, func(records store.Records) (bool, error) {
		rec, ok := records[name]
		if !ok {
			return false, fmt.Errorf("%w: %s", ErrNotFound, name)
		}

		switch _, err := os.Lstat(rec.Path); {
		case err != nil:
			r.logger.Warn("recorded path is missing, dropping record only", "name", name, "path", rec.Path)
		case !r.underInstallDir(rec.Path):
			r.logger.Warn("recorded path is outside the install root, dropping record only",
				"name", name, "path", rec.Path, "install_dir", r.paths.InstallDir)
		default:
			if err := platform.RemoveAll(rec.Path); err != nil {
				return false, fmt.Errorf("%w: %s: %w", ErrRemoveFailed, rec.Path, err)
			}
			r.logger.Info("removed directory", "name", name, "path", rec.Path)
		}

		delete(records, name)
		removed = Entry{Name: name, Record: rec}
		return true, nil
	})
	if err != nil {
		return Entry{}, err
	}
	return removed, nil
}

// underInstallDir reports whether path is strictly below the install root.
func (r *Registry) underInstallDir(path string) bool {
	rel, err := filepath.Rel(r.paths.InstallDir, filepath.Clean(path))
	if err != nil || rel == "." || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
