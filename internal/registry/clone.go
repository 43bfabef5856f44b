package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/depot-labs/depot/internal/store"
)

// DefaultCloneName derives a directory name from a repository URL: the last
// path segment with any ".git" suffix removed. Both URL and scp-style
// (git@host:owner/repo.git) forms are handled.
func DefaultCloneName(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if i := strings.LastIndexAny(trimmed, "/:"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return strings.TrimSuffix(trimmed, ".git")
}

// Clone verifies that url is reachable, clones it into
// <install root>/<dest> and records it as a repository. An empty dest uses
// DefaultCloneName(url).
func (r *Registry) Clone(ctx context.Context, url, dest string) (Entry, error) {
	if dest == "" {
		dest = DefaultCloneName(url)
	}
	if err := validateName(dest); err != nil {
		return Entry{}, err
	}

	path := filepath.Join(r.paths.InstallDir, dest)
	entry := Entry{
		Name:   dest,
		Record: store.Record{Kind: store.KindRepository, URL: url, Path: path},
	}

	err := r.withRecords(ctx, func(records store.Records) (bool, error) {
		if _, ok := records[dest]; ok {
			return false, fmt.Errorf("%w: %s is already recorded", ErrAlreadyExists, dest)
		}
		if _, err := os.Lstat(path); err == nil {
			return false, fmt.Errorf("%w: %s", ErrAlreadyExists, path)
		}

		if err := r.vcs.LsRemote(ctx, url); err != nil {
			return false, fmt.Errorf("%w: %s: %w", ErrUnreachable, url, err)
		}

		if err := os.MkdirAll(r.paths.InstallDir, 0755); err != nil {
			return false, fmt.Errorf("%w: creating %s: %w", ErrCloneFailed, r.paths.InstallDir, err)
		}
		r.logger.Info("cloning repository", "url", url, "path", path)
		if err := r.vcs.Clone(ctx, url, path); err != nil {
			// No record is written; drop whatever git left behind.
			r.cleanup(path)
			return false, fmt.Errorf("%w: %s: %w", ErrCloneFailed, url, err)
		}

		records[dest] = entry.Record
		return true, nil
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}
