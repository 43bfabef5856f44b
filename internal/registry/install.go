package registry

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/depot-labs/depot/internal/platform"
	"github.com/depot-labs/depot/internal/store"
)

// Install extracts the artifact at source (a local path or an http(s) URL)
// into <install root>/<name> and records it as a package.
func (r *Registry) Install(ctx context.Context, source string) (Entry, error) {
	filename, err := artifactFileName(source)
	if err != nil {
		return Entry{}, err
	}
	name, version, err := ParseArtifactName(filename)
	if err != nil {
		return Entry{}, err
	}

	local := source
	if IsRemote(source) {
		r.logger.Info("downloading artifact", "url", source, "staging", r.paths.StagingDir)
		local, err = r.fetcher.Download(ctx, source, r.paths.StagingDir)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
		}
		defer func() {
			if err := os.Remove(local); err != nil && !os.IsNotExist(err) {
				r.logger.Warn("removing staged artifact", "path", local, "error", err)
			}
		}()
	}

	dest := filepath.Join(r.paths.InstallDir, name)
	entry := Entry{
		Name:   name,
		Record: store.Record{Kind: store.KindPackage, Version: version, Path: dest},
	}

	extracted := false
	err = r.withRecords(ctx, func(records store.Records) (bool, error) {
		if _, ok := records[name]; ok {
			return false, fmt.Errorf("%w: %s", ErrAlreadyInstalled, name)
		}
		if _, err := os.Lstat(dest); err == nil {
			return false, fmt.Errorf("%w: %s is present on disk but not recorded", ErrAlreadyExists, dest)
		}

		if err := r.extract(local, dest); err != nil {
			return false, err
		}
		extracted = true

		records[name] = entry.Record
		return true, nil
	})
	if err != nil {
		if extracted {
			// Extraction succeeded but the record could not be written.
			r.cleanup(dest)
		}
		return Entry{}, err
	}

	r.logger.Info("installed package", "name", name, "version", version, "path", dest)
	return entry, nil
}

// extract opens the archive before touching dest so an unreadable artifact
// leaves nothing behind. A failed extraction removes dest again.
func (r *Registry) extract(archive, dest string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}
	defer zr.Close()

	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrExtractFailed, dest, err)
	}
	if err := extractZip(&zr.Reader, dest); err != nil {
		r.cleanup(dest)
		return fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}
	return nil
}

func (r *Registry) cleanup(dir string) {
	if err := platform.RemoveAll(dir); err != nil {
		r.logger.Warn("cleaning up partial install", "path", dir, "error", err)
	}
}

// Update replaces an installed package with the artifact at source. When the
// package is not installed it behaves exactly like Install.
//
// The remove and install steps are independent: if the install fails after
// the old version was removed, the package stays uninstalled.
func (r *Registry) Update(ctx context.Context, source string) (Entry, error) {
	filename, err := artifactFileName(source)
	if err != nil {
		return Entry{}, err
	}
	name, _, err := ParseArtifactName(filename)
	if err != nil {
		return Entry{}, err
	}

	installed, err := r.has(ctx, name)
	if err != nil {
		return Entry{}, err
	}
	if !installed {
		r.logger.Info("package not installed, installing fresh", "name", name)
		return r.Install(ctx, source)
	}

	if _, err := r.Remove(ctx, name); err != nil {
		return Entry{}, err
	}
	entry, err := r.Install(ctx, source)
	if err != nil {
		r.logger.Warn("update left package uninstalled", "name", name, "error", err)
		return Entry{}, err
	}
	return entry, nil
}

// has reports whether a record named name exists.
func (r *Registry) has(ctx context.Context, name string) (bool, error) {
	found := false
	err := r.withRecords(ctx, func(records store.Records) (bool, error) {
		_, found = records[name]
		return false, nil
	})
	return found, err
}
