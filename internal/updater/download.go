package updater

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/depot-labs/depot/internal/branding"
	"github.com/depot-labs/depot/internal/platform"
)

// BinaryName is the file name of the executable on the running platform.
func BinaryName() string {
	if runtime.GOOS == "windows" {
		return branding.CLIName() + ".exe"
	}
	return branding.CLIName()
}

// DownloadBinary fetches the platform binary into destDir and marks it
// executable. It returns the downloaded path.
func (u *Updater) DownloadBinary(ctx context.Context, destDir string) (string, error) {
	dest := filepath.Join(destDir, BinaryName())
	u.logger.Info("downloading binary", "url", u.binaryURL)
	path, err := u.downloader.DownloadTo(ctx, u.binaryURL, dest)
	if err != nil {
		return "", err
	}
	if err := platform.Chmod(path, 0755); err != nil {
		return "", fmt.Errorf("marking %s executable: %w", path, err)
	}
	return path, nil
}

// Apply downloads release and installs it over the executable at currentPath.
func (u *Updater) Apply(ctx context.Context, release *Release, currentPath string) error {
	tmpDir, err := os.MkdirTemp("", branding.CLIName()+"-update-*")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	binPath, err := u.DownloadBinary(ctx, tmpDir)
	if err != nil {
		return fmt.Errorf("downloading binary: %w", err)
	}

	u.logger.Info("replacing binary", "path", currentPath, "version", release.Version)
	return ReplaceBinary(ctx, binPath, currentPath, release.Version)
}
