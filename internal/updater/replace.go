package updater

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/depot-labs/depot/internal/branding"
	"github.com/depot-labs/depot/internal/platform"
)

// verifyTimeout bounds how long the new binary may take to report its version.
const verifyTimeout = 5 * time.Second

// ReplaceBinary swaps the binary at newPath in for currentPath. The current
// binary is kept as a backup until the new one passes VerifyBinary; on any
// failure the backup is restored.
func ReplaceBinary(ctx context.Context, newPath, currentPath, expectedVersion string) error {
	if runtime.GOOS == "windows" {
		return fmt.Errorf("self-update is not supported on Windows. Download the latest release from https://github.com/%s/releases", branding.GitHubRepo())
	}

	info, err := os.Stat(currentPath)
	if err != nil {
		return fmt.Errorf("stat current binary: %w", err)
	}
	origPerm := info.Mode().Perm()

	backupPath := currentPath + ".backup"

	if err := os.Rename(currentPath, backupPath); err != nil {
		// Rename may fail across filesystems; try copy.
		if copyErr := copyFile(currentPath, backupPath); copyErr != nil {
			return fmt.Errorf("creating backup: %w", copyErr)
		}
		os.Remove(currentPath)
	}

	if err := os.Rename(newPath, currentPath); err != nil {
		if copyErr := copyFile(newPath, currentPath); copyErr != nil {
			_ = RollbackBinary(backupPath, currentPath)
			return fmt.Errorf("installing new binary: %w", copyErr)
		}
		os.Remove(newPath)
	}

	if err := platform.Chmod(currentPath, origPerm); err != nil {
		_ = RollbackBinary(backupPath, currentPath)
		return fmt.Errorf("restoring permissions: %w", err)
	}

	if err := VerifyBinary(ctx, currentPath, expectedVersion); err != nil {
		if rbErr := RollbackBinary(backupPath, currentPath); rbErr != nil {
			return fmt.Errorf("verification failed: %w; %w", err, rbErr)
		}
		return fmt.Errorf("verification failed, rolled back: %w", err)
	}

	os.Remove(backupPath)
	return nil
}

// VerifyBinary runs "<binary> version --json" and checks that it reports
// expectedVersion. An empty expectedVersion only checks that the output parses.
func VerifyBinary(ctx context.Context, binaryPath, expectedVersion string) error {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binaryPath, "version", "--json")
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("new binary timed out after %s", verifyTimeout)
	}
	if err != nil {
		return fmt.Errorf("new binary exited with error: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	var versionInfo map[string]string
	if err := json.Unmarshal(output, &versionInfo); err != nil {
		return fmt.Errorf("parsing version output: %w", err)
	}
	if expectedVersion != "" && !sameVersion(versionInfo["version"], expectedVersion) {
		return fmt.Errorf("new binary reports version %q, expected %q", versionInfo["version"], expectedVersion)
	}
	return nil
}

// RollbackBinary restores the backup to the current path.
func RollbackBinary(backupPath, currentPath string) error {
	if err := os.Rename(backupPath, currentPath); err != nil {
		if copyErr := copyFile(backupPath, currentPath); copyErr != nil {
			return fmt.Errorf("rollback failed: %w (original rename error: %v)", copyErr, err)
		}
		os.Remove(backupPath)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
