package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/depot-labs/depot/internal/branding"
	"github.com/depot-labs/depot/internal/ui"
	"github.com/depot-labs/depot/internal/updater"
	"github.com/spf13/cobra"
)

var (
	selfUpdateCheck bool
	selfUpdateForce bool
)

func init() {
	selfUpdateCmd.Flags().BoolVar(&selfUpdateCheck, "check", false, "Only check for updates, don't install")
	selfUpdateCmd.Flags().BoolVar(&selfUpdateForce, "force", false, "Reinstall even if already on the latest version")
	rootCmd.AddCommand(selfUpdateCmd)
}

var selfUpdateCmd = &cobra.Command{
	Use:   "self-update",
	Short: "Update " + branding.CLIName() + " to the latest release",
	Long: `Query the release endpoint (release_url) for the latest version, download
the binary for this platform from binary_url and replace the running
executable. The previous binary is restored if the new one fails to run.`,
	Args: cobra.NoArgs,
	RunE: runSelfUpdate,
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	paths, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	u := updater.New(buildVersion,
		updater.WithReleaseURL(paths.ReleaseURL),
		updater.WithBinaryURL(paths.BinaryURL),
		updater.WithLogger(logger),
	)

	status := ui.New(cmd.ErrOrStderr())
	out := ui.New(cmd.OutOrStdout())

	status.Info("checking for updates")
	release, err := u.LatestRelease(cmd.Context())
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}

	available, err := updater.IsUpdateAvailable(u.CurrentVersion(), release.Version)
	if err != nil {
		return fmt.Errorf("comparing versions: %w", err)
	}

	if selfUpdateCheck {
		if available {
			out.Info("update available: %s -> %s", u.CurrentVersion(), release.Version)
		} else {
			out.OK("already on the latest version (%s)", u.CurrentVersion())
		}
		return nil
	}

	if !available && !selfUpdateForce {
		out.OK("already on the latest version (%s)", u.CurrentVersion())
		return nil
	}

	current, err := os.Executable()
	if err != nil {
		return fmt.Errorf("finding current binary: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(current); err == nil {
		current = resolved
	}

	status.Info("downloading %s %s for %s/%s", branding.CLIName(), release.Version, runtime.GOOS, runtime.GOARCH)
	if err := u.Apply(cmd.Context(), release, current); err != nil {
		return err
	}

	out.OK("updated to %s", release.Version)
	return nil
}
