package cli

import (
	"github.com/depot-labs/depot/internal/ui"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <path-or-url>",
	Short: "Install a package archive",
	Long: `Install a package from a local archive or an http(s) URL.

The archive must be named <name>-<version>.mpkg.zip or <name>-<version>.art.
Its contents are extracted into <install_dir>/<name> and recorded.`,
	Example: `  depot install ./hello-1.0.mpkg.zip
  depot install https://example.com/pkg/app-1.2.art`,
	Args: requireArgs(0, "path-or-url"),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry(cmd)
	if err != nil {
		return err
	}

	entry, err := reg.Install(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	p := ui.New(cmd.OutOrStdout())
	p.OK("installed %s %s %s", entry.Name, entry.Version, p.Dim(entry.Path))
	return nil
}
