package cli

import (
	"github.com/depot-labs/depot/internal/ui"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <path-or-url>",
	Short: "Replace an installed package with the given archive",
	Long: `Remove the installed package named by the archive, then install the archive.
If the package is not installed this behaves like install.

The replacement is not transactional: if the new archive fails to install,
the old version stays removed.`,
	Args: requireArgs(0, "path-or-url"),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry(cmd)
	if err != nil {
		return err
	}

	entry, err := reg.Update(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	p := ui.New(cmd.OutOrStdout())
	p.OK("updated %s to %s %s", entry.Name, entry.Version, p.Dim(entry.Path))
	return nil
}
