package cli

import (
	"github.com/depot-labs/depot/internal/ui"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"uninstall"},
	Short:   "Remove an installed package or cloned repository",
	Long:    `Delete the directory recorded for <name> and drop its record.`,
	Args:    requireArgs(0, "name"),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry(cmd)
	if err != nil {
		return err
	}

	entry, err := reg.Remove(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	ui.New(cmd.OutOrStdout()).OK("removed %s (%s)", entry.Name, entry.Kind)
	return nil
}
