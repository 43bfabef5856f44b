package cli

import (
	"github.com/depot-labs/depot/internal/ui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report records whose directory no longer exists",
	Long: `Compare every record with the filesystem and list those whose path is
missing. Nothing is modified; run 'depot remove <name>' to drop a stale record.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry(cmd)
	if err != nil {
		return err
	}

	missing, err := reg.Check(cmd.Context())
	if err != nil {
		return err
	}

	p := ui.New(cmd.OutOrStdout())
	if len(missing) == 0 {
		p.OK("all recorded paths exist")
		return nil
	}
	for _, e := range missing {
		p.Warn("%s: %s is missing", e.Name, e.Path)
	}
	p.Info("%s with a missing path", p.Count(len(missing), "record", "records"))
	return nil
}
