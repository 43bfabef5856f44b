package cli

import (
	"github.com/depot-labs/depot/internal/ui"
	"github.com/spf13/cobra"
)

var cloneCmd = &cobra.Command{
	Use:   "clone <url> [dest]",
	Short: "Clone a git repository into the install directory",
	Long: `Check that <url> is reachable with git ls-remote, clone it into
<install_dir>/<dest> and record it. dest defaults to the last path segment
of the URL without ".git".`,
	Example: `  depot clone https://github.com/user/repo.git
  depot clone git@github.com:user/repo.git mirror`,
	Args: requireArgs(1, "url"),
	RunE: runClone,
}

func init() {
	rootCmd.AddCommand(cloneCmd)
}

func runClone(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry(cmd)
	if err != nil {
		return err
	}

	var dest string
	if len(args) > 1 {
		dest = args[1]
	}

	entry, err := reg.Clone(cmd.Context(), args[0], dest)
	if err != nil {
		return err
	}

	p := ui.New(cmd.OutOrStdout())
	p.OK("cloned %s into %s", entry.URL, p.Dim(entry.Path))
	return nil
}
