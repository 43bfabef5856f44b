package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/depot-labs/depot/internal/registry"
	"github.com/depot-labs/depot/internal/store"
	"github.com/depot-labs/depot/internal/ui"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed packages and cloned repositories",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry(cmd)
	if err != nil {
		return err
	}

	entries, err := reg.List(cmd.Context())
	if err != nil {
		return err
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}

	p := ui.New(cmd.OutOrStdout())
	if len(entries) == 0 {
		p.Info("nothing installed yet")
		return nil
	}
	if err := printListTable(cmd, entries); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	p.Info("%s", p.Count(len(entries), "entry", "entries"))
	return nil
}

func printListTable(cmd *cobra.Command, entries []registry.Entry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tSOURCE\tPATH")
	for _, e := range entries {
		source := e.Version
		if e.Kind == store.KindRepository {
			source = e.URL
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Kind, source, e.Path)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []registry.Entry) error {
	if entries == nil {
		entries = []registry.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
