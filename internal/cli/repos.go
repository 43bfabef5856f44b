package cli

import (
	"fmt"

	"github.com/depot-labs/depot/internal/ui"
	"github.com/spf13/cobra"
)

var listReposCheck bool

var addRepoCmd = &cobra.Command{
	Use:   "add-repo <url>",
	Short: "Add a source repository to the list",
	Long:  `Verify <url> with git ls-remote and append it to the repository list.`,
	Args:  requireArgs(0, "url"),
	RunE:  runAddRepo,
}

var removeRepoCmd = &cobra.Command{
	Use:   "remove-repo <url>",
	Short: "Remove a source repository from the list",
	Args:  requireArgs(0, "url"),
	RunE:  runRemoveRepo,
}

var listReposCmd = &cobra.Command{
	Use:   "list-repos",
	Short: "List source repositories",
	Args:  cobra.NoArgs,
	RunE:  runListRepos,
}

func init() {
	listReposCmd.Flags().BoolVar(&listReposCheck, "check", false, "Probe every repository with git ls-remote")
	rootCmd.AddCommand(addRepoCmd)
	rootCmd.AddCommand(removeRepoCmd)
	rootCmd.AddCommand(listReposCmd)
}

func runAddRepo(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry(cmd)
	if err != nil {
		return err
	}
	if err := reg.AddRepo(cmd.Context(), args[0]); err != nil {
		return err
	}
	ui.New(cmd.OutOrStdout()).OK("added repository %s", args[0])
	return nil
}

func runRemoveRepo(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry(cmd)
	if err != nil {
		return err
	}
	if err := reg.RemoveRepo(cmd.Context(), args[0]); err != nil {
		return err
	}
	ui.New(cmd.OutOrStdout()).OK("removed repository %s", args[0])
	return nil
}

func runListRepos(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry(cmd)
	if err != nil {
		return err
	}

	p := ui.New(cmd.OutOrStdout())
	if !listReposCheck {
		urls, err := reg.ListRepos(cmd.Context())
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			p.Info("no repositories listed")
			return nil
		}
		for _, u := range urls {
			fmt.Fprintln(cmd.OutOrStdout(), u)
		}
		return nil
	}

	statuses, err := reg.CheckRepos(cmd.Context())
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		p.Info("no repositories listed")
		return nil
	}
	unreachable := 0
	for _, s := range statuses {
		if s.Reachable {
			p.OK("%s", s.URL)
			continue
		}
		unreachable++
		p.Warn("%s unreachable", s.URL)
	}
	p.Info("%s unreachable out of %s", p.Count(unreachable, "repository", "repositories"), p.Number(len(statuses)))
	return nil
}
