package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewExamplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "List quick-start example issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			if len(app.Config.Examples) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No examples configured.")
				return nil
			}
			for _, example := range app.Config.Examples {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s issue %d\n", example.Name, example.RepoURL, example.IssueNumber)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "In the TUI, ctrl+e cycles through these to pre-fill the form.")
			return nil
		},
	}
	return cmd
}
