package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndille/ghia/internal/render"
)

func NewHistoryCmd() *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			records, err := app.Store.ListAnalyses(limit)
			if err != nil {
				return err
			}

			if jsonOut {
				payload := map[string]any{"analyses": records}
				data, err := json.MarshalIndent(payload, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No analyses yet.")
				return nil
			}
			for _, record := range records {
				band := "?"
				var summary string
				if analysis, err := decodeRecord(record.ResultJSON); err == nil {
					band = string(render.SeverityBand(analysis.PriorityScore))
					summary = analysis.Summary
				}
				fmt.Fprintf(cmd.OutOrStdout(), "#%d %s issue %d (%s)\n", record.ID, record.RepoURL, record.IssueNumber, band)
				fmt.Fprintf(cmd.OutOrStdout(), "  At: %s\n", record.RequestedAt.Format(time.RFC3339))
				if summary != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", summary)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max results")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}
