package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndille/ghia/internal/analyzer"
	"github.com/ndille/ghia/internal/render"
)

func NewExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the most recent analysis to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			record, err := app.Store.LastAnalysis()
			if err != nil {
				if err == sql.ErrNoRows {
					return fmt.Errorf("no analyses yet; run `ghia analyze` first")
				}
				return err
			}
			analysis, err := decodeRecord(record.ResultJSON)
			if err != nil {
				return err
			}

			path := outPath
			if path == "" {
				path = exportFilename(analyzer.IssueRef{RepoURL: record.RepoURL, IssueNumber: record.IssueNumber})
			}
			if err := render.ExportJSON(analysis, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported analysis of %s issue %d to %s\n", record.RepoURL, record.IssueNumber, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default ghia-<repo>-<issue>.json)")
	return cmd
}

func decodeRecord(resultJSON string) (analyzer.Analysis, error) {
	var analysis analyzer.Analysis
	if err := json.Unmarshal([]byte(resultJSON), &analysis); err != nil {
		return analyzer.Analysis{}, fmt.Errorf("failed to decode stored analysis: %w", err)
	}
	return analysis, nil
}
