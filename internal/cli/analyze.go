package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ndille/ghia/internal/analyzer"
	"github.com/ndille/ghia/internal/render"
	"github.com/ndille/ghia/internal/validate"
)

func NewAnalyzeCmd() *cobra.Command {
	var format string
	var exportPath string
	var timeoutSeconds int

	cmd := &cobra.Command{
		Use:   "analyze <repo-url|OWNER/REPO#N> [issue-number]",
		Short: "Analyze a GitHub issue with the backend service",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}

			ref, err := parseArgs(args)
			if err != nil {
				return err
			}

			timeout := app.Timeout
			if timeoutSeconds > 0 {
				timeout = time.Duration(timeoutSeconds) * time.Second
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			analysis, raw, err := app.Client.Analyze(ctx, ref)
			if err != nil {
				var reqErr *analyzer.RequestError
				if errors.As(err, &reqErr) {
					fmt.Fprint(cmd.OutOrStdout(), render.RequestError(reqErr))
				}
				return err
			}

			if err := app.Store.SaveAnalysis(ref.RepoURL, ref.IssueNumber, raw); err != nil {
				app.Log.Warn("failed to record analysis in history", zap.Error(err))
			}

			out, err := renderFormat(analysis, format)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			if exportPath != "" {
				if err := render.ExportJSON(analysis, exportPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported analysis to %s\n", exportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "overview", "overview|report|json")
	cmd.Flags().StringVar(&exportPath, "export", "", "Also write the raw JSON dump to FILE")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "Request timeout in seconds")
	return cmd
}

// parseArgs accepts either OWNER/REPO#N shorthand or a repository URL plus
// an issue number. Shorthand expansion happens before validation; the
// validator rules then apply in order.
func parseArgs(args []string) (analyzer.IssueRef, error) {
	if repoURL, number, ok := validate.ExpandShorthand(args[0]); ok {
		if len(args) > 1 {
			return analyzer.IssueRef{}, fmt.Errorf("issue number given twice: %s and %s", args[0], args[1])
		}
		return validate.IssueRef(repoURL, number)
	}
	if len(args) < 2 {
		return analyzer.IssueRef{}, fmt.Errorf("issue number is required (or use OWNER/REPO#N)")
	}
	number, err := strconv.Atoi(args[1])
	if err != nil {
		return analyzer.IssueRef{}, fmt.Errorf("invalid issue number %q", args[1])
	}
	return validate.IssueRef(args[0], number)
}

func renderFormat(analysis analyzer.Analysis, format string) (string, error) {
	switch format {
	case "overview", "":
		return render.Overview(analysis), nil
	case "report", "md":
		return render.Report(analysis), nil
	case "json":
		return render.RawJSON(analysis)
	default:
		return "", fmt.Errorf("unknown format %q; use overview, report or json", format)
	}
}
