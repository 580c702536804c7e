package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndille/ghia/internal/analyzer"
	"github.com/ndille/ghia/internal/render"
)

func NewDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check backend, schema and history store",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			fmt.Fprintln(cmd.OutOrStdout(), "ghia doctor")

			if _, err := os.Stat(analyzer.DefaultSchemaPath()); err != nil {
				return fmt.Errorf("response schema not found at %s", analyzer.DefaultSchemaPath())
			}
			fmt.Fprintln(cmd.OutOrStdout(), "- schema: ok")

			if _, err := app.Store.ListAnalyses(1); err != nil {
				return fmt.Errorf("history store check failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "- history db: ok")

			if err := app.Client.Ping(ctx); err != nil {
				var reqErr *analyzer.RequestError
				if errors.As(err, &reqErr) {
					fmt.Fprintf(cmd.OutOrStdout(), "- backend: failed\n%s", render.RequestError(reqErr))
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "- backend: ok (%s)\n", app.Config.Backend.BaseURL)

			fmt.Fprintln(cmd.OutOrStdout(), "doctor checks passed")
			return nil
		},
	}
	return cmd
}
