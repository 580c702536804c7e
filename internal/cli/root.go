package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var configPath string
	var logLevel string

	root := &cobra.Command{
		Use:           "ghia",
		Short:         "AI-powered GitHub issue assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(configPath, logLevel)
			if err != nil {
				return err
			}
			cmd.SetContext(withApp(context.Background(), app))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Override config path")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug|info|warn|error)")

	root.AddCommand(NewAnalyzeCmd())
	root.AddCommand(NewTUICmd())
	root.AddCommand(NewHistoryCmd())
	root.AddCommand(NewExportCmd())
	root.AddCommand(NewExamplesCmd())
	root.AddCommand(NewDoctorCmd())
	root.AddCommand(NewConfigCmd())

	return root
}
