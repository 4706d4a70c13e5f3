package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/buildinfo"
	"github.com/cleared-dev/tally/internal/logger"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Household transaction import and budgeting",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.Configure(cmd.ErrOrStderr(), logLevel, logger.FormatConsole)
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides the workspace config")

	rootCmd.AddCommand(
		newInitCommand(),
		newImportCommand(),
		newCategorizeCommand(),
		newExpandCommand(),
		newPayCommand(),
		newScheduleCommand(),
		newExportCommand(),
	)

	return rootCmd
}
