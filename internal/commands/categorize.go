package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/model"
)

func newCategorizeCommand() *cobra.Command {
	var repoDir string
	var category string

	cmd := &cobra.Command{
		Use:   "categorize <description> <amount>",
		Short: "Show which category a transaction would be filed under",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := importer.ParseAmount(args[1])
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
			}

			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}

			txn := ws.categories.Engine(ws.rules).Apply(model.Transaction{
				Description: args[0],
				Amount:      amount,
				Category:    category,
			})

			source := "explicit"
			if txn.AutoCategorized {
				source = "auto"
			} else if category == "" {
				source = "default"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)", txn.Category, source)
			if txn.NeedWant != model.NeedWantNone {
				fmt.Fprintf(cmd.OutOrStdout(), " %s", txn.NeedWant)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")
	cmd.Flags().StringVar(&category, "category", "", "category already assigned to the transaction")

	return cmd
}
