package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/recurring"
)

func newScheduleCommand() *cobra.Command {
	var repoDir string
	var frequency string
	var start string
	var category string
	var memo string

	cmd := &cobra.Command{
		Use:       "schedule <bill|income> <name> <amount>",
		Short:     "Add a recurring bill or income definition",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{string(model.RecurringBill), string(model.RecurringIncome)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := model.RecurringKind(strings.ToLower(args[0]))
			if kind != model.RecurringBill && kind != model.RecurringIncome {
				return fmt.Errorf("kind must be bill or income, got %q", args[0])
			}
			amount, err := importer.ParseAmount(args[2])
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
			}

			now := time.Now().UTC()
			if start != "" {
				if now, err = model.ParseDate(start); err != nil {
					return fmt.Errorf("parsing start date: %w", err)
				}
			}

			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}
			defs, err := ws.loadRecurring(kind)
			if err != nil {
				return err
			}
			ids := make([]string, len(defs))
			for i, d := range defs {
				ids[i] = d.ID
			}

			def := recurring.NewDraft(kind, now)
			def.ID = id.Format(string(kind), nextSeq(string(kind), ids)+1)
			def.Name = args[1]
			def.Amount = amount.Abs()
			def.Frequency = model.Frequency(strings.ToLower(frequency))
			def.Memo = memo
			if category != "" {
				def.Category = category
			}

			if err := ws.saveRecurring(kind, append(defs, def)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s %s (%s) from %s\n",
				kind, def.Name, def.Frequency, def.StartDate.Format(model.DateFormat))
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")
	cmd.Flags().StringVar(&frequency, "frequency", string(model.Monthly), "weekly, bi-weekly, monthly, quarterly, or yearly")
	cmd.Flags().StringVar(&start, "start", "", "first date, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&memo, "memo", "", "memo")

	return cmd
}
