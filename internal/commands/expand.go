package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/logger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/recurring"
	"github.com/cleared-dev/tally/internal/validation"
)

func newExpandCommand() *cobra.Command {
	var repoDir string
	var kind string
	var year, month int

	cmd := &cobra.Command{
		Use:   "expand [file]",
		Short: "List the bill and income occurrences falling in a month",
		Long: "Expand a bills or income file into dated occurrences for one month. " +
			"Without a file, the workspace's bills and income are expanded.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("month must be 1-12, got %d", month)
			}

			var defs []model.Recurring
			if len(args) == 1 {
				var err error
				defs, err = readRecurringFile(cmd, args[0], model.Kind(strings.ToLower(kind)))
				if err != nil {
					return err
				}
			} else {
				ws, err := openWorkspace(cmd, repoDir)
				if err != nil {
					return err
				}
				for _, rk := range []model.RecurringKind{model.RecurringBill, model.RecurringIncome} {
					d, err := ws.loadRecurring(rk)
					if err != nil {
						return err
					}
					defs = append(defs, d...)
				}
			}

			log := logger.FromContext(cmd.Context())
			for _, d := range defs {
				if err := validation.Default().Struct(d); err != nil {
					log.Warn().Str("id", d.ID).Err(err).Msg("definition will not expand as expected")
				}
			}

			return printOccurrences(cmd.OutOrStdout(), recurring.ExpandAll(defs, year, time.Month(month)))
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")
	cmd.Flags().StringVar(&kind, "kind", "", "bills or income (default: detected from the file name)")
	cmd.Flags().IntVar(&year, "year", 0, "year (default: current)")
	cmd.Flags().IntVar(&month, "month", 0, "month 1-12 (default: current)")

	return cmd
}

func readRecurringFile(cmd *cobra.Command, path string, kind model.Kind) ([]model.Recurring, error) {
	if kind == "" {
		kind = importer.DetectKind(filepath.Base(path))
	}
	rk, ok := recurringKind(kind)
	if !ok {
		return nil, fmt.Errorf("%s is not a bills or income file; use --kind", filepath.Base(path))
	}
	im := importer.New(
		importer.WithLogger(logger.FromContext(cmd.Context())),
		importer.WithIDs(id.NewSequence(string(rk), 0)),
	)
	return readRecurring(path, rk, im)
}

func printOccurrences(out io.Writer, occs []model.Occurrence) error {
	if len(occs) == 0 {
		fmt.Fprintln(out, "No occurrences")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	var bills, income []model.Occurrence
	for _, o := range occs {
		status := ""
		if o.Kind == model.RecurringBill {
			bills = append(bills, o)
			status = "due"
			if o.Paid {
				status = "paid"
			}
		} else {
			income = append(income, o)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			o.Date.Format(model.DateFormat), o.Kind, o.Name, o.Amount.StringFixed(2), o.Category, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Bills: %s  Income: %s\n",
		recurring.MonthTotal(bills).StringFixed(2), recurring.MonthTotal(income).StringFixed(2))
	return nil
}

func newPayCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "pay <bill> <date>",
		Short: "Mark a bill occurrence as paid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := model.ParseDate(args[1])
			if err != nil {
				return fmt.Errorf("parsing date: %w", err)
			}

			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}
			bills, err := ws.loadRecurring(model.RecurringBill)
			if err != nil {
				return err
			}

			i := findRecurring(bills, args[0])
			if i < 0 {
				return fmt.Errorf("no bill named %q", args[0])
			}
			if len(recurring.Expand(bills[i], date.Year(), date.Month())) == 0 {
				ws.log.Warn().Str("bill", bills[i].Name).Str("date", args[1]).Msg("bill is not due that month")
			}
			bills[i] = recurring.MarkPaid(bills[i], date)

			if err := ws.saveRecurring(model.RecurringBill, bills); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s paid on %s\n", bills[i].Name, args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")
	return cmd
}

func findRecurring(defs []model.Recurring, key string) int {
	for i, d := range defs {
		if d.ID == key || strings.EqualFold(d.Name, key) {
			return i
		}
	}
	return -1
}
