package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/export"
	"github.com/cleared-dev/tally/internal/model"
)

func newExportCommand() *cobra.Command {
	var repoDir string
	var outDir string
	var format string
	var year, month int

	cmd := &cobra.Command{
		Use:   "export <transactions|categories|rules|bills|income>",
		Short: "Export workspace records as CSV or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}

			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}

			c, err := ws.export(export.New(now), model.Kind(strings.ToLower(args[0])), f, year, time.Month(month))
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = ws.root
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating output dir: %w", err)
			}
			path := filepath.Join(outDir, c.Filename)
			if err := os.WriteFile(path, c.Data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", c.Filename, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: workspace root)")
	cmd.Flags().StringVar(&format, "format", string(export.CSV), "csv or json")
	cmd.Flags().IntVar(&year, "year", 0, "ledger year for transactions (default: current)")
	cmd.Flags().IntVar(&month, "month", 0, "ledger month for transactions (default: current)")

	return cmd
}

func (w *workspace) export(sink export.Sink, kind model.Kind, f export.Format, year int, month time.Month) (export.Content, error) {
	switch kind {
	case model.KindTransactions:
		if month < time.January || month > time.December {
			return export.Content{}, fmt.Errorf("month must be 1-12, got %d", month)
		}
		txns, err := w.ledger.ReadMonth(year, month)
		if err != nil {
			return export.Content{}, err
		}
		w.log.Debug().Int("count", len(txns)).Int("year", year).Int("month", int(month)).Msg("exporting ledger month")
		return sink.Transactions(txns, f)
	case model.KindCategories:
		return sink.Categories(w.categories.All(), f)
	case model.KindRules:
		return sink.Rules(w.rules, f)
	}

	rk, ok := recurringKind(kind)
	if !ok {
		return export.Content{}, fmt.Errorf("unknown record kind %q", kind)
	}
	defs, err := w.loadRecurring(rk)
	if err != nil {
		return export.Content{}, err
	}
	return sink.Recurring(rk, defs, f)
}
