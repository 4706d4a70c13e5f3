package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/errs"
	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/importlog"
	"github.com/cleared-dev/tally/internal/model"
)

func newImportCommand() *cobra.Command {
	var repoDir string
	var kind string
	var pending bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import transactions, categories, rules, bills, or income",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pending == (len(args) == 1) {
				return fmt.Errorf("give either a file or --pending")
			}

			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}

			if pending {
				return runImportPending(cmd.OutOrStdout(), ws, time.Now().UTC())
			}
			_, err = runImport(cmd.OutOrStdout(), ws, args[0], model.Kind(strings.ToLower(kind)), time.Now().UTC())
			return err
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")
	cmd.Flags().StringVar(&kind, "kind", "", "record kind (default: detected from the file name)")
	cmd.Flags().BoolVar(&pending, "pending", false, "import every file waiting in the import directory")

	return cmd
}

// runImportPending imports each detected file in the import directory and
// moves it to processed/. Files of unknown kind are left in place.
func runImportPending(out io.Writer, ws *workspace, now time.Time) error {
	dir := ws.path(ws.cfg.Files.ImportDir)
	files, err := importer.Scan(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No files to import")
		return nil
	}

	for _, f := range files {
		if f.Kind == "" {
			ws.log.Warn().Str("file", f.Name).Msg("skipping file of unknown kind")
			continue
		}
		if _, err := runImport(out, ws, f.Path, f.Kind, now); err != nil {
			return fmt.Errorf("importing %s: %w", f.Name, err)
		}
		if err := importer.MarkProcessed(dir, f.Name); err != nil {
			return err
		}
	}
	return nil
}

// runImport imports one file into the workspace and records it in the
// import log.
func runImport(out io.Writer, ws *workspace, path string, kind model.Kind, now time.Time) (importlog.Entry, error) {
	name := filepath.Base(path)
	if kind == "" {
		kind = importer.DetectKind(name)
	}
	if kind == "" {
		return importlog.Entry{}, fmt.Errorf("cannot detect record kind of %s; use --kind", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return importlog.Entry{}, fmt.Errorf("reading %s: %w", name, err)
	}

	alloc, err := ws.allocator(kind)
	if err != nil {
		return importlog.Entry{}, err
	}
	log := ws.log.With().Str("file", name).Str("kind", string(kind)).Logger()
	im := importer.New(importer.WithIDs(alloc), importer.WithNow(now), importer.WithLogger(log))

	batch, err := importer.DefaultRegistry().Import(im, kind, string(data))
	if err != nil {
		return importlog.Entry{}, err
	}

	entry := importlog.Entry{
		Timestamp: now,
		File:      name,
		Kind:      kind,
		Records:   batch.Len(),
		Issues:    len(batch.Issues),
	}
	for _, is := range batch.Issues {
		if is.Action == errs.Dropped {
			entry.Dropped++
		}
	}

	if entry.Months, err = ws.store(batch); err != nil {
		return importlog.Entry{}, err
	}

	if err := importlog.Append(ws.path(ws.cfg.Files.ImportLog), []importlog.Entry{entry}); err != nil {
		log.Warn().Err(err).Msg("failed to write import log")
	}
	log.Info().Int("records", entry.Records).Int("issues", entry.Issues).Int("dropped", entry.Dropped).Msg("import complete")

	printSummary(out, entry, batch.Issues)
	return entry, nil
}

// allocator returns the ID allocator for kind, continuing after the IDs the
// workspace already holds.
func (w *workspace) allocator(kind model.Kind) (id.Allocator, error) {
	switch kind {
	case model.KindTransactions:
		if w.cfg.IDs.Scheme == "uuid" {
			return id.UUID{}, nil
		}
		start, err := w.ledger.MaxSeq(w.cfg.IDs.Prefix)
		if err != nil {
			return nil, err
		}
		return w.cfg.IDs.Allocator(start), nil
	case model.KindRules:
		ids := make([]string, len(w.rules))
		for i, r := range w.rules {
			ids[i] = r.ID
		}
		return id.NewSequence("rule", nextSeq("rule", ids)), nil
	}

	if rk, ok := recurringKind(kind); ok {
		defs, err := w.loadRecurring(rk)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(defs))
		for i, d := range defs {
			ids[i] = d.ID
		}
		return id.NewSequence(string(rk), nextSeq(string(rk), ids)), nil
	}
	return id.UUID{}, nil
}

// store writes a batch into the workspace. Transactions are categorized and
// appended to the ledger; the ledger months written are returned.
func (w *workspace) store(b importer.Batch) ([]string, error) {
	switch b.Kind {
	case model.KindTransactions:
		txns := w.categories.Engine(w.rules).ApplyAll(b.Transactions)
		months, err := w.ledger.Append(txns)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(months))
		for i, m := range months {
			names[i] = m.String()
		}
		return names, nil

	case model.KindCategories:
		for _, c := range b.Categories {
			if w.categories.Exists(c.Name) {
				w.log.Warn().Str("category", c.Name).Msg("category already exists, skipping")
				continue
			}
			if err := w.categories.Add(c); err != nil {
				return nil, err
			}
		}
		return nil, w.categories.Save(w.path(w.cfg.Files.Categories))

	case model.KindRules:
		w.rules = append(w.rules, b.Rules...)
		return nil, categories.SaveRules(w.path(w.cfg.Files.Rules), w.rules)
	}

	rk, _ := recurringKind(b.Kind)
	defs, err := w.loadRecurring(rk)
	if err != nil {
		return nil, err
	}
	return nil, w.saveRecurring(rk, append(defs, b.Recurring...))
}

func printSummary(out io.Writer, e importlog.Entry, issues []errs.Issue) {
	fmt.Fprintf(out, "Imported %d %s from %s", e.Records, e.Kind, e.File)
	if len(issues) > 0 {
		fmt.Fprintf(out, " (%d issues, %d dropped)", e.Issues, e.Dropped)
	}
	fmt.Fprintln(out)
	if len(e.Months) > 0 {
		fmt.Fprintf(out, "  ledger months: %s\n", strings.Join(e.Months, ", "))
	}
	for _, is := range issues {
		fmt.Fprintf(out, "  %s\n", is.Error())
	}
}
