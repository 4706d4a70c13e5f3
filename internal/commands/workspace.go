package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/export"
	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/logger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/validation"
)

// workspace is an opened tally workspace.
type workspace struct {
	root       string
	cfg        *config.Config
	log        zerolog.Logger
	categories *categories.Service
	rules      []model.Rule
	ledger     *ledger.Service
}

// openWorkspace loads the config, categories, and rules under dir and
// installs a logger built from the config unless --log-level was given.
func openWorkspace(cmd *cobra.Command, dir string) (*workspace, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if f := cmd.Flag("log-level"); f != nil && f.Changed {
		level = f.Value.String()
	}
	log, err := logger.Configure(cmd.ErrOrStderr(), level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	log = logger.WithFields(log, map[string]any{"workspace": cfg.Workspace.Name})
	cmd.SetContext(logger.WithContext(cmd.Context(), log))

	im := importer.New(importer.WithLogger(log))
	cats, err := categories.Load(config.Path(root, cfg.Files.Categories), im)
	if err != nil {
		return nil, err
	}
	rules, err := categories.LoadRules(config.Path(root, cfg.Files.Rules), importer.New(
		importer.WithLogger(log),
		importer.WithIDs(id.NewSequence("rule", 0)),
	))
	if err != nil {
		return nil, err
	}

	return &workspace{
		root:       root,
		cfg:        cfg,
		log:        log,
		categories: cats,
		rules:      rules,
		ledger:     ledger.NewService(config.Path(root, cfg.Files.LedgerDir), cats),
	}, nil
}

func (w *workspace) path(rel string) string {
	return config.Path(w.root, rel)
}

func (w *workspace) recurringPath(kind model.RecurringKind) string {
	if kind == model.RecurringBill {
		return w.path(w.cfg.Files.Bills)
	}
	return w.path(w.cfg.Files.Income)
}

// loadRecurring reads the workspace bills or income file. A missing file
// yields no definitions.
func (w *workspace) loadRecurring(kind model.RecurringKind) ([]model.Recurring, error) {
	return readRecurring(w.recurringPath(kind), kind, importer.New(importer.WithLogger(w.log)))
}

func (w *workspace) saveRecurring(kind model.RecurringKind, defs []model.Recurring) error {
	if err := validation.All(validation.Default(), defs); err != nil {
		return fmt.Errorf("validating %s: %w", kind, err)
	}
	c, err := export.Sink{}.Recurring(kind, defs, export.CSV)
	if err != nil {
		return err
	}
	return os.WriteFile(w.recurringPath(kind), append(c.Data, '\n'), 0o644)
}

func readRecurring(path string, kind model.RecurringKind, im *importer.Importer) ([]model.Recurring, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", kind, err)
	}

	var res importer.Result[model.Recurring]
	if kind == model.RecurringBill {
		res, err = im.Bills(string(data))
	} else {
		res, err = im.Income(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return res.Records, nil
}

// nextSeq returns the highest "<prefix>-NNNN" sequence among ids.
func nextSeq(prefix string, ids []string) int {
	n := 0
	for _, s := range ids {
		p, seq, err := id.Parse(s)
		if err == nil && p == prefix {
			n = max(n, seq)
		}
	}
	return n
}

func recurringKind(kind model.Kind) (model.RecurringKind, bool) {
	switch kind {
	case model.KindBills:
		return model.RecurringBill, true
	case model.KindIncome:
		return model.RecurringIncome, true
	}
	return "", false
}
