package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/categorize"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/export"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/logger"
	"github.com/cleared-dev/tally/internal/model"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tally workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, name); err != nil {
				return err
			}
			logger.FromContext(cmd.Context()).Debug().Str("dir", absDir).Msg("workspace initialized")
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized tally workspace at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "workspace name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(dir, name string) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	cfg := config.Default(name)

	dirs := []string{
		cfg.Files.ImportDir,
		filepath.Join(cfg.Files.ImportDir, importer.ProcessedDir),
		filepath.Dir(cfg.Files.ImportLog),
		cfg.Files.LedgerDir,
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	svc := categories.NewService(categorize.DefaultCategories())
	if err := svc.Save(filepath.Join(dir, cfg.Files.Categories)); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}

	if err := categories.SaveRules(filepath.Join(dir, cfg.Files.Rules), nil); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	sink := export.Sink{}
	for kind, rel := range map[model.RecurringKind]string{
		model.RecurringBill:   cfg.Files.Bills,
		model.RecurringIncome: cfg.Files.Income,
	} {
		c, err := sink.Recurring(kind, nil, export.CSV)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, rel), append(c.Data, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, cfg.Files.ImportDir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	return nil
}
