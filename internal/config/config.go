package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/validation"
)

// FileName is the workspace configuration file.
const FileName = "tally.yaml"

// EnvPrefix prefixes environment overrides, e.g. TALLY_LOGGING_LEVEL.
const EnvPrefix = "TALLY"

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace" mapstructure:"workspace"`
	Files     FilesConfig     `yaml:"files" mapstructure:"files"`
	IDs       IDConfig        `yaml:"ids" mapstructure:"ids"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// WorkspaceConfig identifies the workspace.
type WorkspaceConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
}

// FilesConfig locates workspace files, relative to the workspace root.
type FilesConfig struct {
	ImportDir  string `yaml:"import_dir" mapstructure:"import_dir" validate:"required"`
	Categories string `yaml:"categories" mapstructure:"categories" validate:"required"`
	Rules      string `yaml:"rules" mapstructure:"rules" validate:"required"`
	Bills      string `yaml:"bills" mapstructure:"bills" validate:"required"`
	Income     string `yaml:"income" mapstructure:"income" validate:"required"`
	LedgerDir  string `yaml:"ledger_dir" mapstructure:"ledger_dir" validate:"required"`
	ImportLog  string `yaml:"import_log" mapstructure:"import_log" validate:"required"`
}

// IDConfig selects how record IDs are allocated.
type IDConfig struct {
	Scheme string `yaml:"scheme" mapstructure:"scheme" validate:"oneof=sequence uuid"`
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=console json"`
}

// Allocator returns the ID allocator for the scheme. A sequence continues
// after start.
func (c IDConfig) Allocator(start int) id.Allocator {
	if c.Scheme == "uuid" {
		return id.UUID{}
	}
	return id.NewSequence(c.Prefix, start)
}

// Path resolves a workspace-relative path against root.
func Path(root, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(root, rel)
}

// Load reads a tally.yaml file, applying defaults for missing keys and
// TALLY_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default(""))

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validation.Default().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("workspace.name", d.Workspace.Name)
	v.SetDefault("files.import_dir", d.Files.ImportDir)
	v.SetDefault("files.categories", d.Files.Categories)
	v.SetDefault("files.rules", d.Files.Rules)
	v.SetDefault("files.bills", d.Files.Bills)
	v.SetDefault("files.income", d.Files.Income)
	v.SetDefault("files.ledger_dir", d.Files.LedgerDir)
	v.SetDefault("files.import_log", d.Files.ImportLog)
	v.SetDefault("ids.scheme", d.IDs.Scheme)
	v.SetDefault("ids.prefix", d.IDs.Prefix)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(name string) *Config {
	return &Config{
		Workspace: WorkspaceConfig{Name: name},
		Files: FilesConfig{
			ImportDir:  "import",
			Categories: "categories.csv",
			Rules:      "rules.csv",
			Bills:      "bills.csv",
			Income:     "income.csv",
			LedgerDir:  "ledger",
			ImportLog:  "logs/import-log.csv",
		},
		IDs: IDConfig{
			Scheme: "sequence",
			Prefix: "txn",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
