package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/tally/internal/errs"
	"github.com/cleared-dev/tally/internal/model"
)

// Batch carries the records of one import. Only the slice matching Kind is set.
type Batch struct {
	Kind         model.Kind
	Transactions []model.Transaction
	Categories   []model.Category
	Rules        []model.Rule
	Recurring    []model.Recurring
	Issues       []errs.Issue
}

// Len returns the number of records in the batch.
func (b Batch) Len() int {
	return len(b.Transactions) + len(b.Categories) + len(b.Rules) + len(b.Recurring)
}

// Parser imports one record kind.
type Parser interface {
	Parse(im *Importer, text string) (Batch, error)
	Kind() model.Kind
}

type parserFunc struct {
	kind model.Kind
	fn   func(im *Importer, text string) (Batch, error)
}

func (p parserFunc) Kind() model.Kind { return p.kind }

func (p parserFunc) Parse(im *Importer, text string) (Batch, error) { return p.fn(im, text) }

// Registry holds parsers by kind.
type Registry struct {
	parsers map[model.Kind]Parser
}

// FileInfo describes a file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
	Kind model.Kind // empty when the name does not identify a kind
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[model.Kind]Parser)}
}

// Register adds a parser. Panics on duplicate kind.
func (r *Registry) Register(p Parser) {
	key := model.Kind(strings.ToLower(string(p.Kind())))
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser kind: " + string(key))
	}
	r.parsers[key] = p
}

// Get returns the parser for kind, or nil.
func (r *Registry) Get(kind model.Kind) Parser {
	return r.parsers[model.Kind(strings.ToLower(string(kind)))]
}

// Import parses text as kind.
func (r *Registry) Import(im *Importer, kind model.Kind, text string) (Batch, error) {
	p := r.Get(kind)
	if p == nil {
		return Batch{}, fmt.Errorf("unknown record kind %q", kind)
	}
	b, err := p.Parse(im, text)
	if err != nil {
		return Batch{}, err
	}
	b.Kind = p.Kind()
	return b, nil
}

// DefaultRegistry returns a registry with a parser for every record kind.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(parserFunc{model.KindTransactions, func(im *Importer, text string) (Batch, error) {
		res, err := im.Transactions(text)
		return Batch{Transactions: res.Records, Issues: res.Issues}, err
	}})
	r.Register(parserFunc{model.KindCategories, func(im *Importer, text string) (Batch, error) {
		res, err := im.Categories(text)
		return Batch{Categories: res.Records, Issues: res.Issues}, err
	}})
	r.Register(parserFunc{model.KindRules, func(im *Importer, text string) (Batch, error) {
		res, err := im.Rules(text)
		return Batch{Rules: res.Records, Issues: res.Issues}, err
	}})
	r.Register(parserFunc{model.KindBills, func(im *Importer, text string) (Batch, error) {
		res, err := im.Bills(text)
		return Batch{Recurring: res.Records, Issues: res.Issues}, err
	}})
	r.Register(parserFunc{model.KindIncome, func(im *Importer, text string) (Batch, error) {
		res, err := im.Income(text)
		return Batch{Recurring: res.Records, Issues: res.Issues}, err
	}})
	return r
}

// DetectKind infers a record kind from a file name prefix such as
// "bills-2024.csv". It returns "" when no kind matches.
func DetectKind(fileName string) model.Kind {
	base := strings.ToLower(filepath.Base(fileName))
	for _, k := range model.Kinds() {
		if strings.HasPrefix(base, string(k)) {
			return k
		}
	}
	switch {
	case strings.HasPrefix(base, "transaction"):
		return model.KindTransactions
	case strings.HasPrefix(base, "categor"):
		return model.KindCategories
	case strings.HasPrefix(base, "rule"):
		return model.KindRules
	case strings.HasPrefix(base, "bill"):
		return model.KindBills
	}
	return ""
}

// ProcessedDir is the subdirectory of the import directory that holds
// imported files.
const ProcessedDir = "processed"

func importable(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".csv" || ext == ".json"
}

// Scan returns the CSV and JSON files directly inside dir, sorted by name.
// A missing dir yields no files.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !importable(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
			Kind: DetectKind(e.Name()),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from dir to dir/processed/.
func MarkProcessed(dir, fileName string) error {
	src := filepath.Join(dir, fileName)
	dstDir := filepath.Join(dir, ProcessedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
