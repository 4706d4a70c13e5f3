// Package categories holds a workspace's category and rule sets.
package categories

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/tally/internal/categorize"
	"github.com/cleared-dev/tally/internal/export"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/validation"
)

// Service provides in-memory lookup over an ordered category list.
type Service struct {
	categories []model.Category
	byName     map[string]model.Category
}

// NewService creates a Service from categories in match order.
func NewService(cats []model.Category) *Service {
	byName := make(map[string]model.Category, len(cats))
	for _, c := range cats {
		byName[strings.ToLower(c.Name)] = c
	}
	return &Service{categories: cats, byName: byName}
}

// Load reads a categories CSV or JSON file.
func Load(path string, im *importer.Importer) (*Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening categories: %w", err)
	}
	res, err := im.Categories(string(data))
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return NewService(res.Records), nil
}

// All returns all categories in match order.
func (s *Service) All() []model.Category {
	return s.categories
}

// Get returns a category by name, ignoring case.
func (s *Service) Get(name string) (model.Category, bool) {
	c, ok := s.byName[strings.ToLower(name)]
	return c, ok
}

// Exists reports whether a category name exists, ignoring case.
func (s *Service) Exists(name string) bool {
	_, ok := s.byName[strings.ToLower(name)]
	return ok
}

// ByType returns all categories of the given type.
func (s *Service) ByType(t model.CategoryType) []model.Category {
	var result []model.Category
	for _, c := range s.categories {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}

// Add appends c after validating it and checking its name and ID are unused.
func (s *Service) Add(c model.Category) error {
	if err := validation.Default().Struct(c); err != nil {
		return err
	}
	if s.Exists(c.Name) {
		return fmt.Errorf("category %q already exists", c.Name)
	}
	for _, existing := range s.categories {
		if existing.ID == c.ID {
			return fmt.Errorf("category id %q already exists", c.ID)
		}
	}
	s.categories = append(s.categories, c)
	s.byName[strings.ToLower(c.Name)] = c
	return nil
}

// Engine returns a categorization engine over these categories and rules.
func (s *Service) Engine(rules []model.Rule) categorize.Engine {
	return categorize.Engine{Categories: s.categories, Rules: rules}
}

// Save writes the categories as CSV to path.
func (s *Service) Save(path string) error {
	if err := validation.All(validation.Default(), s.categories); err != nil {
		return fmt.Errorf("validating categories: %w", err)
	}
	c, err := export.Sink{}.Categories(s.categories, export.CSV)
	if err != nil {
		return err
	}
	return writeFile(path, c.Data)
}

// LoadRules reads a rules CSV or JSON file. A missing file yields no rules.
func LoadRules(path string, im *importer.Importer) ([]model.Rule, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening rules: %w", err)
	}
	res, err := im.Rules(string(data))
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	return res.Records, nil
}

// SaveRules writes rules as CSV to path.
func SaveRules(path string, rules []model.Rule) error {
	if err := validation.All(validation.Default(), rules); err != nil {
		return fmt.Errorf("validating rules: %w", err)
	}
	c, err := export.Sink{}.Rules(rules, export.CSV)
	if err != nil {
		return err
	}
	return writeFile(path, c.Data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating dir for %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
