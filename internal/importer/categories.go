package importer

import (
	"strings"

	"github.com/cleared-dev/tally/internal/errs"
	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/model"
)

var categoryColumns = []string{"name", "color", "type"}

// Categories imports categories from CSV or JSON text.
func (im *Importer) Categories(text string) (Result[model.Category], error) {
	if IsJSON(text) {
		return im.CategoriesJSON(text)
	}
	return im.CategoriesCSV(text)
}

// CategoriesCSV imports categories from delimited text with the columns
// name, color and type.
func (im *Importer) CategoriesCSV(text string) (Result[model.Category], error) {
	return importCSV(im, model.KindCategories, text, categoryColumns, newCategoryBuilder())
}

// CategoriesJSON imports categories from a JSON array.
func (im *Importer) CategoriesJSON(text string) (Result[model.Category], error) {
	return importJSON(im, model.KindCategories, text, newCategoryBuilder())
}

// newCategoryBuilder returns a builder whose IDs are unique across one call.
func newCategoryBuilder() builder[model.Category] {
	slugs := id.NewSlugs()
	return func(c *collector, f fields, row, _ int) (model.Category, bool) {
		cat := model.Category{
			Name:     f("name"),
			Color:    f("color"),
			Type:     model.CategoryTypeExpense,
			Keywords: splitList(f("keywords"), ","),
		}

		base := f("id")
		if base == "" {
			base = id.Slug(cat.Name)
		}
		cat.ID = slugs.Unique(base)

		if raw := f("type"); raw != "" {
			if t := model.CategoryType(strings.ToLower(raw)); t.Valid() {
				cat.Type = t
			} else {
				c.add(errs.CoerceEnum, row, "type", raw, errs.Defaulted)
			}
		}

		if raw := f("budgeted"); raw != "" {
			b, err := ParseAmount(raw)
			if err != nil {
				c.add(errs.CoerceNumber, row, "budgeted", raw, errs.Defaulted)
			}
			cat.Budgeted = b.Abs()
		}

		if raw := f("needWant"); raw != "" {
			cat.NeedWant = model.ParseNeedWant(raw)
			if cat.NeedWant == model.NeedWantNone {
				c.add(errs.CoerceEnum, row, "needWant", raw, errs.Defaulted)
			}
		}
		return cat, true
	}
}
