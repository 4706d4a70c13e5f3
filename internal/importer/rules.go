package importer

import (
	"strconv"

	"github.com/cleared-dev/tally/internal/errs"
	"github.com/cleared-dev/tally/internal/model"
)

var ruleColumns = []string{"pattern", "category", "matchType"}

// Rules imports categorization rules from CSV or JSON text.
func (im *Importer) Rules(text string) (Result[model.Rule], error) {
	if IsJSON(text) {
		return im.RulesJSON(text)
	}
	return im.RulesCSV(text)
}

// RulesCSV imports rules from delimited text with the columns pattern,
// category and matchType.
func (im *Importer) RulesCSV(text string) (Result[model.Rule], error) {
	return importCSV(im, model.KindRules, text, ruleColumns, im.rule)
}

// RulesJSON imports rules from a JSON array.
func (im *Importer) RulesJSON(text string) (Result[model.Rule], error) {
	return importJSON(im, model.KindRules, text, im.rule)
}

// rule defaults priority to the rule's 1-based position n.
func (im *Importer) rule(c *collector, f fields, row, n int) (model.Rule, bool) {
	r := model.Rule{
		ID:            f("id"),
		Pattern:       f("pattern"),
		Category:      f("category"),
		MatchType:     model.MatchContains,
		CaseSensitive: parseBool(f("caseSensitive")),
		Priority:      n,
	}
	if r.ID == "" {
		r.ID = im.IDs.Next()
	}
	if r.Category == "" {
		r.Category = model.Uncategorized
	}

	if raw := f("matchType"); raw != "" {
		if mt, ok := model.ParseMatchType(raw); ok {
			r.MatchType = mt
		} else {
			c.add(errs.CoerceEnum, row, "matchType", raw, errs.Defaulted)
		}
	}

	if raw := f("priority"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p <= 0 {
			c.add(errs.CoerceNumber, row, "priority", raw, errs.Defaulted)
		} else {
			r.Priority = p
		}
	}
	return r, true
}
