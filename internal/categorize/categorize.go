// Package categorize assigns categories to transactions.
//
// Precedence is fixed: an explicit category always wins, then the first
// keyword match in category order, then a default chosen by the amount's sign.
package categorize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Result is a categorization decision.
type Result struct {
	Category           string
	WasAutoCategorized bool
}

// Categorize decides the category for one transaction. existing is the
// transaction's current category, "" when it has none.
func Categorize(description string, amount decimal.Decimal, existing string, cats []model.Category) Result {
	if existing != "" && existing != model.Uncategorized {
		return Result{Category: existing}
	}

	if c, ok := MatchKeywords(description, amount, cats); ok {
		return Result{Category: c.Name, WasAutoCategorized: true}
	}

	if amount.IsPositive() {
		return Result{Category: model.Income, WasAutoCategorized: true}
	}
	return Result{Category: model.Uncategorized}
}

// MatchKeywords returns the first category, in list order, that is
// compatible with amount's sign and has a keyword contained in description.
// The uncategorized category is never returned.
func MatchKeywords(description string, amount decimal.Decimal, cats []model.Category) (model.Category, bool) {
	desc := strings.ToLower(description)
	for _, c := range cats {
		if c.IsUncategorized() || !signMatches(c.Type, amount) {
			continue
		}
		for _, kw := range c.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" && strings.Contains(desc, kw) {
				return c, true
			}
		}
	}
	return model.Category{}, false
}

func signMatches(t model.CategoryType, amount decimal.Decimal) bool {
	switch t {
	case model.CategoryTypeIncome:
		return amount.IsPositive()
	case model.CategoryTypeExpense:
		return amount.IsNegative()
	case model.CategoryTypeBoth:
		return true
	}
	return false
}
