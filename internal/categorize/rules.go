package categorize

import (
	"cmp"
	"slices"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// MatchRule returns the highest-precedence rule matching description. Rules
// are tried in ascending priority; equal priorities keep their input order.
func MatchRule(description string, rules []model.Rule) (model.Rule, bool) {
	ordered := slices.Clone(rules)
	slices.SortStableFunc(ordered, func(a, b model.Rule) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	for _, r := range ordered {
		if ruleMatches(r, description) {
			return r, true
		}
	}
	return model.Rule{}, false
}

func ruleMatches(r model.Rule, description string) bool {
	pattern := r.Pattern
	if pattern == "" {
		return false
	}
	if !r.CaseSensitive {
		pattern = strings.ToLower(pattern)
		description = strings.ToLower(description)
	}
	switch r.MatchType {
	case model.MatchExact:
		return strings.TrimSpace(description) == strings.TrimSpace(pattern)
	case model.MatchStartsWith:
		return strings.HasPrefix(description, pattern)
	default:
		return strings.Contains(description, pattern)
	}
}

// Engine applies rules before category keywords.
type Engine struct {
	Categories []model.Category
	Rules      []model.Rule
}

// Apply categorizes t. A transaction that already has a category other than
// Uncategorized is returned unchanged. Otherwise a matching rule wins over
// keywords, and the sign default applies last. An unset need/want is filled
// from the chosen category.
func (e Engine) Apply(t model.Transaction) model.Transaction {
	if t.Category != "" && t.Category != model.Uncategorized {
		return t
	}

	if r, ok := MatchRule(t.Description, e.Rules); ok {
		t.Category, t.AutoCategorized = r.Category, true
	} else {
		res := Categorize(t.Description, t.Amount, "", e.Categories)
		t.Category, t.AutoCategorized = res.Category, res.WasAutoCategorized
	}

	if t.NeedWant == model.NeedWantNone {
		if c, ok := e.category(t.Category); ok {
			t.NeedWant = c.NeedWant
		}
	}
	return t
}

// ApplyAll returns a categorized copy of txns.
func (e Engine) ApplyAll(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		out[i] = e.Apply(t)
	}
	return out
}

func (e Engine) category(name string) (model.Category, bool) {
	for _, c := range e.Categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return model.Category{}, false
}
