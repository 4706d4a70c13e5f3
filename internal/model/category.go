package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryType restricts which transaction signs a category can match.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeBoth    CategoryType = "both"
)

// Valid reports whether t is a known category type.
func (t CategoryType) Valid() bool {
	switch t {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeBoth:
		return true
	}
	return false
}

// Category is a budgeting category with matching keywords.
type Category struct {
	ID       string          `json:"id" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Color    string          `json:"color"`
	Type     CategoryType    `json:"type" validate:"oneof=income expense both"`
	Keywords []string        `json:"keywords"` // order = priority within the category
	Budgeted decimal.Decimal `json:"budgeted" validate:"nonneg_decimal"`
	NeedWant NeedWant        `json:"needWant,omitempty" validate:"omitempty,oneof=need want"`
}

// IsUncategorized reports whether c is the catch-all category the matcher skips.
func (c Category) IsUncategorized() bool {
	return strings.EqualFold(c.ID, UncategorizedID) || strings.EqualFold(c.Name, Uncategorized)
}

// MatchType selects how a Rule pattern is compared to a description.
type MatchType string

const (
	MatchContains   MatchType = "contains"
	MatchExact      MatchType = "exact"
	MatchStartsWith MatchType = "startsWith"
)

// ParseMatchType accepts any casing of a known match type.
func ParseMatchType(s string) (MatchType, bool) {
	switch lower(s) {
	case "contains":
		return MatchContains, true
	case "exact":
		return MatchExact, true
	case "startswith":
		return MatchStartsWith, true
	}
	return "", false
}

// Rule assigns Category to descriptions matching Pattern. Lower Priority wins.
type Rule struct {
	ID            string    `json:"id" validate:"required"`
	Pattern       string    `json:"pattern" validate:"required"`
	Category      string    `json:"category" validate:"required"`
	MatchType     MatchType `json:"matchType" validate:"oneof=contains exact startsWith"`
	CaseSensitive bool      `json:"caseSensitive"`
	Priority      int       `json:"priority" validate:"gt=0"`
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
