package model

import "github.com/shopspring/decimal"

// Category names with fixed meaning to the matcher.
const (
	Uncategorized   = "Uncategorized"
	UncategorizedID = "uncategorized"
	Income          = "Income"
)

// RawRow is one tokenized line of delimited text.
type RawRow []string

// NeedWant tags spending as essential or discretionary. The zero value means unset.
type NeedWant string

const (
	NeedWantNone NeedWant = ""
	Need         NeedWant = "need"
	Want         NeedWant = "want"
)

// ParseNeedWant maps free text to a NeedWant, returning NeedWantNone for anything else.
func ParseNeedWant(s string) NeedWant {
	switch NeedWant(lower(s)) {
	case Need:
		return Need
	case Want:
		return Want
	default:
		return NeedWantNone
	}
}

// Transaction is a normalized imported transaction.
type Transaction struct {
	ID              string          `json:"id" validate:"required"`
	Date            string          `json:"date" validate:"calendar_date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"` // positive = inflow, negative = outflow
	Category        string          `json:"category" validate:"required"`
	NeedWant        NeedWant        `json:"needWant,omitempty" validate:"omitempty,oneof=need want"`
	AutoCategorized bool            `json:"autoCategorized"`
	MerchantName    string          `json:"merchantName"`
	Memo            string          `json:"memo"`
}
