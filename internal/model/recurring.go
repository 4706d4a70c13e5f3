package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar date layout used everywhere records carry dates.
const DateFormat = "2006-01-02"

// RecurringKind discriminates recurring income from recurring bills.
type RecurringKind string

const (
	RecurringIncome RecurringKind = "income"
	RecurringBill   RecurringKind = "bill"
)

// Frequency governs the spacing of a recurring definition's occurrences.
type Frequency string

const (
	Weekly    Frequency = "weekly"
	BiWeekly  Frequency = "bi-weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// Valid reports whether f is one of the five known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, BiWeekly, Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// Recurring is a recurring income or bill definition.
type Recurring struct {
	Kind      RecurringKind   `json:"-"`
	ID        string          `json:"id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"nonneg_decimal"`
	StartDate time.Time       `json:"-"`
	Frequency Frequency       `json:"frequency" validate:"frequency"`
	Category  string          `json:"category"`
	Memo      string          `json:"memo"`
	PaidDates []time.Time     `json:"-"` // bills only
}

// IsPaid reports whether a bill occurrence on date has been settled.
func (r Recurring) IsPaid(date time.Time) bool {
	for _, d := range r.PaidDates {
		if SameDay(d, date) {
			return true
		}
	}
	return false
}

// Occurrence is one dated instance of a Recurring definition. Never stored.
type Occurrence struct {
	Recurring
	Date time.Time
	Day  int
	Paid bool
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
