// Package recurring projects recurring income and bill definitions onto
// calendar months.
package recurring

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

const secondsPerDay = 24 * 60 * 60

// DaysIn returns the number of days in month, accounting for leap years.
func DaysIn(year int, month time.Month) int {
	return model.Date(year, month+1, 0).Day()
}

// Expand returns the occurrences of def that fall in the given month, sorted
// by date. Nothing before def's start date is emitted. An unknown frequency
// yields no occurrences.
//
// Quarterly occurrences are found by adding 0, 3, 6 and 9 to the start month
// without carrying into the next year, so a November start only recurs in
// November of later years.
func Expand(def model.Recurring, year int, month time.Month) []model.Occurrence {
	start := model.Date(def.StartDate.Date())
	first := model.Date(year, month, 1)
	last := model.Date(year, month, DaysIn(year, month))

	var dates []time.Time
	switch def.Frequency {
	case model.Weekly:
		dates = stepped(start, first, last, 7)
	case model.BiWeekly:
		dates = stepped(start, first, last, 14)
	case model.Monthly:
		dates = clamped(start, year, month)
	case model.Quarterly:
		for k := range 4 {
			if int(start.Month())+3*k == int(month) {
				dates = append(dates, clamped(start, year, month)...)
			}
		}
	case model.Yearly:
		if start.Month() == month {
			dates = clamped(start, year, month)
		}
	}

	out := make([]model.Occurrence, 0, len(dates))
	for _, d := range dates {
		out = append(out, model.Occurrence{
			Recurring: def,
			Date:      d,
			Day:       d.Day(),
			Paid:      def.Kind == model.RecurringBill && def.IsPaid(d),
		})
	}
	slices.SortStableFunc(out, byDate)
	return out
}

// stepped walks from start in fixed steps of n days and keeps the dates
// inside [first, last].
func stepped(start, first, last time.Time, n int) []time.Time {
	d := start
	if d.Before(first) {
		gap := (first.Unix() - start.Unix()) / secondsPerDay
		d = start.AddDate(0, 0, int(gap/int64(n))*n)
	}
	var out []time.Time
	for ; !d.After(last); d = d.AddDate(0, 0, n) {
		if !d.Before(first) && !d.Before(start) {
			out = append(out, d)
		}
	}
	return out
}

// clamped returns start's day-of-month in the target month, clamped to the
// month's length, if that date is not before start.
func clamped(start time.Time, year int, month time.Month) []time.Time {
	d := model.Date(year, month, min(start.Day(), DaysIn(year, month)))
	if d.Before(start) {
		return nil
	}
	return []time.Time{d}
}

func byDate(a, b model.Occurrence) int {
	return a.Date.Compare(b.Date)
}

// ExpandAll expands every definition and merges the results by date.
// Occurrences on the same date keep the order of defs.
func ExpandAll(defs []model.Recurring, year int, month time.Month) []model.Occurrence {
	var out []model.Occurrence
	for _, def := range defs {
		out = append(out, Expand(def, year, month)...)
	}
	slices.SortStableFunc(out, byDate)
	return out
}

// MonthTotal sums the amounts of occs.
func MonthTotal(occs []model.Occurrence) decimal.Decimal {
	total := decimal.Zero
	for _, o := range occs {
		total = total.Add(o.Amount)
	}
	return total
}

// MarkPaid returns a copy of bill with date recorded as paid. Marking an
// already paid date is a no-op.
func MarkPaid(bill model.Recurring, date time.Time) model.Recurring {
	date = model.Date(date.Date())
	if bill.IsPaid(date) {
		return bill
	}
	paid := make([]time.Time, 0, len(bill.PaidDates)+1)
	paid = append(paid, bill.PaidDates...)
	bill.PaidDates = append(paid, date)
	slices.SortFunc(bill.PaidDates, time.Time.Compare)
	return bill
}

// NewDraft returns a blank definition of kind starting on now's date.
func NewDraft(kind model.RecurringKind, now time.Time) model.Recurring {
	return model.Recurring{
		Kind:      kind,
		Amount:    decimal.Zero,
		StartDate: model.Date(now.Date()),
		Frequency: model.Monthly,
		Category:  model.Uncategorized,
		PaidDates: []time.Time{},
	}
}
