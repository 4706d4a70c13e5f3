package importer

import (
	"strings"
	"time"

	"github.com/cleared-dev/tally/internal/errs"
	"github.com/cleared-dev/tally/internal/model"
)

var (
	billColumns   = []string{"name", "amount", "dueDate"}
	incomeColumns = []string{"name", "amount", "startDate"}
)

// Bills imports recurring bills from CSV or JSON text.
func (im *Importer) Bills(text string) (Result[model.Recurring], error) {
	if IsJSON(text) {
		return im.BillsJSON(text)
	}
	return im.BillsCSV(text)
}

// BillsCSV imports bills from delimited text with the columns name, amount
// and dueDate.
func (im *Importer) BillsCSV(text string) (Result[model.Recurring], error) {
	return importCSV(im, model.KindBills, text, billColumns, im.recurring(model.RecurringBill))
}

// BillsJSON imports bills from a JSON array.
func (im *Importer) BillsJSON(text string) (Result[model.Recurring], error) {
	return importJSON(im, model.KindBills, text, im.recurring(model.RecurringBill))
}

// Income imports recurring income from CSV or JSON text.
func (im *Importer) Income(text string) (Result[model.Recurring], error) {
	if IsJSON(text) {
		return im.IncomeJSON(text)
	}
	return im.IncomeCSV(text)
}

// IncomeCSV imports income from delimited text with the columns name, amount
// and startDate.
func (im *Importer) IncomeCSV(text string) (Result[model.Recurring], error) {
	return importCSV(im, model.KindIncome, text, incomeColumns, im.recurring(model.RecurringIncome))
}

// IncomeJSON imports income from a JSON array.
func (im *Importer) IncomeJSON(text string) (Result[model.Recurring], error) {
	return importJSON(im, model.KindIncome, text, im.recurring(model.RecurringIncome))
}

func (im *Importer) recurring(kind model.RecurringKind) builder[model.Recurring] {
	return func(c *collector, f fields, row, _ int) (model.Recurring, bool) {
		r := model.Recurring{
			Kind:      kind,
			ID:        f("id"),
			Name:      f("name"),
			Frequency: model.Monthly,
			Category:  f("category"),
			Memo:      f("memo"),
			PaidDates: []time.Time{},
		}
		if r.ID == "" {
			r.ID = im.IDs.Next()
		}
		if r.Category == "" {
			r.Category = model.Uncategorized
		}

		rawAmount := f("amount")
		amount, err := ParseAmount(rawAmount)
		if err != nil {
			c.add(errs.CoerceAmount, row, "amount", rawAmount, errs.Defaulted)
		}
		r.Amount = amount.Abs()

		dateField := "startDate"
		if kind == model.RecurringBill {
			dateField = "dueDate"
		}
		rawDate := f(dateField, "startDate", "dueDate")
		start, err := model.ParseDate(rawDate)
		if err != nil {
			c.add(errs.CoerceDate, row, dateField, rawDate, errs.Defaulted)
			start = model.Date(im.Now.Date())
		}
		r.StartDate = start

		if raw := f("frequency"); raw != "" {
			r.Frequency = model.Frequency(strings.ToLower(raw))
			if !r.Frequency.Valid() {
				c.add(errs.ShapeFrequency, row, "frequency", raw, errs.Kept)
			}
		}

		if kind == model.RecurringBill {
			for _, raw := range splitList(f("paidDates"), ",;") {
				d, err := model.ParseDate(raw)
				if err != nil {
					c.add(errs.CoerceDate, row, "paidDates", raw, errs.Dropped)
					continue
				}
				r.PaidDates = append(r.PaidDates, d)
			}
		}
		return r, true
	}
}
