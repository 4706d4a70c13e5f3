package importer

import (
	"fmt"
	"time"

	"github.com/cleared-dev/tally/internal/delimited"
	"github.com/cleared-dev/tally/internal/errs"
	"github.com/cleared-dev/tally/internal/header"
	"github.com/cleared-dev/tally/internal/model"
)

// dateLayouts are the date forms accepted in transaction files, tried in order.
var dateLayouts = []string{model.DateFormat, "01/02/2006", "1/2/2006", "2006/01/02"}

// Transactions imports transactions from CSV or JSON text.
func (im *Importer) Transactions(text string) (Result[model.Transaction], error) {
	if IsJSON(text) {
		return im.TransactionsJSON(text)
	}
	return im.TransactionsCSV(text)
}

// TransactionsCSV imports transactions from delimited text with fuzzy headers.
// Rows whose amount does not parse are dropped.
func (im *Importer) TransactionsCSV(text string) (Result[model.Transaction], error) {
	rows, err := delimited.Parse(text)
	if err != nil {
		return Result[model.Transaction]{}, fmt.Errorf("parsing transactions: %w", err)
	}
	cols, err := header.Fuzzy(rows[0])
	if err != nil {
		return Result[model.Transaction]{}, fmt.Errorf("parsing transactions: %w", err)
	}
	return buildRows(im, model.KindTransactions, cols.Index(), rows[1:], im.transaction), nil
}

// TransactionsJSON imports transactions from a JSON array.
func (im *Importer) TransactionsJSON(text string) (Result[model.Transaction], error) {
	return importJSON(im, model.KindTransactions, text, im.transaction)
}

func (im *Importer) transaction(c *collector, f fields, row, _ int) (model.Transaction, bool) {
	rawAmount := f("amount")
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		c.add(errs.CoerceAmount, row, "amount", rawAmount, errs.Dropped)
		return model.Transaction{}, false
	}

	t := model.Transaction{
		ID:              f("id"),
		Date:            normalizeDate(c, row, f("date")),
		Description:     f("description"),
		Amount:          amount,
		Category:        f("category"),
		AutoCategorized: parseBool(f("autoCategorized")),
		MerchantName:    f("merchantName", "friendlyName", "description"),
		Memo:            f("memo"),
	}
	if t.ID == "" {
		t.ID = im.IDs.Next()
	}
	if t.Category == "" {
		t.Category = model.Uncategorized
	}
	if raw := f("needWant"); raw != "" {
		t.NeedWant = model.ParseNeedWant(raw)
		if t.NeedWant == model.NeedWantNone {
			c.add(errs.CoerceEnum, row, "needWant", raw, errs.Defaulted)
		}
	}
	return t, true
}

// normalizeDate rewrites recognised dates as YYYY-MM-DD and keeps anything
// else verbatim.
func normalizeDate(c *collector, row int, raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d.Format(model.DateFormat)
		}
	}
	c.add(errs.CoerceDate, row, "date", raw, errs.Kept)
	return raw
}
