// Package export renders records as CSV or JSON that the importer reads back
// unchanged.
package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/tally/internal/delimited"
	"github.com/cleared-dev/tally/internal/model"
)

// Format is an export file format.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// ParseFormat accepts "csv" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want csv or json)", s)
}

// Content is a rendered export and the file name it should be saved under.
type Content struct {
	Filename string
	Data     []byte
}

// Filename suggests a file name such as "transactions-2024-03-01.csv".
func Filename(kind model.Kind, format Format, date time.Time) string {
	return fmt.Sprintf("%s-%s.%s", kind, date.Format(model.DateFormat), format)
}

// Sink renders records. Now dates the suggested file names.
type Sink struct {
	Now time.Time
}

// New returns a Sink dating its files with now.
func New(now time.Time) Sink {
	return Sink{Now: now}
}

var (
	transactionHeader = []string{"id", "date", "description", "amount", "category", "needWant", "autoCategorized", "merchantName", "memo"}
	categoryHeader    = []string{"id", "name", "color", "type", "keywords", "budgeted", "needWant"}
	ruleHeader        = []string{"id", "pattern", "category", "matchType", "caseSensitive", "priority"}
	billHeader        = []string{"id", "name", "amount", "dueDate", "frequency", "category", "memo", "paidDates"}
	incomeHeader      = []string{"id", "name", "amount", "startDate", "frequency", "category", "memo"}
)

// Transactions renders transactions.
func (s Sink) Transactions(txns []model.Transaction, format Format) (Content, error) {
	rows := make([][]string, 0, len(txns)+1)
	rows = append(rows, transactionHeader)
	for _, t := range txns {
		rows = append(rows, []string{
			t.ID, t.Date, t.Description, t.Amount.String(), t.Category, string(t.NeedWant),
			strconv.FormatBool(t.AutoCategorized), t.MerchantName, t.Memo,
		})
	}
	return s.render(model.KindTransactions, format, rows, nonNil(txns))
}

// Categories renders categories. Keywords are joined with commas.
func (s Sink) Categories(cats []model.Category, format Format) (Content, error) {
	rows := make([][]string, 0, len(cats)+1)
	rows = append(rows, categoryHeader)
	for _, c := range cats {
		rows = append(rows, []string{
			c.ID, c.Name, c.Color, string(c.Type), strings.Join(c.Keywords, ","), c.Budgeted.String(), string(c.NeedWant),
		})
	}
	return s.render(model.KindCategories, format, rows, nonNil(cats))
}

// Rules renders categorization rules.
func (s Sink) Rules(rules []model.Rule, format Format) (Content, error) {
	rows := make([][]string, 0, len(rules)+1)
	rows = append(rows, ruleHeader)
	for _, r := range rules {
		rows = append(rows, []string{
			r.ID, r.Pattern, r.Category, string(r.MatchType), strconv.FormatBool(r.CaseSensitive), strconv.Itoa(r.Priority),
		})
	}
	return s.render(model.KindRules, format, rows, nonNil(rules))
}

// recurringJSON is the import shape of a recurring definition.
type recurringJSON struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Amount    string   `json:"amount"`
	StartDate string   `json:"startDate,omitempty"`
	DueDate   string   `json:"dueDate,omitempty"`
	Frequency string   `json:"frequency"`
	Category  string   `json:"category"`
	Memo      string   `json:"memo"`
	PaidDates []string `json:"paidDates,omitempty"`
}

// Recurring renders bills or income. Definitions of the other kind are
// skipped.
func (s Sink) Recurring(kind model.RecurringKind, defs []model.Recurring, format Format) (Content, error) {
	fileKind, header := model.KindIncome, incomeHeader
	if kind == model.RecurringBill {
		fileKind, header = model.KindBills, billHeader
	}

	rows := [][]string{header}
	shaped := make([]recurringJSON, 0, len(defs))
	for _, d := range defs {
		if d.Kind != kind {
			continue
		}
		start := d.StartDate.Format(model.DateFormat)
		paid := make([]string, len(d.PaidDates))
		for i, p := range d.PaidDates {
			paid[i] = p.Format(model.DateFormat)
		}

		row := []string{d.ID, d.Name, d.Amount.String(), start, string(d.Frequency), d.Category, d.Memo}
		j := recurringJSON{
			ID: d.ID, Name: d.Name, Amount: d.Amount.String(), StartDate: start,
			Frequency: string(d.Frequency), Category: d.Category, Memo: d.Memo,
		}
		if kind == model.RecurringBill {
			row = append(row, strings.Join(paid, ";"))
			j.StartDate, j.DueDate, j.PaidDates = "", start, paid
		}
		rows = append(rows, row)
		shaped = append(shaped, j)
	}
	return s.render(fileKind, format, rows, shaped)
}

// nonNil keeps empty exports as "[]" rather than "null".
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (s Sink) render(kind model.Kind, format Format, rows [][]string, records any) (Content, error) {
	c := Content{Filename: Filename(kind, format, s.Now)}
	switch format {
	case CSV:
		c.Data = []byte(delimited.Format(rows))
	case JSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return Content{}, fmt.Errorf("encoding %s: %w", kind, err)
		}
		c.Data = data
	default:
		return Content{}, fmt.Errorf("unsupported export format %q", format)
	}
	return c, nil
}
