package header

import (
	"strings"

	"github.com/cleared-dev/tally/internal/errs"
	"github.com/cleared-dev/tally/internal/model"
)

// Absent marks a logical field with no matching column.
const Absent = -1

// Columns holds the resolved column of each logical transaction field.
type Columns struct {
	ID              int
	Date            int
	Description     int
	Amount          int
	Category        int
	NeedWant        int
	AutoCategorized int
	MerchantName    int
	FriendlyName    int
	Memo            int
}

// Get returns the trimmed value at col, or "" when col is Absent or out of range.
func (Columns) Get(row model.RawRow, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// Index returns the resolved columns keyed by their JSON field names,
// omitting absent ones.
func (c Columns) Index() Index {
	ix := Index{}
	for name, col := range map[string]int{
		"id":              c.ID,
		"date":            c.Date,
		"description":     c.Description,
		"amount":          c.Amount,
		"category":        c.Category,
		"needWant":        c.NeedWant,
		"autoCategorized": c.AutoCategorized,
		"merchantName":    c.MerchantName,
		"friendlyName":    c.FriendlyName,
		"memo":            c.Memo,
	} {
		if col != Absent {
			ix[name] = col
		}
	}
	return ix
}

// Fuzzy resolves transaction fields by substring match on lowercased headers.
// The first matching column wins. Date, description and amount are required.
// An optional id column is matched exactly.
func Fuzzy(row model.RawRow) (Columns, error) {
	lowered := make([]string, len(row))
	for i, h := range row {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}
	find := func(match func(h string) bool) int {
		for i, h := range lowered {
			if match(h) {
				return i
			}
		}
		return Absent
	}
	containsAny := func(tokens ...string) func(string) bool {
		return func(h string) bool {
			for _, t := range tokens {
				if strings.Contains(h, t) {
					return true
				}
			}
			return false
		}
	}

	cols := Columns{
		ID:              find(func(h string) bool { return h == "id" }),
		Date:            find(containsAny("date")),
		Description:     find(containsAny("desc")),
		Amount:          find(containsAny("amount")),
		Category:        find(containsAny("category", "cat")),
		NeedWant:        find(containsAny("need", "want")),
		AutoCategorized: find(containsAny("auto")),
		MerchantName:    find(containsAny("merchant")),
		FriendlyName: find(func(h string) bool {
			return strings.Contains(h, "friendly") ||
				(strings.Contains(h, "name") && !strings.Contains(h, "merchant"))
		}),
		Memo: find(containsAny("memo", "note")),
	}

	var missing []string
	if cols.Date == Absent {
		missing = append(missing, "date")
	}
	if cols.Description == Absent {
		missing = append(missing, "description")
	}
	if cols.Amount == Absent {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return Columns{}, &errs.FormatError{Code: errs.FormatMissingColumns, Element: "header", Missing: missing}
	}
	return cols, nil
}
