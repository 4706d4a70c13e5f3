package ledger

import (
	"fmt"
	"time"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/validation"
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Check       string
	ID          string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Check, e.ID, e.Description)
}

// Checks reported by ValidateMonth.
const (
	CheckFields   = "fields"
	CheckMonth    = "month"
	CheckUnique   = "unique-id"
	CheckCategory = "category"
)

// CategoryChecker tests whether a category name is known.
type CategoryChecker interface {
	Exists(name string) bool
}

// ValidateMonth checks a month's full set of transactions: each record is
// well formed, dated within the month, uniquely identified, and filed under a
// known category. Uncategorized and Income are always accepted. A nil
// checker skips the category check.
func ValidateMonth(v *validation.Validator, txns []model.Transaction, cats CategoryChecker, year int, month time.Month) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(txns))

	for _, txn := range txns {
		if err := v.Struct(txn); err != nil {
			errs = append(errs, ValidationError{Check: CheckFields, ID: txn.ID, Description: err.Error()})
		}

		if d, err := model.ParseDate(txn.Date); err == nil && (d.Year() != year || d.Month() != month) {
			errs = append(errs, ValidationError{
				Check:       CheckMonth,
				ID:          txn.ID,
				Description: fmt.Sprintf("date %s not in %04d-%02d", txn.Date, year, month),
			})
		}

		if seen[txn.ID] {
			errs = append(errs, ValidationError{Check: CheckUnique, ID: txn.ID, Description: "duplicate transaction ID"})
		}
		seen[txn.ID] = true

		if cats != nil && txn.Category != model.Uncategorized && txn.Category != model.Income && !cats.Exists(txn.Category) {
			errs = append(errs, ValidationError{
				Check:       CheckCategory,
				ID:          txn.ID,
				Description: fmt.Sprintf("unknown category %q", txn.Category),
			})
		}
	}
	return errs
}
