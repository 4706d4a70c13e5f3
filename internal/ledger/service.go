// Package ledger stores categorized transactions in one CSV file per month
// under <root>/YYYY/MM/transactions.csv.
package ledger

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/validation"
)

const fileName = "transactions.csv"

// Month identifies one ledger file.
type Month struct {
	Year  int
	Month time.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MonthOf returns the month of a YYYY-MM-DD date.
func MonthOf(date string) (Month, error) {
	d, err := model.ParseDate(date)
	if err != nil {
		return Month{}, fmt.Errorf("parsing date %q: %w", date, err)
	}
	return Month{Year: d.Year(), Month: d.Month()}, nil
}

// Service reads and appends ledger months.
type Service struct {
	root       string
	categories CategoryChecker
	validator  *validation.Validator
}

// NewService creates a ledger Service rooted at root. cats may be nil.
func NewService(root string, cats CategoryChecker) *Service {
	return &Service{root: root, categories: cats, validator: validation.Default()}
}

// Append validates txns together with what each affected month already
// holds and appends them. Nothing is written unless every month validates.
// It returns the months written, in order.
func (s *Service) Append(txns []model.Transaction) ([]Month, error) {
	byMonth := make(map[Month][]model.Transaction)
	for _, txn := range txns {
		m, err := MonthOf(txn.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", txn.ID, err)
		}
		byMonth[m] = append(byMonth[m], txn)
	}

	months := make([]Month, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	slices.SortFunc(months, compareMonths)

	var msgs []string
	for _, m := range months {
		existing, err := s.ReadMonth(m.Year, m.Month)
		if err != nil {
			return nil, err
		}
		all := append(existing, byMonth[m]...)
		for _, ve := range ValidateMonth(s.validator, all, s.categories, m.Year, m.Month) {
			msgs = append(msgs, ve.Error())
		}
	}
	if len(msgs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	for _, m := range months {
		if err := s.appendMonth(m, byMonth[m]); err != nil {
			return nil, err
		}
	}
	return months, nil
}

func (s *Service) appendMonth(m Month, txns []model.Transaction) error {
	path := s.monthPath(m.Year, m.Month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendTransactions(f, txns); err != nil {
		return fmt.Errorf("appending transactions: %w", err)
	}
	return nil
}

// ReadMonth reads all transactions for a given year/month.
func (s *Service) ReadMonth(year int, month time.Month) ([]model.Transaction, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

// Months lists the months that have a ledger file, oldest first.
func (s *Service) Months() ([]Month, error) {
	matches, err := filepath.Glob(filepath.Join(s.root, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", fileName))
	if err != nil {
		return nil, fmt.Errorf("listing ledger: %w", err)
	}
	var months []Month
	for _, p := range matches {
		monthDir := filepath.Dir(p)
		y, errY := strconv.Atoi(filepath.Base(filepath.Dir(monthDir)))
		mo, errM := strconv.Atoi(filepath.Base(monthDir))
		if errY != nil || errM != nil || mo < 1 || mo > 12 {
			continue
		}
		months = append(months, Month{Year: y, Month: time.Month(mo)})
	}
	slices.SortFunc(months, compareMonths)
	return months, nil
}

// MaxSeq returns the highest sequence number among ledger IDs of the form
// "<prefix>-NNNN", or 0 when there are none.
func (s *Service) MaxSeq(prefix string) (int, error) {
	months, err := s.Months()
	if err != nil {
		return 0, err
	}
	maxSeq := 0
	for _, m := range months {
		txns, err := s.ReadMonth(m.Year, m.Month)
		if err != nil {
			return 0, err
		}
		for _, txn := range txns {
			p, seq, err := id.Parse(txn.ID)
			if err != nil || p != prefix {
				continue
			}
			maxSeq = max(maxSeq, seq)
		}
	}
	return maxSeq, nil
}

func (s *Service) monthPath(year int, month time.Month) string {
	return filepath.Join(s.root, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", int(month)), fileName)
}

func compareMonths(a, b Month) int {
	if c := cmp.Compare(a.Year, b.Year); c != 0 {
		return c
	}
	return cmp.Compare(a.Month, b.Month)
}
