package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Header is the CSV header of a month's transactions.csv.
const Header = "id,date,description,amount,category,need_want,auto_categorized,merchant_name,memo"

const (
	numFields   = 9
	colID       = 0
	colDate     = 1
	colDesc     = 2
	colAmount   = 3
	colCategory = 4
	colNeedWant = 5
	colAuto     = 6
	colMerchant = 7
	colMemo     = 8
)

// ReadTransactions reads all transactions from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions including the header.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendTransactions appends transactions to an existing file (no header).
func AppendTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = txn.ID
	row[colDate] = txn.Date
	row[colDesc] = txn.Description
	row[colAmount] = txn.Amount.String()
	row[colCategory] = txn.Category
	row[colNeedWant] = string(txn.NeedWant)
	row[colAuto] = strconv.FormatBool(txn.AutoCategorized)
	row[colMerchant] = txn.MerchantName
	row[colMemo] = txn.Memo
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var auto bool
	if record[colAuto] != "" {
		auto, err = strconv.ParseBool(record[colAuto])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing auto_categorized %q: %w", record[colAuto], err)
		}
	}

	return model.Transaction{
		ID:              record[colID],
		Date:            record[colDate],
		Description:     record[colDesc],
		Amount:          amount,
		Category:        record[colCategory],
		NeedWant:        model.NeedWant(record[colNeedWant]),
		AutoCategorized: auto,
		MerchantName:    record[colMerchant],
		Memo:            record[colMemo],
	}, nil
}
