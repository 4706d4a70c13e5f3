// Package delimited splits delimited text into rows and writes rows back in a
// form the tokenizer reads unchanged.
//
// Quoting is a simple toggle: every '"' flips the in-quotes state and is
// dropped from the value. There is no escape for a literal quote inside a
// quoted field.
package delimited

import (
	"iter"
	"slices"
	"strings"

	"github.com/cleared-dev/tally/internal/errs"
	"github.com/cleared-dev/tally/internal/model"
)

const quote = '"'

// Tokenizer splits text on Delimiter.
type Tokenizer struct {
	Delimiter rune
}

// Comma is the default comma-separated tokenizer.
var Comma = Tokenizer{Delimiter: ','}

// Rows returns the rows of text using the comma tokenizer.
func Rows(text string) (iter.Seq[model.RawRow], error) {
	return Comma.Rows(text)
}

// Parse returns all rows of text using the comma tokenizer.
func Parse(text string) ([]model.RawRow, error) {
	return Comma.Parse(text)
}

// Rows returns a sequence over the non-blank lines of text. The sequence is
// lazy and may be ranged over more than once.
func (t Tokenizer) Rows(text string) (iter.Seq[model.RawRow], error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errs.Empty()
	}
	return func(yield func(model.RawRow) bool) {
		for line := range strings.SplitSeq(trimmed, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !yield(t.SplitLine(line)) {
				return
			}
		}
	}, nil
}

// Parse collects Rows into a slice.
func (t Tokenizer) Parse(text string) ([]model.RawRow, error) {
	seq, err := t.Rows(text)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// SplitLine splits a single line into trimmed fields.
func (t Tokenizer) SplitLine(line string) model.RawRow {
	var (
		row      model.RawRow
		field    strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == quote:
			inQuotes = !inQuotes
		case r == t.Delimiter && !inQuotes:
			row = append(row, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	return append(row, strings.TrimSpace(field.String()))
}
