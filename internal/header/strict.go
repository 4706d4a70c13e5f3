// Package header maps a header row to column positions.
package header

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/cleared-dev/tally/internal/errs"
	"github.com/cleared-dev/tally/internal/model"
)

// maxHintDistance bounds how far a header may be from a missing name to be
// offered as a suggestion.
const maxHintDistance = 2

// Index maps exact header names to column positions.
type Index map[string]int

// Has reports whether name is a column.
func (ix Index) Has(name string) bool {
	_, ok := ix[name]
	return ok
}

// Get returns the trimmed value of column name in row, or "" if the column is
// absent or the row is short.
func (ix Index) Get(row model.RawRow, name string) string {
	i, ok := ix[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Strict builds an Index from row and fails if any required name is missing.
func Strict(row model.RawRow, required ...string) (Index, error) {
	ix := make(Index, len(row))
	names := make([]string, 0, len(row))
	for i, raw := range row {
		name := unquote(strings.TrimSpace(raw))
		if _, dup := ix[name]; !dup {
			ix[name] = i
		}
		names = append(names, name)
	}

	var missing []string
	hints := map[string]string{}
	for _, req := range required {
		if ix.Has(req) {
			continue
		}
		missing = append(missing, req)
		if h, ok := closest(req, names); ok {
			hints[req] = h
		}
	}
	if len(missing) > 0 {
		fe := &errs.FormatError{Code: errs.FormatMissingColumns, Element: "header", Missing: missing}
		if len(hints) > 0 {
			fe.Hints = hints
		}
		return nil, fe
	}
	return ix, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func closest(want string, names []string) (string, bool) {
	best, bestDist := "", maxHintDistance+1
	for _, n := range names {
		if n == "" {
			continue
		}
		d := levenshtein.ComputeDistance(strings.ToLower(want), strings.ToLower(n))
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, best != ""
}
