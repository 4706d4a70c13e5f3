package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrFormat matches every *FormatError via errors.Is.
var ErrFormat = errors.New("format error")

// FormatError reports structurally invalid input. It aborts the import call.
type FormatError struct {
	Code    Code
	Element string            // e.g. "header", "root"
	Missing []string          // required fields that were not found
	Hints   map[string]string // missing field -> closest header present
	Err     error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	if e.Element != "" {
		b.WriteString(e.Element)
		b.WriteString(": ")
	}
	b.WriteString(Message(e.Code))
	if len(e.Missing) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Missing, ", "))
	}
	if len(e.Hints) > 0 {
		keys := make([]string, 0, len(e.Hints))
		for k := range e.Hints {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		hints := make([]string, len(keys))
		for i, k := range keys {
			hints[i] = fmt.Sprintf("%s (found %q)", k, e.Hints[k])
		}
		b.WriteString("; did you mean: ")
		b.WriteString(strings.Join(hints, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFormat) match any FormatError.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Empty returns the error for input with no content.
func Empty() *FormatError {
	return &FormatError{Code: FormatEmpty, Element: "input"}
}

// Action describes how an Issue was recovered.
type Action string

const (
	Dropped   Action = "dropped"
	Defaulted Action = "defaulted"
	Kept      Action = "kept"
)

// Issue is a recovered, per-record problem. Row is the 1-based data row for
// delimited input (header excluded) or the 0-based element index for JSON.
type Issue struct {
	Code   Code
	Row    int
	Field  string
	Value  string
	Action Action
}

func (i Issue) Error() string {
	return fmt.Sprintf("row %d field %s: %s %q (%s)", i.Row, i.Field, Message(i.Code), i.Value, i.Action)
}
