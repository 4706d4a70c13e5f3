// Package importer normalizes delimited or JSON text into typed records.
package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/delimited"
	"github.com/cleared-dev/tally/internal/errs"
	"github.com/cleared-dev/tally/internal/header"
	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/model"
)

// Importer holds the collaborators shared by every import call.
type Importer struct {
	IDs    id.Allocator
	Now    time.Time
	Logger zerolog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithIDs sets the identifier allocator.
func WithIDs(a id.Allocator) Option {
	return func(im *Importer) { im.IDs = a }
}

// WithNow sets the date used when a recurring start date is missing.
func WithNow(t time.Time) Option {
	return func(im *Importer) { im.Now = t }
}

// WithLogger sets the logger that records dropped and defaulted values.
func WithLogger(l zerolog.Logger) Option {
	return func(im *Importer) { im.Logger = l }
}

// New returns an Importer using UUIDs, today's date and a no-op logger unless
// overridden.
func New(opts ...Option) *Importer {
	im := &Importer{
		IDs:    id.UUID{},
		Now:    model.Date(time.Now().Date()),
		Logger: zerolog.Nop(),
	}
	for _, o := range opts {
		o(im)
	}
	return im
}

// Result is the outcome of one import call.
type Result[T any] struct {
	Records []T
	Issues  []errs.Issue
}

// ParseAmount parses a decimal, tolerating surrounding space, a "$" sign and
// thousands separators.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	return decimal.NewFromString(s)
}

// IsJSON reports whether text looks like a JSON document rather than
// delimited text.
func IsJSON(text string) bool {
	t := strings.TrimSpace(text)
	return t != "" && (t[0] == '[' || t[0] == '{')
}

// fields returns the first non-empty value among names.
type fields func(names ...string) string

func rowFields(ix header.Index, row model.RawRow) fields {
	return func(names ...string) string {
		for _, n := range names {
			if v := ix.Get(row, n); v != "" {
				return v
			}
		}
		return ""
	}
}

// splitList splits on any of seps, trims, and drops empty tokens.
func splitList(s string, seps string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return strings.ContainsRune(seps, r) })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}

// collector gathers Issues for one call and logs each one.
type collector struct {
	kind   model.Kind
	log    zerolog.Logger
	issues []errs.Issue
}

func (c *collector) add(code errs.Code, row int, field, value string, action errs.Action) {
	c.issues = append(c.issues, errs.Issue{Code: code, Row: row, Field: field, Value: value, Action: action})
	ev := c.log.Debug()
	if action == errs.Dropped {
		ev = c.log.Warn()
	}
	ev.Str("kind", string(c.kind)).
		Int("row", row).
		Str("field", field).
		Str("value", value).
		Str("code", string(code)).
		Str("action", string(action)).
		Msg(errs.Message(code))
}

// builder turns one record's fields into a T. n is the 1-based position of
// the record in its input; ok=false drops it.
type builder[T any] func(c *collector, f fields, row, n int) (T, bool)

// importCSV tokenizes text, resolves headers strictly against required and
// builds one record per data row.
func importCSV[T any](im *Importer, kind model.Kind, text string, required []string, build builder[T]) (Result[T], error) {
	rows, err := delimited.Parse(text)
	if err != nil {
		return Result[T]{}, fmt.Errorf("parsing %s: %w", kind, err)
	}
	ix, err := header.Strict(rows[0], required...)
	if err != nil {
		return Result[T]{}, fmt.Errorf("parsing %s: %w", kind, err)
	}
	return buildRows(im, kind, ix, rows[1:], build), nil
}

func buildRows[T any](im *Importer, kind model.Kind, ix header.Index, rows []model.RawRow, build builder[T]) Result[T] {
	c := &collector{kind: kind, log: im.Logger}
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		if rec, ok := build(c, rowFields(ix, row), i+1, i+1); ok {
			out = append(out, rec)
		}
	}
	im.Logger.Debug().Str("kind", string(kind)).Int("records", len(out)).Int("issues", len(c.issues)).Msg("imported delimited text")
	return Result[T]{Records: out, Issues: c.issues}
}

// importJSON decodes a JSON array and builds one record per object element.
func importJSON[T any](im *Importer, kind model.Kind, text string, build builder[T]) (Result[T], error) {
	elems, err := decodeArray(text)
	if err != nil {
		return Result[T]{}, fmt.Errorf("parsing %s: %w", kind, err)
	}
	c := &collector{kind: kind, log: im.Logger}
	out := make([]T, 0, len(elems))
	for i, el := range elems {
		obj, ok := el.(map[string]any)
		if !ok {
			c.add(errs.ShapeElement, i, "", fmt.Sprintf("%T", el), errs.Dropped)
			continue
		}
		if rec, ok := build(c, object(obj).fields, i, i+1); ok {
			out = append(out, rec)
		}
	}
	im.Logger.Debug().Str("kind", string(kind)).Int("records", len(out)).Int("issues", len(c.issues)).Msg("imported JSON")
	return Result[T]{Records: out, Issues: c.issues}, nil
}
