package importer

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cleared-dev/tally/internal/errs"
)

// decodeArray decodes text and requires the root to be an array. Numbers are
// kept as json.Number so amounts are not rounded through float64.
func decodeArray(text string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, &errs.FormatError{Code: errs.FormatJSON, Element: "input", Err: err}
	}
	elems, ok := root.([]any)
	if !ok {
		return nil, &errs.FormatError{Code: errs.FormatJSONRoot, Element: "root"}
	}
	return elems, nil
}

type object map[string]any

// fields returns the first non-empty value among keys, rendered as text.
// Arrays are joined with commas.
func (o object) fields(keys ...string) string {
	for _, k := range keys {
		if s := text(o[k]); s != "" {
			return s
		}
	}
	return ""
}

func text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			if s := text(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
