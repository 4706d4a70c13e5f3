package delimited

import "strings"

// FormatRow joins fields with the delimiter, quoting fields that contain it.
func (t Tokenizer) FormatRow(fields []string) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		if strings.ContainsRune(f, t.Delimiter) {
			f = string(quote) + f + string(quote)
		}
		out[i] = f
	}
	return strings.Join(out, string(t.Delimiter))
}

// Format renders rows as '\n'-joined lines.
func (t Tokenizer) Format(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = t.FormatRow(r)
	}
	return strings.Join(lines, "\n")
}

// FormatRow formats fields with the comma tokenizer.
func FormatRow(fields []string) string {
	return Comma.FormatRow(fields)
}

// Format formats rows with the comma tokenizer.
func Format(rows [][]string) string {
	return Comma.Format(rows)
}
