package errs

// Code identifies a class of import problem.
type Code string

// Fatal structural problems (FormatError).
const (
	FormatEmpty          Code = "FORMAT_EMPTY"
	FormatMissingColumns Code = "FORMAT_MISSING_COLUMNS"
	FormatJSON           Code = "FORMAT_JSON"
	FormatJSONRoot       Code = "FORMAT_JSON_ROOT"
)

// Per-record coercion failures (Issue).
const (
	CoerceAmount Code = "COERCE_AMOUNT"
	CoerceNumber Code = "COERCE_NUMBER"
	CoerceDate   Code = "COERCE_DATE"
	CoerceEnum   Code = "COERCE_ENUM"
)

// Unsupported shapes that are tolerated (Issue).
const (
	ShapeFrequency Code = "SHAPE_FREQUENCY"
	ShapeElement   Code = "SHAPE_ELEMENT"
)

var messages = map[Code]string{
	FormatEmpty:          "input is empty",
	FormatMissingColumns: "missing required columns",
	FormatJSON:           "invalid JSON",
	FormatJSONRoot:       "JSON root must be an array",

	CoerceAmount: "amount is not a number",
	CoerceNumber: "value is not a number",
	CoerceDate:   "value is not a YYYY-MM-DD date",
	CoerceEnum:   "value is not one of the allowed values",

	ShapeFrequency: "unknown frequency",
	ShapeElement:   "element is not an object",
}

// Message returns the default message for code.
func Message(code Code) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return "import problem"
}

// IsValid reports whether code is registered.
func IsValid(code Code) bool {
	_, ok := messages[code]
	return ok
}
