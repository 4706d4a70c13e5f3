// Package validation checks records before they are persisted.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Validator wraps the go-playground validator with the record rules.
type Validator struct {
	validate *validator.Validate
}

var (
	instance *Validator
	once     sync.Once
)

// Default returns the shared validator.
func Default() *Validator {
	once.Do(func() { instance = New() })
	return instance
}

// New creates a validator with the custom record rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("calendar_date", validateCalendarDate)
	_ = v.RegisterValidation("nonneg_decimal", validateNonNegDecimal)
	_ = v.RegisterValidation("frequency", validateFrequency)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{validate: v}
}

// FieldError is one failed rule.
type FieldError struct {
	Field string
	Rule  string
	Value string
}

// Error lists every failed field of one record.
type Error struct {
	Record string
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s failed %s (%q)", f.Field, f.Rule, f.Value)
	}
	return fmt.Sprintf("invalid %s: %s", e.Record, strings.Join(parts, "; "))
}

// Struct validates one record.
func (v *Validator) Struct(rec any) error {
	err := v.validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Record: recordName(rec)}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Value: fmt.Sprint(fe.Value()),
		})
	}
	return out
}

// All validates every element of recs, wrapping failures with their 0-based index.
func All[T any](v *Validator, recs []T) error {
	var errs []error
	for i, r := range recs {
		if err := v.Struct(r); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func recordName(rec any) string {
	t := reflect.TypeOf(rec)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := model.ParseDate(fl.Field().String())
	return err == nil
}

func validateNonNegDecimal(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && !d.IsNegative()
}

func validateFrequency(fl validator.FieldLevel) bool {
	return model.Frequency(fl.Field().String()).Valid()
}
