// Package validation wraps go-playground/validator with field messages keyed by JSON names.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"qr-quiz-service/internal/domain"
)

// Error reports every failing field with a human readable message.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator validates request bodies and catalog content.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that names fields after their json tags.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" || name == "-" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			name = name[:i]
		}
		return name
	})
	v.RegisterStructValidation(questionRange, domain.Question{})

	return &Validator{v: v}
}

// Validate validates a struct and returns *Error on failure.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fields[fieldPath(e)] = friendlyMessage(e)
	}
	return &Error{Fields: fields}
}

// fieldPath drops the root struct name so nested catalog errors read "questions[2].options".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func questionRange(sl validator.StructLevel) {
	q := sl.Current().Interface().(domain.Question)
	if len(q.Options) > 0 && q.CorrectOption >= len(q.Options) {
		sl.ReportError(q.CorrectOption, "correctOption", "CorrectOption", "ltoptions", fmt.Sprint(len(q.Options)))
	}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", e.Param())
		}
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "ltoptions":
		return "must index one of the " + e.Param() + " options"
	default:
		return "is invalid"
	}
}
