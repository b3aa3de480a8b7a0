// Package validation wraps go-playground/validator and reports failures as
// domain.ValidationError with the JSON name of the offending field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"markova/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates v and returns the first violation as a *domain.ValidationError.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &domain.ValidationError{Message: err.Error()}
	}
	return translate(errs[0])
}

// Var validates a single value against tag, reporting failures under field.
func Var(field string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		ve := translate(errs[0])
		ve.Field = field
		return ve
	}
	return &domain.ValidationError{Field: field, Message: err.Error()}
}

func translate(fe validator.FieldError) *domain.ValidationError {
	field := fieldPath(fe.Namespace())
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "oneof":
		msg = fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		msg = fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		msg = fmt.Sprintf("must be at least %s", fe.Param())
	case "email":
		msg = "must be a valid email address"
	case "hexcolor":
		msg = "must be a hex colour such as #1A2B3C"
	case "url":
		msg = "must be a valid URL"
	case "uuid":
		msg = "must be a UUID"
	default:
		msg = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return &domain.ValidationError{Field: field, Message: msg}
}

// fieldPath drops the top-level struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
