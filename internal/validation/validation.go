// Package validation runs struct-tag validation on request payloads and turns
// failures into domain.FieldErrors keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Struct validates s using its `validate` tags. It returns nil when s is valid.
// Errors on slice elements are reported against the slice field itself.
func Struct(s any) domain.FieldErrors {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		// InvalidValidationError: s is not a struct. Programming error.
		panic(fmt.Sprintf("validation.Struct: %v", err))
	}

	fields := domain.FieldErrors{}
	for _, fe := range ve {
		name := fieldName(fe)
		fields.Add(name, message(fe))
	}
	return fields
}

// Email reports whether s is a syntactically valid email address.
func Email(s string) bool {
	return get().Var(s, "required,email") == nil
}

// URL reports whether s is a well-formed absolute URL.
func URL(s string) bool {
	return get().Var(s, "required,url") == nil
}

// fieldName strips the struct prefix and any slice index from the namespace,
// so "CreateTripRequest.emails_to_invite[2]" becomes "emails_to_invite".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i != -1 {
		ns = ns[i+1:]
	}
	if i := strings.Index(ns, "["); i != -1 {
		ns = ns[:i]
	}
	return ns
}

func message(fe validator.FieldError) string {
	element := fe.Kind() != reflect.Slice && strings.HasSuffix(fe.Namespace(), "]")
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		if element {
			return fmt.Sprintf("%v is not a valid email", fe.Value())
		}
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed validation: %s=%s", fe.Tag(), fe.Param())
		}
		return "failed validation: " + fe.Tag()
	}
}

func get() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := fld.Tag.Get("json")
			if comma := strings.Index(name, ","); comma != -1 {
				name = name[:comma]
			}
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}
