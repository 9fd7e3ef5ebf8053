package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldViolation is a single failed rule on a request field.
// Field uses the JSON name of the field so it matches what the client sent.
type FieldViolation struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// Error carries every violation found on a struct.
type Error struct {
	Violations []FieldViolation
}

func (e *Error) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
	})
	return validate
}

// Struct validates s and returns nil or an *Error listing all violations.
func Struct(s interface{}) *Error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Violations: []FieldViolation{{
			Field:   "body",
			Tag:     "invalid",
			Message: err.Error(),
		}}}
	}

	out := &Error{Violations: make([]FieldViolation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Violations = append(out.Violations, FieldViolation{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translate(fe),
		})
	}
	return out
}

// jsonFieldName reports fields by their JSON key.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

var messages = map[string]string{
	"required": "%s is required",
	"gte":      "%s must be greater than or equal to %s",
	"lte":      "%s must be less than or equal to %s",
	"gt":       "%s must be greater than %s",
	"lt":       "%s must be less than %s",
	"oneof":    "%s must be one of: %s",
}

func translate(fe validator.FieldError) string {
	field := fe.Field()
	if tmpl, ok := messages[fe.Tag()]; ok {
		if strings.Count(tmpl, "%s") == 2 {
			return fmt.Sprintf(tmpl, field, fe.Param())
		}
		return fmt.Sprintf(tmpl, field)
	}

	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must have at least %s items", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must have at most %s items", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
