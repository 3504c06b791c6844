// Package validation holds the process-wide go-playground validator with the
// custom rules used by request DTOs and the join form.
//
// Registered tags:
//
//	username  lowercase letters, digits, '-' and '_' (project slugs)
//	phone     optional leading '+', then 2 to 15 digits not starting with 0
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	usernamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Errors collects field failures in the order they were found.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Message
	}
	return strings.Join(parts, "; ")
}

// ByField indexes messages by field name, keeping the first failure.
func (e Errors) ByField() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report request fields by their JSON name.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			}
			return name
		})

		_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return IsUsername(fl.Field().String())
		})
		_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

func IsUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// Struct validates s and converts failures to Errors.
func Struct(s any) error {
	return convert(GetValidator().Struct(s), "")
}

// Var validates a single value under the given field name.
func Var(field string, value any, tag string) error {
	return convert(GetValidator().Var(value, tag), field)
}

func convert(err error, field string) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: field, Tag: "unknown", Message: err.Error()}}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		name := field
		if name == "" {
			name = fe.Field()
		}
		out = append(out, FieldError{
			Field:   name,
			Tag:     fe.Tag(),
			Message: translate(name, fe.Tag(), fe.Param()),
		})
	}
	return out
}

var messages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"username": "%s may only contain lowercase letters, digits, '-' and '_'",
	"phone":    "%s must be a valid phone number (e.g., +1234567890)",
}

var messagesWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"max":   "%s must be at most %s characters",
	"min":   "%s must be at least %s characters",
}

func translate(field, tag, param string) string {
	if tmpl, ok := messages[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := messagesWithParam[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}
	return fmt.Sprintf("%s failed %s validation", field, tag)
}
