// Package validation holds the declarative per-field rules evaluated at the
// request boundary, before any service operation is invoked. A schema is a
// list of (field, predicate, message) entries over the request's string
// fields; failures are returned together, field-scoped, and map onto a 400.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
)

type CheckFunc func(value string) bool

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

func Email(value string) bool {
	_, err := mail.ParseAddress(value)
	return err == nil
}

func MinLen(n int) CheckFunc {
	return func(value string) bool {
		return len(value) >= n
	}
}

type Rule struct {
	Field   string
	Message string
	Check   CheckFunc
}

type Rules []Rule

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(msgs, "; ")
}

// Validate runs every rule against the named field in fields. A missing key
// is validated as the empty string. It returns nil when everything passes.
func (r Rules) Validate(fields map[string]string) Errors {
	var errs Errors
	for _, rule := range r {
		if !rule.Check(fields[rule.Field]) {
			errs = append(errs, FieldError{Field: rule.Field, Message: rule.Message})
		}
	}
	return errs
}
