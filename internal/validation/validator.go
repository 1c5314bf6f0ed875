// Package validation checks request shape at the HTTP boundary. Domain rules
// (required fields, known methods) stay in the shipping service.
package validation

import (
	"fmt"
	"unicode/utf8"

	domainErrors "shipfee/internal/errors"
)

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator collects field errors in the order they were found.
type Validator struct {
	Errors []FieldError
}

func New() *Validator {
	return &Validator{
		Errors: make([]FieldError, 0),
	}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	v.Errors = append(v.Errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks that a string is not empty
func (v *Validator) Required(field, value string) {
	v.Check(value != "", field, "is required")
}

// MaxLength checks if a string has at most n characters
func (v *Validator) MaxLength(field, value string, n int) {
	v.Check(utf8.RuneCountInString(value) <= n, field, fmt.Sprintf("must not be more than %d characters long", n))
}

// ValidUTF8 rejects byte sequences that are not UTF-8 text.
func (v *Validator) ValidUTF8(field, value string) {
	v.Check(utf8.ValidString(value), field, "must be valid UTF-8 text")
}

// Err returns the first error as a DomainError, or nil.
func (v *Validator) Err() *domainErrors.DomainError {
	if v.Valid() {
		return nil
	}
	first := v.Errors[0]
	return domainErrors.InvalidField(first.Field, first.Message)
}
