// Package errors defines the domain error type shared by the service layer
// and the HTTP boundary.
package errors

import "fmt"

// DomainError is an error with a stable machine-readable code.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Field   string `json:"field,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Is matches any DomainError carrying the same code, so errors.Is works
// against the package sentinels for errors built with extra detail.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}
