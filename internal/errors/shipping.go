package errors

import "fmt"

const (
	CodeMissingField      = "MISSING_FIELD"
	CodeInvalidField      = "INVALID_FIELD"
	CodeInvalidMethod     = "INVALID_METHOD"
	CodeMethodUnavailable = "METHOD_UNAVAILABLE"
	CodeInvalidPolicy     = "INVALID_POLICY"
	CodePolicyNotLoaded   = "POLICY_NOT_LOADED"
)

var (
	ErrMissingField = &DomainError{
		Code:    CodeMissingField,
		Message: "required field is missing",
	}
	ErrInvalidMethod = &DomainError{
		Code:    CodeInvalidMethod,
		Message: "unknown shipping method",
	}
	ErrMethodUnavailable = &DomainError{
		Code:    CodeMethodUnavailable,
		Message: "shipping method is not available for this location",
	}
	ErrInvalidPolicy = &DomainError{
		Code:    CodeInvalidPolicy,
		Message: "invalid shipping policy",
	}
	ErrPolicyNotLoaded = &DomainError{
		Code:    CodePolicyNotLoaded,
		Message: "shipping policy is not loaded",
	}
)

// MissingField reports an absent or blank required input.
func MissingField(field string) *DomainError {
	return &DomainError{
		Code:    CodeMissingField,
		Message: "is required",
		Field:   field,
	}
}

// InvalidField reports a present but malformed input.
func InvalidField(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidField,
		Message: message,
		Field:   field,
	}
}

// InvalidMethod reports a method the policy table does not define.
func InvalidMethod(method string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidMethod,
		Message: fmt.Sprintf("unknown shipping method %q", method),
		Field:   "shippingMethod",
	}
}

// MethodUnavailable reports a valid method that cannot serve the destination.
func MethodUnavailable(method string) *DomainError {
	return &DomainError{
		Code:    CodeMethodUnavailable,
		Message: fmt.Sprintf("shipping method %q is not available for this location", method),
	}
}

// InvalidPolicy reports a policy table rejected at load time.
func InvalidPolicy(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    CodeInvalidPolicy,
		Message: fmt.Sprintf(format, args...),
	}
}
