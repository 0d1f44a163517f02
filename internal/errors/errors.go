package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a stable type tag that
// clients can branch on without parsing messages.
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context. The wrapped
// store error travels with the domain error but is never serialized into a
// production response body.
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Stable error type tags.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeAlreadyInUse = "ALREADY_IN_USE"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeClientError  = "CLIENT_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// Predefined domain errors
var (
	// User / account errors
	ErrUserNotFound  = NewDomainError(CodeNotFound, "user not found")
	ErrEmailInUse    = NewDomainError(CodeAlreadyInUse, "email is already in use")
	ErrNameInUse     = NewDomainError(CodeAlreadyInUse, "name is already in use")
	ErrWrongPassword = NewDomainError(CodeClientError, "wrong password")

	// Café / review errors
	ErrCafeNotFound   = NewDomainError(CodeNotFound, "cafe not found")
	ErrReviewNotFound = NewDomainError(CodeNotFound, "review not found")
	ErrAlreadyLiked   = NewDomainError(CodeAlreadyInUse, "cafe is already liked")
	ErrLikeNotFound   = NewDomainError(CodeNotFound, "like not found")
	ErrNotOwner       = NewDomainError(CodeUnauthorized, "not the owner of this resource")

	// Auth / token errors
	ErrUnauthorized = NewDomainError(CodeUnauthorized, "unauthorized")
	ErrTokenExpired = NewDomainError(CodeUnauthorized, "token has expired")
	ErrTokenInvalid = NewDomainError(CodeUnauthorized, "invalid token")

	// System errors
	ErrInternal = NewDomainError(CodeInternal, "internal server error")
)

// FieldViolation is one field-level validation failure.
type FieldViolation struct {
	Location string `json:"location"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

// ValidationError carries the ordered field violations produced by running a
// set of validation chains against a request.
type ValidationError struct {
	Violations []FieldViolation
}

// Error reports only the first violation; the full list rides along for the
// response body.
func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	v := e.Violations[0]
	return fmt.Sprintf("validation failed: %s.%s %s", v.Location, v.Field, v.Message)
}

// First returns the first recorded violation.
func (e *ValidationError) First() FieldViolation {
	if len(e.Violations) == 0 {
		return FieldViolation{}
	}
	return e.Violations[0]
}

// NewValidationError builds a ValidationError from ordered violations.
func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

// IsDomainError checks if an error is a domain error.
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error.
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// GetValidationError extracts a ValidationError from an error.
func GetValidationError(err error) *ValidationError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}
	return nil
}

// Code returns the stable type tag for any error.
func Code(err error) string {
	if err == nil {
		return ""
	}
	if ve := GetValidationError(err); ve != nil {
		return CodeValidation
	}
	if de := GetDomainError(err); de != nil {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps errors to HTTP status codes. Used only at the handler
// boundary.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if GetValidationError(err) != nil {
		return http.StatusBadRequest
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case CodeValidation, CodeClientError:
			return http.StatusBadRequest
		case CodeUnauthorized:
			return http.StatusUnauthorized
		case CodeNotFound:
			return http.StatusNotFound
		case CodeAlreadyInUse:
			return http.StatusConflict
		default:
			return http.StatusInternalServerError
		}
	}

	return http.StatusInternalServerError
}

// GetErrorMessage safely extracts the user-visible error message. Wrapped
// store errors stay out of it.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	if ve := GetValidationError(err); ve != nil {
		return ve.First().Message
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
