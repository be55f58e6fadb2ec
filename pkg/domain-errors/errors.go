// Package domainerrors defines the error taxonomy shared by all workflow
// services. Services attach a stable machine-readable code to every failure so
// the HTTP adapter can map it to a status without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a category of failure. Codes are part of the API contract:
// adapters and operators match on them, so they must stay stable.
type Code string

const (
	// CodeNotFound: no record exists for the given identifier.
	CodeNotFound Code = "not_found"
	// CodeInvalidTransition: requested status change is not in the transition table.
	CodeInvalidTransition Code = "invalid_transition"
	// CodeInvalidOperation: operation preconditions unmet (e.g. converting a
	// non-pending inquiry).
	CodeInvalidOperation Code = "invalid_operation"
	// CodeComplianceFailed: a KYC or suitability gate blocked the transition.
	CodeComplianceFailed Code = "compliance_failed"
	// CodeClientMismatch: acceptance attempted by a client other than the
	// offer's client.
	CodeClientMismatch Code = "client_mismatch"
	// CodePreconditionFailed: required prior state missing (e.g. confirming an
	// offer nobody accepted).
	CodePreconditionFailed Code = "precondition_failed"
	// CodeStorageIO: the backing medium is unreadable, unwritable, or corrupt.
	CodeStorageIO Code = "storage_io"
	// CodeBadRequest: malformed or invalid input from the caller.
	CodeBadRequest Code = "bad_request"
	// CodeInternal: unexpected failure not covered by the taxonomy.
	CodeInternal Code = "internal"
)

// DomainError carries a code alongside the message. It wraps an optional cause
// so errors.Is/As keep working through the translation layers.
type DomainError struct {
	Code    Code
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error { return e.cause }

// New builds a DomainError with the given code and message.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Newf builds a DomainError with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) error {
	return &DomainError{Code: code, Message: message, cause: err}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// outside the taxonomy.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HTTPStatus maps a code to the HTTP status the adapter layer responds with.
func HTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidTransition, CodeInvalidOperation, CodePreconditionFailed:
		return http.StatusConflict
	case CodeComplianceFailed:
		return http.StatusUnprocessableEntity
	case CodeClientMismatch:
		return http.StatusForbidden
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeStorageIO, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
