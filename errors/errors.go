// Package errors provides unified error handling for the capability
// framework. It implements structured error types with error codes and
// detail maps so wiring failures can be inspected programmatically.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the unified framework error type.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf extracts the error code from err, or empty string if err is not
// a framework error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether err carries the given framework error code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// --- Common Error Constructors ---

// MissingProvider creates an Error for a capability with no binding and
// no declared default on a context.
func MissingProvider(contextName, capabilityID string) *Error {
	return &Error{
		Code:    ErrCodeMissingProvider,
		Message: fmt.Sprintf("no provider bound for capability %q on context %q and no default is declared", capabilityID, contextName),
		Details: map[string]any{"context": contextName, "capability": capabilityID},
	}
}

// AmbiguousProvider creates an Error for a capability bound twice on the
// same context.
func AmbiguousProvider(contextName, capabilityID, existing, incoming string) *Error {
	return &Error{
		Code:    ErrCodeAmbiguousProvider,
		Message: fmt.Sprintf("capability %q is already bound to provider %q on context %q (conflicting provider: %q)", capabilityID, existing, contextName, incoming),
		Details: map[string]any{
			"context":    contextName,
			"capability": capabilityID,
			"existing":   existing,
			"incoming":   incoming,
		},
	}
}

// CyclicDelegation creates an Error for a delegation chain that revisits
// a table it already passed through.
func CyclicDelegation(contextName, capabilityID string, chain []string) *Error {
	return &Error{
		Code:    ErrCodeCyclicDelegation,
		Message: fmt.Sprintf("delegation chain for capability %q on context %q is cyclic", capabilityID, contextName),
		Details: map[string]any{
			"context":    contextName,
			"capability": capabilityID,
			"chain":      chain,
		},
	}
}

// UnsatisfiedConstraint creates an Error for a provider whose impl-side
// constraint is not met by the context it was resolved for.
func UnsatisfiedConstraint(providerName, contextName, reason string) *Error {
	return &Error{
		Code:    ErrCodeUnsatisfiedConstraint,
		Message: fmt.Sprintf("provider %q cannot serve context %q: %s", providerName, contextName, reason),
		Details: map[string]any{
			"provider": providerName,
			"context":  contextName,
			"reason":   reason,
		},
	}
}

// ConversionFailed creates an Error for a source error type with no
// resolvable raiser on a context.
func ConversionFailed(contextName, sourceType string) *Error {
	return &Error{
		Code:    ErrCodeConversionFailed,
		Message: fmt.Sprintf("no error raiser resolves for source type %q on context %q", sourceType, contextName),
		Details: map[string]any{"context": contextName, "source_type": sourceType},
	}
}

// DuplicateDeclaration creates an Error for a capability or provider
// declared twice under one identifier.
func DuplicateDeclaration(kind, id string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateDeclaration,
		Message: fmt.Sprintf("%s %q is already declared", kind, id),
		Details: map[string]any{"kind": kind, "id": id},
	}
}

// InvalidDeclaration creates an Error for a declaration that failed
// validation.
func InvalidDeclaration(kind, reason string) *Error {
	return &Error{
		Code:    ErrCodeInvalidDeclaration,
		Message: fmt.Sprintf("invalid %s declaration: %s", kind, reason),
		Details: map[string]any{"kind": kind},
	}
}
