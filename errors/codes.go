package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resolution failures (structural, detected during wiring or first use)
const (
	// ErrCodeMissingProvider indicates no binding and no default exists
	// for a capability on a context.
	ErrCodeMissingProvider ErrorCode = "MISSING_PROVIDER"
	// ErrCodeAmbiguousProvider indicates two or more explicit bindings
	// for the same capability on one context.
	ErrCodeAmbiguousProvider ErrorCode = "AMBIGUOUS_PROVIDER"
	// ErrCodeCyclicDelegation indicates a delegation chain that loops
	// back onto itself.
	ErrCodeCyclicDelegation ErrorCode = "CYCLIC_DELEGATION"
)

// Constraint and conversion failures
const (
	// ErrCodeUnsatisfiedConstraint indicates a provider's impl-side
	// constraint is not met by the context it was resolved for.
	ErrCodeUnsatisfiedConstraint ErrorCode = "UNSATISFIED_CONSTRAINT"
	// ErrCodeConversionFailed indicates no error raiser resolves for a
	// source error type on a context.
	ErrCodeConversionFailed ErrorCode = "ERROR_CONVERSION_FAILED"
)

// Declaration failures
const (
	// ErrCodeDuplicateDeclaration indicates a capability or provider was
	// declared twice under the same identifier.
	ErrCodeDuplicateDeclaration ErrorCode = "DUPLICATE_DECLARATION"
	// ErrCodeInvalidDeclaration indicates a declaration failed struct
	// validation.
	ErrCodeInvalidDeclaration ErrorCode = "INVALID_DECLARATION"
)

// structuralCodes are failures of the wiring itself rather than of any
// provider's own operation.
var structuralCodes = map[ErrorCode]bool{
	ErrCodeMissingProvider:       true,
	ErrCodeAmbiguousProvider:     true,
	ErrCodeCyclicDelegation:      true,
	ErrCodeDuplicateDeclaration:  true,
	ErrCodeInvalidDeclaration:    true,
	ErrCodeUnsatisfiedConstraint: false,
	ErrCodeConversionFailed:      false,
}

// IsStructuralCode returns true if the code describes a wiring failure
// that should be caught during table assembly rather than at call time.
func IsStructuralCode(code ErrorCode) bool {
	return structuralCodes[code]
}
