// Package errors defines the structural error taxonomy of the capability
// framework: resolution failures, wiring conflicts, constraint violations,
// and error-conversion failures.
package errors
