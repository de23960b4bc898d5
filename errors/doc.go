// Package errors provides structured error types for scoped resource release.
//
// Errors are categorized by Phase (where in a resource's lifetime the error
// occurred) and Kind (error category). The Error type carries the resource
// kind name, a detail message, the offending value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseBind, errors.KindNilPointer).
//		Resource("mutex").
//		Detail("cannot bind a nil lock").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Released(errors.PhaseTransfer, "fd")
//	err := errors.CapacityExceeded(errors.PhaseRead, limit)
//
// Release callbacks never surface errors to callers; these types describe
// acquisition failures, read failures and contract violations.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
