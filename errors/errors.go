package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in a resource's lifetime the error occurred
type Phase string

const (
	PhaseAcquire  Phase = "acquire"  // opening or allocating a resource
	PhaseBind     Phase = "bind"     // attaching a resource to a scoped variable
	PhaseTransfer Phase = "transfer" // moving ownership out of a scoped variable
	PhaseRelease  Phase = "release"  // running a release callback
	PhaseRead     Phase = "read"     // capped whole-file reads
)

// Kind categorizes the error
type Kind string

const (
	KindReleased      Kind = "released"
	KindInvalidHandle Kind = "invalid_handle"
	KindCapacity      Kind = "capacity"
	KindIO            Kind = "io"
	KindAllocation    Kind = "allocation"
	KindInvalidInput  Kind = "invalid_input"
	KindNilPointer    Kind = "nil_pointer"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Resource string
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Resource != "" {
		b.WriteString(" (")
		b.WriteString(e.Resource)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Resource sets the resource kind name
func (b *Builder) Resource(name string) *Builder {
	b.err.Resource = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Released reports an operation on a scoped variable that already reached
// its terminal released state.
func Released(phase Phase, resource string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindReleased,
		Resource: resource,
		Detail:   "scoped variable already released",
	}
}

// InvalidHandle creates an error for a handle that does not denote a live resource
func InvalidHandle(phase Phase, resource string, value any) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidHandle,
		Resource: resource,
		Detail:   fmt.Sprintf("invalid handle %v", value),
		Value:    value,
	}
}

// CapacityExceeded creates an error for input larger than the permitted bound
func CapacityExceeded(phase Phase, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCapacity,
		Detail: fmt.Sprintf("content exceeds limit of %d bytes", limit),
		Value:  limit,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(size int, cause error) *Error {
	return &Error{
		Phase:    PhaseAcquire,
		Kind:     KindAllocation,
		Resource: "heap",
		Detail:   fmt.Sprintf("failed to allocate %d bytes", size),
		Value:    size,
		Cause:    cause,
	}
}

// IO wraps an I/O failure
func IO(phase Phase, resource, op string, cause error) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindIO,
		Resource: resource,
		Detail:   op,
		Cause:    cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, resource string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindNilPointer,
		Resource: resource,
		Detail:   "nil pointer",
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
