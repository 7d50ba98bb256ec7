// Package errors provides structured error types for the bytearena module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the value path, the Go type name, a typed Value with the
// structured fields of the kind, and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindOther).
//		Path("header", "flags").
//		GoType("uint16").
//		Detail("unexpected flag bits %#x", bits).
//		Build()
//
// Or use convenience constructors for the closed arena taxonomy:
//
//	err := errors.ReadOutOfBounds(length, start, end)
//	err := errors.CursorOutOfBounds(length, cursor)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on phase and kind; IsKind matches on kind alone.
package errors
