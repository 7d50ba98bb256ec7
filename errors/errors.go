package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseAlloc   Phase = "alloc"   // arena allocation and resizing
	PhaseRead    Phase = "read"    // raw slice reads
	PhaseWrite   Phase = "write"   // raw slice writes
	PhaseCursor  Phase = "cursor"  // cursor and length moves
	PhaseEncode  Phase = "encode"  // Go value to arena
	PhaseDecode  Phase = "decode"  // arena to Go value
	PhaseCompile Phase = "compile" // reflection codec compilation
	PhaseSchema  Phase = "schema"  // WIT-driven dynamic codec
	PhaseParse   Phase = "parse"   // layout expression parsing
	PhaseInterop Phase = "interop" // linear memory and nested codecs
)

// Kind categorizes the error
type Kind string

const (
	KindMinCapacity       Kind = "min_capacity"
	KindMaxCapacity       Kind = "max_capacity"
	KindAllocation        Kind = "allocation"
	KindCursorOutOfBounds Kind = "cursor_out_of_bounds"
	KindReadOutOfBounds   Kind = "read_out_of_bounds"
	KindLengthOutOfBounds Kind = "length_out_of_bounds"
	KindNotAChar          Kind = "not_a_char"
	KindNonZeroIsZero     Kind = "non_zero_is_zero"
	KindAlreadyBorrowed   Kind = "already_borrowed"
	KindInvalidUTF8       Kind = "invalid_utf8"
	KindOther             Kind = "other"
	KindUnsupported       Kind = "unsupported"
	KindTypeMismatch      Kind = "type_mismatch"
	KindInvalidInput      Kind = "invalid_input"
)

// AllocSize is the Value of an allocation failure.
type AllocSize struct {
	Size int
}

// CursorBounds is the Value of a cursor move past the logical length.
type CursorBounds struct {
	Length int
	Cursor int
}

// ReadBounds is the Value of a read past the logical length.
type ReadBounds struct {
	Length int
	Start  int
	End    int
}

// LengthBounds is the Value of a truncation past the logical length.
type LengthBounds struct {
	Current int
	New     int
}

// Borrow is the Value of an access conflict on a checked cell.
type Borrow struct {
	Context string
}

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// KindOf returns the kind of the outermost *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether any *Error in err's chain has the given kind,
// regardless of phase.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		err = stderrors.Unwrap(err)
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

// Path sets the value path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
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

// Arena constructors

// MinCapacity reports a requested capacity below one byte.
func MinCapacity(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMinCapacity,
		Detail: "capacity cannot be less than 1 byte",
	}
}

// MaxCapacity reports a requested capacity above max bytes.
func MaxCapacity(phase Phase, max int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMaxCapacity,
		Detail: fmt.Sprintf("capacity cannot be greater than %d bytes", max),
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size int, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
		Value:  AllocSize{Size: size},
		Cause:  cause,
	}
}

// CursorOutOfBounds reports a cursor move past the logical length.
func CursorOutOfBounds(length, cursor int) *Error {
	return &Error{
		Phase:  PhaseCursor,
		Kind:   KindCursorOutOfBounds,
		Detail: fmt.Sprintf("cursor %d beyond length %d", cursor, length),
		Value:  CursorBounds{Length: length, Cursor: cursor},
	}
}

// ReadOutOfBounds reports a read of [start, end) past the logical length.
func ReadOutOfBounds(length, start, end int) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindReadOutOfBounds,
		Detail: fmt.Sprintf("read %d..%d beyond length %d", start, end, length),
		Value:  ReadBounds{Length: length, Start: start, End: end},
	}
}

// LengthOutOfBounds reports a truncation to a length above the current one.
func LengthOutOfBounds(current, newLength int) *Error {
	return &Error{
		Phase:  PhaseCursor,
		Kind:   KindLengthOutOfBounds,
		Detail: fmt.Sprintf("new length %d exceeds current length %d", newLength, current),
		Value:  LengthBounds{Current: current, New: newLength},
	}
}

// Codec constructors

// NotAChar reports a code point that is not a Unicode scalar value.
func NotAChar(phase Phase, path []string, codePoint uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotAChar,
		Path:   path,
		Detail: fmt.Sprintf("invalid Unicode scalar value: 0x%X", codePoint),
		Value:  codePoint,
	}
}

// NonZeroIsZero reports a zero where a non-zero integer is required.
func NonZeroIsZero(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNonZeroIsZero,
		Path:   path,
		GoType: goType,
		Detail: "non-zero integer is zero",
	}
}

// AlreadyBorrowed reports an exclusive borrow held during encoding.
func AlreadyBorrowed(phase Phase, context string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAlreadyBorrowed,
		GoType: context,
		Detail: "value is already mutably borrowed",
		Value:  Borrow{Context: context},
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// Other creates a catch-all composite rule violation.
func Other(phase Phase, path []string, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindOther,
		Path:   path,
		Detail: detail,
	}
}

// InvalidDiscriminant creates an unknown discriminant error for sum types.
func InvalidDiscriminant(phase Phase, path []string, what string, disc uint8) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOther,
		Path:   path,
		Detail: fmt.Sprintf("invalid %s discriminant %d", what, disc),
		Value:  disc,
	}
}

// InvalidID is the error generated sum type decoders return for unknown tags.
func InvalidID(phase Phase, path []string, id uint8) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOther,
		Path:   path,
		Detail: fmt.Sprintf("invalid id: %d", id),
		Value:  id,
	}
}

// AtIndex wraps a failure of the element or member at index i.
func AtIndex(phase Phase, path []string, i int, cause error) *Error {
	p := make([]string, 0, len(path)+1)
	p = append(p, path...)
	p = append(p, fmt.Sprintf("[%d]", i))
	return &Error{
		Phase:  phase,
		Kind:   KindOther,
		Path:   p,
		Detail: fmt.Sprintf("failure at index %d", i),
		Value:  i,
		Cause:  cause,
	}
}

// Misc constructors

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Detail: "expected " + want,
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

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
