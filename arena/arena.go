package arena

import (
	"math"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/bytearena/errors"
)

const (
	// MinSize is the capacity of New and the floor of ShrinkToFit.
	MinSize = 8
	// MaxSize is the largest capacity an arena may hold.
	MaxSize = math.MaxInt
)

// Arena is an owned, growable byte block with a logical length and a cursor.
//
// Reads consume bytes in [cursor, length). Writes copy at the cursor, grow the
// block to the next power of two when needed and extend the length to the
// cursor. Slices returned by ReadSlice alias the block and are void after any
// operation that may reallocate.
//
// An Arena is not safe for concurrent mutation.
type Arena struct {
	buf    []byte // len(buf) == cap(buf) == capacity
	length int
	cursor int
}

// New creates an arena of MinSize bytes.
func New() *Arena {
	a, err := WithCapacity(MinSize)
	if err != nil {
		// MinSize is always satisfiable unless the runtime itself is out of memory.
		panic(err)
	}
	return a
}

// WithCapacity creates an empty arena holding exactly n bytes. Sizes the
// runtime refuses to allocate fail with an allocation error.
func WithCapacity(n int) (*Arena, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	buf, err := allocate(n)
	if err != nil {
		return nil, err
	}
	return &Arena{buf: buf}, nil
}

// FromBytes creates an arena holding a copy of p, with the cursor at 0.
func FromBytes(p []byte) (*Arena, error) {
	n := len(p)
	if n < MinSize {
		n = MinSize
	}
	a, err := WithCapacity(n)
	if err != nil {
		return nil, err
	}
	copy(a.buf, p)
	a.length = len(p)
	return a, nil
}

func checkSize(n int) error {
	if n <= 0 {
		return errors.MinCapacity(errors.PhaseAlloc)
	}
	return nil
}

// Len returns the logical length.
func (a *Arena) Len() int { return a.length }

// Cap returns the capacity in bytes.
func (a *Arena) Cap() int { return len(a.buf) }

// Cursor returns the current cursor position.
func (a *Arena) Cursor() int { return a.cursor }

// Remaining returns the number of bytes between the cursor and the length.
func (a *Arena) Remaining() int { return a.length - a.cursor }

// IsEmpty reports whether the logical length is zero.
func (a *Arena) IsEmpty() bool { return a.length == 0 }

// Pointer returns the address of the first byte of the block, or nil after
// Release. It is void after any operation that may reallocate.
func (a *Arena) Pointer() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(a.buf))
}

// Resize reallocates the block to exactly n bytes, keeping min(cap, n) bytes.
// The length is clamped to n and the cursor to the length.
func (a *Arena) Resize(n int) error {
	if err := checkSize(n); err != nil {
		return err
	}
	if n == len(a.buf) {
		return nil
	}
	buf, err := allocate(n)
	if err != nil {
		return err
	}
	copy(buf, a.buf)

	Logger().Debug("arena resize", zap.Int("from", len(a.buf)), zap.Int("to", n))

	a.buf = buf
	if a.length > n {
		a.length = n
	}
	if a.cursor > a.length {
		a.cursor = a.length
	}
	return nil
}

// Expand grows the capacity by amount bytes.
func (a *Arena) Expand(amount int) error {
	if amount < 0 {
		return errors.MinCapacity(errors.PhaseAlloc)
	}
	if amount > MaxSize-len(a.buf) {
		return errors.MaxCapacity(errors.PhaseAlloc, MaxSize)
	}
	return a.Resize(len(a.buf) + amount)
}

// Shrink reduces the capacity by amount bytes. Shrinking to zero or below
// fails with MinCapacity.
func (a *Arena) Shrink(amount int) error {
	if amount < 0 || amount >= len(a.buf) {
		return errors.MinCapacity(errors.PhaseAlloc)
	}
	return a.Resize(len(a.buf) - amount)
}

// ShrinkTo reduces the capacity to max(floor, length) when it exceeds floor.
func (a *Arena) ShrinkTo(floor int) error {
	if len(a.buf) <= floor {
		return nil
	}
	return a.Resize(max(floor, a.length))
}

// ShrinkToFit reduces the capacity to max(length, MinSize).
func (a *Arena) ShrinkToFit() error {
	if len(a.buf) <= a.length {
		return nil
	}
	return a.Resize(max(a.length, MinSize))
}

// MoveCursor places the cursor at pos, which must not exceed the length.
func (a *Arena) MoveCursor(pos int) error {
	if pos < 0 || pos > a.length {
		return errors.CursorOutOfBounds(a.length, pos)
	}
	a.cursor = pos
	return nil
}

// MoveCursorToStart places the cursor at 0.
func (a *Arena) MoveCursorToStart() { a.cursor = 0 }

// MoveCursorToEnd places the cursor at the length.
func (a *Arena) MoveCursorToEnd() { a.cursor = a.length }

// Truncate sets the length to n, which must not exceed the current length.
// The cursor is clamped to the new length. The block is not reallocated.
func (a *Arena) Truncate(n int) error {
	if n < 0 || n > a.length {
		return errors.LengthOutOfBounds(a.length, n)
	}
	a.length = n
	if a.cursor > n {
		a.cursor = n
	}
	return nil
}

// Reset empties the arena, keeping its capacity.
func (a *Arena) Reset() {
	a.length = 0
	a.cursor = 0
}

// Clone returns a new arena with the same capacity, length and cursor. Only
// the first length bytes are copied.
func (a *Arena) Clone() (*Arena, error) {
	n := len(a.buf)
	if n == 0 {
		n = MinSize
	}
	buf, err := allocate(n)
	if err != nil {
		return nil, err
	}
	copy(buf, a.buf[:a.length])
	return &Arena{buf: buf, length: a.length, cursor: a.cursor}, nil
}

// Release drops the block. Later calls are no-ops. A released arena is empty
// and reallocates on the next write.
func (a *Arena) Release() {
	if a.buf == nil {
		return
	}
	a.buf = nil
	a.length = 0
	a.cursor = 0
}
