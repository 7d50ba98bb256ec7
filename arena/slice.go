package arena

import (
	"unsafe"

	"github.com/wippyai/bytearena/errors"
)

// WriteSlice copies p at the cursor and advances the cursor past it. When the
// write does not fit, the block grows to the smallest power of two that holds
// cursor+len(p). The length is extended to the cursor if it was shorter.
func (a *Arena) WriteSlice(p []byte) error {
	if len(p) > MaxSize-a.cursor {
		return errors.MaxCapacity(errors.PhaseWrite, MaxSize)
	}
	end := a.cursor + len(p)
	if end > len(a.buf) {
		n, err := growTarget(end)
		if err != nil {
			return err
		}
		if err := a.Resize(n); err != nil {
			return err
		}
	}
	a.writeSliceUnchecked(p)
	return nil
}

// writeSliceUnchecked requires cursor+len(p) <= capacity.
func (a *Arena) writeSliceUnchecked(p []byte) {
	if len(p) == 0 {
		return
	}
	dst := unsafe.Slice((*byte)(unsafe.Add(a.Pointer(), a.cursor)), len(p))
	copy(dst, p)
	a.cursor += len(p)
	if a.cursor > a.length {
		a.length = a.cursor
	}
}

// ReadSlice returns the next n bytes and advances the cursor past them. The
// slice aliases the arena block.
func (a *Arena) ReadSlice(n int) ([]byte, error) {
	if n < 0 || n > a.length-a.cursor {
		return nil, errors.ReadOutOfBounds(a.length, a.cursor, a.cursor+n)
	}
	return a.readSliceUnchecked(n), nil
}

// readSliceUnchecked requires cursor+n <= length.
func (a *Arena) readSliceUnchecked(n int) []byte {
	if n == 0 {
		return []byte{}
	}
	p := unsafe.Slice((*byte)(unsafe.Add(a.Pointer(), a.cursor)), n)
	a.cursor += n
	return p[:n:n]
}

// ReadInto fills p from the cursor. It is ReadSlice followed by a copy, for
// callers that must keep the bytes past the next resize.
func (a *Arena) ReadInto(p []byte) error {
	src, err := a.ReadSlice(len(p))
	if err != nil {
		return err
	}
	copy(p, src)
	return nil
}

// SliceFrom moves the cursor to pos and reads n bytes from there.
func (a *Arena) SliceFrom(pos, n int) ([]byte, error) {
	if pos < 0 || pos > a.length {
		return nil, errors.CursorOutOfBounds(a.length, pos)
	}
	if n < 0 || n > a.length-pos {
		return nil, errors.ReadOutOfBounds(a.length, pos, pos+n)
	}
	a.cursor = pos
	return a.readSliceUnchecked(n), nil
}

// ReadToArena reads the next n bytes into a new arena of capacity n with its
// cursor at 0.
func (a *Arena) ReadToArena(n int) (*Arena, error) {
	if n < 0 || n > a.length-a.cursor {
		return nil, errors.ReadOutOfBounds(a.length, a.cursor, a.cursor+n)
	}
	out, err := WithCapacity(n)
	if err != nil {
		return nil, err
	}
	out.writeSliceUnchecked(a.readSliceUnchecked(n))
	out.cursor = 0
	return out, nil
}

// Content returns the whole logical content without moving the cursor. The
// slice aliases the arena block.
func (a *Arena) Content() []byte {
	if a.length == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(a.Pointer()), a.length)
}

// Bytes returns the whole logical content and moves the cursor to 0. The
// slice aliases the arena block.
func (a *Arena) Bytes() []byte {
	a.cursor = 0
	return a.Content()
}
