package bytearena

// SliceReader is the read side of the byte arena contract.
type SliceReader interface {
	// ReadSlice returns the next n bytes and advances the cursor past them.
	// The returned slice aliases the arena and is void after any resize.
	ReadSlice(n int) ([]byte, error)
	Len() int
	Cursor() int
}

// SliceWriter is the write side of the byte arena contract.
type SliceWriter interface {
	// WriteSlice copies p at the cursor, growing the arena if needed.
	WriteSlice(p []byte) error
	Len() int
	Cursor() int
}

// Buffer is implemented by *arena.Arena. Codecs and adapters are written
// against it so callers can substitute instrumented or bounded buffers.
type Buffer interface {
	SliceReader
	SliceWriter
}
